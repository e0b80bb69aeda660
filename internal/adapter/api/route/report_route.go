package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/controller"
	"github.com/rafaelduarte/gestor-compras/pkg/middleware"
)

// RegisterReportRoutes registra as rotas de relatórios
func RegisterReportRoutes(r *gin.RouterGroup, reportController *controller.ReportController) {
	relatorios := r.Group("/relatorios")
	relatorios.Use(middleware.AuthMiddleware())
	{
		relatorios.GET("/pedidos", reportController.ExportPedidos)
	}
}
