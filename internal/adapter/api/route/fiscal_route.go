package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/controller"
	"github.com/rafaelduarte/gestor-compras/pkg/middleware"
)

// RegisterFiscalRoutes registra as rotas do módulo de notas fiscais
func RegisterFiscalRoutes(r *gin.RouterGroup, fiscalController *controller.FiscalController) {
	notas := r.Group("/notas")
	notas.Use(middleware.AuthMiddleware())
	{
		notas.POST("", fiscalController.Upload)
		notas.GET("", fiscalController.List)
		notas.GET("/:id/arquivo", fiscalController.Download)
		notas.POST("/download", fiscalController.BulkDownload)
		notas.DELETE("/:id", fiscalController.Delete)
	}
}
