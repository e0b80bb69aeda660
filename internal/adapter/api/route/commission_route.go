package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/controller"
	"github.com/rafaelduarte/gestor-compras/pkg/middleware"
)

// RegisterCommissionRoutes registra as rotas do módulo de comissões
func RegisterCommissionRoutes(r *gin.RouterGroup, commissionController *controller.CommissionController) {
	comissoes := r.Group("/comissoes")
	comissoes.Use(middleware.AuthMiddleware())
	{
		comissoes.GET("/responsaveis", commissionController.ListResponsaveis)
		comissoes.GET("/elegiveis", commissionController.ListItensElegiveis)
		comissoes.POST("/pagamentos", commissionController.Create)
		comissoes.GET("/pagamentos", commissionController.List)
		comissoes.PATCH("/pagamentos/:id", commissionController.UpdateValor)
		comissoes.DELETE("/pagamentos/:id", middleware.AdminOnly(), commissionController.Delete)
	}
}
