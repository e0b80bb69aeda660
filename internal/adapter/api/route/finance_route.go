package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/controller"
	"github.com/rafaelduarte/gestor-compras/pkg/middleware"
)

// RegisterFinanceRoutes registra as rotas de custos diversos e de lucro
func RegisterFinanceRoutes(r *gin.RouterGroup, financeController *controller.FinanceController) {
	custos := r.Group("/custos")
	custos.Use(middleware.AuthMiddleware())
	{
		custos.POST("", financeController.CreateCusto)
		custos.GET("", financeController.ListCustos)
		custos.PUT("/:id", financeController.UpdateCusto)
		custos.DELETE("/:id", financeController.DeleteCusto)
	}

	lucro := r.Group("/lucro")
	lucro.Use(middleware.AuthMiddleware())
	{
		lucro.GET("/resumo", financeController.GetResumoLucro)
		lucro.POST("/fechamentos", financeController.CreateFechamento)
		lucro.GET("/fechamentos", financeController.ListFechamentos)
		lucro.DELETE("/fechamentos/:id", middleware.AdminOnly(), financeController.DeleteFechamento)
	}
}
