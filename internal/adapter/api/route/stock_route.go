package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/controller"
	"github.com/rafaelduarte/gestor-compras/pkg/middleware"
)

// RegisterStockRoutes registra as rotas do módulo de estoque
func RegisterStockRoutes(r *gin.RouterGroup, stockController *controller.StockController) {
	estoque := r.Group("/estoque")
	estoque.Use(middleware.AuthMiddleware())
	{
		estoque.GET("", stockController.List)
		estoque.POST("/ajustar", stockController.Ajustar)
		estoque.POST("/limpar", stockController.Limpar)
		estoque.POST("/manual", stockController.CreateEntradaManual)
		estoque.GET("/manual", stockController.ListEntradasManuais)
		estoque.DELETE("/manual/:id", stockController.DeleteEntradaManual)
		estoque.POST("/consumos", stockController.CreateConsumo)
		estoque.GET("/consumos", stockController.ListConsumos)
	}
}
