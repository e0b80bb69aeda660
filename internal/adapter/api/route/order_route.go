package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/controller"
	"github.com/rafaelduarte/gestor-compras/pkg/middleware"
)

// RegisterOrderRoutes registra as rotas do módulo de pedidos de compra
func RegisterOrderRoutes(r *gin.RouterGroup, orderController *controller.OrderController) {
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.POST("", orderController.Create)
		orders.GET("", orderController.List)
		orders.GET("/itens-agrupados", orderController.ListItensAgrupados)
		orders.GET("/:id", orderController.Get)
		orders.PUT("/:id", orderController.Update)
		orders.PUT("/:id/items", orderController.ReplaceItems)
		orders.PATCH("/:id/items/:index", orderController.PatchItem)
		orders.PATCH("/:id/items/:index/status", orderController.PatchItemStatus)
		orders.POST("/:id/items/:index/fontes", orderController.AddFonte)
		orders.PUT("/:id/items/:index/fontes/:fonteId", orderController.UpdateFonte)
		orders.DELETE("/:id/items/:index/fontes/:fonteId", orderController.RemoveFonte)
		orders.DELETE("/:id", middleware.AdminOnly(), orderController.Delete)
		orders.POST("/bulk-delete", middleware.AdminOnly(), orderController.BulkDelete)
	}
}
