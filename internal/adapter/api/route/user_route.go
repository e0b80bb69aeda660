package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/controller"
	"github.com/rafaelduarte/gestor-compras/pkg/middleware"
)

// RegisterUserRoutes registra as rotas de gerenciamento de usuários,
// todas restritas a administradores
func RegisterUserRoutes(r *gin.RouterGroup, userController *controller.UserController) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		users.POST("", userController.Create)
		users.GET("", userController.List)
		users.PUT("/:id", userController.Update)
		users.DELETE("/:id", userController.Delete)
	}
}
