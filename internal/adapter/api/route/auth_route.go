package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/controller"
	"github.com/rafaelduarte/gestor-compras/pkg/middleware"
)

// RegisterAuthRoutes registra as rotas do módulo de autenticação
func RegisterAuthRoutes(r *gin.RouterGroup, authController *controller.AuthController) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", middleware.AuthMiddleware(), authController.Refresh)
		auth.GET("/me", middleware.AuthMiddleware(), authController.Me)
	}
}
