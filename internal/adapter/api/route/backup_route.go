package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/controller"
	"github.com/rafaelduarte/gestor-compras/pkg/middleware"
)

// RegisterBackupRoutes registra as rotas de backup. A restauração substitui
// todos os dados e por isso fica restrita a administradores.
func RegisterBackupRoutes(r *gin.RouterGroup, backupController *controller.BackupController) {
	bkp := r.Group("/backup")
	bkp.Use(middleware.AuthMiddleware())
	{
		bkp.GET("", backupController.Export)
		bkp.POST("/restaurar", middleware.AdminOnly(), backupController.Restore)
	}
}
