package route

import (
	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/controller"
	"github.com/rafaelduarte/gestor-compras/pkg/middleware"
)

// RegisterImageRoutes registra as rotas de imagens de itens
func RegisterImageRoutes(r *gin.RouterGroup, imageController *controller.ImageController) {
	imagens := r.Group("/imagens")
	imagens.Use(middleware.AuthMiddleware())
	{
		imagens.POST("/presenca", imageController.Presenca)
		imagens.POST("/:codigo", imageController.Upload)
		imagens.GET("/:codigo", imageController.Get)
		imagens.GET("/:codigo/arquivo", imageController.GetArquivo)
		imagens.DELETE("/:codigo", imageController.Delete)
	}
}
