package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/adapter/repository"
	"github.com/rafaelduarte/gestor-compras/internal/domain/image"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
	"github.com/rafaelduarte/gestor-compras/pkg/storage"
)

// ImageController gerencia as imagens de produto, compartilhadas por
// código de item entre todos os pedidos
type ImageController struct {
	imageRepo image.Repository
	files     *storage.FileStorage
	logger    logger.Logger
}

// NewImageController cria uma nova instância de ImageController
func NewImageController(imageRepo image.Repository, files *storage.FileStorage, logger logger.Logger) *ImageController {
	return &ImageController{
		imageRepo: imageRepo,
		files:     files,
		logger:    logger,
	}
}

func imageURL(codigoItem string) string {
	return fmt.Sprintf("/api/v1/imagens/%s/arquivo", codigoItem)
}

// Upload grava ou substitui a imagem de um código de item
// @Summary Enviar imagem de item
// @Description Grava a imagem do código de item; um novo envio substitui o anterior em todos os pedidos
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param codigo path string true "Código do item"
// @Param arquivo formData file true "Imagem"
// @Success 201 {object} dto.ItemImageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /imagens/{codigo} [post]
func (c *ImageController) Upload(ctx *gin.Context) {
	codigo := ctx.Param("codigo")

	fileHeader, err := ctx.FormFile("arquivo")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "arquivo não enviado", err.Error()))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao ler arquivo", err.Error()))
		return
	}
	defer f.Close()

	path, err := c.files.Save("imagens", fileHeader.Filename, f)
	if err != nil {
		c.logger.Error("erro ao gravar imagem", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gravar imagem", err.Error()))
		return
	}

	// substitui o arquivo anterior, se existir
	if anterior, err := c.imageRepo.FindByCodigo(ctx, codigo); err == nil {
		if err := c.files.Remove(anterior.ArquivoPath); err != nil {
			c.logger.Warn("falha ao remover imagem anterior", "path", anterior.ArquivoPath, "error", err)
		}
	}

	img, err := image.NewItemImage(codigo, fileHeader.Filename, path)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "imagem inválida", err.Error()))
		return
	}

	if err := c.imageRepo.Upsert(ctx, img); err != nil {
		c.logger.Error("erro ao salvar imagem", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar imagem", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToItemImageResponse(img, imageURL(codigo)))
}

// Get retorna os metadados da imagem de um código de item
// @Summary Buscar imagem de item
// @Tags images
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param codigo path string true "Código do item"
// @Success 200 {object} dto.ItemImageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /imagens/{codigo} [get]
func (c *ImageController) Get(ctx *gin.Context) {
	codigo := ctx.Param("codigo")

	img, err := c.imageRepo.FindByCodigo(ctx, codigo)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "imagem não encontrada", codigo))
			return
		}
		c.logger.Error("erro ao buscar imagem", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar imagem", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToItemImageResponse(img, imageURL(codigo)))
}

// GetArquivo devolve o arquivo da imagem
// @Summary Baixar imagem de item
// @Tags images
// @Produce octet-stream
// @Param Authorization header string true "Bearer token"
// @Param codigo path string true "Código do item"
// @Success 200 {file} binary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /imagens/{codigo}/arquivo [get]
func (c *ImageController) GetArquivo(ctx *gin.Context) {
	codigo := ctx.Param("codigo")

	img, err := c.imageRepo.FindByCodigo(ctx, codigo)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "imagem não encontrada", codigo))
			return
		}
		c.logger.Error("erro ao buscar imagem", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar imagem", err.Error()))
		return
	}

	ctx.File(img.ArquivoPath)
}

// Presenca consulta em lote quais códigos de item têm imagem
// @Summary Presença de imagens
// @Description Retorna, para cada código consultado, se existe imagem cadastrada
// @Tags images
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param codigos body dto.ImagensPresencaRequest true "Códigos de item"
// @Success 200 {object} dto.ImagensPresencaResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /imagens/presenca [post]
func (c *ImageController) Presenca(ctx *gin.Context) {
	var req dto.ImagensPresencaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	existentes, err := c.imageRepo.ListByCodigos(ctx, req.Codigos)
	if err != nil {
		c.logger.Error("erro ao consultar imagens", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao consultar imagens", err.Error()))
		return
	}

	presenca := make(map[string]bool, len(req.Codigos))
	for _, codigo := range req.Codigos {
		_, ok := existentes[codigo]
		presenca[codigo] = ok
	}

	ctx.JSON(http.StatusOK, dto.ImagensPresencaResponse{Presenca: presenca})
}

// Delete remove a imagem de um código de item
// @Summary Excluir imagem de item
// @Tags images
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param codigo path string true "Código do item"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /imagens/{codigo} [delete]
func (c *ImageController) Delete(ctx *gin.Context) {
	codigo := ctx.Param("codigo")

	img, err := c.imageRepo.FindByCodigo(ctx, codigo)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "imagem não encontrada", codigo))
			return
		}
		c.logger.Error("erro ao buscar imagem", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar imagem", err.Error()))
		return
	}

	if err := c.imageRepo.Delete(ctx, codigo); err != nil {
		c.logger.Error("erro ao excluir imagem", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir imagem", err.Error()))
		return
	}

	if err := c.files.Remove(img.ArquivoPath); err != nil {
		c.logger.Warn("falha ao remover arquivo de imagem", "path", img.ArquivoPath, "error", err)
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("imagem excluída com sucesso", nil))
}
