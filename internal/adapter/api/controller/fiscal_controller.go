package controller

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/adapter/repository"
	"github.com/rafaelduarte/gestor-compras/internal/domain/fiscal"
	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
	"github.com/rafaelduarte/gestor-compras/pkg/storage"
)

// FiscalController gerencia as requisições de notas fiscais
type FiscalController struct {
	fiscalRepo fiscal.Repository
	orderRepo  order.Repository
	files      *storage.FileStorage
	logger     logger.Logger
}

// NewFiscalController cria uma nova instância de FiscalController
func NewFiscalController(fiscalRepo fiscal.Repository, orderRepo order.Repository, files *storage.FileStorage, logger logger.Logger) *FiscalController {
	return &FiscalController{
		fiscalRepo: fiscalRepo,
		orderRepo:  orderRepo,
		files:      files,
		logger:     logger,
	}
}

// Upload registra uma nota fiscal com seu arquivo
// @Summary Enviar nota fiscal
// @Description Registra uma NF vinculada a um item de pedido e grava o arquivo enviado
// @Tags fiscal
// @Accept multipart/form-data
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param order_id formData string true "ID do pedido"
// @Param item_index formData int true "Índice do item"
// @Param tipo formData string true "Tipo da NF (compra ou venda)"
// @Param numero_nf formData string true "Número da NF"
// @Param arquivo formData file false "Arquivo da NF"
// @Success 201 {object} dto.NotaFiscalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notas [post]
func (c *FiscalController) Upload(ctx *gin.Context) {
	var req dto.NotaFiscalRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	po, err := c.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "pedido não encontrado", req.OrderID))
			return
		}
		c.logger.Error("erro ao buscar pedido", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao registrar nota", err.Error()))
		return
	}
	if _, err := po.ItemAt(req.ItemIndex); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "item não encontrado", strconv.Itoa(req.ItemIndex)))
		return
	}

	nf, err := fiscal.NewNotaFiscal(req.OrderID, req.ItemIndex, fiscal.TipoNF(req.Tipo), req.NumeroNF)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "nota inválida", err.Error()))
		return
	}

	if fileHeader, err := ctx.FormFile("arquivo"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao ler arquivo", err.Error()))
			return
		}
		defer f.Close()

		path, err := c.files.Save("notas", fileHeader.Filename, f)
		if err != nil {
			c.logger.Error("erro ao gravar arquivo de nota", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gravar arquivo", err.Error()))
			return
		}
		nf.ArquivoNome = fileHeader.Filename
		nf.ArquivoPath = path
	}

	if err := c.fiscalRepo.Create(ctx, nf); err != nil {
		c.logger.Error("erro ao registrar nota", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao registrar nota", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToNotaFiscalResponse(nf, false))
}

// List lista as notas fiscais com as duplicidades marcadas
// @Summary Listar notas fiscais
// @Description Lista todas as notas, ou as de um pedido/item, com os números de NF repetidos entre itens distintos marcados
// @Tags fiscal
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param order_id query string false "Filtrar por pedido"
// @Param item_index query int false "Filtrar por índice de item (requer order_id)"
// @Success 200 {object} dto.NotaFiscalListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notas [get]
func (c *FiscalController) List(ctx *gin.Context) {
	var notas []*fiscal.NotaFiscal
	var err error

	if orderID := ctx.Query("order_id"); orderID != "" {
		itemIndex := -1
		if raw := ctx.Query("item_index"); raw != "" {
			itemIndex, err = strconv.Atoi(raw)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "índice inválido", raw))
				return
			}
		}
		notas, err = c.fiscalRepo.ListByOrder(ctx, orderID, itemIndex)
	} else {
		notas, err = c.fiscalRepo.ListAll(ctx)
	}
	if err != nil {
		c.logger.Error("erro ao listar notas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar notas", err.Error()))
		return
	}

	// a duplicidade é informada com o número da OC de cada referência
	numerosOC := make(map[string]string)
	for _, nf := range notas {
		if _, ok := numerosOC[nf.OrderID]; ok {
			continue
		}
		po, err := c.orderRepo.FindByID(ctx, nf.OrderID)
		if err != nil {
			numerosOC[nf.OrderID] = ""
			continue
		}
		numerosOC[nf.OrderID] = po.NumeroOC
	}

	ctx.JSON(http.StatusOK, dto.ToNotaFiscalListResponse(notas, numerosOC))
}

// Download devolve o arquivo de uma nota fiscal
// @Summary Baixar arquivo da nota
// @Tags fiscal
// @Produce octet-stream
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da nota"
// @Success 200 {file} binary
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /notas/{id}/arquivo [get]
func (c *FiscalController) Download(ctx *gin.Context) {
	nf, ok := c.findNota(ctx)
	if !ok {
		return
	}
	if nf.ArquivoPath == "" {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "nota sem arquivo", nf.ID))
		return
	}

	ctx.FileAttachment(nf.ArquivoPath, nf.ArquivoNome)
}

// BulkDownload devolve as notas selecionadas em um único arquivo zip
// @Summary Baixar notas em lote
// @Description Monta um zip com os arquivos das notas selecionadas; arquivos ausentes são listados no manifesto, sem abortar o download
// @Tags fiscal
// @Accept json
// @Produce application/zip
// @Param Authorization header string true "Bearer token"
// @Param ids body dto.NotasDownloadRequest true "IDs das notas"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notas/download [post]
func (c *FiscalController) BulkDownload(ctx *gin.Context) {
	var req dto.NotasDownloadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	notas, err := c.fiscalRepo.FindByIDs(ctx, req.IDs)
	if err != nil {
		c.logger.Error("erro ao buscar notas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar notas", err.Error()))
		return
	}
	if len(notas) == 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "nenhuma nota encontrada para a seleção", ""))
		return
	}

	ctx.Header("Content-Type", "application/zip")
	ctx.Header("Content-Disposition", `attachment; filename="notas-fiscais.zip"`)

	zw := zip.NewWriter(ctx.Writer)
	defer zw.Close()

	ausentes := make([]string, 0)
	for _, nf := range notas {
		if nf.ArquivoPath == "" {
			ausentes = append(ausentes, nf.NumeroNF)
			continue
		}

		f, err := c.files.Open(nf.ArquivoPath)
		if err != nil {
			c.logger.Warn("arquivo de nota ausente", "id", nf.ID, "path", nf.ArquivoPath)
			ausentes = append(ausentes, nf.NumeroNF)
			continue
		}

		entry, err := zw.Create(fmt.Sprintf("%s_%s_%s", nf.NumeroNF, nf.Tipo, nf.ArquivoNome))
		if err == nil {
			_, err = io.Copy(entry, f)
		}
		f.Close()
		if err != nil {
			c.logger.Error("erro ao montar zip de notas", "error", err)
			return
		}
	}

	if len(ausentes) > 0 {
		entry, err := zw.Create("AUSENTES.txt")
		if err != nil {
			return
		}
		for _, numero := range ausentes {
			fmt.Fprintf(entry, "NF %s sem arquivo disponível\n", numero)
		}
	}
}

// Delete remove uma nota fiscal e seu arquivo
// @Summary Excluir nota fiscal
// @Tags fiscal
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da nota"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notas/{id} [delete]
func (c *FiscalController) Delete(ctx *gin.Context) {
	nf, ok := c.findNota(ctx)
	if !ok {
		return
	}

	if err := c.fiscalRepo.Delete(ctx, nf.ID); err != nil {
		c.logger.Error("erro ao excluir nota", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir nota", err.Error()))
		return
	}

	if err := c.files.Remove(nf.ArquivoPath); err != nil {
		c.logger.Warn("falha ao remover arquivo de nota", "path", nf.ArquivoPath, "error", err)
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("nota excluída com sucesso", nil))
}

func (c *FiscalController) findNota(ctx *gin.Context) (*fiscal.NotaFiscal, bool) {
	id := ctx.Param("id")

	nf, err := c.fiscalRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotaFiscalNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "nota não encontrada", id))
			return nil, false
		}
		c.logger.Error("erro ao buscar nota", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar nota", err.Error()))
		return nil, false
	}

	return nf, true
}
