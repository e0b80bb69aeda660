package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/adapter/repository"
	"github.com/rafaelduarte/gestor-compras/internal/domain/stock"
	"github.com/rafaelduarte/gestor-compras/internal/infrastructure/cache"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
)

// estoqueCacheTTL limita por quanto tempo a visão agregada vale sem
// recomputar; mutações invalidam antes disso
const estoqueCacheTTL = 5 * time.Minute

// StockController gerencia as requisições de estoque
type StockController struct {
	stockRepo    stock.Repository
	estoqueCache cache.EstoqueCache
	logger       logger.Logger
}

// NewStockController cria uma nova instância de StockController
func NewStockController(stockRepo stock.Repository, estoqueCache cache.EstoqueCache, logger logger.Logger) *StockController {
	return &StockController{
		stockRepo:    stockRepo,
		estoqueCache: estoqueCache,
		logger:       logger,
	}
}

// List retorna a visão agregada de estoque
// @Summary Listar estoque
// @Description Retorna o estoque agregado por código de item: excedentes dos pedidos mais entradas manuais, menos consumos
// @Tags stock
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.EstoqueListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /estoque [get]
func (c *StockController) List(ctx *gin.Context) {
	itens, ok, err := c.estoqueCache.Get(ctx)
	if err != nil {
		c.logger.Warn("falha ao ler cache de estoque", "error", err)
	}

	if !ok {
		itens, err = c.stockRepo.ListEstoque(ctx)
		if err != nil {
			c.logger.Error("erro ao calcular estoque", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar estoque", err.Error()))
			return
		}

		if err := c.estoqueCache.Set(ctx, itens, estoqueCacheTTL); err != nil {
			c.logger.Warn("falha ao gravar cache de estoque", "error", err)
		}
	}

	ctx.JSON(http.StatusOK, dto.ToEstoqueListResponse(itens))
}

// Ajustar define manualmente a quantidade comprada de um item de pedido
// @Summary Ajustar quantidade comprada
// @Description Define a quantidade comprada do item, recalculando o excedente; não altera a quantidade necessária
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param ajuste body dto.AjusteEstoqueRequest true "Ajuste"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /estoque/ajustar [post]
func (c *StockController) Ajustar(ctx *gin.Context) {
	var req dto.AjusteEstoqueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	err := c.stockRepo.AjustarQuantidadeComprada(ctx, req.OrderID, req.ItemIndex, decimal.NewFromFloat(req.NovaQuantidade))
	if err != nil {
		c.respondAjusteError(ctx, err)
		return
	}

	c.invalidateEstoque(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("quantidade comprada ajustada", nil))
}

// Limpar zera o excedente de um item de pedido
// @Summary Limpar estoque de item
// @Description Iguala a quantidade comprada à necessária, zerando o excedente do item
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param item body dto.LimparEstoqueRequest true "Item"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /estoque/limpar [post]
func (c *StockController) Limpar(ctx *gin.Context) {
	var req dto.LimparEstoqueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if err := c.stockRepo.LimparEstoque(ctx, req.OrderID, req.ItemIndex); err != nil {
		c.respondAjusteError(ctx, err)
		return
	}

	c.invalidateEstoque(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("estoque do item zerado", nil))
}

// CreateEntradaManual registra uma entrada manual de estoque
// @Summary Criar entrada manual
// @Description Registra uma linha de estoque sem origem em pedido
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param entrada body dto.EntradaManualRequest true "Entrada manual"
// @Success 201 {object} dto.EntradaManualResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /estoque/manual [post]
func (c *StockController) CreateEntradaManual(ctx *gin.Context) {
	var req dto.EntradaManualRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	entrada, err := stock.NewEntradaManual(req.CodigoItem, req.Descricao, req.Unidade, decimal.NewFromFloat(req.Quantidade), req.Observacao)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "entrada inválida", err.Error()))
		return
	}

	if err := c.stockRepo.CreateEntradaManual(ctx, entrada); err != nil {
		c.logger.Error("erro ao criar entrada manual", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar entrada manual", err.Error()))
		return
	}

	c.invalidateEstoque(ctx)
	ctx.JSON(http.StatusCreated, dto.ToEntradaManualResponse(entrada))
}

// ListEntradasManuais lista as entradas manuais de estoque
// @Summary Listar entradas manuais
// @Tags stock
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} dto.EntradaManualResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /estoque/manual [get]
func (c *StockController) ListEntradasManuais(ctx *gin.Context) {
	entradas, err := c.stockRepo.ListEntradasManuais(ctx)
	if err != nil {
		c.logger.Error("erro ao listar entradas manuais", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar entradas manuais", err.Error()))
		return
	}

	responses := make([]*dto.EntradaManualResponse, len(entradas))
	for i, e := range entradas {
		responses[i] = dto.ToEntradaManualResponse(e)
	}
	ctx.JSON(http.StatusOK, responses)
}

// DeleteEntradaManual remove uma entrada manual de estoque
// @Summary Excluir entrada manual
// @Tags stock
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da entrada"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /estoque/manual/{id} [delete]
func (c *StockController) DeleteEntradaManual(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.stockRepo.DeleteEntradaManual(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEntradaManualNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "entrada não encontrada", id))
			return
		}
		c.logger.Error("erro ao excluir entrada manual", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir entrada manual", err.Error()))
		return
	}

	c.invalidateEstoque(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("entrada manual excluída", nil))
}

// CreateConsumo registra o consumo de excedente em uma OC de destino
// @Summary Registrar consumo de estoque
// @Description Grava uma linha de auditoria de consumo; as quantidades dos itens de origem não são alteradas
// @Tags stock
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param consumo body dto.ConsumoRequest true "Consumo"
// @Success 201 {object} dto.ConsumoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /estoque/consumos [post]
func (c *StockController) CreateConsumo(ctx *gin.Context) {
	var req dto.ConsumoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	consumo, err := stock.NewConsumo(req.CodigoItem, req.OCDestino, decimal.NewFromFloat(req.Quantidade))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "consumo inválido", err.Error()))
		return
	}

	if err := c.stockRepo.CreateConsumo(ctx, consumo); err != nil {
		c.logger.Error("erro ao registrar consumo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao registrar consumo", err.Error()))
		return
	}

	c.invalidateEstoque(ctx)
	ctx.JSON(http.StatusCreated, dto.ToConsumoResponse(consumo))
}

// ListConsumos lista os consumos registrados
// @Summary Listar consumos de estoque
// @Tags stock
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param codigo_item query string false "Filtrar por código de item"
// @Success 200 {array} dto.ConsumoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /estoque/consumos [get]
func (c *StockController) ListConsumos(ctx *gin.Context) {
	consumos, err := c.stockRepo.ListConsumos(ctx, ctx.Query("codigo_item"))
	if err != nil {
		c.logger.Error("erro ao listar consumos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar consumos", err.Error()))
		return
	}

	responses := make([]*dto.ConsumoResponse, len(consumos))
	for i, cons := range consumos {
		responses[i] = dto.ToConsumoResponse(cons)
	}
	ctx.JSON(http.StatusOK, responses)
}

func (c *StockController) invalidateEstoque(ctx *gin.Context) {
	if err := c.estoqueCache.Invalidate(ctx); err != nil {
		c.logger.Warn("falha ao invalidar cache de estoque", "error", err)
	}
}

func (c *StockController) respondAjusteError(ctx *gin.Context, err error) {
	if errors.Is(err, repository.ErrOrderNotFound) {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "pedido não encontrado", err.Error()))
		return
	}
	if errors.Is(err, repository.ErrOrderItemNotFound) {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "item não encontrado", err.Error()))
		return
	}
	c.logger.Error("erro ao ajustar estoque", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao ajustar estoque", err.Error()))
}
