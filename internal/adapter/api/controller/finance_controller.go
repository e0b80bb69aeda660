package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/adapter/repository"
	"github.com/rafaelduarte/gestor-compras/internal/domain/finance"
	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
)

// FinanceController gerencia custos diversos, resumo de lucro e fechamentos
type FinanceController struct {
	financeRepo finance.Repository
	orderRepo   order.Repository
	logger      logger.Logger
}

// NewFinanceController cria uma nova instância de FinanceController
func NewFinanceController(financeRepo finance.Repository, orderRepo order.Repository, logger logger.Logger) *FinanceController {
	return &FinanceController{
		financeRepo: financeRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// CreateCusto registra um custo diverso
// @Summary Criar custo diverso
// @Tags finance
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param custo body dto.CustoDiversoRequest true "Dados do custo"
// @Success 201 {object} dto.CustoDiversoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /custos [post]
func (c *FinanceController) CreateCusto(ctx *gin.Context) {
	var req dto.CustoDiversoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	data := time.Time{}
	if req.Data != nil {
		data = *req.Data
	}

	custo, err := finance.NewCustoDiverso(req.Descricao, decimal.NewFromFloat(req.Valor), req.Categoria, data)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "custo inválido", err.Error()))
		return
	}

	if err := c.financeRepo.CreateCusto(ctx, custo); err != nil {
		c.logger.Error("erro ao criar custo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar custo", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCustoDiversoResponse(custo))
}

// ListCustos lista os custos diversos
// @Summary Listar custos diversos
// @Tags finance
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página"
// @Param size query int false "Itens por página"
// @Param categoria query string false "Filtrar por categoria"
// @Success 200 {object} dto.CustoDiversoListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /custos [get]
func (c *FinanceController) ListCustos(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)
	categoria := ctx.Query("categoria")

	total, err := c.financeRepo.CountCustos(ctx, categoria)
	if err != nil {
		c.logger.Error("erro ao contar custos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar custos", err.Error()))
		return
	}

	pagination.Page = dto.ClampPage(pagination.Page, dto.CalculateTotalPages(total, pagination.PageSize))
	offset := (pagination.Page - 1) * pagination.PageSize

	custos, err := c.financeRepo.ListCustos(ctx, categoria, pagination.PageSize, offset)
	if err != nil {
		c.logger.Error("erro ao listar custos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar custos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustoDiversoListResponse(custos, total, pagination.Page, pagination.PageSize))
}

// UpdateCusto atualiza um custo diverso
// @Summary Atualizar custo diverso
// @Tags finance
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do custo"
// @Param custo body dto.CustoDiversoRequest true "Dados do custo"
// @Success 200 {object} dto.CustoDiversoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /custos/{id} [put]
func (c *FinanceController) UpdateCusto(ctx *gin.Context) {
	var req dto.CustoDiversoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	data := time.Now()
	if req.Data != nil {
		data = *req.Data
	}

	custo := &finance.CustoDiverso{
		ID:        ctx.Param("id"),
		Descricao: req.Descricao,
		Valor:     decimal.NewFromFloat(req.Valor),
		Categoria: req.Categoria,
		Data:      data,
	}

	if err := c.financeRepo.UpdateCusto(ctx, custo); err != nil {
		if errors.Is(err, repository.ErrCustoNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "custo não encontrado", custo.ID))
			return
		}
		c.logger.Error("erro ao atualizar custo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar custo", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustoDiversoResponse(custo))
}

// DeleteCusto remove um custo diverso
// @Summary Excluir custo diverso
// @Tags finance
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do custo"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /custos/{id} [delete]
func (c *FinanceController) DeleteCusto(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.financeRepo.DeleteCusto(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCustoNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "custo não encontrado", id))
			return
		}
		c.logger.Error("erro ao excluir custo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir custo", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("custo excluído com sucesso", nil))
}

// GetResumoLucro calcula o sumário de lucro atual
// @Summary Resumo de lucro
// @Description Soma o lucro líquido dos itens comprados de todos os pedidos e subtrai os custos diversos, com a quebra por responsável
// @Tags finance
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.ResumoLucroResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /lucro/resumo [get]
func (c *FinanceController) GetResumoLucro(ctx *gin.Context) {
	resumo, ok := c.calcularResumo(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToResumoLucroResponse(resumo))
}

// CreateFechamento arquiva o resumo de lucro atual
// @Summary Marcar lucro como pago
// @Description Congela o resumo de lucro atual em um fechamento; alterações posteriores nos dados não afetam a cópia arquivada
// @Tags finance
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param fechamento body dto.FechamentoRequest true "Observação"
// @Success 201 {object} dto.FechamentoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /lucro/fechamentos [post]
func (c *FinanceController) CreateFechamento(ctx *gin.Context) {
	var req dto.FechamentoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	resumo, ok := c.calcularResumo(ctx)
	if !ok {
		return
	}

	fechamento := finance.NewFechamentoLucro(*resumo, req.Observacao)
	if err := c.financeRepo.CreateFechamento(ctx, fechamento); err != nil {
		c.logger.Error("erro ao criar fechamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar fechamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToFechamentoResponse(fechamento))
}

// ListFechamentos lista os fechamentos arquivados
// @Summary Listar fechamentos
// @Tags finance
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.FechamentoListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /lucro/fechamentos [get]
func (c *FinanceController) ListFechamentos(ctx *gin.Context) {
	fechamentos, err := c.financeRepo.ListFechamentos(ctx, 100, 0)
	if err != nil {
		c.logger.Error("erro ao listar fechamentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar fechamentos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFechamentoListResponse(fechamentos))
}

// DeleteFechamento remove um fechamento arquivado
// @Summary Excluir fechamento
// @Tags finance
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do fechamento"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /lucro/fechamentos/{id} [delete]
func (c *FinanceController) DeleteFechamento(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.financeRepo.DeleteFechamento(ctx, id); err != nil {
		if errors.Is(err, repository.ErrFechamentoNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "fechamento não encontrado", id))
			return
		}
		c.logger.Error("erro ao excluir fechamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir fechamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("fechamento excluído com sucesso", nil))
}

func (c *FinanceController) calcularResumo(ctx *gin.Context) (*finance.ResumoLucro, bool) {
	pedidos, err := c.orderRepo.ListAll(ctx)
	if err != nil {
		c.logger.Error("erro ao listar pedidos para o resumo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao calcular resumo", err.Error()))
		return nil, false
	}

	custos, err := c.financeRepo.SumCustos(ctx, time.Time{}, time.Time{})
	if err != nil {
		c.logger.Error("erro ao somar custos para o resumo", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao calcular resumo", err.Error()))
		return nil, false
	}

	return finance.CalcularResumo(pedidos, custos), true
}
