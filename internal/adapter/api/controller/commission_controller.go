package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/adapter/repository"
	"github.com/rafaelduarte/gestor-compras/internal/domain/commission"
	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
)

// CommissionController gerencia as requisições de comissões
type CommissionController struct {
	commissionRepo commission.Repository
	orderRepo      order.Repository
	logger         logger.Logger
}

// NewCommissionController cria uma nova instância de CommissionController
func NewCommissionController(commissionRepo commission.Repository, orderRepo order.Repository, logger logger.Logger) *CommissionController {
	return &CommissionController{
		commissionRepo: commissionRepo,
		orderRepo:      orderRepo,
		logger:         logger,
	}
}

// ListResponsaveis lista os responsáveis presentes nos itens dos pedidos
// @Summary Listar responsáveis
// @Description Retorna os responsáveis distintos encontrados nos itens de todos os pedidos
// @Tags commissions
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} string
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /comissoes/responsaveis [get]
func (c *CommissionController) ListResponsaveis(ctx *gin.Context) {
	responsaveis, err := c.commissionRepo.ListResponsaveis(ctx)
	if err != nil {
		c.logger.Error("erro ao listar responsáveis", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar responsáveis", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, responsaveis)
}

// ListItensElegiveis lista os itens elegíveis para comissão de um responsável
// @Summary Itens elegíveis para comissão
// @Description Retorna os itens em trânsito ou entregues, ainda não pagos, do responsável, com a prévia do valor de comissão
// @Tags commissions
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param responsavel query string true "Nome do responsável"
// @Success 200 {object} dto.ItensElegiveisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /comissoes/elegiveis [get]
func (c *CommissionController) ListItensElegiveis(ctx *gin.Context) {
	responsavel := ctx.Query("responsavel")
	if responsavel == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "responsável não informado", ""))
		return
	}

	infos, err := c.commissionRepo.ListItensElegiveis(ctx, responsavel)
	if err != nil {
		c.logger.Error("erro ao listar itens elegíveis", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar itens elegíveis", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToItensElegiveisResponse(responsavel, infos))
}

// Create registra um pagamento de comissão
// @Summary Registrar pagamento de comissão
// @Description Marca os itens selecionados como pagos e grava o pagamento com o valor congelado, em uma única transação
// @Tags commissions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param pagamento body dto.PagamentoRequest true "Seleção de itens"
// @Success 201 {object} dto.PagamentoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /comissoes/pagamentos [post]
func (c *CommissionController) Create(ctx *gin.Context) {
	var req dto.PagamentoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "seleção de itens não pode ser vazia", err.Error()))
		return
	}

	refs := req.ToItemRefs()

	// congela o total de venda dos itens no momento do pagamento
	itens := make([]*order.OrderItem, 0, len(refs))
	for _, ref := range refs {
		po, err := c.orderRepo.FindByID(ctx, ref.OrderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "pedido da seleção não encontrado", ref.OrderID))
				return
			}
			c.logger.Error("erro ao buscar pedido da seleção", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao registrar pagamento", err.Error()))
			return
		}

		item, err := po.ItemAt(ref.ItemIndex)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "item da seleção não encontrado", strconv.Itoa(ref.ItemIndex)))
			return
		}
		if !commission.ItemElegivel(item, req.Responsavel) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "item não elegível para comissão", item.CodigoItem))
			return
		}
		itens = append(itens, item)
	}

	pagamento, err := commission.NewPagamento(req.Responsavel, refs, commission.TotalVendaSelecao(itens))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar pagamento", err.Error()))
		return
	}

	if err := c.commissionRepo.Create(ctx, pagamento); err != nil {
		c.logger.Error("erro ao registrar pagamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao registrar pagamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPagamentoResponse(pagamento))
}

// List lista os pagamentos registrados
// @Summary Listar pagamentos de comissão
// @Description Lista os pagamentos, mais recentes primeiro, com filtro por responsável
// @Tags commissions
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página"
// @Param size query int false "Itens por página"
// @Param responsavel query string false "Filtrar por responsável"
// @Success 200 {object} dto.PagamentoListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /comissoes/pagamentos [get]
func (c *CommissionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)
	responsavel := ctx.Query("responsavel")

	total, err := c.commissionRepo.Count(ctx, responsavel)
	if err != nil {
		c.logger.Error("erro ao contar pagamentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar pagamentos", err.Error()))
		return
	}

	pagination.Page = dto.ClampPage(pagination.Page, dto.CalculateTotalPages(total, pagination.PageSize))
	offset := (pagination.Page - 1) * pagination.PageSize

	pagamentos, err := c.commissionRepo.List(ctx, responsavel, pagination.PageSize, offset)
	if err != nil {
		c.logger.Error("erro ao listar pagamentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar pagamentos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPagamentoListResponse(pagamentos, total, pagination.Page, pagination.PageSize))
}

// UpdateValor ajusta manualmente o valor de um pagamento
// @Summary Ajustar valor de pagamento
// @Description Altera apenas o valor da comissão, sem revalidar contra os preços atuais
// @Tags commissions
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pagamento"
// @Param valor body dto.PagamentoUpdateRequest true "Novo valor"
// @Success 200 {object} dto.PagamentoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /comissoes/pagamentos/{id} [patch]
func (c *CommissionController) UpdateValor(ctx *gin.Context) {
	var req dto.PagamentoUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	id := ctx.Param("id")
	if err := c.commissionRepo.UpdateValor(ctx, id, decimal.NewFromFloat(req.ValorComissao)); err != nil {
		if errors.Is(err, repository.ErrPagamentoNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "pagamento não encontrado", id))
			return
		}
		c.logger.Error("erro ao ajustar pagamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao ajustar pagamento", err.Error()))
		return
	}

	pagamento, err := c.commissionRepo.FindByID(ctx, id)
	if err != nil {
		c.logger.Error("erro ao buscar pagamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar pagamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPagamentoResponse(pagamento))
}

// Delete remove um pagamento e reverte a marca de pago dos itens
// @Summary Excluir pagamento de comissão
// @Description Remove o pagamento e devolve os itens referenciados à elegibilidade, em uma única transação
// @Tags commissions
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pagamento"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /comissoes/pagamentos/{id} [delete]
func (c *CommissionController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.commissionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPagamentoNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "pagamento não encontrado", id))
			return
		}
		c.logger.Error("erro ao excluir pagamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir pagamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("pagamento excluído com sucesso", nil))
}
