package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/adapter/repository"
	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
	"github.com/rafaelduarte/gestor-compras/internal/infrastructure/cache"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
)

// OrderController gerencia as requisições relacionadas a pedidos de compra
type OrderController struct {
	orderRepo    order.Repository
	estoqueCache cache.EstoqueCache
	logger       logger.Logger
}

// NewOrderController cria uma nova instância de OrderController
func NewOrderController(orderRepo order.Repository, estoqueCache cache.EstoqueCache, logger logger.Logger) *OrderController {
	return &OrderController{
		orderRepo:    orderRepo,
		estoqueCache: estoqueCache,
		logger:       logger,
	}
}

// invalidateEstoque descarta a visão agregada de estoque após qualquer
// mutação de pedido
func (c *OrderController) invalidateEstoque(ctx *gin.Context) {
	if err := c.estoqueCache.Invalidate(ctx); err != nil {
		c.logger.Warn("falha ao invalidar cache de estoque", "error", err)
	}
}

// Create cria um novo pedido de compra
// @Summary Criar pedido de compra
// @Description Cria uma nova OC com sua lista de itens
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param order body dto.OrderRequest true "Dados do pedido"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	var req dto.OrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	po, err := order.NewPurchaseOrder(req.NumeroOC, req.Cliente, req.EnderecoEntrega, req.DataEntrega)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar pedido", err.Error()))
		return
	}

	for i := range req.Items {
		item, err := req.Items[i].ToOrderItem()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "item inválido", err.Error()))
			return
		}
		po.AddItem(*item)
	}

	if err := c.orderRepo.Create(ctx, po); err != nil {
		if errors.Is(err, repository.ErrOrderDuplicateOC) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "número de OC já existe", req.NumeroOC))
			return
		}
		c.logger.Error("erro ao criar pedido no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar pedido", err.Error()))
		return
	}

	c.invalidateEstoque(ctx)
	ctx.JSON(http.StatusCreated, dto.ToOrderResponse(po))
}

// Get retorna um pedido pelo ID
// @Summary Buscar pedido
// @Description Retorna os dados de uma OC pelo ID, com agregados calculados
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id} [get]
func (c *OrderController) Get(ctx *gin.Context) {
	po, ok := c.findOrder(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToOrderResponse(po))
}

// List lista os pedidos com filtros e paginação
// @Summary Listar pedidos
// @Description Lista as OCs com filtros por cliente, status, responsável e busca por número de OC ou código de item
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página"
// @Param size query int false "Itens por página"
// @Param cliente query string false "Filtrar por cliente"
// @Param status query string false "Filtrar por status de item"
// @Param responsavel query string false "Filtrar por responsável"
// @Param busca query string false "Número da OC ou código de item"
// @Success 200 {object} dto.OrderListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	filter := order.Filter{
		Cliente:     ctx.Query("cliente"),
		Responsavel: ctx.Query("responsavel"),
		Busca:       ctx.Query("busca"),
	}
	if status := ctx.Query("status"); status != "" {
		st := order.ItemStatus(status)
		if !st.IsValid() {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "status inválido", status))
			return
		}
		filter.Status = st
	}

	total, err := c.orderRepo.Count(ctx, filter)
	if err != nil {
		c.logger.Error("erro ao contar pedidos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar pedidos", err.Error()))
		return
	}

	// pedir uma página além da última devolve a última
	pagination.Page = dto.ClampPage(pagination.Page, dto.CalculateTotalPages(total, pagination.PageSize))
	offset := (pagination.Page - 1) * pagination.PageSize

	orders, err := c.orderRepo.List(ctx, filter, pagination.PageSize, offset)
	if err != nil {
		c.logger.Error("erro ao listar pedidos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar pedidos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderListResponse(orders, total, pagination.Page, pagination.PageSize))
}

// ListItensAgrupados lista as ocorrências de cada código de item
// @Summary Itens agrupados por código
// @Description Agrupa as ocorrências de cada código de item em todos os pedidos, apenas para apresentação
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} dto.ItemAgrupadoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/itens-agrupados [get]
func (c *OrderController) ListItensAgrupados(ctx *gin.Context) {
	orders, err := c.orderRepo.ListAll(ctx)
	if err != nil {
		c.logger.Error("erro ao listar pedidos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar itens", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToItensAgrupados(orders))
}

// Update atualiza os dados cadastrais de um pedido
// @Summary Atualizar pedido
// @Description Atualiza número de OC, cliente, endereço e data de entrega
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param order body dto.OrderUpdateRequest true "Dados do pedido"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id} [put]
func (c *OrderController) Update(ctx *gin.Context) {
	var req dto.OrderUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	po, ok := c.findOrder(ctx)
	if !ok {
		return
	}

	po.NumeroOC = req.NumeroOC
	po.Cliente = req.Cliente
	po.EnderecoEntrega = req.EnderecoEntrega
	po.DataEntrega = req.DataEntrega

	if !c.saveOrder(ctx, po) {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToOrderResponse(po))
}

// ReplaceItems substitui a lista completa de itens do pedido
// @Summary Substituir itens do pedido
// @Description Substitui a lista ordenada de itens da OC
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param items body dto.OrderItemsReplaceRequest true "Nova lista de itens"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id}/items [put]
func (c *OrderController) ReplaceItems(ctx *gin.Context) {
	var req dto.OrderItemsReplaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	po, ok := c.findOrder(ctx)
	if !ok {
		return
	}

	items := make([]order.OrderItem, 0, len(req.Items))
	for i := range req.Items {
		item, err := req.Items[i].ToOrderItem()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "item inválido", err.Error()))
			return
		}

		// A substituição troca os dados cadastrais; fontes de compra,
		// marca de pagamento, imagem e ajuste manual pertencem ao item
		// existente no mesmo índice e são preservados.
		if i < len(po.Items) {
			atual := &po.Items[i]
			item.FontesCompra = atual.FontesCompra
			item.Pago = atual.Pago
			item.ImagemURL = atual.ImagemURL
			item.QuantidadeCompradaManual = atual.QuantidadeCompradaManual
			if req.Items[i].Status == "" {
				item.Status = atual.Status
			}
		}
		items = append(items, *item)
	}
	po.Items = items

	if !c.saveOrder(ctx, po) {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToOrderResponse(po))
}

// PatchItem atualiza parcialmente um item pelo índice
// @Summary Atualizar item do pedido
// @Description Aplica apenas os campos presentes no corpo sobre o item no índice informado
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param index path int true "Índice do item"
// @Param item body dto.OrderItemPatchRequest true "Campos a atualizar"
// @Success 200 {object} dto.OrderItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id}/items/{index} [patch]
func (c *OrderController) PatchItem(ctx *gin.Context) {
	var req dto.OrderItemPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	po, _, item, ok := c.findOrderItem(ctx)
	if !ok {
		return
	}

	req.ApplyTo(item)

	if !c.saveOrder(ctx, po) {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToOrderItemResponse(item))
}

// PatchItemStatus altera o status de um item pelo índice
// @Summary Alterar status de item
// @Description Define o status do item; regressões são permitidas e não limpam a marca de pago
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param index path int true "Índice do item"
// @Param status body dto.ItemStatusRequest true "Novo status"
// @Success 200 {object} dto.OrderItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id}/items/{index}/status [patch]
func (c *OrderController) PatchItemStatus(ctx *gin.Context) {
	var req dto.ItemStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	po, index, _, ok := c.findOrderItem(ctx)
	if !ok {
		return
	}

	if err := po.SetItemStatus(index, order.ItemStatus(req.Status)); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "status inválido", err.Error()))
		return
	}

	if !c.saveOrder(ctx, po) {
		return
	}
	item, _ := po.ItemAt(index)
	ctx.JSON(http.StatusOK, dto.ToOrderItemResponse(item))
}

// AddFonte acrescenta uma fonte de compra a um item
// @Summary Adicionar fonte de compra
// @Description Registra uma fonte de compra no item no índice informado
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param index path int true "Índice do item"
// @Param fonte body dto.FonteCompraRequest true "Dados da fonte"
// @Success 201 {object} dto.OrderItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id}/items/{index}/fontes [post]
func (c *OrderController) AddFonte(ctx *gin.Context) {
	var req dto.FonteCompraRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	po, index, _, ok := c.findOrderItem(ctx)
	if !ok {
		return
	}

	fonte, err := req.ToFonteCompra()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "fonte inválida", err.Error()))
		return
	}

	if err := po.AddFonteCompra(index, *fonte); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao adicionar fonte", err.Error()))
		return
	}

	if !c.saveOrder(ctx, po) {
		return
	}
	item, _ := po.ItemAt(index)
	ctx.JSON(http.StatusCreated, dto.ToOrderItemResponse(item))
}

// UpdateFonte substitui uma fonte de compra de um item
// @Summary Atualizar fonte de compra
// @Description Substitui a fonte de compra identificada pelo ID
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param index path int true "Índice do item"
// @Param fonteId path string true "ID da fonte"
// @Param fonte body dto.FonteCompraRequest true "Dados da fonte"
// @Success 200 {object} dto.OrderItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id}/items/{index}/fontes/{fonteId} [put]
func (c *OrderController) UpdateFonte(ctx *gin.Context) {
	var req dto.FonteCompraRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	po, index, _, ok := c.findOrderItem(ctx)
	if !ok {
		return
	}

	fonte, err := req.ToFonteCompra()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "fonte inválida", err.Error()))
		return
	}

	if err := po.UpdateFonteCompra(index, ctx.Param("fonteId"), *fonte); err != nil {
		if errors.Is(err, order.ErrFonteNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "fonte não encontrada", ctx.Param("fonteId")))
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar fonte", err.Error()))
		return
	}

	if !c.saveOrder(ctx, po) {
		return
	}
	item, _ := po.ItemAt(index)
	ctx.JSON(http.StatusOK, dto.ToOrderItemResponse(item))
}

// RemoveFonte remove uma fonte de compra de um item
// @Summary Remover fonte de compra
// @Description Remove a fonte de compra identificada pelo ID
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Param index path int true "Índice do item"
// @Param fonteId path string true "ID da fonte"
// @Success 200 {object} dto.OrderItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id}/items/{index}/fontes/{fonteId} [delete]
func (c *OrderController) RemoveFonte(ctx *gin.Context) {
	po, index, _, ok := c.findOrderItem(ctx)
	if !ok {
		return
	}

	if err := po.RemoveFonteCompra(index, ctx.Param("fonteId")); err != nil {
		if errors.Is(err, order.ErrFonteNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "fonte não encontrada", ctx.Param("fonteId")))
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao remover fonte", err.Error()))
		return
	}

	if !c.saveOrder(ctx, po) {
		return
	}
	item, _ := po.ItemAt(index)
	ctx.JSON(http.StatusOK, dto.ToOrderItemResponse(item))
}

// Delete remove um pedido
// @Summary Excluir pedido
// @Description Remove a OC e, em cascata, suas notas fiscais; consumos de estoque permanecem como auditoria
// @Tags orders
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do pedido"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /orders/{id} [delete]
func (c *OrderController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "pedido não encontrado", id))
			return
		}
		c.logger.Error("erro ao excluir pedido", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao excluir pedido", err.Error()))
		return
	}

	c.invalidateEstoque(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("pedido excluído com sucesso", nil))
}

// BulkDelete remove vários pedidos de uma vez
// @Summary Excluir pedidos em lote
// @Description Remove as OCs selecionadas uma a uma e reporta o resultado agregado
// @Tags orders
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param ids body dto.BulkDeleteRequest true "IDs dos pedidos"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /orders/bulk-delete [post]
func (c *OrderController) BulkDelete(ctx *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	excluidos := 0
	falhas := make([]string, 0)
	for _, id := range req.IDs {
		if err := c.orderRepo.Delete(ctx, id); err != nil {
			c.logger.Warn("falha ao excluir pedido em lote", "id", id, "error", err)
			falhas = append(falhas, id)
			continue
		}
		excluidos++
	}

	c.invalidateEstoque(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("exclusão em lote concluída", gin.H{
		"excluidos": excluidos,
		"falhas":    falhas,
	}))
}

// findOrder carrega o pedido do parâmetro de rota, respondendo 404 quando
// não existe
func (c *OrderController) findOrder(ctx *gin.Context) (*order.PurchaseOrder, bool) {
	id := ctx.Param("id")

	po, err := c.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "pedido não encontrado", id))
			return nil, false
		}
		c.logger.Error("erro ao buscar pedido", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar pedido", err.Error()))
		return nil, false
	}

	return po, true
}

// findOrderItem carrega o pedido e resolve o índice do item da rota
func (c *OrderController) findOrderItem(ctx *gin.Context) (*order.PurchaseOrder, int, *order.OrderItem, bool) {
	po, ok := c.findOrder(ctx)
	if !ok {
		return nil, 0, nil, false
	}

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "índice inválido", ctx.Param("index")))
		return nil, 0, nil, false
	}

	item, err := po.ItemAt(index)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "item não encontrado", ctx.Param("index")))
		return nil, 0, nil, false
	}

	return po, index, item, true
}

// saveOrder persiste o pedido e invalida o cache de estoque
func (c *OrderController) saveOrder(ctx *gin.Context, po *order.PurchaseOrder) bool {
	if err := c.orderRepo.Update(ctx, po); err != nil {
		if errors.Is(err, repository.ErrOrderDuplicateOC) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "número de OC já existe", po.NumeroOC))
			return false
		}
		c.logger.Error("erro ao atualizar pedido", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar pedido", err.Error()))
		return false
	}

	c.invalidateEstoque(ctx)
	return true
}
