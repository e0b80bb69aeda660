package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/adapter/repository"
	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
	"github.com/rafaelduarte/gestor-compras/internal/infrastructure/cache"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
)

func decFromTest(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// fakeOrderRepo implementa order.Repository em memória para os testes de
// controller, preservando a ordem de inserção
type fakeOrderRepo struct {
	orders []*order.PurchaseOrder
}

func (r *fakeOrderRepo) Create(_ context.Context, po *order.PurchaseOrder) error {
	for _, existing := range r.orders {
		if existing.NumeroOC == po.NumeroOC {
			return repository.ErrOrderDuplicateOC
		}
	}
	clone := *po
	r.orders = append(r.orders, &clone)
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id string) (*order.PurchaseOrder, error) {
	for _, po := range r.orders {
		if po.ID == id {
			clone := *po
			return &clone, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindByNumeroOC(_ context.Context, numeroOC string) (*order.PurchaseOrder, error) {
	for _, po := range r.orders {
		if po.NumeroOC == numeroOC {
			clone := *po
			return &clone, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) matches(po *order.PurchaseOrder, filter order.Filter) bool {
	if filter.Cliente != "" && po.Cliente != filter.Cliente {
		return false
	}
	if filter.Status != "" {
		found := false
		for i := range po.Items {
			if po.Items[i].Status == filter.Status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *fakeOrderRepo) List(_ context.Context, filter order.Filter, limit, offset int) ([]*order.PurchaseOrder, error) {
	filtered := make([]*order.PurchaseOrder, 0)
	for _, po := range r.orders {
		if r.matches(po, filter) {
			filtered = append(filtered, po)
		}
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (r *fakeOrderRepo) ListAll(_ context.Context) ([]*order.PurchaseOrder, error) {
	return r.orders, nil
}

func (r *fakeOrderRepo) Count(_ context.Context, filter order.Filter) (int, error) {
	total := 0
	for _, po := range r.orders {
		if r.matches(po, filter) {
			total++
		}
	}
	return total, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, po *order.PurchaseOrder) error {
	for i, existing := range r.orders {
		if existing.NumeroOC == po.NumeroOC && existing.ID != po.ID {
			return repository.ErrOrderDuplicateOC
		}
		if existing.ID == po.ID {
			clone := *po
			r.orders[i] = &clone
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	for i, po := range r.orders {
		if po.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) Exists(_ context.Context, id string) (bool, error) {
	_, err := r.FindByID(context.Background(), id)
	return err == nil, nil
}

func (r *fakeOrderRepo) ExistsByNumeroOC(_ context.Context, numeroOC string) (bool, error) {
	_, err := r.FindByNumeroOC(context.Background(), numeroOC)
	return err == nil, nil
}

// newOrderTestRouter monta um router com as rotas de pedido sem autenticação
func newOrderTestRouter(repo *fakeOrderRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := NewOrderController(repo, cache.NoopEstoqueCache{}, logger.NewLogger())

	r := gin.New()
	r.POST("/orders", c.Create)
	r.GET("/orders", c.List)
	r.GET("/orders/:id", c.Get)
	r.PUT("/orders/:id/items", c.ReplaceItems)
	r.PATCH("/orders/:id/items/:index", c.PatchItem)
	r.PATCH("/orders/:id/items/:index/status", c.PatchItemStatus)
	r.POST("/orders/:id/items/:index/fontes", c.AddFonte)
	r.POST("/orders/bulk-delete", c.BulkDelete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func seedOrder(t *testing.T, repo *fakeOrderRepo, numeroOC string, items ...order.OrderItem) *order.PurchaseOrder {
	t.Helper()
	po, err := order.NewPurchaseOrder(numeroOC, "ACME", "", nil)
	if err != nil {
		t.Fatalf("criar pedido: %v", err)
	}
	for _, it := range items {
		po.AddItem(it)
	}
	if err := repo.Create(context.Background(), po); err != nil {
		t.Fatalf("seed pedido: %v", err)
	}
	return po
}

func TestOrderCreate(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newOrderTestRouter(repo)

	rec := doJSON(t, r, http.MethodPost, "/orders", map[string]interface{}{
		"numero_oc": "OC-100",
		"cliente":   "ACME",
		"items": []map[string]interface{}{
			{"codigo_item": "A1", "descricao": "Parafuso", "quantidade": 10, "preco_venda": 2.5},
		},
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("esperava 201, veio %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp dto.OrderResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.NumeroOC != "OC-100" {
		t.Errorf("numero_oc = %q, esperava OC-100", resp.NumeroOC)
	}
	if len(resp.Items) != 1 || resp.Items[0].Status != "pendente" {
		t.Errorf("item deveria nascer pendente, veio %+v", resp.Items)
	}
}

func TestOrderCreateNumeroOCDuplicado(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newOrderTestRouter(repo)
	seedOrder(t, repo, "OC-100")

	rec := doJSON(t, r, http.MethodPost, "/orders", map[string]interface{}{
		"numero_oc": "OC-100",
		"cliente":   "Outro",
	})

	if rec.Code != http.StatusConflict {
		t.Fatalf("esperava 409, veio %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestOrderGetInexistente(t *testing.T) {
	r := newOrderTestRouter(&fakeOrderRepo{})

	rec := doJSON(t, r, http.MethodGet, "/orders/nao-existe", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("esperava 404, veio %d", rec.Code)
	}
}

func TestOrderListPaginaAlemDaUltima(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newOrderTestRouter(repo)
	seedOrder(t, repo, "OC-1")
	seedOrder(t, repo, "OC-2")
	seedOrder(t, repo, "OC-3")

	// 3 pedidos com size=2 dão 2 páginas; pedir a 99 devolve a última
	rec := doJSON(t, r, http.MethodGet, "/orders?page=99&size=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp dto.OrderListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Page != 2 {
		t.Errorf("page = %d, esperava 2", resp.Page)
	}
	if len(resp.Items) != 1 {
		t.Errorf("última página deveria ter 1 pedido, veio %d", len(resp.Items))
	}
	if resp.Total != 3 || resp.TotalPages != 2 {
		t.Errorf("total=%d totalPages=%d, esperava 3 e 2", resp.Total, resp.TotalPages)
	}
}

func TestOrderListStatusInvalido(t *testing.T) {
	r := newOrderTestRouter(&fakeOrderRepo{})

	rec := doJSON(t, r, http.MethodGet, "/orders?status=inexistente", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("esperava 400, veio %d", rec.Code)
	}
}

func TestOrderPatchItemStatus(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newOrderTestRouter(repo)
	item := order.NewOrderItem("A1", "Parafuso", "UN", decFromTest(10))
	po := seedOrder(t, repo, "OC-1", *item)

	rec := doJSON(t, r, http.MethodPatch, "/orders/"+po.ID+"/items/0/status", map[string]string{
		"status": "comprado",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp dto.OrderItemResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "comprado" || resp.StatusLabel != "Comprado" {
		t.Errorf("status = %q (%q), esperava comprado", resp.Status, resp.StatusLabel)
	}

	// regressão de status também é aceita
	rec = doJSON(t, r, http.MethodPatch, "/orders/"+po.ID+"/items/0/status", map[string]string{
		"status": "pendente",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("regressão deveria ser aceita, veio %d", rec.Code)
	}
}

func TestOrderPatchItemStatusInvalido(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newOrderTestRouter(repo)
	item := order.NewOrderItem("A1", "Parafuso", "UN", decFromTest(10))
	po := seedOrder(t, repo, "OC-1", *item)

	rec := doJSON(t, r, http.MethodPatch, "/orders/"+po.ID+"/items/0/status", map[string]string{
		"status": "finalizado",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("esperava 400, veio %d", rec.Code)
	}
}

func TestOrderPatchItemIndiceForaDoIntervalo(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newOrderTestRouter(repo)
	po := seedOrder(t, repo, "OC-1")

	rec := doJSON(t, r, http.MethodPatch, "/orders/"+po.ID+"/items/5", map[string]interface{}{
		"descricao": "novo",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("esperava 404, veio %d", rec.Code)
	}
}

func TestOrderReplaceItemsPreservaFontesEPago(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newOrderTestRouter(repo)

	item := order.NewOrderItem("A1", "Parafuso", "UN", decFromTest(10))
	item.Status = order.StatusEntregue
	item.Pago = true
	fonte, err := order.NewFonteCompra(decFromTest(10), decFromTest(5), decFromTest(2), "Fornecedor X", "")
	if err != nil {
		t.Fatalf("criar fonte: %v", err)
	}
	item.FontesCompra = []order.FonteCompra{*fonte}
	po := seedOrder(t, repo, "OC-1", *item)

	// Reenviar o mesmo item pela substituição completa não pode descartar
	// as fontes de compra nem limpar a marca de pagamento.
	rec := doJSON(t, r, http.MethodPut, "/orders/"+po.ID+"/items", map[string]interface{}{
		"items": []map[string]interface{}{
			{
				"codigo_item": "A1",
				"descricao":   "Parafuso sextavado",
				"unidade":     "UN",
				"quantidade":  10,
			},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp dto.OrderResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("esperava 1 item, veio %d", len(resp.Items))
	}
	got := resp.Items[0]
	if got.Descricao != "Parafuso sextavado" {
		t.Errorf("descrição não foi substituída: %q", got.Descricao)
	}
	if len(got.FontesCompra) != 1 {
		t.Fatalf("fontes de compra foram descartadas: %d", len(got.FontesCompra))
	}
	if !got.Pago {
		t.Error("marca de pagamento foi perdida na substituição")
	}
	if got.Status != string(order.StatusEntregue) {
		t.Errorf("status sem campo no corpo deveria ser mantido, veio %q", got.Status)
	}
	if got.TotalCusto != 50 {
		t.Errorf("total_custo esperado 50, veio %v", got.TotalCusto)
	}

	salvo, err := repo.FindByID(context.Background(), po.ID)
	if err != nil {
		t.Fatalf("recarregar pedido: %v", err)
	}
	if len(salvo.Items[0].FontesCompra) != 1 || !salvo.Items[0].Pago {
		t.Error("estado preservado não foi persistido")
	}
}

func TestOrderReplaceItemsNovoIndiceComecaZerado(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newOrderTestRouter(repo)

	item := order.NewOrderItem("A1", "Parafuso", "UN", decFromTest(10))
	po := seedOrder(t, repo, "OC-2", *item)

	rec := doJSON(t, r, http.MethodPut, "/orders/"+po.ID+"/items", map[string]interface{}{
		"items": []map[string]interface{}{
			{"codigo_item": "A1", "quantidade": 10},
			{"codigo_item": "B2", "descricao": "Porca", "quantidade": 5},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp dto.OrderResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("esperava 2 itens, veio %d", len(resp.Items))
	}
	novo := resp.Items[1]
	if novo.Status != string(order.StatusPendente) {
		t.Errorf("item novo deveria iniciar pendente, veio %q", novo.Status)
	}
	if novo.Pago || len(novo.FontesCompra) != 0 {
		t.Error("item novo não pode herdar estado de outro índice")
	}
}

func TestOrderAddFonteAtualizaAgregados(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newOrderTestRouter(repo)
	item := order.NewOrderItem("A1", "Parafuso", "UN", decFromTest(10))
	po := seedOrder(t, repo, "OC-1", *item)

	rec := doJSON(t, r, http.MethodPost, "/orders/"+po.ID+"/items/0/fontes", map[string]interface{}{
		"quantidade":     4,
		"preco_unitario": 2.5,
		"frete":          1,
		"fornecedor":     "Fornecedor X",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("esperava 201, veio %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp dto.OrderItemResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.QuantidadeComprada != 4 {
		t.Errorf("quantidade_comprada = %v, esperava 4", resp.QuantidadeComprada)
	}
	if resp.TotalCusto != 10 {
		t.Errorf("total_custo = %v, esperava 10", resp.TotalCusto)
	}
	if resp.QtdRestante != 6 {
		t.Errorf("qtd_restante = %v, esperava 6", resp.QtdRestante)
	}
}

func TestOrderAddFonteQuantidadeZero(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newOrderTestRouter(repo)
	item := order.NewOrderItem("A1", "Parafuso", "UN", decFromTest(10))
	po := seedOrder(t, repo, "OC-1", *item)

	rec := doJSON(t, r, http.MethodPost, "/orders/"+po.ID+"/items/0/fontes", map[string]interface{}{
		"quantidade": 0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("esperava 400, veio %d", rec.Code)
	}
}

func TestOrderBulkDeleteReportaFalhas(t *testing.T) {
	repo := &fakeOrderRepo{}
	r := newOrderTestRouter(repo)
	po := seedOrder(t, repo, "OC-1")

	rec := doJSON(t, r, http.MethodPost, "/orders/bulk-delete", map[string]interface{}{
		"ids": []string{po.ID, "nao-existe"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Excluidos int      `json:"excluidos"`
			Falhas    []string `json:"falhas"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Excluidos != 1 {
		t.Errorf("excluidos = %d, esperava 1", resp.Data.Excluidos)
	}
	if len(resp.Data.Falhas) != 1 || resp.Data.Falhas[0] != "nao-existe" {
		t.Errorf("falhas = %v, esperava [nao-existe]", resp.Data.Falhas)
	}
	if len(repo.orders) != 0 {
		t.Errorf("pedido deveria ter sido removido")
	}
}
