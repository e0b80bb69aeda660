package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/adapter/repository"
	"github.com/rafaelduarte/gestor-compras/internal/domain/commission"
	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
)

// fakeCommissionRepo implementa commission.Repository em memória,
// marcando os itens pagos direto no fakeOrderRepo associado
type fakeCommissionRepo struct {
	orders     *fakeOrderRepo
	pagamentos []*commission.Pagamento
}

func (r *fakeCommissionRepo) Create(_ context.Context, p *commission.Pagamento) error {
	for _, ref := range p.ItensIDs {
		for _, po := range r.orders.orders {
			if po.ID == ref.OrderID {
				po.Items[ref.ItemIndex].Pago = true
			}
		}
	}
	r.pagamentos = append(r.pagamentos, p)
	return nil
}

func (r *fakeCommissionRepo) FindByID(_ context.Context, id string) (*commission.Pagamento, error) {
	for _, p := range r.pagamentos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrPagamentoNotFound
}

func (r *fakeCommissionRepo) List(_ context.Context, responsavel string, limit, offset int) ([]*commission.Pagamento, error) {
	out := make([]*commission.Pagamento, 0)
	for _, p := range r.pagamentos {
		if responsavel == "" || p.Responsavel == responsavel {
			out = append(out, p)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *fakeCommissionRepo) Count(_ context.Context, responsavel string) (int, error) {
	all, _ := r.List(context.Background(), responsavel, len(r.pagamentos), 0)
	return len(all), nil
}

func (r *fakeCommissionRepo) UpdateValor(_ context.Context, id string, valor decimal.Decimal) error {
	p, err := r.FindByID(context.Background(), id)
	if err != nil {
		return err
	}
	p.ValorComissao = valor
	return nil
}

func (r *fakeCommissionRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.pagamentos {
		if p.ID == id {
			for _, ref := range p.ItensIDs {
				for _, po := range r.orders.orders {
					if po.ID == ref.OrderID {
						po.Items[ref.ItemIndex].Pago = false
					}
				}
			}
			r.pagamentos = append(r.pagamentos[:i], r.pagamentos[i+1:]...)
			return nil
		}
	}
	return repository.ErrPagamentoNotFound
}

func (r *fakeCommissionRepo) ListItensElegiveis(_ context.Context, responsavel string) ([]commission.ItemElegivelInfo, error) {
	infos := make([]commission.ItemElegivelInfo, 0)
	for _, po := range r.orders.orders {
		for idx := range po.Items {
			if commission.ItemElegivel(&po.Items[idx], responsavel) {
				infos = append(infos, commission.ItemElegivelInfo{
					Ref:      commission.ItemRef{OrderID: po.ID, ItemIndex: idx},
					NumeroOC: po.NumeroOC,
					Item:     po.Items[idx],
				})
			}
		}
	}
	return infos, nil
}

func (r *fakeCommissionRepo) ListResponsaveis(_ context.Context) ([]string, error) {
	visto := make(map[string]bool)
	nomes := make([]string, 0)
	for _, po := range r.orders.orders {
		for i := range po.Items {
			nome := po.Items[i].Responsavel
			if nome != "" && !visto[nome] {
				visto[nome] = true
				nomes = append(nomes, nome)
			}
		}
	}
	return nomes, nil
}

func newCommissionTestRouter(orders *fakeOrderRepo) (*gin.Engine, *fakeCommissionRepo) {
	gin.SetMode(gin.TestMode)
	repo := &fakeCommissionRepo{orders: orders}
	c := NewCommissionController(repo, orders, logger.NewLogger())

	r := gin.New()
	r.GET("/comissoes/elegiveis", c.ListItensElegiveis)
	r.POST("/comissoes/pagamentos", c.Create)
	r.DELETE("/comissoes/pagamentos/:id", c.Delete)
	return r, repo
}

func itemEntregue(responsavel string, qtd, precoVenda float64) order.OrderItem {
	it := order.NewOrderItem("A1", "Parafuso", "UN", decFromTest(qtd))
	it.Responsavel = responsavel
	it.Status = order.StatusEntregue
	it.PrecoVenda = decFromTest(precoVenda)
	return *it
}

func TestComissaoItensElegiveis(t *testing.T) {
	orders := &fakeOrderRepo{}
	r, _ := newCommissionTestRouter(orders)
	seedOrder(t, orders, "OC-1", itemEntregue("Maria", 10, 20))

	rec := doJSON(t, r, http.MethodGet, "/comissoes/elegiveis?responsavel=Maria", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp dto.ItensElegiveisResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Itens) != 1 {
		t.Fatalf("esperava 1 item elegível, veio %d", len(resp.Itens))
	}
	if resp.TotalVenda != 200 {
		t.Errorf("total_venda = %v, esperava 200", resp.TotalVenda)
	}
	// 1,5% de 200
	if resp.ValorComissao != 3 {
		t.Errorf("valor_comissao = %v, esperava 3", resp.ValorComissao)
	}
}

func TestComissaoElegiveisSemResponsavel(t *testing.T) {
	r, _ := newCommissionTestRouter(&fakeOrderRepo{})

	rec := doJSON(t, r, http.MethodGet, "/comissoes/elegiveis", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("esperava 400, veio %d", rec.Code)
	}
}

func TestComissaoPagamentoMarcaItensPagos(t *testing.T) {
	orders := &fakeOrderRepo{}
	r, repo := newCommissionTestRouter(orders)
	po := seedOrder(t, orders, "OC-1", itemEntregue("Maria", 10, 20))

	rec := doJSON(t, r, http.MethodPost, "/comissoes/pagamentos", map[string]interface{}{
		"responsavel": "Maria",
		"itens": []map[string]interface{}{
			{"order_id": po.ID, "item_index": 0},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("esperava 201, veio %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp dto.PagamentoResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ValorComissao != 3 {
		t.Errorf("valor_comissao = %v, esperava 3", resp.ValorComissao)
	}
	if !orders.orders[0].Items[0].Pago {
		t.Errorf("item deveria estar marcado como pago")
	}

	// item pago deixa de ser elegível
	rec = doJSON(t, r, http.MethodGet, "/comissoes/elegiveis?responsavel=Maria", nil)
	var eleg dto.ItensElegiveisResponse
	if err := json.NewDecoder(rec.Body).Decode(&eleg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(eleg.Itens) != 0 {
		t.Errorf("item pago não deveria ser elegível")
	}

	// exclusão do pagamento devolve a elegibilidade
	rec = doJSON(t, r, http.MethodDelete, "/comissoes/pagamentos/"+repo.pagamentos[0].ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("exclusão falhou: %d", rec.Code)
	}
	if orders.orders[0].Items[0].Pago {
		t.Errorf("exclusão deveria reverter a marca de pago")
	}
}

func TestComissaoPagamentoItemNaoElegivel(t *testing.T) {
	orders := &fakeOrderRepo{}
	r, _ := newCommissionTestRouter(orders)

	pendente := order.NewOrderItem("A1", "Parafuso", "UN", decFromTest(10))
	pendente.Responsavel = "Maria"
	po := seedOrder(t, orders, "OC-1", *pendente)

	rec := doJSON(t, r, http.MethodPost, "/comissoes/pagamentos", map[string]interface{}{
		"responsavel": "Maria",
		"itens": []map[string]interface{}{
			{"order_id": po.ID, "item_index": 0},
		},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("item pendente não deveria ser pagável, veio %d", rec.Code)
	}
}

func TestComissaoPagamentoSelecaoVazia(t *testing.T) {
	r, _ := newCommissionTestRouter(&fakeOrderRepo{})

	rec := doJSON(t, r, http.MethodPost, "/comissoes/pagamentos", map[string]interface{}{
		"responsavel": "Maria",
		"itens":       []map[string]interface{}{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("esperava 400, veio %d", rec.Code)
	}
}
