package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/domain/commission"
)

// ItemRefRequest referencia um item de pedido por pedido + índice
type ItemRefRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	ItemIndex int    `json:"item_index"`
}

// PagamentoRequest representa a requisição de pagamento de comissão
type PagamentoRequest struct {
	Responsavel string           `json:"responsavel" binding:"required"`
	Itens       []ItemRefRequest `json:"itens" binding:"required,min=1"`
}

// PagamentoUpdateRequest ajusta manualmente o valor de um pagamento
type PagamentoUpdateRequest struct {
	ValorComissao float64 `json:"valor_comissao" binding:"required"`
}

// ItemRefResponse representa a referência de item de um pagamento
type ItemRefResponse struct {
	OrderID   string `json:"order_id"`
	ItemIndex int    `json:"item_index"`
}

// PagamentoResponse representa a resposta de pagamento de comissão
type PagamentoResponse struct {
	ID            string            `json:"id"`
	Responsavel   string            `json:"responsavel"`
	Itens         []ItemRefResponse `json:"itens"`
	Percentual    float64           `json:"percentual"`
	TotalVenda    float64           `json:"total_venda"`
	ValorComissao float64           `json:"valor_comissao"`
	Data          time.Time         `json:"data"`
}

// PagamentoListResponse representa a resposta de lista de pagamentos
type PagamentoListResponse struct {
	Items      []PagamentoResponse `json:"items"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	Size       int                 `json:"size"`
	TotalPages int                 `json:"total_pages"`
}

// ItemElegivelResponse representa um item elegível para comissão, com o
// total de venda que ele contribui
type ItemElegivelResponse struct {
	OrderID     string  `json:"order_id"`
	NumeroOC    string  `json:"numero_oc"`
	ItemIndex   int     `json:"item_index"`
	CodigoItem  string  `json:"codigo_item"`
	Descricao   string  `json:"descricao"`
	Quantidade  float64 `json:"quantidade"`
	PrecoVenda  float64 `json:"preco_venda"`
	TotalVenda  float64 `json:"total_venda"`
	Status      string  `json:"status"`
	StatusLabel string  `json:"status_label"`
}

// ItensElegiveisResponse agrega os itens elegíveis de um responsável com a
// prévia do valor de comissão
type ItensElegiveisResponse struct {
	Responsavel   string                 `json:"responsavel"`
	Itens         []ItemElegivelResponse `json:"itens"`
	TotalVenda    float64                `json:"total_venda"`
	ValorComissao float64                `json:"valor_comissao"`
}

// ToItemRefs converte as referências da requisição para o domínio
func (r *PagamentoRequest) ToItemRefs() []commission.ItemRef {
	refs := make([]commission.ItemRef, len(r.Itens))
	for i, it := range r.Itens {
		refs[i] = commission.ItemRef{OrderID: it.OrderID, ItemIndex: it.ItemIndex}
	}
	return refs
}

// ToPagamentoResponse converte um pagamento do domínio para DTO
func ToPagamentoResponse(p *commission.Pagamento) *PagamentoResponse {
	itens := make([]ItemRefResponse, len(p.ItensIDs))
	for i, ref := range p.ItensIDs {
		itens[i] = ItemRefResponse{OrderID: ref.OrderID, ItemIndex: ref.ItemIndex}
	}

	percentual, _ := p.Percentual.Float64()
	return &PagamentoResponse{
		ID:            p.ID,
		Responsavel:   p.Responsavel,
		Itens:         itens,
		Percentual:    percentual,
		TotalVenda:    round2(p.TotalVenda),
		ValorComissao: round2(p.ValorComissao),
		Data:          p.Data,
	}
}

// ToPagamentoListResponse converte uma lista de pagamentos do domínio para DTO
func ToPagamentoListResponse(pagamentos []*commission.Pagamento, total, page, size int) *PagamentoListResponse {
	items := make([]PagamentoResponse, len(pagamentos))
	for i, p := range pagamentos {
		items[i] = *ToPagamentoResponse(p)
	}

	return &PagamentoListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: CalculateTotalPages(total, size),
	}
}

// ToItensElegiveisResponse monta a resposta de elegibilidade com a prévia
// de comissão calculada sobre a soma dos totais de venda
func ToItensElegiveisResponse(responsavel string, infos []commission.ItemElegivelInfo) *ItensElegiveisResponse {
	itens := make([]ItemElegivelResponse, len(infos))
	total := decimal.Zero

	for i := range infos {
		it := &infos[i].Item
		itens[i] = ItemElegivelResponse{
			OrderID:     infos[i].Ref.OrderID,
			NumeroOC:    infos[i].NumeroOC,
			ItemIndex:   infos[i].Ref.ItemIndex,
			CodigoItem:  it.CodigoItem,
			Descricao:   it.Descricao,
			Quantidade:  round2(it.Quantidade),
			PrecoVenda:  round2(it.PrecoVenda),
			TotalVenda:  round2(it.TotalVenda()),
			Status:      string(it.Status),
			StatusLabel: it.Status.Label(),
		}
		total = total.Add(it.TotalVenda())
	}

	return &ItensElegiveisResponse{
		Responsavel:   responsavel,
		Itens:         itens,
		TotalVenda:    round2(total),
		ValorComissao: round2(commission.CalcularComissao(total)),
	}
}
