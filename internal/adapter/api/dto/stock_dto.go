package dto

import (
	"time"

	"github.com/rafaelduarte/gestor-compras/internal/domain/stock"
)

// AjusteEstoqueRequest ajusta a quantidade comprada de um item de pedido
type AjusteEstoqueRequest struct {
	OrderID        string  `json:"order_id" binding:"required"`
	ItemIndex      int     `json:"item_index"`
	NovaQuantidade float64 `json:"nova_quantidade" binding:"required"`
}

// LimparEstoqueRequest zera o excedente de um item de pedido, igualando a
// quantidade comprada à necessária
type LimparEstoqueRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	ItemIndex int    `json:"item_index"`
}

// EntradaManualRequest representa a requisição de entrada manual de estoque
type EntradaManualRequest struct {
	CodigoItem string  `json:"codigo_item" binding:"required"`
	Descricao  string  `json:"descricao"`
	Unidade    string  `json:"unidade"`
	Quantidade float64 `json:"quantidade" binding:"required,gt=0"`
	Observacao string  `json:"observacao"`
}

// ConsumoRequest representa o registro de consumo de excedente
type ConsumoRequest struct {
	CodigoItem string  `json:"codigo_item" binding:"required"`
	OCDestino  string  `json:"oc_destino" binding:"required"`
	Quantidade float64 `json:"quantidade" binding:"required,gt=0"`
}

// OrigemOCResponse referencia a origem de um excedente de estoque
type OrigemOCResponse struct {
	OrderID   string  `json:"order_id"`
	NumeroOC  string  `json:"numero_oc"`
	ItemIndex int     `json:"item_index"`
	Excedente float64 `json:"excedente"`
}

// ItemEstoqueResponse representa a visão agregada de estoque de um código
// de item
type ItemEstoqueResponse struct {
	CodigoItem        string             `json:"codigo_item"`
	Descricao         string             `json:"descricao"`
	Unidade           string             `json:"unidade"`
	QuantidadeEstoque float64            `json:"quantidade_estoque"`
	QuantidadeManual  float64            `json:"quantidade_manual"`
	Consumido         float64            `json:"consumido"`
	Disponivel        float64            `json:"disponivel"`
	OCsOrigem         []OrigemOCResponse `json:"ocs_origem"`
}

// EstoqueListResponse representa a lista agregada de estoque
type EstoqueListResponse struct {
	Items []ItemEstoqueResponse `json:"items"`
	Total int                   `json:"total"`
}

// EntradaManualResponse representa a resposta de entrada manual
type EntradaManualResponse struct {
	ID         string    `json:"id"`
	CodigoItem string    `json:"codigo_item"`
	Descricao  string    `json:"descricao"`
	Unidade    string    `json:"unidade"`
	Quantidade float64   `json:"quantidade"`
	Observacao string    `json:"observacao,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConsumoResponse representa a resposta de consumo de estoque
type ConsumoResponse struct {
	ID         string    `json:"id"`
	CodigoItem string    `json:"codigo_item"`
	OCDestino  string    `json:"oc_destino"`
	Quantidade float64   `json:"quantidade"`
	Data       time.Time `json:"data"`
}

// ToItemEstoqueResponse converte um item agregado de estoque para DTO
func ToItemEstoqueResponse(it *stock.ItemEstoque) ItemEstoqueResponse {
	origens := make([]OrigemOCResponse, len(it.OCsOrigem))
	for i, o := range it.OCsOrigem {
		origens[i] = OrigemOCResponse{
			OrderID:   o.OrderID,
			NumeroOC:  o.NumeroOC,
			ItemIndex: o.ItemIndex,
			Excedente: round2(o.Excedente),
		}
	}

	return ItemEstoqueResponse{
		CodigoItem:        it.CodigoItem,
		Descricao:         it.Descricao,
		Unidade:           it.Unidade,
		QuantidadeEstoque: round2(it.QuantidadeEstoque),
		QuantidadeManual:  round2(it.QuantidadeManual),
		Consumido:         round2(it.Consumido),
		Disponivel:        round2(it.Disponivel),
		OCsOrigem:         origens,
	}
}

// ToEstoqueListResponse converte a lista agregada de estoque para DTO
func ToEstoqueListResponse(itens []*stock.ItemEstoque) *EstoqueListResponse {
	items := make([]ItemEstoqueResponse, len(itens))
	for i, it := range itens {
		items[i] = ToItemEstoqueResponse(it)
	}

	return &EstoqueListResponse{
		Items: items,
		Total: len(items),
	}
}

// ToEntradaManualResponse converte uma entrada manual do domínio para DTO
func ToEntradaManualResponse(e *stock.EntradaManual) *EntradaManualResponse {
	return &EntradaManualResponse{
		ID:         e.ID,
		CodigoItem: e.CodigoItem,
		Descricao:  e.Descricao,
		Unidade:    e.Unidade,
		Quantidade: round2(e.Quantidade),
		Observacao: e.Observacao,
		CreatedAt:  e.CreatedAt,
	}
}

// ToConsumoResponse converte um consumo do domínio para DTO
func ToConsumoResponse(c *stock.Consumo) *ConsumoResponse {
	return &ConsumoResponse{
		ID:         c.ID,
		CodigoItem: c.CodigoItem,
		OCDestino:  c.OCDestino,
		Quantidade: round2(c.Quantidade),
		Data:       c.Data,
	}
}
