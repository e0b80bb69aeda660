package stock

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCodigoItem = errors.New("código do item não pode ser vazio")
	ErrInvalidQuantity = errors.New("quantidade deve ser maior que zero")
	ErrEmptyOCDestino  = errors.New("OC de destino não pode ser vazia")
)

// OrigemOC referencia o pedido e o índice do item que geraram excedente
type OrigemOC struct {
	OrderID   string          `json:"order_id"`
	NumeroOC  string          `json:"numero_oc"`
	ItemIndex int             `json:"item_index"`
	Excedente decimal.Decimal `json:"excedente"`
}

// ItemEstoque é a visão agregada de estoque de um código de item:
// excedentes derivados dos pedidos mais entradas manuais, menos consumos
type ItemEstoque struct {
	CodigoItem        string          `json:"codigo_item"`
	Descricao         string          `json:"descricao"`
	Unidade           string          `json:"unidade"`
	QuantidadeEstoque decimal.Decimal `json:"quantidade_estoque"`
	QuantidadeManual  decimal.Decimal `json:"quantidade_manual"`
	Consumido         decimal.Decimal `json:"consumido"`
	Disponivel        decimal.Decimal `json:"disponivel"`
	OCsOrigem         []OrigemOC      `json:"ocs_origem"`
}

// EntradaManual é uma linha de estoque criada sem origem em pedido
type EntradaManual struct {
	ID         string          `json:"id"`
	CodigoItem string          `json:"codigo_item"`
	Descricao  string          `json:"descricao"`
	Unidade    string          `json:"unidade"`
	Quantidade decimal.Decimal `json:"quantidade"`
	Observacao string          `json:"observacao,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewEntradaManual cria uma entrada manual de estoque
func NewEntradaManual(codigoItem, descricao, unidade string, quantidade decimal.Decimal, observacao string) (*EntradaManual, error) {
	if codigoItem == "" {
		return nil, ErrEmptyCodigoItem
	}
	if quantidade.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidQuantity
	}
	return &EntradaManual{
		ID:         uuid.New().String(),
		CodigoItem: codigoItem,
		Descricao:  descricao,
		Unidade:    unidade,
		Quantidade: quantidade,
		Observacao: observacao,
		CreatedAt:  time.Now(),
	}, nil
}

// Consumo registra o uso de excedente em uma OC de destino. É uma trilha
// de auditoria append-only: nunca altera as quantidades do item de origem;
// o saldo é reconciliado na consulta, somando disponível menos consumido.
type Consumo struct {
	ID         string          `json:"id"`
	CodigoItem string          `json:"codigo_item"`
	OCDestino  string          `json:"oc_destino"`
	Quantidade decimal.Decimal `json:"quantidade"`
	Data       time.Time       `json:"data"`
}

// NewConsumo cria um registro de consumo de estoque
func NewConsumo(codigoItem, ocDestino string, quantidade decimal.Decimal) (*Consumo, error) {
	if codigoItem == "" {
		return nil, ErrEmptyCodigoItem
	}
	if ocDestino == "" {
		return nil, ErrEmptyOCDestino
	}
	if quantidade.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidQuantity
	}
	return &Consumo{
		ID:         uuid.New().String(),
		CodigoItem: codigoItem,
		OCDestino:  ocDestino,
		Quantidade: quantidade,
		Data:       time.Now(),
	}, nil
}
