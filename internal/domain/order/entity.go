package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyNumeroOC   = errors.New("número da OC não pode ser vazio")
	ErrEmptyCliente    = errors.New("cliente não pode ser vazio")
	ErrInvalidStatus   = errors.New("status de item inválido")
	ErrItemIndexRange  = errors.New("índice de item fora do intervalo")
	ErrFonteNotFound   = errors.New("fonte de compra não encontrada")
	ErrInvalidQuantity = errors.New("quantidade deve ser maior que zero")
)

// ItemStatus representa o estágio de um item no ciclo de vida do pedido
type ItemStatus string

const (
	StatusPendente    ItemStatus = "pendente"
	StatusCotado      ItemStatus = "cotado"
	StatusComprado    ItemStatus = "comprado"
	StatusEmSeparacao ItemStatus = "em_separacao"
	StatusProntoEnvio ItemStatus = "pronto_envio"
	StatusEmTransito  ItemStatus = "em_transito"
	StatusEntregue    ItemStatus = "entregue"
)

// statusOrdem define a posição de cada status na progressão normal.
// Nenhuma transição é validada; a ordem serve apenas para elegibilidade.
var statusOrdem = map[ItemStatus]int{
	StatusPendente:    0,
	StatusCotado:      1,
	StatusComprado:    2,
	StatusEmSeparacao: 3,
	StatusProntoEnvio: 4,
	StatusEmTransito:  5,
	StatusEntregue:    6,
}

var statusLabels = map[ItemStatus]string{
	StatusPendente:    "Pendente",
	StatusCotado:      "Cotado",
	StatusComprado:    "Comprado",
	StatusEmSeparacao: "Em Separação",
	StatusProntoEnvio: "Pronto p/ Envio",
	StatusEmTransito:  "Em Trânsito",
	StatusEntregue:    "Entregue",
}

var statusCores = map[ItemStatus]string{
	StatusPendente:    "gray",
	StatusCotado:      "blue",
	StatusComprado:    "indigo",
	StatusEmSeparacao: "yellow",
	StatusProntoEnvio: "orange",
	StatusEmTransito:  "purple",
	StatusEntregue:    "green",
}

// IsValid verifica se o status é um dos valores conhecidos
func (s ItemStatus) IsValid() bool {
	_, ok := statusOrdem[s]
	return ok
}

// Label retorna o rótulo de exibição do status
func (s ItemStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Cor retorna a cor do badge associado ao status
func (s ItemStatus) Cor() string {
	if cor, ok := statusCores[s]; ok {
		return cor
	}
	return "gray"
}

// ElegivelEstoque indica se o item já foi comprado e portanto pode
// contribuir para o ledger de estoque e para o cálculo de lucro
func (s ItemStatus) ElegivelEstoque() bool {
	ordem, ok := statusOrdem[s]
	return ok && ordem >= statusOrdem[StatusComprado]
}

// ElegivelComissao indica se o item conta para comissão do responsável
func (s ItemStatus) ElegivelComissao() bool {
	return s == StatusEmTransito || s == StatusEntregue
}

// FonteCompra representa um registro de fornecimento de um item
type FonteCompra struct {
	ID            string          `json:"id"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco_unitario"`
	Frete         decimal.Decimal `json:"frete"`
	Fornecedor    string          `json:"fornecedor"`
	Link          string          `json:"link,omitempty"`
}

// NewFonteCompra cria uma nova fonte de compra para um item
func NewFonteCompra(quantidade, precoUnitario, frete decimal.Decimal, fornecedor, link string) (*FonteCompra, error) {
	if quantidade.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidQuantity
	}
	return &FonteCompra{
		ID:            uuid.New().String(),
		Quantidade:    quantidade,
		PrecoUnitario: precoUnitario,
		Frete:         frete,
		Fornecedor:    fornecedor,
		Link:          link,
	}, nil
}

// OrderItem representa uma linha de um pedido de compra. O código do item
// não é único dentro do pedido: linhas repetidas do mesmo produto são
// agrupadas apenas na apresentação, nunca mescladas aqui.
type OrderItem struct {
	CodigoItem  string          `json:"codigo_item"`
	Descricao   string          `json:"descricao"`
	Unidade     string          `json:"unidade"`
	Quantidade  decimal.Decimal `json:"quantidade"`
	Lote        string          `json:"lote,omitempty"`
	Regiao      string          `json:"regiao,omitempty"`
	Responsavel string          `json:"responsavel,omitempty"`
	MarcaModelo string          `json:"marca_modelo,omitempty"`
	NCM         string          `json:"ncm,omitempty"`
	Status      ItemStatus      `json:"status"`

	// FontesCompra alimenta os agregados de compra; uma vez que existam
	// fontes, preço e frete de compra nunca são campos autoritativos
	FontesCompra []FonteCompra `json:"fontes_compra"`

	// QuantidadeCompradaManual sobrescreve a soma das fontes quando o
	// operador ajusta o estoque diretamente
	QuantidadeCompradaManual *decimal.Decimal `json:"quantidade_comprada_manual,omitempty"`

	PrecoVenda decimal.Decimal `json:"preco_venda"`
	Imposto    decimal.Decimal `json:"imposto"`
	FreteEnvio decimal.Decimal `json:"frete_envio"`

	ImagemURL string `json:"imagem_url,omitempty"`

	// Pago marca o item como incluído em um pagamento de comissão.
	// Regressão de status não limpa esta marca.
	Pago bool `json:"pago"`
}

// NewOrderItem cria um item de pedido com os valores padrão preenchidos
func NewOrderItem(codigoItem, descricao, unidade string, quantidade decimal.Decimal) *OrderItem {
	return &OrderItem{
		CodigoItem:   codigoItem,
		Descricao:    descricao,
		Unidade:      unidade,
		Quantidade:   quantidade,
		Status:       StatusPendente,
		FontesCompra: []FonteCompra{},
	}
}

// PurchaseOrder representa um pedido de compra (OC) com sua lista ordenada
// de itens, endereçáveis por índice
type PurchaseOrder struct {
	ID              string      `json:"id"`
	NumeroOC        string      `json:"numero_oc"`
	Cliente         string      `json:"cliente"`
	EnderecoEntrega string      `json:"endereco_entrega,omitempty"`
	DataEntrega     *time.Time  `json:"data_entrega,omitempty"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NewPurchaseOrder cria um novo pedido de compra
func NewPurchaseOrder(numeroOC, cliente, enderecoEntrega string, dataEntrega *time.Time) (*PurchaseOrder, error) {
	if numeroOC == "" {
		return nil, ErrEmptyNumeroOC
	}
	if cliente == "" {
		return nil, ErrEmptyCliente
	}

	now := time.Now()
	return &PurchaseOrder{
		ID:              uuid.New().String(),
		NumeroOC:        numeroOC,
		Cliente:         cliente,
		EnderecoEntrega: enderecoEntrega,
		DataEntrega:     dataEntrega,
		Items:           []OrderItem{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// ItemAt retorna o item no índice informado
func (po *PurchaseOrder) ItemAt(index int) (*OrderItem, error) {
	if index < 0 || index >= len(po.Items) {
		return nil, ErrItemIndexRange
	}
	return &po.Items[index], nil
}

// AddItem acrescenta um item ao final da lista
func (po *PurchaseOrder) AddItem(item OrderItem) {
	po.Items = append(po.Items, item)
	po.UpdatedAt = time.Now()
}

// SetItemStatus altera o status do item no índice informado. Qualquer
// status válido é aceito, inclusive regressões; a marca de pago é
// preservada em qualquer caso.
func (po *PurchaseOrder) SetItemStatus(index int, status ItemStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	item, err := po.ItemAt(index)
	if err != nil {
		return err
	}
	item.Status = status
	po.UpdatedAt = time.Now()
	return nil
}

// AddFonteCompra acrescenta uma fonte de compra ao item no índice informado
func (po *PurchaseOrder) AddFonteCompra(index int, fonte FonteCompra) error {
	item, err := po.ItemAt(index)
	if err != nil {
		return err
	}
	item.FontesCompra = append(item.FontesCompra, fonte)
	po.UpdatedAt = time.Now()
	return nil
}

// UpdateFonteCompra substitui a fonte de compra identificada por fonteID
func (po *PurchaseOrder) UpdateFonteCompra(index int, fonteID string, fonte FonteCompra) error {
	item, err := po.ItemAt(index)
	if err != nil {
		return err
	}
	for i := range item.FontesCompra {
		if item.FontesCompra[i].ID == fonteID {
			fonte.ID = fonteID
			item.FontesCompra[i] = fonte
			po.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrFonteNotFound
}

// RemoveFonteCompra remove a fonte de compra identificada por fonteID
func (po *PurchaseOrder) RemoveFonteCompra(index int, fonteID string) error {
	item, err := po.ItemAt(index)
	if err != nil {
		return err
	}
	for i := range item.FontesCompra {
		if item.FontesCompra[i].ID == fonteID {
			item.FontesCompra = append(item.FontesCompra[:i], item.FontesCompra[i+1:]...)
			po.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrFonteNotFound
}
