package commission

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
)

var (
	ErrEmptyResponsavel = errors.New("responsável não pode ser vazio")
	ErrEmptySelection   = errors.New("seleção de itens não pode ser vazia")
)

// PercentualComissao é o percentual fixo aplicado sobre o total de venda.
// Existe no banco um campo percentual por pagamento apenas para registro
// histórico; o cálculo sempre usa esta constante.
var PercentualComissao = decimal.NewFromFloat(0.015)

// ItemRef referencia um item de pedido por valor (pedido + índice),
// nunca por ponteiro vivo
type ItemRef struct {
	OrderID   string `json:"order_id"`
	ItemIndex int    `json:"item_index"`
}

// Pagamento registra o pagamento de comissão de um responsável sobre um
// conjunto de itens entregues ou em trânsito
type Pagamento struct {
	ID            string          `json:"id"`
	Responsavel   string          `json:"responsavel"`
	ItensIDs      []ItemRef       `json:"itens_ids"`
	Percentual    decimal.Decimal `json:"percentual"`
	TotalVenda    decimal.Decimal `json:"total_venda"`
	ValorComissao decimal.Decimal `json:"valor_comissao"`
	Data          time.Time       `json:"data"`
}

// NewPagamento cria um registro de pagamento de comissão. A seleção não
// pode ser vazia; o valor da comissão é derivado do total de venda.
func NewPagamento(responsavel string, itens []ItemRef, totalVenda decimal.Decimal) (*Pagamento, error) {
	if responsavel == "" {
		return nil, ErrEmptyResponsavel
	}
	if len(itens) == 0 {
		return nil, ErrEmptySelection
	}

	return &Pagamento{
		ID:            uuid.New().String(),
		Responsavel:   responsavel,
		ItensIDs:      itens,
		Percentual:    PercentualComissao,
		TotalVenda:    totalVenda,
		ValorComissao: CalcularComissao(totalVenda),
		Data:          time.Now(),
	}, nil
}

// CalcularComissao aplica o percentual fixo de 1,5% sobre o total de venda
func CalcularComissao(totalVenda decimal.Decimal) decimal.Decimal {
	return totalVenda.Mul(PercentualComissao)
}

// ItemElegivel indica se um item conta para comissão: status em trânsito
// ou entregue e ainda não pago
func ItemElegivel(item *order.OrderItem, responsavel string) bool {
	return item.Responsavel == responsavel &&
		item.Status.ElegivelComissao() &&
		!item.Pago
}

// TotalVendaSelecao soma preço de venda × quantidade dos itens da seleção
func TotalVendaSelecao(itens []*order.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range itens {
		total = total.Add(it.TotalVenda())
	}
	return total
}
