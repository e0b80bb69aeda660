package commission

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalcularComissaoExata(t *testing.T) {
	tests := []struct {
		totalVenda string
		want       string
	}{
		{"150.00", "2.2500"},
		{"100", "1.500"},
		{"0", "0"},
		{"1000.33", "15.004950"},
	}

	for _, tt := range tests {
		got := CalcularComissao(dec(tt.totalVenda))
		if !got.Equal(dec(tt.want)) {
			t.Fatalf("comissão de %s: esperado %s, obtido %s", tt.totalVenda, tt.want, got)
		}
		// 1,5% exatos, sem deriva
		if !got.Equal(dec(tt.totalVenda).Mul(dec("0.015"))) {
			t.Fatalf("comissão de %s divergiu do percentual fixo", tt.totalVenda)
		}
	}
}

func TestNewPagamentoValidation(t *testing.T) {
	refs := []ItemRef{{OrderID: "po-1", ItemIndex: 0}}

	if _, err := NewPagamento("", refs, dec("10")); err != ErrEmptyResponsavel {
		t.Fatalf("responsável vazio deveria ser rejeitado, obtido %v", err)
	}
	if _, err := NewPagamento("Maria", nil, dec("10")); err != ErrEmptySelection {
		t.Fatalf("seleção vazia deveria ser rejeitada, obtido %v", err)
	}

	p, err := NewPagamento("Maria", refs, dec("150.00"))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if !p.ValorComissao.Equal(dec("2.25")) {
		t.Fatalf("valor da comissão esperado 2.25, obtido %s", p.ValorComissao)
	}
	if !p.Percentual.Equal(dec("0.015")) {
		t.Fatalf("percentual registrado deve ser 0.015, obtido %s", p.Percentual)
	}
}

func TestItemElegivel(t *testing.T) {
	base := func() *order.OrderItem {
		it := order.NewOrderItem("COD", "Item", "un", dec("5"))
		it.Responsavel = "Maria"
		it.Status = order.StatusEntregue
		return it
	}

	if !ItemElegivel(base(), "Maria") {
		t.Fatalf("item entregue e não pago de Maria deveria ser elegível")
	}

	pago := base()
	pago.Pago = true
	if ItemElegivel(pago, "Maria") {
		t.Fatalf("item pago não pode ser elegível")
	}

	outro := base()
	if ItemElegivel(outro, "João") {
		t.Fatalf("item de outro responsável não pode ser elegível")
	}

	pendente := base()
	pendente.Status = order.StatusPendente
	if ItemElegivel(pendente, "Maria") {
		t.Fatalf("item pendente não pode ser elegível")
	}

	transito := base()
	transito.Status = order.StatusEmTransito
	if !ItemElegivel(transito, "Maria") {
		t.Fatalf("item em trânsito deveria ser elegível")
	}
}

func TestTotalVendaSelecaoCenarioMaria(t *testing.T) {
	// Dois itens entregues, vendas 100.00 e 50.00 → total 150.00 e
	// comissão 2.25
	a := order.NewOrderItem("A", "Item A", "un", dec("2"))
	a.PrecoVenda = dec("50.00")
	b := order.NewOrderItem("B", "Item B", "un", dec("1"))
	b.PrecoVenda = dec("50.00")

	total := TotalVendaSelecao([]*order.OrderItem{a, b})
	if !total.Equal(dec("150.00")) {
		t.Fatalf("total de venda esperado 150.00, obtido %s", total)
	}
	if !CalcularComissao(total).Equal(dec("2.25")) {
		t.Fatalf("comissão esperada 2.25, obtido %s", CalcularComissao(total))
	}
}

func TestPagamentoNaoMutaItensAlemDoPago(t *testing.T) {
	// A exclusão e recriação de um pagamento sobre a mesma seleção deve
	// reproduzir o mesmo total: o ciclo de vida do pagamento só toca a
	// marca de pago
	it := order.NewOrderItem("C", "Item C", "un", dec("4"))
	it.PrecoVenda = dec("25.00")
	it.Responsavel = "Maria"
	it.Status = order.StatusEntregue

	antes := TotalVendaSelecao([]*order.OrderItem{it})
	it.Pago = true
	it.Pago = false
	depois := TotalVendaSelecao([]*order.OrderItem{it})

	if !antes.Equal(depois) {
		t.Fatalf("total de venda mudou após ciclo de pagamento: %s vs %s", antes, depois)
	}
}
