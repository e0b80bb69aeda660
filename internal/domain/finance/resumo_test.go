package finance

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func itemComprado(responsavel string, qtd, precoVenda, precoCompra, frete, imposto, freteEnvio float64) order.OrderItem {
	it := order.NewOrderItem("A1", "Parafuso", "UN", dec(qtd))
	it.Responsavel = responsavel
	it.Status = order.StatusComprado
	it.PrecoVenda = dec(precoVenda)
	it.Imposto = dec(imposto)
	it.FreteEnvio = dec(freteEnvio)
	fonte, _ := order.NewFonteCompra(dec(qtd), dec(precoCompra), dec(frete), "Fornecedor", "")
	it.FontesCompra = []order.FonteCompra{*fonte}
	return *it
}

func TestCalcularResumo(t *testing.T) {
	po, err := order.NewPurchaseOrder("OC-1", "ACME", "", nil)
	if err != nil {
		t.Fatalf("criar pedido: %v", err)
	}

	// venda 10 × 20 = 200; custo 10 × 5 + 10 + 5 + 3 = 68; lucro 132
	po.AddItem(itemComprado("Maria", 10, 20, 5, 10, 5, 3))
	// pendente não entra na conta
	pendente := order.NewOrderItem("B2", "Porca", "UN", dec(100))
	pendente.PrecoVenda = dec(50)
	po.AddItem(*pendente)

	po2, err := order.NewPurchaseOrder("OC-2", "Beta", "", nil)
	if err != nil {
		t.Fatalf("criar pedido: %v", err)
	}
	// venda 4 × 10 = 40; custo 4 × 5 + 0 + 0 + 0 = 20; lucro 20
	po2.AddItem(itemComprado("João", 4, 10, 5, 0, 0, 0))

	resumo := CalcularResumo([]*order.PurchaseOrder{po, po2}, dec(30))

	if !resumo.TotalVenda.Equal(dec(240)) {
		t.Errorf("TotalVenda = %s, esperava 240", resumo.TotalVenda)
	}
	if !resumo.TotalCusto.Equal(dec(88)) {
		t.Errorf("TotalCusto = %s, esperava 88", resumo.TotalCusto)
	}
	if !resumo.LucroBruto.Equal(dec(152)) {
		t.Errorf("LucroBruto = %s, esperava 152", resumo.LucroBruto)
	}
	if !resumo.LucroFinal.Equal(dec(122)) {
		t.Errorf("LucroFinal = %s, esperava 122", resumo.LucroFinal)
	}
	if resumo.QtdPedidos != 2 {
		t.Errorf("QtdPedidos = %d, esperava 2", resumo.QtdPedidos)
	}
	if resumo.QtdItensComprados != 2 {
		t.Errorf("QtdItensComprados = %d, esperava 2", resumo.QtdItensComprados)
	}

	if len(resumo.PorResponsavel) != 2 {
		t.Fatalf("PorResponsavel = %d entradas, esperava 2", len(resumo.PorResponsavel))
	}
	// ordenado por nome
	if resumo.PorResponsavel[0].Responsavel != "João" || resumo.PorResponsavel[1].Responsavel != "Maria" {
		t.Errorf("ordem dos responsáveis: %s, %s", resumo.PorResponsavel[0].Responsavel, resumo.PorResponsavel[1].Responsavel)
	}
	if !resumo.PorResponsavel[1].Lucro.Equal(dec(132)) {
		t.Errorf("lucro de Maria = %s, esperava 132", resumo.PorResponsavel[1].Lucro)
	}
}

func TestCalcularResumoSemResponsavel(t *testing.T) {
	po, err := order.NewPurchaseOrder("OC-1", "ACME", "", nil)
	if err != nil {
		t.Fatalf("criar pedido: %v", err)
	}
	po.AddItem(itemComprado("", 2, 10, 5, 0, 0, 0))

	resumo := CalcularResumo([]*order.PurchaseOrder{po}, decimal.Zero)

	if len(resumo.PorResponsavel) != 0 {
		t.Errorf("itens sem responsável não entram no detalhamento, veio %d", len(resumo.PorResponsavel))
	}
	if !resumo.LucroBruto.Equal(dec(10)) {
		t.Errorf("LucroBruto = %s, esperava 10", resumo.LucroBruto)
	}
	if !resumo.LucroFinal.Equal(resumo.LucroBruto) {
		t.Errorf("sem custos diversos o lucro final deveria igualar o bruto")
	}
}

func TestCalcularResumoVazio(t *testing.T) {
	resumo := CalcularResumo(nil, dec(15))

	if resumo.QtdPedidos != 0 || resumo.QtdItensComprados != 0 {
		t.Errorf("resumo vazio não deveria contar pedidos nem itens")
	}
	if !resumo.LucroFinal.Equal(dec(-15)) {
		t.Errorf("LucroFinal = %s, esperava -15", resumo.LucroFinal)
	}
}
