package order

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAgregadosComFontesVazias(t *testing.T) {
	item := NewOrderItem("IT-001", "Parafuso", "un", dec("10"))

	if !item.TotalCusto().IsZero() {
		t.Fatalf("TotalCusto de fontes vazias deve ser zero, obtido %s", item.TotalCusto())
	}
	if !item.TotalFrete().IsZero() {
		t.Fatalf("TotalFrete de fontes vazias deve ser zero, obtido %s", item.TotalFrete())
	}
	if !item.TotalQtd().IsZero() {
		t.Fatalf("TotalQtd de fontes vazias deve ser zero, obtido %s", item.TotalQtd())
	}
	if !item.QtdRestante().Equal(dec("10")) {
		t.Fatalf("QtdRestante esperado 10, obtido %s", item.QtdRestante())
	}
}

func TestAgregadosSomamFontes(t *testing.T) {
	item := NewOrderItem("IT-002", "Cabo", "m", dec("100"))
	item.FontesCompra = []FonteCompra{
		{ID: "f1", Quantidade: dec("40"), PrecoUnitario: dec("2.50"), Frete: dec("12.00")},
		{ID: "f2", Quantidade: dec("35"), PrecoUnitario: dec("2.75"), Frete: dec("8.50")},
	}

	if !item.TotalQtd().Equal(dec("75")) {
		t.Fatalf("TotalQtd esperado 75, obtido %s", item.TotalQtd())
	}
	// 40×2.50 + 35×2.75 = 100 + 96.25
	if !item.TotalCusto().Equal(dec("196.25")) {
		t.Fatalf("TotalCusto esperado 196.25, obtido %s", item.TotalCusto())
	}
	if !item.TotalFrete().Equal(dec("20.50")) {
		t.Fatalf("TotalFrete esperado 20.50, obtido %s", item.TotalFrete())
	}
	if !item.QtdRestante().Equal(dec("25")) {
		t.Fatalf("QtdRestante esperado 25, obtido %s", item.QtdRestante())
	}
	if !item.Faltante().Equal(dec("25")) {
		t.Fatalf("Faltante esperado 25, obtido %s", item.Faltante())
	}
	if !item.Excedente().IsZero() {
		t.Fatalf("Excedente de item faltante deve ser zero, obtido %s", item.Excedente())
	}
}

func TestExcedenteDerivaDeCompraExcessiva(t *testing.T) {
	// Cenário da OC-1: necessária 10, fonte com 12 unidades a 5.00 e
	// frete 10.00
	item := NewOrderItem("IT-003", "Luva", "par", dec("10"))
	item.FontesCompra = []FonteCompra{
		{ID: "f1", Quantidade: dec("12"), PrecoUnitario: dec("5.00"), Frete: dec("10.00")},
	}

	if !item.TotalCusto().Equal(dec("60.00")) {
		t.Fatalf("TotalCusto esperado 60.00, obtido %s", item.TotalCusto())
	}
	if !item.TotalFrete().Equal(dec("10.00")) {
		t.Fatalf("TotalFrete esperado 10.00, obtido %s", item.TotalFrete())
	}
	if !item.QtdRestante().Equal(dec("-2")) {
		t.Fatalf("QtdRestante esperado -2, obtido %s", item.QtdRestante())
	}
	if !item.Excedente().Equal(dec("2")) {
		t.Fatalf("Excedente esperado 2, obtido %s", item.Excedente())
	}
	// |QtdRestante| negativo deve igualar o excedente
	if !item.QtdRestante().Abs().Equal(item.Excedente()) {
		t.Fatalf("excedente %s não corresponde ao módulo de qtdRestante %s",
			item.Excedente(), item.QtdRestante())
	}
}

func TestLucroLiquido(t *testing.T) {
	// preco_venda=20, quantidade=10, custo=60, frete=10, imposto=5,
	// frete_envio=3 → lucro = 200 − 60 − 10 − 5 − 3 = 122
	item := NewOrderItem("IT-004", "Chave", "un", dec("10"))
	item.PrecoVenda = dec("20")
	item.Imposto = dec("5")
	item.FreteEnvio = dec("3")
	item.FontesCompra = []FonteCompra{
		{ID: "f1", Quantidade: dec("10"), PrecoUnitario: dec("6"), Frete: dec("10")},
	}

	if !item.LucroLiquido().Equal(dec("122")) {
		t.Fatalf("LucroLiquido esperado 122, obtido %s", item.LucroLiquido())
	}
}

func TestLucroLiquidoSemDerivaDecimal(t *testing.T) {
	// Valores que acumulariam erro em float64 (0.1+0.2 etc.)
	item := NewOrderItem("IT-005", "Fita", "un", dec("3"))
	item.PrecoVenda = dec("0.10")
	item.FontesCompra = []FonteCompra{
		{ID: "f1", Quantidade: dec("1"), PrecoUnitario: dec("0.10"), Frete: dec("0")},
		{ID: "f2", Quantidade: dec("1"), PrecoUnitario: dec("0.10"), Frete: dec("0")},
	}

	// 0.30 − 0.20 = 0.10 exato
	if !item.LucroLiquido().Equal(dec("0.10")) {
		t.Fatalf("LucroLiquido esperado 0.10 exato, obtido %s", item.LucroLiquido())
	}
}

func TestQuantidadeCompradaManualSobrescreveFontes(t *testing.T) {
	item := NewOrderItem("IT-006", "Broca", "un", dec("10"))
	item.FontesCompra = []FonteCompra{
		{ID: "f1", Quantidade: dec("12"), PrecoUnitario: dec("1"), Frete: dec("0")},
	}

	manual := dec("15")
	item.QuantidadeCompradaManual = &manual

	if !item.QuantidadeComprada().Equal(dec("15")) {
		t.Fatalf("ajuste manual deveria prevalecer, obtido %s", item.QuantidadeComprada())
	}
	if !item.Excedente().Equal(dec("5")) {
		t.Fatalf("Excedente esperado 5 com ajuste manual, obtido %s", item.Excedente())
	}
	// quantidade necessária permanece intocada
	if !item.Quantidade.Equal(dec("10")) {
		t.Fatalf("quantidade necessária não pode mudar, obtido %s", item.Quantidade)
	}
}

func TestLucroLiquidoTotalConsideraApenasComprados(t *testing.T) {
	po, err := NewPurchaseOrder("OC-100", "ACME", "", nil)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	comprado := *NewOrderItem("A", "Item A", "un", dec("1"))
	comprado.Status = StatusComprado
	comprado.PrecoVenda = dec("50")

	pendente := *NewOrderItem("B", "Item B", "un", dec("1"))
	pendente.PrecoVenda = dec("999")

	po.AddItem(comprado)
	po.AddItem(pendente)

	if !po.LucroLiquidoTotal().Equal(dec("50")) {
		t.Fatalf("apenas itens comprados entram no lucro, obtido %s", po.LucroLiquidoTotal())
	}
}
