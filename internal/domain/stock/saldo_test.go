package stock

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBalancoReconciliaSaldo(t *testing.T) {
	b := NewBalanco()
	b.AddExcedente("COD-A", "Cabo", "m", OrigemOC{
		OrderID:   "po-1",
		NumeroOC:  "OC-1",
		ItemIndex: 0,
		Excedente: decimal.NewFromInt(5),
	})
	b.AddExcedente("COD-A", "", "", OrigemOC{
		OrderID:   "po-2",
		NumeroOC:  "OC-2",
		ItemIndex: 1,
		Excedente: decimal.NewFromInt(3),
	})

	manual, err := NewEntradaManual("COD-A", "Cabo", "m", decimal.NewFromInt(2), "")
	if err != nil {
		t.Fatalf("entrada manual: %v", err)
	}
	b.AddEntradaManual(manual)

	consumo, err := NewConsumo("COD-A", "OC-9", decimal.NewFromInt(4))
	if err != nil {
		t.Fatalf("consumo: %v", err)
	}
	b.AddConsumo(consumo)

	itens := b.Itens()
	if len(itens) != 1 {
		t.Fatalf("esperava 1 código, veio %d", len(itens))
	}
	it := itens[0]
	if !it.QuantidadeEstoque.Equal(decimal.NewFromInt(8)) {
		t.Errorf("quantidade de estoque esperada 8, veio %s", it.QuantidadeEstoque)
	}
	if !it.Disponivel.Equal(decimal.NewFromInt(6)) {
		t.Errorf("disponível esperado 6 (8+2-4), veio %s", it.Disponivel)
	}
	if len(it.OCsOrigem) != 2 {
		t.Errorf("esperava 2 origens, veio %d", len(it.OCsOrigem))
	}
}

func TestBalancoCodigoApenasConsumido(t *testing.T) {
	b := NewBalanco()
	b.AddExcedente("COD-B", "Porca", "UN", OrigemOC{
		OrderID:   "po-1",
		NumeroOC:  "OC-1",
		ItemIndex: 0,
		Excedente: decimal.NewFromInt(1),
	})

	consumo, err := NewConsumo("COD-A", "OC-9", decimal.NewFromInt(3))
	if err != nil {
		t.Fatalf("consumo: %v", err)
	}
	b.AddConsumo(consumo)

	itens := b.Itens()
	if len(itens) != 2 {
		t.Fatalf("código só com consumo deveria aparecer na listagem, veio %d itens", len(itens))
	}

	// Ordenado por código: COD-A antes de COD-B.
	soConsumo := itens[0]
	if soConsumo.CodigoItem != "COD-A" {
		t.Fatalf("esperava COD-A primeiro, veio %s", soConsumo.CodigoItem)
	}
	if !soConsumo.Disponivel.Equal(decimal.NewFromInt(-3)) {
		t.Errorf("disponível esperado -3, veio %s", soConsumo.Disponivel)
	}
	if !soConsumo.QuantidadeEstoque.IsZero() || !soConsumo.QuantidadeManual.IsZero() {
		t.Errorf("código sem origem deveria ter estoque zero: %+v", soConsumo)
	}
}
