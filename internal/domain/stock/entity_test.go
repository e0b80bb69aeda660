package stock

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewEntradaManualValidation(t *testing.T) {
	if _, err := NewEntradaManual("", "Cabo", "m", decimal.NewFromInt(5), ""); err != ErrEmptyCodigoItem {
		t.Fatalf("código vazio deveria ser rejeitado, obtido %v", err)
	}
	if _, err := NewEntradaManual("COD", "Cabo", "m", decimal.Zero, ""); err != ErrInvalidQuantity {
		t.Fatalf("quantidade zero deveria ser rejeitada, obtido %v", err)
	}

	e, err := NewEntradaManual("COD", "Cabo", "m", decimal.NewFromInt(5), "sobras")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Fatalf("entrada manual criada sem metadados: %+v", e)
	}
}

func TestNewConsumoValidation(t *testing.T) {
	if _, err := NewConsumo("", "OC-9", decimal.NewFromInt(1)); err != ErrEmptyCodigoItem {
		t.Fatalf("código vazio deveria ser rejeitado, obtido %v", err)
	}
	if _, err := NewConsumo("COD", "", decimal.NewFromInt(1)); err != ErrEmptyOCDestino {
		t.Fatalf("OC de destino vazia deveria ser rejeitada, obtido %v", err)
	}
	if _, err := NewConsumo("COD", "OC-9", decimal.NewFromInt(-1)); err != ErrInvalidQuantity {
		t.Fatalf("quantidade negativa deveria ser rejeitada, obtido %v", err)
	}

	c, err := NewConsumo("COD", "OC-9", decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if c.ID == "" || c.Data.IsZero() {
		t.Fatalf("consumo criado sem metadados: %+v", c)
	}
}
