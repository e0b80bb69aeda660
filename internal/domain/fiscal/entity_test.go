package fiscal

import (
	"testing"
)

func TestNewNotaFiscalValidation(t *testing.T) {
	if _, err := NewNotaFiscal("", 0, TipoCompra, "123"); err != ErrEmptyOrderID {
		t.Fatalf("pedido vazio deveria ser rejeitado, obtido %v", err)
	}
	if _, err := NewNotaFiscal("po-1", 0, TipoNF("troca"), "123"); err != ErrInvalidTipo {
		t.Fatalf("tipo inválido deveria ser rejeitado, obtido %v", err)
	}
	if _, err := NewNotaFiscal("po-1", 0, TipoVenda, ""); err != ErrEmptyNumeroNF {
		t.Fatalf("número vazio deveria ser rejeitado, obtido %v", err)
	}

	nf, err := NewNotaFiscal("po-1", 2, TipoCompra, "000123")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if nf.ID == "" || nf.ItemIndex != 2 {
		t.Fatalf("nota criada com dados incorretos: %+v", nf)
	}
}

func TestMarcarDuplicatas(t *testing.T) {
	notas := []*NotaFiscal{
		{ID: "1", OrderID: "po-1", ItemIndex: 0, NumeroNF: "111"},
		{ID: "2", OrderID: "po-2", ItemIndex: 1, NumeroNF: "111"},
		{ID: "3", OrderID: "po-1", ItemIndex: 0, NumeroNF: "222"},
		// Mesmo par (pedido, item) com mesmo número não conta como
		// duplicidade
		{ID: "4", OrderID: "po-1", ItemIndex: 0, NumeroNF: "222"},
		{ID: "5", OrderID: "po-3", ItemIndex: 0, NumeroNF: "333"},
	}
	numerosOC := map[string]string{"po-1": "OC-1", "po-2": "OC-2", "po-3": "OC-3"}

	duplicatas := MarcarDuplicatas(notas, numerosOC)
	if len(duplicatas) != 1 {
		t.Fatalf("esperada 1 duplicata, obtidas %d", len(duplicatas))
	}

	dup := duplicatas[0]
	if dup.NumeroNF != "111" || dup.Usos != 2 {
		t.Fatalf("duplicata incorreta: %+v", dup)
	}
	if len(dup.Referentes) != 2 {
		t.Fatalf("duplicata deve listar os pares referentes, obtidos %d", len(dup.Referentes))
	}
	for _, ref := range dup.Referentes {
		if ref.NumeroOC == "" {
			t.Fatalf("referente sem número de OC: %+v", ref)
		}
	}
}

func TestMarcarDuplicatasSemDuplicidade(t *testing.T) {
	notas := []*NotaFiscal{
		{ID: "1", OrderID: "po-1", ItemIndex: 0, NumeroNF: "111"},
		{ID: "2", OrderID: "po-1", ItemIndex: 1, NumeroNF: "222"},
	}

	if got := MarcarDuplicatas(notas, map[string]string{"po-1": "OC-1"}); len(got) != 0 {
		t.Fatalf("não deveria haver duplicatas, obtidas %d", len(got))
	}
}
