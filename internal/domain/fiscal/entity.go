package fiscal

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyNumeroNF = errors.New("número da NF não pode ser vazio")
	ErrInvalidTipo   = errors.New("tipo de NF inválido")
	ErrEmptyOrderID  = errors.New("pedido da NF não pode ser vazio")
)

// TipoNF distingue notas de compra (fornecedor) e de venda
type TipoNF string

const (
	TipoCompra TipoNF = "compra"
	TipoVenda  TipoNF = "venda"
)

// IsValid verifica se o tipo é conhecido
func (t TipoNF) IsValid() bool {
	return t == TipoCompra || t == TipoVenda
}

// NotaFiscal é uma nota fiscal anexada a um item de pedido (pedido + índice)
type NotaFiscal struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	ItemIndex   int       `json:"item_index"`
	Tipo        TipoNF    `json:"tipo"`
	NumeroNF    string    `json:"numero_nf"`
	ArquivoNome string    `json:"arquivo_nome,omitempty"`
	ArquivoPath string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewNotaFiscal cria uma nova nota fiscal vinculada a um item de pedido
func NewNotaFiscal(orderID string, itemIndex int, tipo TipoNF, numeroNF string) (*NotaFiscal, error) {
	if orderID == "" {
		return nil, ErrEmptyOrderID
	}
	if !tipo.IsValid() {
		return nil, ErrInvalidTipo
	}
	if numeroNF == "" {
		return nil, ErrEmptyNumeroNF
	}

	return &NotaFiscal{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		ItemIndex: itemIndex,
		Tipo:      tipo,
		NumeroNF:  numeroNF,
		CreatedAt: time.Now(),
	}, nil
}

// RefNF identifica o par (pedido, índice) que referencia um número de NF
type RefNF struct {
	OrderID   string `json:"order_id"`
	NumeroOC  string `json:"numero_oc"`
	ItemIndex int    `json:"item_index"`
}

// Duplicata descreve um número de NF usado em mais de um par (pedido, item).
// Puramente informativo: nenhuma operação é bloqueada por duplicidade.
type Duplicata struct {
	NumeroNF   string  `json:"numero_nf"`
	Usos       int     `json:"usos"`
	Referentes []RefNF `json:"referentes"`
}

// MarcarDuplicatas percorre as notas e retorna, por número de NF, as que
// aparecem em mais de um par (pedido, item) distinto
func MarcarDuplicatas(notas []*NotaFiscal, numerosOC map[string]string) []Duplicata {
	porNumero := make(map[string][]RefNF)
	vistos := make(map[string]map[RefNF]bool)

	for _, nf := range notas {
		ref := RefNF{OrderID: nf.OrderID, NumeroOC: numerosOC[nf.OrderID], ItemIndex: nf.ItemIndex}
		if vistos[nf.NumeroNF] == nil {
			vistos[nf.NumeroNF] = make(map[RefNF]bool)
		}
		if vistos[nf.NumeroNF][ref] {
			continue
		}
		vistos[nf.NumeroNF][ref] = true
		porNumero[nf.NumeroNF] = append(porNumero[nf.NumeroNF], ref)
	}

	duplicatas := make([]Duplicata, 0)
	for numero, refs := range porNumero {
		if len(refs) > 1 {
			duplicatas = append(duplicatas, Duplicata{
				NumeroNF:   numero,
				Usos:       len(refs),
				Referentes: refs,
			})
		}
	}
	return duplicatas
}
