package dto

import (
	"time"

	"github.com/rafaelduarte/gestor-compras/internal/domain/fiscal"
)

// NotaFiscalRequest representa os campos de formulário do upload de NF;
// o arquivo chega como multipart
type NotaFiscalRequest struct {
	OrderID   string `form:"order_id" binding:"required"`
	ItemIndex int    `form:"item_index"`
	Tipo      string `form:"tipo" binding:"required"`
	NumeroNF  string `form:"numero_nf" binding:"required"`
}

// NotasDownloadRequest seleciona as notas para download em arquivo único
type NotasDownloadRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// NotaFiscalResponse representa a resposta de nota fiscal
type NotaFiscalResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	ItemIndex   int       `json:"item_index"`
	Tipo        string    `json:"tipo"`
	NumeroNF    string    `json:"numero_nf"`
	ArquivoNome string    `json:"arquivo_nome,omitempty"`
	Duplicada   bool      `json:"duplicada"`
	CreatedAt   time.Time `json:"created_at"`
}

// RefNFResponse identifica um par (pedido, item) que usa um número de NF
type RefNFResponse struct {
	OrderID   string `json:"order_id"`
	NumeroOC  string `json:"numero_oc"`
	ItemIndex int    `json:"item_index"`
}

// DuplicataResponse descreve um número de NF repetido entre itens distintos
type DuplicataResponse struct {
	NumeroNF   string          `json:"numero_nf"`
	Usos       int             `json:"usos"`
	Referentes []RefNFResponse `json:"referentes"`
}

// NotaFiscalListResponse representa a lista de notas com as duplicidades
// detectadas
type NotaFiscalListResponse struct {
	Items      []NotaFiscalResponse `json:"items"`
	Duplicatas []DuplicataResponse  `json:"duplicatas"`
	Total      int                  `json:"total"`
}

// ToNotaFiscalResponse converte uma nota do domínio para DTO
func ToNotaFiscalResponse(nf *fiscal.NotaFiscal, duplicada bool) NotaFiscalResponse {
	return NotaFiscalResponse{
		ID:          nf.ID,
		OrderID:     nf.OrderID,
		ItemIndex:   nf.ItemIndex,
		Tipo:        string(nf.Tipo),
		NumeroNF:    nf.NumeroNF,
		ArquivoNome: nf.ArquivoNome,
		Duplicada:   duplicada,
		CreatedAt:   nf.CreatedAt,
	}
}

// ToNotaFiscalListResponse converte as notas e marca as duplicidades por
// número de NF
func ToNotaFiscalListResponse(notas []*fiscal.NotaFiscal, numerosOC map[string]string) *NotaFiscalListResponse {
	duplicatas := fiscal.MarcarDuplicatas(notas, numerosOC)

	numerosDuplicados := make(map[string]bool, len(duplicatas))
	dups := make([]DuplicataResponse, len(duplicatas))
	for i, d := range duplicatas {
		numerosDuplicados[d.NumeroNF] = true

		refs := make([]RefNFResponse, len(d.Referentes))
		for j, ref := range d.Referentes {
			refs[j] = RefNFResponse{
				OrderID:   ref.OrderID,
				NumeroOC:  ref.NumeroOC,
				ItemIndex: ref.ItemIndex,
			}
		}
		dups[i] = DuplicataResponse{
			NumeroNF:   d.NumeroNF,
			Usos:       d.Usos,
			Referentes: refs,
		}
	}

	items := make([]NotaFiscalResponse, len(notas))
	for i, nf := range notas {
		items[i] = ToNotaFiscalResponse(nf, numerosDuplicados[nf.NumeroNF])
	}

	return &NotaFiscalListResponse{
		Items:      items,
		Duplicatas: dups,
		Total:      len(items),
	}
}
