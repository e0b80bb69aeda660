package dto

import (
	"time"

	"github.com/rafaelduarte/gestor-compras/internal/domain/finance"
)

// CustoDiversoRequest representa a requisição de custo diverso
type CustoDiversoRequest struct {
	Descricao string     `json:"descricao" binding:"required"`
	Valor     float64    `json:"valor" binding:"required,gt=0"`
	Categoria string     `json:"categoria"`
	Data      *time.Time `json:"data"`
}

// FechamentoRequest marca o resumo de lucro atual como pago, arquivando-o
type FechamentoRequest struct {
	Observacao string `json:"observacao"`
}

// CustoDiversoResponse representa a resposta de custo diverso
type CustoDiversoResponse struct {
	ID        string    `json:"id"`
	Descricao string    `json:"descricao"`
	Valor     float64   `json:"valor"`
	Categoria string    `json:"categoria,omitempty"`
	Data      time.Time `json:"data"`
}

// CustoDiversoListResponse representa a resposta de lista de custos
type CustoDiversoListResponse struct {
	Items      []CustoDiversoResponse `json:"items"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	Size       int                    `json:"size"`
	TotalPages int                    `json:"total_pages"`
}

// LucroResponsavelResponse representa a parcela de lucro de um responsável
type LucroResponsavelResponse struct {
	Responsavel string  `json:"responsavel"`
	TotalVenda  float64 `json:"total_venda"`
	Lucro       float64 `json:"lucro"`
	QtdItens    int     `json:"qtd_itens"`
}

// ResumoLucroResponse representa o sumário de lucro calculado
type ResumoLucroResponse struct {
	TotalVenda        float64                    `json:"total_venda"`
	TotalCusto        float64                    `json:"total_custo"`
	LucroBruto        float64                    `json:"lucro_bruto"`
	CustosDiversos    float64                    `json:"custos_diversos"`
	LucroFinal        float64                    `json:"lucro_final"`
	PorResponsavel    []LucroResponsavelResponse `json:"por_responsavel"`
	QtdPedidos        int                        `json:"qtd_pedidos"`
	QtdItensComprados int                        `json:"qtd_itens_comprados"`
}

// FechamentoResponse representa um fechamento arquivado
type FechamentoResponse struct {
	ID         string              `json:"id"`
	Resumo     ResumoLucroResponse `json:"resumo"`
	Observacao string              `json:"observacao,omitempty"`
	Data       time.Time           `json:"data"`
}

// FechamentoListResponse representa a lista de fechamentos
type FechamentoListResponse struct {
	Items []FechamentoResponse `json:"items"`
	Total int                  `json:"total"`
}

// ToCustoDiversoResponse converte um custo do domínio para DTO
func ToCustoDiversoResponse(c *finance.CustoDiverso) *CustoDiversoResponse {
	return &CustoDiversoResponse{
		ID:        c.ID,
		Descricao: c.Descricao,
		Valor:     round2(c.Valor),
		Categoria: c.Categoria,
		Data:      c.Data,
	}
}

// ToCustoDiversoListResponse converte uma lista de custos do domínio para DTO
func ToCustoDiversoListResponse(custos []*finance.CustoDiverso, total, page, size int) *CustoDiversoListResponse {
	items := make([]CustoDiversoResponse, len(custos))
	for i, c := range custos {
		items[i] = *ToCustoDiversoResponse(c)
	}

	return &CustoDiversoListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: CalculateTotalPages(total, size),
	}
}

// ToResumoLucroResponse converte o resumo de lucro do domínio para DTO
func ToResumoLucroResponse(r *finance.ResumoLucro) *ResumoLucroResponse {
	porResponsavel := make([]LucroResponsavelResponse, len(r.PorResponsavel))
	for i, lr := range r.PorResponsavel {
		porResponsavel[i] = LucroResponsavelResponse{
			Responsavel: lr.Responsavel,
			TotalVenda:  round2(lr.TotalVenda),
			Lucro:       round2(lr.Lucro),
			QtdItens:    lr.QtdItens,
		}
	}

	return &ResumoLucroResponse{
		TotalVenda:        round2(r.TotalVenda),
		TotalCusto:        round2(r.TotalCusto),
		LucroBruto:        round2(r.LucroBruto),
		CustosDiversos:    round2(r.CustosDiversos),
		LucroFinal:        round2(r.LucroFinal),
		PorResponsavel:    porResponsavel,
		QtdPedidos:        r.QtdPedidos,
		QtdItensComprados: r.QtdItensComprados,
	}
}

// ToFechamentoResponse converte um fechamento do domínio para DTO
func ToFechamentoResponse(f *finance.FechamentoLucro) *FechamentoResponse {
	return &FechamentoResponse{
		ID:         f.ID,
		Resumo:     *ToResumoLucroResponse(&f.Resumo),
		Observacao: f.Observacao,
		Data:       f.Data,
	}
}

// ToFechamentoListResponse converte a lista de fechamentos do domínio para DTO
func ToFechamentoListResponse(fechamentos []*finance.FechamentoLucro) *FechamentoListResponse {
	items := make([]FechamentoResponse, len(fechamentos))
	for i, f := range fechamentos {
		items[i] = *ToFechamentoResponse(f)
	}

	return &FechamentoListResponse{
		Items: items,
		Total: len(items),
	}
}
