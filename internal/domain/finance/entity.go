package finance

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyDescricao = errors.New("descrição não pode ser vazia")
	ErrInvalidValor   = errors.New("valor deve ser maior que zero")
)

// CustoDiverso é uma despesa avulsa, sem relação com itens de pedido,
// subtraída do lucro agregado
type CustoDiverso struct {
	ID        string          `json:"id"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
	Categoria string          `json:"categoria,omitempty"`
	Data      time.Time       `json:"data"`
}

// NewCustoDiverso cria um novo custo diverso
func NewCustoDiverso(descricao string, valor decimal.Decimal, categoria string, data time.Time) (*CustoDiverso, error) {
	if descricao == "" {
		return nil, ErrEmptyDescricao
	}
	if valor.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidValor
	}
	if data.IsZero() {
		data = time.Now()
	}
	return &CustoDiverso{
		ID:        uuid.New().String(),
		Descricao: descricao,
		Valor:     valor,
		Categoria: categoria,
		Data:      data,
	}, nil
}

// LucroResponsavel é a parcela de lucro atribuída a um responsável
type LucroResponsavel struct {
	Responsavel string          `json:"responsavel"`
	TotalVenda  decimal.Decimal `json:"total_venda"`
	Lucro       decimal.Decimal `json:"lucro"`
	QtdItens    int             `json:"qtd_itens"`
}

// ResumoLucro é o sumário de lucro do sistema em um instante: soma do
// lucro líquido dos itens comprados menos os custos diversos
type ResumoLucro struct {
	TotalVenda        decimal.Decimal    `json:"total_venda"`
	TotalCusto        decimal.Decimal    `json:"total_custo"`
	LucroBruto        decimal.Decimal    `json:"lucro_bruto"`
	CustosDiversos    decimal.Decimal    `json:"custos_diversos"`
	LucroFinal        decimal.Decimal    `json:"lucro_final"`
	PorResponsavel    []LucroResponsavel `json:"por_responsavel"`
	QtdPedidos        int                `json:"qtd_pedidos"`
	QtdItensComprados int                `json:"qtd_itens_comprados"`
}

// FechamentoLucro arquiva uma cópia do resumo de lucro no momento em que
// foi marcado como pago, imune a alterações posteriores dos dados
type FechamentoLucro struct {
	ID         string      `json:"id"`
	Resumo     ResumoLucro `json:"resumo"`
	Observacao string      `json:"observacao,omitempty"`
	Data       time.Time   `json:"data"`
}

// NewFechamentoLucro cria um fechamento a partir do resumo atual
func NewFechamentoLucro(resumo ResumoLucro, observacao string) *FechamentoLucro {
	return &FechamentoLucro{
		ID:         uuid.New().String(),
		Resumo:     resumo,
		Observacao: observacao,
		Data:       time.Now(),
	}
}
