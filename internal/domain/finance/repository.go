package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository define a interface para operações de repositório financeiro
type Repository interface {
	// CreateCusto registra um custo diverso
	CreateCusto(ctx context.Context, c *CustoDiverso) error

	// ListCustos lista os custos diversos, mais recentes primeiro;
	// categoria vazia lista todos
	ListCustos(ctx context.Context, categoria string, limit, offset int) ([]*CustoDiverso, error)

	// CountCustos conta os custos diversos
	CountCustos(ctx context.Context, categoria string) (int, error)

	// UpdateCusto atualiza um custo diverso existente
	UpdateCusto(ctx context.Context, c *CustoDiverso) error

	// DeleteCusto remove um custo diverso
	DeleteCusto(ctx context.Context, id string) error

	// SumCustos soma os custos diversos no período; datas zero ignoram o
	// limite correspondente
	SumCustos(ctx context.Context, de, ate time.Time) (decimal.Decimal, error)

	// CreateFechamento arquiva um fechamento de lucro
	CreateFechamento(ctx context.Context, f *FechamentoLucro) error

	// ListFechamentos lista os fechamentos arquivados
	ListFechamentos(ctx context.Context, limit, offset int) ([]*FechamentoLucro, error)

	// DeleteFechamento remove um fechamento arquivado
	DeleteFechamento(ctx context.Context, id string) error
}
