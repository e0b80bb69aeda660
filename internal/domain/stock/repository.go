package stock

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository define a interface para operações de repositório de estoque
type Repository interface {
	// ListEstoque retorna a visão agregada de estoque por código de item,
	// derivada dos excedentes dos pedidos mais as entradas manuais, com o
	// consumo reconciliado na consulta
	ListEstoque(ctx context.Context) ([]*ItemEstoque, error)

	// AjustarQuantidadeComprada define a quantidade comprada de um item de
	// pedido (ajuste manual); não altera a quantidade necessária
	AjustarQuantidadeComprada(ctx context.Context, orderID string, itemIndex int, novaQuantidade decimal.Decimal) error

	// LimparEstoque iguala a quantidade comprada à necessária para o item,
	// zerando sua contribuição de excedente
	LimparEstoque(ctx context.Context, orderID string, itemIndex int) error

	// CreateEntradaManual registra uma entrada manual de estoque
	CreateEntradaManual(ctx context.Context, e *EntradaManual) error

	// ListEntradasManuais lista as entradas manuais
	ListEntradasManuais(ctx context.Context) ([]*EntradaManual, error)

	// DeleteEntradaManual remove uma entrada manual
	DeleteEntradaManual(ctx context.Context, id string) error

	// CreateConsumo registra um consumo de excedente (append-only)
	CreateConsumo(ctx context.Context, c *Consumo) error

	// ListConsumos lista os consumos de um código de item; codigoItem vazio
	// lista todos
	ListConsumos(ctx context.Context, codigoItem string) ([]*Consumo, error)
}
