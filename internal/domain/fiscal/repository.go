package fiscal

import (
	"context"
)

// Repository define a interface para operações de repositório de notas fiscais
type Repository interface {
	// Create registra uma nova nota fiscal
	Create(ctx context.Context, nf *NotaFiscal) error

	// FindByID busca uma nota fiscal pelo ID
	FindByID(ctx context.Context, id string) (*NotaFiscal, error)

	// FindByIDs busca várias notas fiscais pelos IDs (download em lote)
	FindByIDs(ctx context.Context, ids []string) ([]*NotaFiscal, error)

	// ListByOrder lista as notas de um pedido; itemIndex negativo lista
	// todas as notas do pedido
	ListByOrder(ctx context.Context, orderID string, itemIndex int) ([]*NotaFiscal, error)

	// ListAll lista todas as notas fiscais
	ListAll(ctx context.Context) ([]*NotaFiscal, error)

	// Delete remove uma nota fiscal
	Delete(ctx context.Context, id string) error

	// DeleteByOrder remove todas as notas de um pedido (cascata da
	// exclusão do pedido)
	DeleteByOrder(ctx context.Context, orderID string) error
}
