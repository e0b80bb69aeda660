package order

import (
	"context"
)

// Filter define os filtros de listagem de pedidos
type Filter struct {
	Cliente     string
	Status      ItemStatus
	Responsavel string
	Busca       string // número da OC ou código de item
}

// Repository define a interface para operações de repositório de pedidos
type Repository interface {
	// Create cria um novo pedido de compra
	Create(ctx context.Context, po *PurchaseOrder) error

	// FindByID busca um pedido pelo ID
	FindByID(ctx context.Context, id string) (*PurchaseOrder, error)

	// FindByNumeroOC busca um pedido pelo número da OC
	FindByNumeroOC(ctx context.Context, numeroOC string) (*PurchaseOrder, error)

	// List lista pedidos com filtros e paginação
	List(ctx context.Context, filter Filter, limit, offset int) ([]*PurchaseOrder, error)

	// ListAll retorna todos os pedidos, sem paginação (backup, relatórios)
	ListAll(ctx context.Context) ([]*PurchaseOrder, error)

	// Count conta os pedidos que satisfazem o filtro
	Count(ctx context.Context, filter Filter) (int, error)

	// Update atualiza um pedido existente, inclusive sua lista de itens
	Update(ctx context.Context, po *PurchaseOrder) error

	// Delete remove um pedido e, em cascata, suas notas fiscais
	Delete(ctx context.Context, id string) error

	// Exists verifica se um pedido existe
	Exists(ctx context.Context, id string) (bool, error)

	// ExistsByNumeroOC verifica se já existe pedido com o número de OC
	ExistsByNumeroOC(ctx context.Context, numeroOC string) (bool, error)
}
