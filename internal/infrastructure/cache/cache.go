package cache

import (
	"context"
	"time"

	"github.com/rafaelduarte/gestor-compras/internal/domain/stock"
)

// EstoqueCache guarda a visão agregada de estoque, que é derivada de uma
// varredura dos pedidos e por isso vale a pena reaproveitar entre
// requisições. A invalidação acontece a cada mutação de pedido.
type EstoqueCache interface {
	Get(ctx context.Context) ([]*stock.ItemEstoque, bool, error)
	Set(ctx context.Context, itens []*stock.ItemEstoque, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// NoopEstoqueCache é usado quando não há Redis configurado
type NoopEstoqueCache struct{}

func (NoopEstoqueCache) Get(_ context.Context) ([]*stock.ItemEstoque, bool, error) {
	return nil, false, nil
}

func (NoopEstoqueCache) Set(_ context.Context, _ []*stock.ItemEstoque, _ time.Duration) error {
	return nil
}

func (NoopEstoqueCache) Invalidate(_ context.Context) error {
	return nil
}
