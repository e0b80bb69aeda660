package commission

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
)

// ItemElegivelInfo descreve um item elegível para comissão junto com sua
// origem (pedido + índice)
type ItemElegivelInfo struct {
	Ref      ItemRef
	NumeroOC string
	Item     order.OrderItem
}

// Repository define a interface para operações de repositório de comissões
type Repository interface {
	// Create registra um pagamento e marca os itens referenciados como
	// pagos, dentro de uma única transação
	Create(ctx context.Context, p *Pagamento) error

	// FindByID busca um pagamento pelo ID
	FindByID(ctx context.Context, id string) (*Pagamento, error)

	// List lista os pagamentos, mais recentes primeiro
	List(ctx context.Context, responsavel string, limit, offset int) ([]*Pagamento, error)

	// Count conta os pagamentos registrados
	Count(ctx context.Context, responsavel string) (int, error)

	// UpdateValor altera apenas o valor da comissão de um pagamento
	// (ajuste manual, sem revalidação contra preços atuais)
	UpdateValor(ctx context.Context, id string, valor decimal.Decimal) error

	// Delete remove um pagamento e reverte a marca de pago dos itens
	// referenciados, dentro de uma única transação
	Delete(ctx context.Context, id string) error

	// ListItensElegiveis retorna os itens em trânsito ou entregues, ainda
	// não pagos, do responsável informado
	ListItensElegiveis(ctx context.Context, responsavel string) ([]ItemElegivelInfo, error)

	// ListResponsaveis retorna os responsáveis distintos presentes nos
	// itens de todos os pedidos
	ListResponsaveis(ctx context.Context) ([]string, error)
}
