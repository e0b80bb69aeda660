// Package backup define o instantâneo completo dos dados do sistema,
// usado pela exportação e pela restauração de backup.
package backup

import (
	"context"

	"github.com/rafaelduarte/gestor-compras/internal/domain/commission"
	"github.com/rafaelduarte/gestor-compras/internal/domain/finance"
	"github.com/rafaelduarte/gestor-compras/internal/domain/fiscal"
	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
	"github.com/rafaelduarte/gestor-compras/internal/domain/stock"
)

// Snapshot reúne todos os registros do sistema. As notas fiscais entram
// apenas como metadados; os arquivos em disco não fazem parte do backup.
type Snapshot struct {
	Pedidos       []*order.PurchaseOrder
	Pagamentos    []*commission.Pagamento
	Custos        []*finance.CustoDiverso
	Fechamentos   []*finance.FechamentoLucro
	EstoqueManual []*stock.EntradaManual
	Consumos      []*stock.Consumo
	Notas         []*fiscal.NotaFiscal
}

// Repository define a interface de exportação e restauração de backup
type Repository interface {
	// Export lê todos os registros do sistema
	Export(ctx context.Context) (*Snapshot, error)

	// Restore substitui todos os registros pelos do instantâneo, dentro
	// de uma única transação
	Restore(ctx context.Context, snap *Snapshot) error
}
