package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelduarte/gestor-compras/internal/domain/backup"
	"github.com/rafaelduarte/gestor-compras/internal/domain/commission"
	"github.com/rafaelduarte/gestor-compras/internal/domain/finance"
	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
	"github.com/rafaelduarte/gestor-compras/internal/infrastructure/database"
)

// BackupRepository implementa a interface backup.Repository
type BackupRepository struct {
	db *pgxpool.Pool
}

// NewBackupRepository cria uma nova instância de BackupRepository
func NewBackupRepository(db *pgxpool.Pool) backup.Repository {
	return &BackupRepository{
		db: db,
	}
}

// Export implementa backup.Repository.Export
func (r *BackupRepository) Export(ctx context.Context) (*backup.Snapshot, error) {
	snap := &backup.Snapshot{}
	var err error

	if snap.Pedidos, err = NewOrderRepository(r.db).ListAll(ctx); err != nil {
		return nil, err
	}
	if snap.Pagamentos, err = r.exportPagamentos(ctx); err != nil {
		return nil, err
	}

	financeRepo := NewFinanceRepository(r.db)
	if snap.Custos, err = financeRepo.ListCustos(ctx, "", 1_000_000, 0); err != nil {
		return nil, err
	}
	if snap.Fechamentos, err = financeRepo.ListFechamentos(ctx, 1_000_000, 0); err != nil {
		return nil, err
	}

	stockRepo := NewStockRepository(r.db)
	if snap.EstoqueManual, err = stockRepo.ListEntradasManuais(ctx); err != nil {
		return nil, err
	}
	if snap.Consumos, err = stockRepo.ListConsumos(ctx, ""); err != nil {
		return nil, err
	}

	if snap.Notas, err = NewFiscalRepository(r.db).ListAll(ctx); err != nil {
		return nil, err
	}

	return snap, nil
}

// Restore implementa backup.Repository.Restore
func (r *BackupRepository) Restore(ctx context.Context, snap *backup.Snapshot) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		// as notas referenciam pedidos; a ordem de limpeza respeita a FK
		for _, table := range []string{
			"notas_fiscais",
			"pagamentos_comissao",
			"custos_diversos",
			"fechamentos_lucro",
			"estoque_manual",
			"consumos_estoque",
			"purchase_orders",
		} {
			if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("erro ao limpar tabela %s: %w", table, err)
			}
		}

		for _, po := range snap.Pedidos {
			if err := restoreOrder(ctx, tx, po); err != nil {
				return err
			}
		}
		for _, p := range snap.Pagamentos {
			if err := restorePagamento(ctx, tx, p); err != nil {
				return err
			}
		}
		for _, c := range snap.Custos {
			_, err := tx.Exec(ctx,
				`INSERT INTO custos_diversos (id, descricao, valor, categoria, data)
				VALUES ($1, $2, $3, $4, $5)`,
				c.ID, c.Descricao, c.Valor, c.Categoria, c.Data)
			if err != nil {
				return fmt.Errorf("erro ao restaurar custo: %w", err)
			}
		}
		for _, f := range snap.Fechamentos {
			if err := restoreFechamento(ctx, tx, f); err != nil {
				return err
			}
		}
		for _, e := range snap.EstoqueManual {
			_, err := tx.Exec(ctx,
				`INSERT INTO estoque_manual (id, codigo_item, descricao, unidade, quantidade, observacao, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				e.ID, e.CodigoItem, e.Descricao, e.Unidade, e.Quantidade, e.Observacao, e.CreatedAt)
			if err != nil {
				return fmt.Errorf("erro ao restaurar entrada manual: %w", err)
			}
		}
		for _, cons := range snap.Consumos {
			_, err := tx.Exec(ctx,
				`INSERT INTO consumos_estoque (id, codigo_item, oc_destino, quantidade, data)
				VALUES ($1, $2, $3, $4, $5)`,
				cons.ID, cons.CodigoItem, cons.OCDestino, cons.Quantidade, cons.Data)
			if err != nil {
				return fmt.Errorf("erro ao restaurar consumo: %w", err)
			}
		}
		for _, nf := range snap.Notas {
			_, err := tx.Exec(ctx,
				`INSERT INTO notas_fiscais (id, order_id, item_index, tipo, numero_nf, arquivo_nome, arquivo_path, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				nf.ID, nf.OrderID, nf.ItemIndex, nf.Tipo, nf.NumeroNF, nf.ArquivoNome, nf.ArquivoPath, nf.CreatedAt)
			if err != nil {
				return fmt.Errorf("erro ao restaurar nota: %w", err)
			}
		}

		return nil
	})
}

func (r *BackupRepository) exportPagamentos(ctx context.Context) ([]*commission.Pagamento, error) {
	repo := NewCommissionRepository(r.db)
	return repo.List(ctx, "", 1_000_000, 0)
}

func restoreOrder(ctx context.Context, tx pgx.Tx, po *order.PurchaseOrder) error {
	items, err := json.Marshal(po.Items)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO purchase_orders (id, numero_oc, cliente, endereco_entrega, data_entrega, items, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		po.ID, po.NumeroOC, po.Cliente, po.EnderecoEntrega, po.DataEntrega, items, po.CreatedAt, po.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao restaurar pedido: %w", err)
	}
	return nil
}

func restorePagamento(ctx context.Context, tx pgx.Tx, p *commission.Pagamento) error {
	itens, err := json.Marshal(p.ItensIDs)
	if err != nil {
		return fmt.Errorf("erro ao converter referências para JSON: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO pagamentos_comissao (id, responsavel, itens_ids, percentual, total_venda, valor_comissao, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Responsavel, itens, p.Percentual, p.TotalVenda, p.ValorComissao, p.Data)
	if err != nil {
		return fmt.Errorf("erro ao restaurar pagamento: %w", err)
	}
	return nil
}

func restoreFechamento(ctx context.Context, tx pgx.Tx, f *finance.FechamentoLucro) error {
	resumo, err := json.Marshal(f.Resumo)
	if err != nil {
		return fmt.Errorf("erro ao converter resumo para JSON: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO fechamentos_lucro (id, resumo, observacao, data)
		VALUES ($1, $2, $3, $4)`,
		f.ID, resumo, f.Observacao, f.Data)
	if err != nil {
		return fmt.Errorf("erro ao restaurar fechamento: %w", err)
	}
	return nil
}
