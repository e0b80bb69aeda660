package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/domain/commission"
	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
	"github.com/rafaelduarte/gestor-compras/internal/infrastructure/database"
)

// Erros específicos do repositório
var (
	ErrPagamentoNotFound = errors.New("pagamento não encontrado")
)

// CommissionRepository implementa a interface commission.Repository
type CommissionRepository struct {
	db *pgxpool.Pool
}

// NewCommissionRepository cria uma nova instância de CommissionRepository
func NewCommissionRepository(db *pgxpool.Pool) commission.Repository {
	return &CommissionRepository{
		db: db,
	}
}

// Create implementa commission.Repository.Create: grava o pagamento e
// marca os itens referenciados como pagos na mesma transação
func (r *CommissionRepository) Create(ctx context.Context, p *commission.Pagamento) error {
	itens, err := json.Marshal(p.ItensIDs)
	if err != nil {
		return fmt.Errorf("erro ao converter seleção para JSON: %w", err)
	}

	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		if err := setPagoFlag(ctx, tx, p.ItensIDs, true); err != nil {
			return err
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO pagamentos_comissao (
				id, responsavel, itens_ids, percentual, total_venda,
				valor_comissao, data
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, p.Responsavel, itens, p.Percentual, p.TotalVenda,
			p.ValorComissao, p.Data)

		if err != nil {
			return fmt.Errorf("erro ao registrar pagamento: %w", err)
		}
		return nil
	})
}

// setPagoFlag atualiza a marca de pago dos itens referenciados, pedido a
// pedido, dentro da transação
func setPagoFlag(ctx context.Context, tx pgx.Tx, refs []commission.ItemRef, pago bool) error {
	porPedido := make(map[string][]int)
	for _, ref := range refs {
		porPedido[ref.OrderID] = append(porPedido[ref.OrderID], ref.ItemIndex)
	}

	for orderID, indices := range porPedido {
		var itemsJSON []byte
		err := tx.QueryRow(ctx,
			"SELECT items FROM purchase_orders WHERE id = $1 FOR UPDATE",
			orderID).Scan(&itemsJSON)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Pedido excluído após o pagamento: nada a reverter
				continue
			}
			return fmt.Errorf("erro ao carregar itens do pedido: %w", err)
		}

		var items []order.OrderItem
		if err := json.Unmarshal(itemsJSON, &items); err != nil {
			return fmt.Errorf("erro ao converter itens: %w", err)
		}

		for _, idx := range indices {
			if idx < 0 || idx >= len(items) {
				return fmt.Errorf("%w: índice %d", ErrOrderItemNotFound, idx)
			}
			items[idx].Pago = pago
		}

		atualizados, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("erro ao converter itens para JSON: %w", err)
		}

		if _, err := tx.Exec(ctx,
			"UPDATE purchase_orders SET items = $1, updated_at = NOW() WHERE id = $2",
			atualizados, orderID); err != nil {
			return fmt.Errorf("erro ao atualizar itens do pedido: %w", err)
		}
	}

	return nil
}

// FindByID implementa commission.Repository.FindByID
func (r *CommissionRepository) FindByID(ctx context.Context, id string) (*commission.Pagamento, error) {
	var p commission.Pagamento
	var itensJSON []byte

	err := r.db.QueryRow(ctx,
		`SELECT id, responsavel, itens_ids, percentual, total_venda,
			valor_comissao, data
		FROM pagamentos_comissao WHERE id = $1`,
		id).Scan(
		&p.ID, &p.Responsavel, &itensJSON, &p.Percentual, &p.TotalVenda,
		&p.ValorComissao, &p.Data)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPagamentoNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pagamento: %w", err)
	}

	if err := json.Unmarshal(itensJSON, &p.ItensIDs); err != nil {
		return nil, fmt.Errorf("erro ao converter seleção: %w", err)
	}

	return &p, nil
}

// List implementa commission.Repository.List
func (r *CommissionRepository) List(ctx context.Context, responsavel string, limit, offset int) ([]*commission.Pagamento, error) {
	query := `SELECT id, responsavel, itens_ids, percentual, total_venda,
			valor_comissao, data
		FROM pagamentos_comissao`
	args := []interface{}{}

	if responsavel != "" {
		query += " WHERE responsavel = $1 ORDER BY data DESC LIMIT $2 OFFSET $3"
		args = append(args, responsavel, limit, offset)
	} else {
		query += " ORDER BY data DESC LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pagamentos: %w", err)
	}
	defer rows.Close()

	pagamentos := make([]*commission.Pagamento, 0)
	for rows.Next() {
		var p commission.Pagamento
		var itensJSON []byte

		if err := rows.Scan(
			&p.ID, &p.Responsavel, &itensJSON, &p.Percentual, &p.TotalVenda,
			&p.ValorComissao, &p.Data); err != nil {
			return nil, fmt.Errorf("erro ao ler pagamento: %w", err)
		}

		if err := json.Unmarshal(itensJSON, &p.ItensIDs); err != nil {
			return nil, fmt.Errorf("erro ao converter seleção: %w", err)
		}

		pagamentos = append(pagamentos, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return pagamentos, nil
}

// Count implementa commission.Repository.Count
func (r *CommissionRepository) Count(ctx context.Context, responsavel string) (int, error) {
	var count int
	var err error

	if responsavel != "" {
		err = r.db.QueryRow(ctx,
			"SELECT COUNT(*) FROM pagamentos_comissao WHERE responsavel = $1",
			responsavel).Scan(&count)
	} else {
		err = r.db.QueryRow(ctx,
			"SELECT COUNT(*) FROM pagamentos_comissao").Scan(&count)
	}

	if err != nil {
		return 0, fmt.Errorf("erro ao contar pagamentos: %w", err)
	}

	return count, nil
}

// UpdateValor implementa commission.Repository.UpdateValor
func (r *CommissionRepository) UpdateValor(ctx context.Context, id string, valor decimal.Decimal) error {
	result, err := r.db.Exec(ctx,
		"UPDATE pagamentos_comissao SET valor_comissao = $1 WHERE id = $2",
		valor, id)

	if err != nil {
		return fmt.Errorf("erro ao atualizar valor da comissão: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPagamentoNotFound
	}

	return nil
}

// Delete implementa commission.Repository.Delete: remove o pagamento e
// reverte a marca de pago na mesma transação
func (r *CommissionRepository) Delete(ctx context.Context, id string) error {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		if err := setPagoFlag(ctx, tx, p.ItensIDs, false); err != nil {
			return err
		}

		result, err := tx.Exec(ctx,
			"DELETE FROM pagamentos_comissao WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("erro ao excluir pagamento: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrPagamentoNotFound
		}
		return nil
	})
}

// ListItensElegiveis implementa commission.Repository.ListItensElegiveis
func (r *CommissionRepository) ListItensElegiveis(ctx context.Context, responsavel string) ([]commission.ItemElegivelInfo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, numero_oc, items FROM purchase_orders
		WHERE items @> $1 OR items @> $2`,
		fmt.Sprintf(`[{"responsavel":%q,"status":"em_transito"}]`, responsavel),
		fmt.Sprintf(`[{"responsavel":%q,"status":"entregue"}]`, responsavel))
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens elegíveis: %w", err)
	}
	defer rows.Close()

	elegiveis := make([]commission.ItemElegivelInfo, 0)
	for rows.Next() {
		var orderID, numeroOC string
		var itemsJSON []byte

		if err := rows.Scan(&orderID, &numeroOC, &itemsJSON); err != nil {
			return nil, fmt.Errorf("erro ao ler pedido: %w", err)
		}

		var items []order.OrderItem
		if err := json.Unmarshal(itemsJSON, &items); err != nil {
			return nil, fmt.Errorf("erro ao converter itens: %w", err)
		}

		for i := range items {
			if commission.ItemElegivel(&items[i], responsavel) {
				elegiveis = append(elegiveis, commission.ItemElegivelInfo{
					Ref:      commission.ItemRef{OrderID: orderID, ItemIndex: i},
					NumeroOC: numeroOC,
					Item:     items[i],
				})
			}
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return elegiveis, nil
}

// ListResponsaveis implementa commission.Repository.ListResponsaveis
func (r *CommissionRepository) ListResponsaveis(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT it->>'responsavel'
		FROM purchase_orders, jsonb_array_elements(items) AS it
		WHERE COALESCE(it->>'responsavel', '') <> ''
		ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar responsáveis: %w", err)
	}
	defer rows.Close()

	responsaveis := make([]string, 0)
	for rows.Next() {
		var nome string
		if err := rows.Scan(&nome); err != nil {
			return nil, fmt.Errorf("erro ao ler responsável: %w", err)
		}
		responsaveis = append(responsaveis, nome)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return responsaveis, nil
}
