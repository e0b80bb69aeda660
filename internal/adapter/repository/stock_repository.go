package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
	"github.com/rafaelduarte/gestor-compras/internal/domain/stock"
	"github.com/rafaelduarte/gestor-compras/internal/infrastructure/database"
)

// Erros específicos do repositório
var (
	ErrEntradaManualNotFound = errors.New("entrada manual não encontrada")
)

// StockRepository implementa a interface stock.Repository
type StockRepository struct {
	db *pgxpool.Pool
}

// NewStockRepository cria uma nova instância de StockRepository
func NewStockRepository(db *pgxpool.Pool) stock.Repository {
	return &StockRepository{
		db: db,
	}
}

// ListEstoque implementa stock.Repository.ListEstoque: agrega, por código
// de item, os excedentes derivados dos pedidos, as entradas manuais e o
// consumo, reconciliando o saldo na consulta
func (r *StockRepository) ListEstoque(ctx context.Context) ([]*stock.ItemEstoque, error) {
	balanco := stock.NewBalanco()

	// Excedentes derivados dos pedidos
	rows, err := r.db.Query(ctx,
		"SELECT id, numero_oc, items FROM purchase_orders")
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pedidos: %w", err)
	}
	defer rows.Close()

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
			if !items[i].Status.ElegivelEstoque() {
				continue
			}
			excedente := items[i].Excedente()
			if excedente.IsZero() {
				continue
			}

			balanco.AddExcedente(items[i].CodigoItem, items[i].Descricao, items[i].Unidade,
				stock.OrigemOC{
					OrderID:   orderID,
					NumeroOC:  numeroOC,
					ItemIndex: i,
					Excedente: excedente,
				})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	// Entradas manuais
	manuais, err := r.ListEntradasManuais(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range manuais {
		balanco.AddEntradaManual(e)
	}

	// Consumos registrados
	consumos, err := r.ListConsumos(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, c := range consumos {
		balanco.AddConsumo(c)
	}

	return balanco.Itens(), nil
}

// ajustarItem aplica uma mutação ao item (pedido, índice) dentro de uma
// transação, reescrevendo a lista de itens
func (r *StockRepository) ajustarItem(ctx context.Context, orderID string, itemIndex int, mutate func(*order.OrderItem)) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		var itemsJSON []byte
		err := tx.QueryRow(ctx,
			"SELECT items FROM purchase_orders WHERE id = $1 FOR UPDATE",
			orderID).Scan(&itemsJSON)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("erro ao carregar itens do pedido: %w", err)
		}

		var items []order.OrderItem
		if err := json.Unmarshal(itemsJSON, &items); err != nil {
			return fmt.Errorf("erro ao converter itens: %w", err)
		}

		if itemIndex < 0 || itemIndex >= len(items) {
			return ErrOrderItemNotFound
		}

		mutate(&items[itemIndex])

		atualizados, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("erro ao converter itens para JSON: %w", err)
		}

		if _, err := tx.Exec(ctx,
			"UPDATE purchase_orders SET items = $1, updated_at = NOW() WHERE id = $2",
			atualizados, orderID); err != nil {
			return fmt.Errorf("erro ao atualizar itens do pedido: %w", err)
		}
		return nil
	})
}

// AjustarQuantidadeComprada implementa stock.Repository.AjustarQuantidadeComprada
func (r *StockRepository) AjustarQuantidadeComprada(ctx context.Context, orderID string, itemIndex int, novaQuantidade decimal.Decimal) error {
	return r.ajustarItem(ctx, orderID, itemIndex, func(it *order.OrderItem) {
		// A quantidade necessária nunca é alterada pelo ajuste
		it.QuantidadeCompradaManual = &novaQuantidade
	})
}

// LimparEstoque implementa stock.Repository.LimparEstoque
func (r *StockRepository) LimparEstoque(ctx context.Context, orderID string, itemIndex int) error {
	return r.ajustarItem(ctx, orderID, itemIndex, func(it *order.OrderItem) {
		necessaria := it.Quantidade
		it.QuantidadeCompradaManual = &necessaria
	})
}

// CreateEntradaManual implementa stock.Repository.CreateEntradaManual
func (r *StockRepository) CreateEntradaManual(ctx context.Context, e *stock.EntradaManual) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO estoque_manual (
			id, codigo_item, descricao, unidade, quantidade, observacao,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.CodigoItem, e.Descricao, e.Unidade, e.Quantidade,
		e.Observacao, e.CreatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar entrada manual: %w", err)
	}

	return nil
}

// ListEntradasManuais implementa stock.Repository.ListEntradasManuais
func (r *StockRepository) ListEntradasManuais(ctx context.Context) ([]*stock.EntradaManual, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, codigo_item, descricao, unidade, quantidade, observacao,
			created_at
		FROM estoque_manual
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar entradas manuais: %w", err)
	}
	defer rows.Close()

	entradas := make([]*stock.EntradaManual, 0)
	for rows.Next() {
		var e stock.EntradaManual
		if err := rows.Scan(
			&e.ID, &e.CodigoItem, &e.Descricao, &e.Unidade, &e.Quantidade,
			&e.Observacao, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler entrada manual: %w", err)
		}
		entradas = append(entradas, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return entradas, nil
}

// DeleteEntradaManual implementa stock.Repository.DeleteEntradaManual
func (r *StockRepository) DeleteEntradaManual(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM estoque_manual WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir entrada manual: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrEntradaManualNotFound
	}

	return nil
}

// CreateConsumo implementa stock.Repository.CreateConsumo. A trilha é
// append-only: nada é alterado nos itens de origem.
func (r *StockRepository) CreateConsumo(ctx context.Context, c *stock.Consumo) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO consumos_estoque (
			id, codigo_item, oc_destino, quantidade, data
		) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.CodigoItem, c.OCDestino, c.Quantidade, c.Data)

	if err != nil {
		return fmt.Errorf("erro ao registrar consumo: %w", err)
	}

	return nil
}

// ListConsumos implementa stock.Repository.ListConsumos
func (r *StockRepository) ListConsumos(ctx context.Context, codigoItem string) ([]*stock.Consumo, error) {
	query := `SELECT id, codigo_item, oc_destino, quantidade, data
		FROM consumos_estoque`
	args := []interface{}{}

	if codigoItem != "" {
		query += " WHERE codigo_item = $1"
		args = append(args, codigoItem)
	}
	query += " ORDER BY data DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar consumos: %w", err)
	}
	defer rows.Close()

	consumos := make([]*stock.Consumo, 0)
	for rows.Next() {
		var c stock.Consumo
		if err := rows.Scan(
			&c.ID, &c.CodigoItem, &c.OCDestino, &c.Quantidade, &c.Data); err != nil {
			return nil, fmt.Errorf("erro ao ler consumo: %w", err)
		}
		consumos = append(consumos, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return consumos, nil
}
