package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
)

// Erros específicos do repositório
var (
	ErrOrderNotFound     = errors.New("pedido não encontrado")
	ErrOrderDuplicateOC  = errors.New("já existe pedido com este número de OC")
	ErrOrderItemNotFound = errors.New("item do pedido não encontrado")
)

// OrderRepository implementa a interface order.Repository
type OrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository cria uma nova instância de OrderRepository
func NewOrderRepository(db *pgxpool.Pool) order.Repository {
	return &OrderRepository{
		db: db,
	}
}

// Create implementa order.Repository.Create
func (r *OrderRepository) Create(ctx context.Context, po *order.PurchaseOrder) error {
	exists, err := r.ExistsByNumeroOC(ctx, po.NumeroOC)
	if err != nil {
		return fmt.Errorf("erro ao verificar existência do pedido: %w", err)
	}
	if exists {
		return ErrOrderDuplicateOC
	}

	items, err := json.Marshal(po.Items)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO purchase_orders (
			id, numero_oc, cliente, endereco_entrega, data_entrega,
			items, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		po.ID, po.NumeroOC, po.Cliente, po.EnderecoEntrega, po.DataEntrega,
		items, po.CreatedAt, po.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrOrderDuplicateOC
		}
		return fmt.Errorf("erro ao criar pedido: %w", err)
	}

	return nil
}

// FindByID implementa order.Repository.FindByID
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.PurchaseOrder, error) {
	return r.findOne(ctx, "id = $1", id)
}

// FindByNumeroOC implementa order.Repository.FindByNumeroOC
func (r *OrderRepository) FindByNumeroOC(ctx context.Context, numeroOC string) (*order.PurchaseOrder, error) {
	return r.findOne(ctx, "numero_oc = $1", numeroOC)
}

func (r *OrderRepository) findOne(ctx context.Context, where string, arg interface{}) (*order.PurchaseOrder, error) {
	var po order.PurchaseOrder
	var itemsJSON []byte

	err := r.db.QueryRow(ctx,
		`SELECT id, numero_oc, cliente, endereco_entrega, data_entrega,
			items, created_at, updated_at
		FROM purchase_orders WHERE `+where,
		arg).Scan(
		&po.ID, &po.NumeroOC, &po.Cliente, &po.EnderecoEntrega,
		&po.DataEntrega, &itemsJSON, &po.CreatedAt, &po.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("erro ao buscar pedido: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &po.Items); err != nil {
		return nil, fmt.Errorf("erro ao converter itens: %w", err)
	}

	return &po, nil
}

// buildFilter monta a cláusula WHERE e os argumentos para o filtro
func buildFilter(filter order.Filter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Cliente != "" {
		add("cliente ILIKE $%d", "%"+filter.Cliente+"%")
	}
	if filter.Status != "" {
		add(`items @> $%d`, fmt.Sprintf(`[{"status":%q}]`, filter.Status))
	}
	if filter.Responsavel != "" {
		add(`items @> $%d`, fmt.Sprintf(`[{"responsavel":%q}]`, filter.Responsavel))
	}
	if filter.Busca != "" {
		args = append(args, "%"+filter.Busca+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			`(numero_oc ILIKE $%d OR EXISTS (
				SELECT 1 FROM jsonb_array_elements(items) AS it
				WHERE it->>'codigo_item' ILIKE $%d))`, n, n))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// List implementa order.Repository.List
func (r *OrderRepository) List(ctx context.Context, filter order.Filter, limit, offset int) ([]*order.PurchaseOrder, error) {
	where, args := buildFilter(filter)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx,
		fmt.Sprintf(`SELECT id, numero_oc, cliente, endereco_entrega, data_entrega,
			items, created_at, updated_at
		FROM purchase_orders%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos: %w", err)
	}
	defer rows.Close()

	return r.scanOrderRows(rows)
}

// ListAll implementa order.Repository.ListAll
func (r *OrderRepository) ListAll(ctx context.Context) ([]*order.PurchaseOrder, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, numero_oc, cliente, endereco_entrega, data_entrega,
			items, created_at, updated_at
		FROM purchase_orders
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos: %w", err)
	}
	defer rows.Close()

	return r.scanOrderRows(rows)
}

// Count implementa order.Repository.Count
func (r *OrderRepository) Count(ctx context.Context, filter order.Filter) (int, error) {
	where, args := buildFilter(filter)

	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM purchase_orders"+where,
		args...).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("erro ao contar pedidos: %w", err)
	}

	return count, nil
}

// Update implementa order.Repository.Update
func (r *OrderRepository) Update(ctx context.Context, po *order.PurchaseOrder) error {
	items, err := json.Marshal(po.Items)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE purchase_orders SET
			numero_oc = $1, cliente = $2, endereco_entrega = $3,
			data_entrega = $4, items = $5, updated_at = $6
		WHERE id = $7`,
		po.NumeroOC, po.Cliente, po.EnderecoEntrega, po.DataEntrega,
		items, po.UpdatedAt, po.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrOrderDuplicateOC
		}
		return fmt.Errorf("erro ao atualizar pedido: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// Delete implementa order.Repository.Delete. As notas fiscais do pedido
// são removidas em cascata pela chave estrangeira.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM purchase_orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir pedido: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// Exists implementa order.Repository.Exists
func (r *OrderRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM purchase_orders WHERE id = $1)",
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do pedido: %w", err)
	}

	return exists, nil
}

// ExistsByNumeroOC implementa order.Repository.ExistsByNumeroOC
func (r *OrderRepository) ExistsByNumeroOC(ctx context.Context, numeroOC string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM purchase_orders WHERE numero_oc = $1)",
		numeroOC).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do pedido: %w", err)
	}

	return exists, nil
}

// scanOrderRows é um método auxiliar para processar consultas que
// retornam múltiplos pedidos
func (r *OrderRepository) scanOrderRows(rows pgx.Rows) ([]*order.PurchaseOrder, error) {
	orders := make([]*order.PurchaseOrder, 0)

	for rows.Next() {
		var po order.PurchaseOrder
		var itemsJSON []byte

		err := rows.Scan(
			&po.ID, &po.NumeroOC, &po.Cliente, &po.EnderecoEntrega,
			&po.DataEntrega, &itemsJSON, &po.CreatedAt, &po.UpdatedAt)

		if err != nil {
			return nil, fmt.Errorf("erro ao ler pedido: %w", err)
		}

		if err := json.Unmarshal(itemsJSON, &po.Items); err != nil {
			return nil, fmt.Errorf("erro ao converter itens: %w", err)
		}

		orders = append(orders, &po)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return orders, nil
}
