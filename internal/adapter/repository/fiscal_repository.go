package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelduarte/gestor-compras/internal/domain/fiscal"
)

// Erros específicos do repositório
var (
	ErrNotaFiscalNotFound = errors.New("nota fiscal não encontrada")
)

// FiscalRepository implementa a interface fiscal.Repository
type FiscalRepository struct {
	db *pgxpool.Pool
}

// NewFiscalRepository cria uma nova instância de FiscalRepository
func NewFiscalRepository(db *pgxpool.Pool) fiscal.Repository {
	return &FiscalRepository{
		db: db,
	}
}

// Create implementa fiscal.Repository.Create
func (r *FiscalRepository) Create(ctx context.Context, nf *fiscal.NotaFiscal) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notas_fiscais (
			id, order_id, item_index, tipo, numero_nf, arquivo_nome,
			arquivo_path, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		nf.ID, nf.OrderID, nf.ItemIndex, nf.Tipo, nf.NumeroNF,
		nf.ArquivoNome, nf.ArquivoPath, nf.CreatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar nota fiscal: %w", err)
	}

	return nil
}

// FindByID implementa fiscal.Repository.FindByID
func (r *FiscalRepository) FindByID(ctx context.Context, id string) (*fiscal.NotaFiscal, error) {
	var nf fiscal.NotaFiscal

	err := r.db.QueryRow(ctx,
		`SELECT id, order_id, item_index, tipo, numero_nf, arquivo_nome,
			arquivo_path, created_at
		FROM notas_fiscais WHERE id = $1`,
		id).Scan(
		&nf.ID, &nf.OrderID, &nf.ItemIndex, &nf.Tipo, &nf.NumeroNF,
		&nf.ArquivoNome, &nf.ArquivoPath, &nf.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotaFiscalNotFound
		}
		return nil, fmt.Errorf("erro ao buscar nota fiscal: %w", err)
	}

	return &nf, nil
}

// FindByIDs implementa fiscal.Repository.FindByIDs
func (r *FiscalRepository) FindByIDs(ctx context.Context, ids []string) ([]*fiscal.NotaFiscal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, order_id, item_index, tipo, numero_nf, arquivo_nome,
			arquivo_path, created_at
		FROM notas_fiscais WHERE id = ANY($1)
		ORDER BY created_at`,
		ids)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar notas fiscais: %w", err)
	}
	defer rows.Close()

	return r.scanNotaRows(rows)
}

// ListByOrder implementa fiscal.Repository.ListByOrder
func (r *FiscalRepository) ListByOrder(ctx context.Context, orderID string, itemIndex int) ([]*fiscal.NotaFiscal, error) {
	query := `SELECT id, order_id, item_index, tipo, numero_nf, arquivo_nome,
			arquivo_path, created_at
		FROM notas_fiscais WHERE order_id = $1`
	args := []interface{}{orderID}

	if itemIndex >= 0 {
		query += " AND item_index = $2"
		args = append(args, itemIndex)
	}
	query += " ORDER BY created_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar notas fiscais: %w", err)
	}
	defer rows.Close()

	return r.scanNotaRows(rows)
}

// ListAll implementa fiscal.Repository.ListAll
func (r *FiscalRepository) ListAll(ctx context.Context) ([]*fiscal.NotaFiscal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, order_id, item_index, tipo, numero_nf, arquivo_nome,
			arquivo_path, created_at
		FROM notas_fiscais
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar notas fiscais: %w", err)
	}
	defer rows.Close()

	return r.scanNotaRows(rows)
}

// Delete implementa fiscal.Repository.Delete
func (r *FiscalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM notas_fiscais WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir nota fiscal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotaFiscalNotFound
	}

	return nil
}

// DeleteByOrder implementa fiscal.Repository.DeleteByOrder
func (r *FiscalRepository) DeleteByOrder(ctx context.Context, orderID string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM notas_fiscais WHERE order_id = $1", orderID)
	if err != nil {
		return fmt.Errorf("erro ao excluir notas do pedido: %w", err)
	}
	return nil
}

// scanNotaRows é um método auxiliar para processar consultas que
// retornam múltiplas notas fiscais
func (r *FiscalRepository) scanNotaRows(rows pgx.Rows) ([]*fiscal.NotaFiscal, error) {
	notas := make([]*fiscal.NotaFiscal, 0)

	for rows.Next() {
		var nf fiscal.NotaFiscal
		if err := rows.Scan(
			&nf.ID, &nf.OrderID, &nf.ItemIndex, &nf.Tipo, &nf.NumeroNF,
			&nf.ArquivoNome, &nf.ArquivoPath, &nf.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler nota fiscal: %w", err)
		}
		notas = append(notas, &nf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return notas, nil
}
