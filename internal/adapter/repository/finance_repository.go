package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/domain/finance"
)

// Erros específicos do repositório
var (
	ErrCustoNotFound      = errors.New("custo diverso não encontrado")
	ErrFechamentoNotFound = errors.New("fechamento não encontrado")
)

// FinanceRepository implementa a interface finance.Repository
type FinanceRepository struct {
	db *pgxpool.Pool
}

// NewFinanceRepository cria uma nova instância de FinanceRepository
func NewFinanceRepository(db *pgxpool.Pool) finance.Repository {
	return &FinanceRepository{
		db: db,
	}
}

// CreateCusto implementa finance.Repository.CreateCusto
func (r *FinanceRepository) CreateCusto(ctx context.Context, c *finance.CustoDiverso) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO custos_diversos (id, descricao, valor, categoria, data)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Descricao, c.Valor, c.Categoria, c.Data)

	if err != nil {
		return fmt.Errorf("erro ao criar custo diverso: %w", err)
	}

	return nil
}

// ListCustos implementa finance.Repository.ListCustos
func (r *FinanceRepository) ListCustos(ctx context.Context, categoria string, limit, offset int) ([]*finance.CustoDiverso, error) {
	query := "SELECT id, descricao, valor, categoria, data FROM custos_diversos"
	args := []interface{}{}

	if categoria != "" {
		query += " WHERE categoria = $1 ORDER BY data DESC LIMIT $2 OFFSET $3"
		args = append(args, categoria, limit, offset)
	} else {
		query += " ORDER BY data DESC LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar custos: %w", err)
	}
	defer rows.Close()

	custos := make([]*finance.CustoDiverso, 0)
	for rows.Next() {
		var c finance.CustoDiverso
		if err := rows.Scan(&c.ID, &c.Descricao, &c.Valor, &c.Categoria, &c.Data); err != nil {
			return nil, fmt.Errorf("erro ao ler custo: %w", err)
		}
		custos = append(custos, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return custos, nil
}

// CountCustos implementa finance.Repository.CountCustos
func (r *FinanceRepository) CountCustos(ctx context.Context, categoria string) (int, error) {
	var count int
	var err error

	if categoria != "" {
		err = r.db.QueryRow(ctx,
			"SELECT COUNT(*) FROM custos_diversos WHERE categoria = $1",
			categoria).Scan(&count)
	} else {
		err = r.db.QueryRow(ctx,
			"SELECT COUNT(*) FROM custos_diversos").Scan(&count)
	}

	if err != nil {
		return 0, fmt.Errorf("erro ao contar custos: %w", err)
	}

	return count, nil
}

// UpdateCusto implementa finance.Repository.UpdateCusto
func (r *FinanceRepository) UpdateCusto(ctx context.Context, c *finance.CustoDiverso) error {
	result, err := r.db.Exec(ctx,
		`UPDATE custos_diversos SET
			descricao = $1, valor = $2, categoria = $3, data = $4
		WHERE id = $5`,
		c.Descricao, c.Valor, c.Categoria, c.Data, c.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar custo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCustoNotFound
	}

	return nil
}

// DeleteCusto implementa finance.Repository.DeleteCusto
func (r *FinanceRepository) DeleteCusto(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM custos_diversos WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir custo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCustoNotFound
	}

	return nil
}

// SumCustos implementa finance.Repository.SumCustos
func (r *FinanceRepository) SumCustos(ctx context.Context, de, ate time.Time) (decimal.Decimal, error) {
	query := "SELECT COALESCE(SUM(valor), 0) FROM custos_diversos"
	clauses := []string{}
	args := []interface{}{}

	if !de.IsZero() {
		args = append(args, de)
		clauses = append(clauses, fmt.Sprintf("data >= $%d", len(args)))
	}
	if !ate.IsZero() {
		args = append(args, ate)
		clauses = append(clauses, fmt.Sprintf("data <= $%d", len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}

	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("erro ao somar custos: %w", err)
	}

	return total, nil
}

// CreateFechamento implementa finance.Repository.CreateFechamento
func (r *FinanceRepository) CreateFechamento(ctx context.Context, f *finance.FechamentoLucro) error {
	resumo, err := json.Marshal(f.Resumo)
	if err != nil {
		return fmt.Errorf("erro ao converter resumo para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO fechamentos_lucro (id, resumo, observacao, data)
		VALUES ($1, $2, $3, $4)`,
		f.ID, resumo, f.Observacao, f.Data)

	if err != nil {
		return fmt.Errorf("erro ao criar fechamento: %w", err)
	}

	return nil
}

// ListFechamentos implementa finance.Repository.ListFechamentos
func (r *FinanceRepository) ListFechamentos(ctx context.Context, limit, offset int) ([]*finance.FechamentoLucro, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, resumo, observacao, data
		FROM fechamentos_lucro
		ORDER BY data DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar fechamentos: %w", err)
	}
	defer rows.Close()

	fechamentos := make([]*finance.FechamentoLucro, 0)
	for rows.Next() {
		var f finance.FechamentoLucro
		var resumoJSON []byte

		if err := rows.Scan(&f.ID, &resumoJSON, &f.Observacao, &f.Data); err != nil {
			return nil, fmt.Errorf("erro ao ler fechamento: %w", err)
		}

		if err := json.Unmarshal(resumoJSON, &f.Resumo); err != nil {
			return nil, fmt.Errorf("erro ao converter resumo: %w", err)
		}

		fechamentos = append(fechamentos, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return fechamentos, nil
}

// DeleteFechamento implementa finance.Repository.DeleteFechamento
func (r *FinanceRepository) DeleteFechamento(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM fechamentos_lucro WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir fechamento: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrFechamentoNotFound
	}

	return nil
}
