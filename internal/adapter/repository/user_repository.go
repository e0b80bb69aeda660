package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelduarte/gestor-compras/internal/domain/user"
)

// Erros específicos do repositório
var (
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrUserDuplicateEmail = errors.New("já existe um usuário com este email")
)

// UserRepository implementa a interface user.Repository
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db *pgxpool.Pool) user.Repository {
	return &UserRepository{
		db: db,
	}
}

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, nome, email, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Nome, u.Email, u.PasswordHash, u.Role, u.Status, u.CreatedAt, u.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrUserDuplicateEmail
		}
		return fmt.Errorf("erro ao criar usuário: %w", err)
	}

	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx,
		`SELECT id, nome, email, password_hash, role, status, last_login_at, created_at, updated_at
		FROM users WHERE id = $1`, id)
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx,
		`SELECT id, nome, email, password_hash, role, status, last_login_at, created_at, updated_at
		FROM users WHERE email = $1`, strings.ToLower(email))
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var u user.User

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Nome, &u.Email, &u.PasswordHash, &u.Role, &u.Status,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	return &u, nil
}

// List implementa user.Repository.List
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, nome, email, password_hash, role, status, last_login_at, created_at, updated_at
		FROM users
		ORDER BY nome
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar usuários: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.Nome, &u.Email, &u.PasswordHash, &u.Role, &u.Status,
			&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler usuário: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return users, nil
}

// Update implementa user.Repository.Update
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx,
		`UPDATE users SET
			nome = $1, email = $2, password_hash = $3, role = $4, status = $5, updated_at = $6
		WHERE id = $7`,
		u.Nome, u.Email, u.PasswordHash, u.Role, u.Status, u.UpdatedAt, u.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrUserDuplicateEmail
		}
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete implementa user.Repository.Delete
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("erro ao excluir usuário: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin implementa user.Repository.UpdateLastLogin
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		"UPDATE users SET last_login_at = $1 WHERE id = $2",
		time.Now(), id)
	if err != nil {
		return fmt.Errorf("erro ao registrar login: %w", err)
	}

	return nil
}

// CountAdmins implementa user.Repository.CountAdmins
func (r *UserRepository) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM users WHERE role = $1 AND status = $2",
		user.RoleAdmin, user.StatusActive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar administradores: %w", err)
	}

	return count, nil
}
