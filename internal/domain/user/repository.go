package user

import (
	"context"
)

// Repository define a interface para operações de repositório de usuários
type Repository interface {
	// Create cria um novo usuário
	Create(ctx context.Context, u *User) error

	// FindByID busca um usuário pelo ID
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail busca um usuário pelo email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List lista os usuários com paginação
	List(ctx context.Context, limit, offset int) ([]*User, error)

	// Update atualiza os dados de um usuário
	Update(ctx context.Context, u *User) error

	// Delete remove um usuário
	Delete(ctx context.Context, id string) error

	// UpdateLastLogin registra o instante do último login
	UpdateLastLogin(ctx context.Context, id string) error

	// CountAdmins conta os usuários com perfil de administrador
	CountAdmins(ctx context.Context) (int, error)
}
