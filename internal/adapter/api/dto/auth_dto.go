package dto

import (
	"time"

	"github.com/rafaelduarte/gestor-compras/internal/domain/user"
)

// LoginRequest representa os dados para login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse representa a resposta de login bem-sucedido
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// RefreshTokenResponse representa a resposta de renovação de token
type RefreshTokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// UserRequest representa a requisição de criação de usuário
type UserRequest struct {
	Nome     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

// UserUpdateRequest representa a atualização de um usuário; a senha só é
// trocada quando presente
type UserUpdateRequest struct {
	Nome     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
	Status   string `json:"status"`
}

// UserResponse representa a resposta de usuário
type UserResponse struct {
	ID          string     `json:"id"`
	Nome        string     `json:"nome"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UserListResponse representa a resposta de lista de usuários
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total"`
}

// ToUserResponse converte um usuário do domínio para DTO
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Nome:        u.Nome,
		Email:       u.Email,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToUserListResponse converte uma lista de usuários do domínio para DTO
func ToUserListResponse(users []*user.User) *UserListResponse {
	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = ToUserResponse(u)
	}

	return &UserListResponse{
		Items: items,
		Total: len(items),
	}
}
