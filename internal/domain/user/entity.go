package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyNome     = errors.New("nome não pode ser vazio")
	ErrInvalidEmail  = errors.New("email inválido")
	ErrShortPassword = errors.New("senha deve ter ao menos 6 caracteres")
	ErrInvalidRole   = errors.New("perfil de usuário inválido")
)

// Role define o perfil de acesso do usuário
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperador Role = "operador"
)

// IsValid verifica se o perfil é conhecido
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleOperador
}

// Status representa o estado da conta
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User representa um usuário do sistema
type User struct {
	ID           string     `json:"id"`
	Nome         string     `json:"nome"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Status       Status     `json:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewUser cria um novo usuário com a senha já criptografada
func NewUser(nome, email, password string, role Role) (*User, error) {
	if nome == "" {
		return nil, ErrEmptyNome
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, ErrShortPassword
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		ID:           uuid.New().String(),
		Nome:         nome,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Role:         role,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CheckPassword verifica se a senha corresponde ao hash armazenado
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword substitui a senha do usuário
func (u *User) SetPassword(password string) error {
	if len(password) < 6 {
		return ErrShortPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// IsActive verifica se a conta está ativa
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsAdmin verifica se o usuário tem perfil de administrador
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
