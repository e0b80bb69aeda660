package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/adapter/repository"
	"github.com/rafaelduarte/gestor-compras/internal/domain/user"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
	"github.com/rafaelduarte/gestor-compras/pkg/middleware"
)

type fakeUserRepo struct {
	users     []*user.User
	lastLogin string
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrUserDuplicateEmail
		}
	}
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]*user.User, error) {
	return r.users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, _ *user.User) error { return nil }

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id string) error {
	r.lastLogin = id
	return nil
}

func (r *fakeUserRepo) CountAdmins(_ context.Context) (int, error) {
	total := 0
	for _, u := range r.users {
		if u.IsAdmin() && u.IsActive() {
			total++
		}
	}
	return total, nil
}

func newAuthTestRouter(repo *fakeUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := NewAuthController(repo, logger.NewLogger())

	r := gin.New()
	r.POST("/auth/login", c.Login)
	r.GET("/auth/me", middleware.AuthMiddleware(), c.Me)
	return r
}

func authedRequest(t *testing.T, method, path, token string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req, httptest.NewRecorder()
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser("Fulano", email, password, role)
	if err != nil {
		t.Fatalf("criar usuário: %v", err)
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed usuário: %v", err)
	}
	return u
}

func TestAuthLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	repo := &fakeUserRepo{}
	r := newAuthTestRouter(repo)
	u := seedUser(t, repo, "fulano@example.com", "senha123", user.RoleOperador)

	rec := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"email":    "fulano@example.com",
		"password": "senha123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp dto.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AccessToken == "" {
		t.Errorf("esperava access_token na resposta")
	}
	if resp.User.Email != "fulano@example.com" {
		t.Errorf("email = %q", resp.User.Email)
	}
	if repo.lastLogin != u.ID {
		t.Errorf("último login não registrado")
	}
}

func TestAuthLoginSenhaErrada(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	repo := &fakeUserRepo{}
	r := newAuthTestRouter(repo)
	seedUser(t, repo, "fulano@example.com", "senha123", user.RoleOperador)

	rec := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"email":    "fulano@example.com",
		"password": "errada",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("esperava 401, veio %d", rec.Code)
	}
}

func TestAuthLoginEmailDesconhecido(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	r := newAuthTestRouter(&fakeUserRepo{})

	rec := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"email":    "ninguem@example.com",
		"password": "qualquer",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("esperava 401, veio %d", rec.Code)
	}
}

func TestAuthLoginUsuarioInativo(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	repo := &fakeUserRepo{}
	r := newAuthTestRouter(repo)
	u := seedUser(t, repo, "fulano@example.com", "senha123", user.RoleOperador)
	u.Status = user.StatusInactive

	rec := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"email":    "fulano@example.com",
		"password": "senha123",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("conta inativa deveria dar 401, veio %d", rec.Code)
	}
}

func TestAuthMeExigeToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	r := newAuthTestRouter(&fakeUserRepo{})

	rec := doJSON(t, r, http.MethodGet, "/auth/me", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("sem token deveria dar 401, veio %d", rec.Code)
	}
}

func TestAuthMeComTokenDoLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	repo := &fakeUserRepo{}
	r := newAuthTestRouter(repo)
	seedUser(t, repo, "fulano@example.com", "senha123", user.RoleAdmin)

	rec := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"email":    "fulano@example.com",
		"password": "senha123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login falhou: %d", rec.Code)
	}
	var login dto.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&login); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req, rec2 := authedRequest(t, http.MethodGet, "/auth/me", login.AccessToken)
	r.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d (body: %s)", rec2.Code, rec2.Body.String())
	}

	var me dto.UserResponse
	if err := json.NewDecoder(rec2.Body).Decode(&me); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if me.Role != "admin" {
		t.Errorf("role = %q, esperava admin", me.Role)
	}
}
