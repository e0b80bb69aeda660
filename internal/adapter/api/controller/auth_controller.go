package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafaelduarte/gestor-compras/internal/adapter/api/dto"
	"github.com/rafaelduarte/gestor-compras/internal/adapter/repository"
	"github.com/rafaelduarte/gestor-compras/internal/domain/user"
	"github.com/rafaelduarte/gestor-compras/pkg/jwt"
	"github.com/rafaelduarte/gestor-compras/pkg/logger"
)

// tokenDuration é a validade do token de acesso
const tokenDuration = 24 * time.Hour

// AuthController gerencia as requisições de autenticação
type AuthController struct {
	userRepo user.Repository
	logger   logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userRepo user.Repository, logger logger.Logger) *AuthController {
	return &AuthController{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Login autentica um usuário e emite o token de acesso
// @Summary Login
// @Description Autentica por email e senha e retorna o token JWT com os dados do usuário
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	u, err := c.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "credenciais inválidas", ""))
			return
		}
		c.logger.Error("erro ao buscar usuário no login", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao autenticar", err.Error()))
		return
	}

	if !u.IsActive() || !u.CheckPassword(req.Password) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "credenciais inválidas", ""))
		return
	}

	token, err := jwt.GenerateToken(u.ID, u.Nome, string(u.Role), tokenDuration)
	if err != nil {
		c.logger.Error("erro ao gerar token", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar token", err.Error()))
		return
	}

	if err := c.userRepo.UpdateLastLogin(ctx, u.ID); err != nil {
		c.logger.Warn("falha ao registrar último login", "error", err)
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		User:        dto.ToUserResponse(u),
		AccessToken: token,
		ExpiresAt:   time.Now().Add(tokenDuration),
	})
}

// Refresh renova o token de acesso do usuário autenticado
// @Summary Renovar token
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	userID := ctx.GetString("user_id")
	nome := ctx.GetString("user_nome")
	role := ctx.GetString("user_role")

	token, err := jwt.GenerateToken(userID, nome, role, tokenDuration)
	if err != nil {
		c.logger.Error("erro ao renovar token", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao renovar token", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.RefreshTokenResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(tokenDuration),
	})
}

// Me retorna os dados do usuário autenticado
// @Summary Usuário autenticado
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	u, err := c.userRepo.FindByID(ctx, ctx.GetString("user_id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "usuário não encontrado", ""))
			return
		}
		c.logger.Error("erro ao buscar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar usuário", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}
