package handlers

import (
	"github.com/gin-gonic/gin"

	"basekit/internal/domain/auth"
	"basekit/internal/domain/user"
	"basekit/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles account registration and login.
type AuthHandler struct {
	*BaseHandler
	users *user.Manager
	jwt   *auth.JWTService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(base *BaseHandler, users *user.Manager, jwt *auth.JWTService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, users: users, jwt: jwt}
}

// RegisterRoutes attaches auth endpoints to the group.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
}

// Register creates a new account.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, u.ID)
}

// Login authenticates and issues an access token.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	u, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	token, expiresAt, err := h.jwt.GenerateAccessToken(u.ID, u.Username, u.Email)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}
