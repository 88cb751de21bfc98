package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/auth"
	"github.com/BruksfildServices01/nextbarber-api/internal/cache"
	"github.com/BruksfildServices01/nextbarber-api/internal/config"
	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/httpresp"
	"github.com/BruksfildServices01/nextbarber-api/internal/metrics"
	"github.com/BruksfildServices01/nextbarber-api/internal/middleware"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
	"github.com/BruksfildServices01/nextbarber-api/internal/validators"
)

const revokedRefreshPrefix = "auth:revoked:"

type AuthHandler struct {
	db      *gorm.DB
	config  config.AuthConfig
	tokens  *auth.Tokens
	cache   cache.Store
	metrics *metrics.Metrics
}

func NewAuthHandler(
	db *gorm.DB,
	cfg config.AuthConfig,
	tokens *auth.Tokens,
	store cache.Store,
	m *metrics.Metrics,
) *AuthHandler {
	return &AuthHandler{
		db:      db,
		config:  cfg,
		tokens:  tokens,
		cache:   store,
		metrics: m,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"nombre" binding:"required"`
	Phone    string `json:"telefono"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"rol"`
}

type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"password_actual" binding:"required"`
	NewPassword     string `json:"password_nuevo" binding:"required,min=6"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		fail(c, "count users by email", err)
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "email_already_registered", "El email ya está registrado")
		return
	}

	if req.Role == "" {
		req.Role = models.RoleClient
	}
	if req.Role != models.RoleClient {
		httperr.Forbidden(c, "forbidden_role", "Solo puedes registrarte como cliente")
		return
	}

	if h.config.CheckEmailDomain && !validators.IsEmailDomainValid(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "El dominio del email no parece válido")
		return
	}

	user, err := createUser(c, h.db, email, req.Name, req.Phone, req.Password, req.Role)
	if err != nil {
		return
	}

	httpresp.Created(c, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	var user models.User
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", validators.NormalizeEmail(req.Username)).
		First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, "load user for login", err)
		return
	}

	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		h.metrics.RecordLogin("invalid_credentials")
		httperr.Unauthorized(c, "invalid_credentials", "Email o contraseña incorrectos")
		return
	}

	if !user.Active {
		h.metrics.RecordLogin("inactive")
		httperr.Forbidden(c, "inactive_user", "Usuario inactivo")
		return
	}

	pair, err := h.tokens.IssuePair(&user)
	if err != nil {
		fail(c, "issue tokens", err)
		return
	}

	h.metrics.RecordLogin("success")
	httpresp.OK(c, pair)
}

func (h *AuthHandler) Me(c *gin.Context) {
	httpresp.OK(c, middleware.CurrentUser(c))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		httperr.BadRequest(c, "wrong_password", "Contraseña actual incorrecta")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		fail(c, "hash password", err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(user).
		Update("password_hash", hash).Error; err != nil {
		fail(c, "update password", err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Contraseña actualizada correctamente"})
}

// Refresh trades a refresh token for a new pair. The presented token is
// claimed atomically, so concurrent refreshes with it yield one new pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	claims, ok := h.validRefresh(c, req.RefreshToken)
	if !ok {
		return
	}

	userID, _ := claims.UserID()

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "No se pudieron validar las credenciales")
			return
		}
		fail(c, "load user for refresh", err)
		return
	}
	if !user.Active {
		httperr.Forbidden(c, "inactive_user", "Usuario inactivo")
		return
	}

	claimed, err := h.revoke(c, claims)
	if err != nil {
		fail(c, "revoke refresh token", err)
		return
	}
	if !claimed {
		httperr.Unauthorized(c, "invalid_refresh_token", "Token de actualización inválido")
		return
	}

	pair, err := h.tokens.IssuePair(&user)
	if err != nil {
		fail(c, "issue tokens", err)
		return
	}

	httpresp.OK(c, pair)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	claims, ok := h.validRefresh(c, req.RefreshToken)
	if !ok {
		return
	}

	if claims.Subject != middleware.CurrentUser(c).ID.String() {
		httperr.Forbidden(c, "forbidden", "No tienes permisos para realizar esta acción")
		return
	}

	if _, err := h.revoke(c, claims); err != nil {
		fail(c, "revoke refresh token", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// --------- Refresh tokens ---------

func (h *AuthHandler) validRefresh(c *gin.Context, raw string) (*auth.Claims, bool) {
	claims, err := h.tokens.ParseRefresh(raw)
	if err != nil {
		httperr.Unauthorized(c, "invalid_refresh_token", "Token de actualización inválido")
		return nil, false
	}

	revoked, err := h.cache.Exists(c.Request.Context(), revokedRefreshPrefix+claims.ID)
	if err != nil {
		fail(c, "check revoked refresh token", err)
		return nil, false
	}
	if revoked {
		httperr.Unauthorized(c, "invalid_refresh_token", "Token de actualización inválido")
		return nil, false
	}

	return claims, true
}

// revoke marks the token as used. It reports false when another request
// revoked the same token first.
func (h *AuthHandler) revoke(c *gin.Context, claims *auth.Claims) (bool, error) {
	ttl := claims.Remaining(time.Now())
	if ttl <= 0 {
		ttl = time.Second
	}
	return h.cache.SetNX(c.Request.Context(), revokedRefreshPrefix+claims.ID, "1", ttl)
}
