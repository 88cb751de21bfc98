package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/auth"
	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

const (
	ContextUser     = "currentUser"
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

const credentialsDetail = "No se pudieron validar las credenciales"

// Role allow-lists attached to routes.
var (
	SuperAdminOnly = []string{models.RoleSuperAdmin}
	ShopAdmins     = []string{models.RoleSuperAdmin, models.RoleShopAdmin}
	AnyRole        = []string{models.RoleSuperAdmin, models.RoleShopAdmin, models.RoleClient}
)

// AuthMiddleware validates the bearer access token and loads the caller.
func AuthMiddleware(tokens *auth.Tokens, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := tokens.ParseAccess(parts[1])
		if err != nil {
			abortUnauthorized(c)
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c)
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortUnauthorized(c)
				return
			}
			_ = c.Error(err)
			httperr.Abort(c, http.StatusInternalServerError, "internal_error", "Error interno del servidor")
			return
		}

		if !user.Active {
			httperr.Abort(c, http.StatusForbidden, "inactive_user", "Usuario inactivo")
			return
		}

		c.Set(ContextUser, &user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)

		c.Next()
	}
}

// RequireRoles lets the request through only for the listed roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Abort(c, http.StatusForbidden, "forbidden", "No tienes permisos para realizar esta acción")
	}
}

// CurrentUser returns the caller stored by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUser); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	httperr.Abort(c, http.StatusUnauthorized, "invalid_credentials", credentialsDetail)
}
