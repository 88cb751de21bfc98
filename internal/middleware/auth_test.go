package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/auth"
	"github.com/BruksfildServices01/nextbarber-api/internal/config"
	"github.com/BruksfildServices01/nextbarber-api/internal/db"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.Tokens, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.NewDB(config.DBConfig{
		URL: fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", t.Name()),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	tokens := auth.NewTokens(config.AuthConfig{
		JWTSecret:       "test-secret",
		Algorithm:       "HS256",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})

	client := &models.User{Email: "ana@example.com", Name: "Ana", Role: models.RoleClient, Active: true, PasswordHash: "x"}
	if err := gdb.Create(client).Error; err != nil {
		t.Fatalf("user: %v", err)
	}

	r := gin.New()
	r.GET("/any", AuthMiddleware(tokens, gdb), RequireRoles(AnyRole...), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Email)
	})
	r.GET("/root", AuthMiddleware(tokens, gdb), RequireRoles(SuperAdminOnly...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens, client
}

func get(r http.Handler, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, tokens, client := newAuthRouter(t)

	pair, err := tokens.IssuePair(client)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	ghost, _ := tokens.IssuePair(&models.User{ID: uuid.New(), Role: models.RoleClient})

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/any", "", http.StatusUnauthorized},
		{"wrong scheme", "/any", "Basic " + pair.AccessToken, http.StatusUnauthorized},
		{"refresh token as access", "/any", "Bearer " + pair.RefreshToken, http.StatusUnauthorized},
		{"unknown user", "/any", "Bearer " + ghost.AccessToken, http.StatusUnauthorized},
		{"valid", "/any", "Bearer " + pair.AccessToken, http.StatusOK},
		{"role not allowed", "/root", "Bearer " + pair.AccessToken, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(r, tc.path, tc.header)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tc.want, w.Body.String())
			}
			if tc.want == http.StatusUnauthorized && w.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Fatalf("missing WWW-Authenticate")
			}
			if tc.want == http.StatusOK && w.Body.String() != client.Email {
				t.Fatalf("current user = %q", w.Body.String())
			}
		})
	}
}
