// Package testutil builds fixtures for the HTTP-level tests: an in-memory
// sqlite database, seeded users and shops, and the full router.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	"github.com/BruksfildServices01/nextbarber-api/internal/auth"
	"github.com/BruksfildServices01/nextbarber-api/internal/cache"
	"github.com/BruksfildServices01/nextbarber-api/internal/config"
	"github.com/BruksfildServices01/nextbarber-api/internal/db"
	"github.com/BruksfildServices01/nextbarber-api/internal/metrics"
	"github.com/BruksfildServices01/nextbarber-api/internal/models"
	"github.com/BruksfildServices01/nextbarber-api/internal/routes"
	"github.com/BruksfildServices01/nextbarber-api/internal/storage"
)

const Password = "secreto123"

func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.NewDB(config.DBConfig{
		URL: fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func Config() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "NextBarber API", Version: "1.0.0", Env: "test"},
		Server: config.ServerConfig{
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			Algorithm:       "HS256",
			AccessTokenTTL:  30 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			LoginRatePerMin: 1000,
			LoginBurst:      1000,
			DefaultShopTZ:   "America/Bogota",
		},
	}
}

// Server is the full router over a fresh database.
type Server struct {
	DB      *gorm.DB
	Config  *config.Config
	Tokens  *auth.Tokens
	Cache   *cache.MemoryStore
	Store   *storage.MemoryStore
	Handler http.Handler
}

func NewServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := NewDB(t)
	cfg := Config()

	dispatcher := audit.NewDispatcher(audit.New(gdb), zap.NewNop())
	t.Cleanup(func() { dispatcher.Close(context.Background()) })

	s := &Server{
		DB:     gdb,
		Config: cfg,
		Tokens: auth.NewTokens(cfg.Auth),
		Cache:  cache.NewMemoryStore(),
		Store:  storage.NewMemoryStore("http://cdn.test"),
	}

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:      gdb,
		Config:  cfg,
		Tokens:  s.Tokens,
		Cache:   s.Cache,
		Store:   s.Store,
		Metrics: metrics.New(),
		Audit:   dispatcher,
		Logger:  zap.NewNop(),
	})
	s.Handler = r
	return s
}

// Do sends body as JSON unless it is already an io.Reader. token may be empty.
func (s *Server) Do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case io.Reader:
		rd = b
		contentType = "application/x-www-form-urlencoded"
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		rd = bytes.NewReader(raw)
		contentType = "application/json"
	}

	req := httptest.NewRequest(method, path, rd)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Handler.ServeHTTP(w, req)
	return w
}

// Token issues an access token for u.
func (s *Server) Token(t *testing.T, u *models.User) string {
	t.Helper()
	pair, err := s.Tokens.IssuePair(u)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return pair.AccessToken
}

func CreateUser(t *testing.T, gdb *gorm.DB, email, role string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(Password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         email,
		Role:         role,
		Active:       true,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func CreateShop(t *testing.T, gdb *gorm.DB, owner *models.User, plan, status string) *models.Barbershop {
	t.Helper()

	shop := &models.Barbershop{
		OwnerID:  owner.ID,
		Name:     "Barbería " + plan,
		Address:  "Carrera 7 # 12-34",
		Timezone: "America/Bogota",
		Status:   status,
		Plan:     plan,
		Photos:   datatypes.JSON("[]"),
	}
	if err := gdb.Create(shop).Error; err != nil {
		t.Fatalf("create shop: %v", err)
	}
	return shop
}

func CreateService(t *testing.T, gdb *gorm.DB, shop *models.Barbershop, price string, minutes int) *models.Service {
	t.Helper()

	svc := &models.Service{
		BarbershopID: shop.ID,
		Name:         "Corte clásico",
		Price:        decimal.RequireFromString(price),
		DurationMin:  minutes,
		Active:       true,
	}
	if err := gdb.Create(svc).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}

// Decode reads the recorder body into v.
func Decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}
