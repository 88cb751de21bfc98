package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/nextbarber-api/internal/audit"
	"github.com/BruksfildServices01/nextbarber-api/internal/auth"
	"github.com/BruksfildServices01/nextbarber-api/internal/cache"
	"github.com/BruksfildServices01/nextbarber-api/internal/config"
	dbpkg "github.com/BruksfildServices01/nextbarber-api/internal/db"
	"github.com/BruksfildServices01/nextbarber-api/internal/logger"
	"github.com/BruksfildServices01/nextbarber-api/internal/metrics"
	"github.com/BruksfildServices01/nextbarber-api/internal/routes"
	"github.com/BruksfildServices01/nextbarber-api/internal/storage"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Log, cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	db, err := dbpkg.NewDB(cfg.DB)
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}

	store, closeCache := openCache(cfg.Redis, zlog)
	defer closeCache()

	objects := openStorage(cfg.Storage, zlog)

	dispatcher := audit.NewDispatcher(audit.New(db), zlog)

	zlog.Info("payment gateways",
		zap.Bool("stripe_configured", cfg.Payments.StripeSecretKey != ""),
		zap.Bool("epayco_configured", cfg.Payments.EpaycoPublicKey != "" && cfg.Payments.EpaycoPrivate != ""),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Tokens:  auth.NewTokens(cfg.Auth),
		Cache:   store,
		Store:   objects,
		Metrics: metrics.New(),
		Audit:   dispatcher,
		Logger:  zlog,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(ctx); err != nil {
		zlog.Warn("audit queue not drained", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// openCache connects to Redis when configured and falls back to the
// in-process store otherwise.
func openCache(cfg config.RedisConfig, zlog *zap.Logger) (cache.Store, func()) {
	if cfg.URL == "" {
		zlog.Info("cache: in-memory")
		return cache.NewMemoryStore(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rs, err := cache.NewRedisStore(ctx, cfg.URL)
	if err != nil {
		zlog.Warn("cache: redis unavailable, using in-memory", zap.Error(err))
		return cache.NewMemoryStore(), func() {}
	}

	zlog.Info("cache: redis")
	return rs, func() { rs.Close() }
}

func openStorage(cfg config.StorageConfig, zlog *zap.Logger) storage.ObjectStore {
	if cfg.Bucket == "" {
		zlog.Info("storage: in-memory")
		return storage.NewMemoryStore(cfg.PublicBaseURL)
	}

	s3, err := storage.NewS3Store(cfg)
	if err != nil {
		zlog.Fatal("storage", zap.Error(err))
	}

	zlog.Info("storage: s3", zap.String("bucket", cfg.Bucket))
	return s3
}
