package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-cadastro/internal/adapters/storage"
	"pet-cadastro/internal/platform/config"
	"pet-cadastro/internal/platform/logger"
	"pet-cadastro/internal/platform/metrics"
	"pet-cadastro/internal/platform/pool"
	"pet-cadastro/internal/router"
)

// @title Pet Cadastro API
// @version 1.0
// @description Cadastro de donos y mascotas en una sola transacción.
// @BasePath /
func main() {
	cfg, err := config.Load()
	log := logger.NewFromEnv()
	if err != nil {
		log.Error("invalid config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DB.AutoMigrate {
		if err := storage.Migrate(ctx, cfg.DB); err != nil {
			log.Error("migrations failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		log.Info("migrations applied", map[string]any{"driver": cfg.DB.Driver})
	}

	// Sin pool no hay servicio: cualquier error acá termina el proceso.
	repo, closeDB, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Error("database unavailable", map[string]any{"driver": cfg.DB.Driver, "error": err.Error()})
		os.Exit(1)
	}
	defer closeDB()

	gate := pool.NewGate(cfg.DB.MaxConns, cfg.DB.QueueLimit)

	r := router.NewRouter(router.Options{
		Repo:    repo,
		Gate:    gate,
		Logger:  log,
		Metrics: metrics.New(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{
			"addr":        srv.Addr,
			"driver":      cfg.DB.Driver,
			"max_conns":   cfg.DB.MaxConns,
			"queue_limit": cfg.DB.QueueLimit,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", map[string]any{"error": err.Error()})
	}
}
