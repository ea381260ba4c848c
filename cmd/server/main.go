package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/catalyst/backend/internal/config"
	"github.com/catalyst/backend/internal/logging"
	"github.com/catalyst/backend/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO", "json")
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.DatabaseURL, cfg.AutoMigrate)
	if err != nil {
		logging.Fatal("failed to open database", "error", err)
	}
	defer store.Close()

	if cfg.DevSecret() {
		slog.Warn("using the development session secret; set SESSION_SECRET in production")
	}
	if len(cfg.Staff) == 0 {
		slog.Warn("no staff accounts configured; admin endpoints are unreachable")
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(ctx, cfg, store),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "dialect", store.Dialect)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
