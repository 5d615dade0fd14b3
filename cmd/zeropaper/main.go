package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/config"
	apphttp "github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/http"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/services"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/storage"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/storage/memory"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/storage/sqlite"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
		Handler: slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: log.ParseLevel(cfg.LogLevel),
		}),
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	// Choose data backend (default: memory).
	var kv storage.KV
	switch cfg.DataBackend {
	case "sqlite":
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store",
				log.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		kv = store
		logger.Info("Initialized sqlite backend", log.FieldBackend, cfg.DataBackend)
	default:
		kv = memory.New()
		logger.Info("Initialized memory backend", log.FieldBackend, cfg.DataBackend)
	}
	defer kv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	writer := worker.NewWriter(kv, logger, cfg.PersistQueueSize)
	app := services.NewApp(ctx, kv, writer, logger, services.Options{})
	srv := apphttp.NewServer(":"+cfg.Port, app, logger)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return writer.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("Starting zeropaper server", "port", cfg.Port, log.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
