package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/eclipse-sw360/sw360-search/internal/app"
	"github.com/eclipse-sw360/sw360-search/internal/config"
	logpkg "github.com/eclipse-sw360/sw360-search/internal/logger"
	"github.com/eclipse-sw360/sw360-search/internal/metrics"
	chiTransport "github.com/eclipse-sw360/sw360-search/internal/transport/chi"
	"github.com/eclipse-sw360/sw360-search/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting sw360 search server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("users_driver", cfg.Realms.Users.Driver),
		zap.String("catalog_driver", cfg.Realms.Catalog.Driver),
		zap.Int("max_concurrency", cfg.Search.MaxConcurrency),
	)

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	ctx := context.Background()
	a, err := app.New(ctx, &cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open realm stores", zap.Error(err))
	}
	defer a.Close()

	if err := a.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	server := chiTransport.NewServer(a.Search, a.Health, logger)
	handler := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
