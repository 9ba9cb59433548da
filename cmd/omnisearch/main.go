package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/omnisearch/internal/app"
	"github.com/kailas-cloud/omnisearch/internal/config"
	dbRedis "github.com/kailas-cloud/omnisearch/internal/db/redis"
	logpkg "github.com/kailas-cloud/omnisearch/internal/logger"
	"github.com/kailas-cloud/omnisearch/internal/metrics"
	chiTransport "github.com/kailas-cloud/omnisearch/internal/transport/chi"
	"github.com/kailas-cloud/omnisearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, logpkg.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting omnisearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("key_prefix", cfg.Storage.KeyPrefix),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Username:   cfg.Database.Username,
		Password:   cfg.Database.Password,
		DB:         cfg.Database.DB,
		Standalone: cfg.Database.Standalone,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.Register()

	a, err := app.Build(store, app.SettingsFromConfig(&cfg), logger)
	if err != nil {
		logger.Fatal("Failed to wire search pipeline", zap.Error(err))
	}
	if cfg.Storage.EnsureSchema {
		if err := a.EnsureSchema(ctx, logger); err != nil {
			logger.Fatal("Failed to ensure search indexes", zap.Error(err))
		}
	}

	server := chiTransport.NewServer(a.Search, a.Health, chiTransport.Pagination{
		DefaultSize: cfg.Search.DefaultPageSize,
		MaxSize:     cfg.Search.MaxPageSize,
	}, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	handler := chiTransport.Handler(server, chiTransport.Options{BaseRouter: r})

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
