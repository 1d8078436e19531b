package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/marketkit/shopgraph/internal/config"
	"github.com/marketkit/shopgraph/internal/domain/rules"
	"github.com/marketkit/shopgraph/internal/domain/similarity"
	logpkg "github.com/marketkit/shopgraph/internal/logger"
	"github.com/marketkit/shopgraph/internal/metrics"
	"github.com/marketkit/shopgraph/internal/repository/catalogfile"
	chiTransport "github.com/marketkit/shopgraph/internal/transport/chi"
	healthuc "github.com/marketkit/shopgraph/internal/usecase/health"
	recommenduc "github.com/marketkit/shopgraph/internal/usecase/recommend"
	"github.com/marketkit/shopgraph/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting shopgraph API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("products_path", cfg.Catalog.ProductsPath),
	)

	// Register recommendation metrics explicitly (no init())
	metrics.RegisterRecommendMetrics()

	// Startup configuration validation: the similarity table must be
	// symmetric and every rule tag must have an explanation phrase.
	// Neither failure is ever deferred to query time.
	table, err := similarity.NewTable(cfg.SimilarCategories)
	if err != nil {
		logger.Fatal("Invalid category similarity table", zap.Error(err))
	}
	explainer, err := rules.NewExplainer(rules.DefaultPhrases())
	if err != nil {
		logger.Fatal("Invalid explanation table", zap.Error(err))
	}

	// Load the catalog and build the graph. A load error is fatal: no
	// partial catalog is ever served.
	store := catalogfile.NewStore(cfg.Catalog.ProductsPath, cfg.Catalog.PairsPath, table, logger)
	if err := store.Load(); err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if cfg.Catalog.Watch {
		go func() {
			if err := store.Watch(watchCtx); err != nil {
				logger.Error("Catalog watcher stopped", zap.Error(err))
			}
		}()
		logger.Info("Catalog hot reload enabled")
	}

	// Create use case services
	recommendSvc := recommenduc.New(store, explainer).
		WithSearch(cfg.Search.MaxDepth, cfg.Search.MaxVisited).
		WithTopK(cfg.Search.DefaultTopK, cfg.Search.MaxTopK)
	healthSvc := healthuc.New(store)

	// Create chi server
	server := chiTransport.NewServer(recommendSvc, healthSvc, store, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiTransport.RequestLogMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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
	stopWatch()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
