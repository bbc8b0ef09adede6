package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dhanush217/Movie-review/internal/api"
	"github.com/dhanush217/Movie-review/internal/cache"
	"github.com/dhanush217/Movie-review/internal/config"
	"github.com/dhanush217/Movie-review/internal/service"
	"github.com/dhanush217/Movie-review/internal/store"
	"github.com/dhanush217/Movie-review/pkg/auth"
)

func main() {
	cfg := config.Load()

	level := slog.LevelInfo
	if !cfg.IsProduction() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		logger.Info("Closing PostgreSQL connection...")
		if err := db.Close(); err != nil {
			logger.Error("Failed to close PostgreSQL connection", slog.String("error", err.Error()))
		}
	}()
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Connected to PostgreSQL")

	movieStore, err := store.NewPostgresMovieStore(db, logger)
	if err != nil {
		logger.Error("Failed to initialize movie store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	reviewStore, err := store.NewPostgresReviewStore(db, logger)
	if err != nil {
		logger.Error("Failed to initialize review store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	userStore, err := store.NewPostgresUserStore(db, logger)
	if err != nil {
		logger.Error("Failed to initialize user store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var movieCache *cache.MovieCache
	if cfg.RedisAddr != "" {
		movieCache, err = cache.NewMovieCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL, logger)
		if err != nil {
			logger.Error("Failed to initialize movie cache", slog.String("error", err.Error()))
			os.Exit(1)
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := movieCache.Ping(pingCtx); err != nil {
			logger.Error("Failed to ping Redis", slog.String("error", err.Error()))
			cancel()
			os.Exit(1)
		}
		cancel()
		defer movieCache.Close()
		logger.Info("Connected to Redis", slog.String("addr", cfg.RedisAddr))
	}

	tokenManager, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("Failed to initialize token manager", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// A nil *MovieCache inside a non-nil interface would dodge the services'
	// nil checks, so the interfaces are only assigned when the cache exists.
	var detailCache service.DetailCache
	var invalidator service.MovieDetailCache
	if movieCache != nil {
		detailCache = movieCache
		invalidator = movieCache
	}

	validate := validator.New()
	catalogSvc := service.NewCatalogService(movieStore, reviewStore, userStore, detailCache, logger)
	reviewSvc := service.NewReviewService(movieStore, reviewStore, invalidator, logger)
	watchlistSvc := service.NewWatchlistService(userStore, movieStore, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := api.NewMetrics(registry)

	handler := api.NewHandler(catalogSvc, reviewSvc, watchlistSvc, userStore, logger, validate, tokenManager, cfg.IsProduction())
	router := api.NewRouter(handler, metrics, registry)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      api.RequestLogging(logger)(router),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Movie review HTTP server starting", slog.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP ListenAndServe() failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
}
