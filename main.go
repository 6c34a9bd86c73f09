package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/text/language"

	"loan-decision/config"
	httpLayer "loan-decision/http"
	"loan-decision/metrics"
	"loan-decision/observability"
	"loan-decision/repository"
	"loan-decision/service"
	"loan-decision/static"
)

func main() {
	if err := run(); err != nil {
		slog.Error("loan-decision exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("starting loan-decision",
		"http_port", cfg.HTTPPort,
		"policy_rate", cfg.PolicyRate,
		"db_path", cfg.DB.Path,
	)

	store, err := repository.NewSQLiteStore(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	seeded, err := store.Seed(ctx, cfg.DB.SeedPath)
	if err != nil {
		return err
	}
	if seeded {
		logger.Info("seeded demo customers")
	}

	checks := map[string]httpLayer.Checker{"database": store}

	var decisions repository.DecisionRepository = store
	if cfg.DB.AuditStore == config.AuditStoreMemory {
		decisions = repository.NewDecisionRepositoryMemory()
		logger.Info("decision audit kept in memory only")
	}

	var cache repository.CacheRepository
	if cfg.Cache.RedisAddr != "" {
		redisCache, err := repository.NewRedisCache(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			return err
		}
		defer redisCache.Close()
		cache = redisCache
		checks["redis"] = redisCache
		logger.Info("using redis profile cache", "addr", cfg.Cache.RedisAddr)
	} else {
		cache = repository.NewMemoryCache()
		logger.Info("REDIS_ADDR not set, using in-memory profile cache")
	}
	profiles := repository.NewCachedProfileRepository(store, cache, cfg.Cache.TTL, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	engine := service.NewEligibilityEngine(cfg.PolicyRate)
	applications := service.NewApplicationService(
		profiles,
		decisions,
		engine,
		service.NewSummarizer(language.English),
		m,
		logger,
	)
	quotes := service.NewQuoteService(engine)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		Loans:       httpLayer.NewLoanHandler(applications, quotes, logger),
		Health:      httpLayer.NewHealthHandler(checks, logger),
		RateLimiter: rateLimiter,
		Metrics:     m,
		Gatherer:    registry,
		Static:      static.Files,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	logger.Info("server exited")
	return nil
}
