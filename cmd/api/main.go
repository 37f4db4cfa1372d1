package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "merkaz_backend/internal/http"
	"merkaz_backend/internal/http/router"
	"merkaz_backend/internal/leads"
	"merkaz_backend/internal/observability/metrics"
	"merkaz_backend/platform/config"
	"merkaz_backend/platform/httpkit"
	"merkaz_backend/platform/logger"
	"merkaz_backend/platform/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

const (
	shutdownTimeout = 10 * time.Second

	// A bucket idle for longer than limiterIdleWindow is full again, so
	// dropping it loses nothing.
	limiterSweepInterval = 5 * time.Minute
	limiterIdleWindow    = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	leadMetrics := metrics.NewLeadMetrics(registry)

	limiter, closeLimiter := initRateLimiter(ctx, cfg, log)
	if closeLimiter != nil {
		defer closeLimiter()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule, err := leads.NewModule(ctx, cfg, val, leadMetrics, log)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		panic("failed to initialize leads module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Limiter:  limiter,
		Gatherer: registry,
		Modules: []apphttp.Module{
			leadsModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initRateLimiter(ctx context.Context, cfg config.RateLimitConfig, log *logger.Logger) (httpkit.Limiter, func()) {
	perMinute := cfg.GetRateLimitPerMinute()
	if cfg.GetRedisURL() == "" {
		log.Info("REDIS_URL not configured; using in-process rate limiter", "perMinute", perMinute)
		return newMemoryLimiter(ctx, perMinute), nil
	}

	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL; falling back to in-process rate limiter", "error", err)
		return newMemoryLimiter(ctx, perMinute), nil
	}

	client := redis.NewClient(opts)
	log.Info("redis rate limiter initialized", "perMinute", perMinute)
	return httpkit.NewRedisRateLimiter(client, perMinute, time.Minute), func() {
		_ = client.Close()
	}
}

func newMemoryLimiter(ctx context.Context, perMinute int) *httpkit.IPRateLimiter {
	limiter := httpkit.PerMinute(perMinute)
	limiter.StartSweeper(ctx, limiterSweepInterval, limiterIdleWindow)
	return limiter
}
