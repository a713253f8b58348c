package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/user/fraud-sentinel/internal/adapter/api"
	"github.com/user/fraud-sentinel/internal/adapter/api/middleware"
	"github.com/user/fraud-sentinel/internal/adapter/metrics"
	"github.com/user/fraud-sentinel/internal/adapter/repository/postgres"
	redisrepo "github.com/user/fraud-sentinel/internal/adapter/repository/redis"
	"github.com/user/fraud-sentinel/internal/adapter/scoring"
	"github.com/user/fraud-sentinel/internal/domain"
	"github.com/user/fraud-sentinel/internal/pkg/config"
	"github.com/user/fraud-sentinel/internal/pkg/logger"
	"github.com/user/fraud-sentinel/internal/policy"
	"github.com/user/fraud-sentinel/internal/usecase"

	_ "github.com/lib/pq" // Keep for postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	m := metrics.NewPipelineMetrics()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		log.Error("failed to open postgres connection", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}

	// --- Policy Engine ---
	engine, err := policy.NewEngine(cfg.BlockThreshold, cfg.ApproveThreshold, cfg.AutoDecisions)
	if err != nil {
		log.Error("invalid decision policy configuration", "error", err)
		os.Exit(1)
	}

	// --- Repositories and Scoring Client ---
	alertRepo := postgres.NewAlertRepository(db, log)
	logRepo := postgres.NewDecisionLogRepository(db, log)
	apiKeyRepo := postgres.NewAPIKeyRepository(db, log, cfg.APIKeyCacheTTL, m)
	scorer := scoring.NewClient(cfg.ScoringURL, cfg.ScoringTimeout, log)

	// --- Admin and Metrics Server ---
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())

	// --- Optional Redis Fan-Out ---
	var publisher domain.EventPublisher
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("could not connect to redis, decision event fan-out disabled", "error", err)
		} else {
			stream, err := redisrepo.NewEventStream(redisClient, log, "")
			if err != nil {
				log.Error("failed to initialize decision event stream", "error", err)
				os.Exit(1)
			}
			publisher = stream
			adminRouter := api.NewAdminRouter(redisrepo.NewAdminRepository(redisClient, log), redisrepo.StreamKey, log)
			adminMux.Handle("/admin/", adminRouter)
		}
	}

	adminServer := &http.Server{
		Addr:    cfg.AdminAddr,
		Handler: adminMux,
	}

	go func() {
		log.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("admin & metrics server failed", "error", err)
		}
	}()

	// --- Decision Pipeline ---
	pipeline := usecase.NewDecisionPipeline(scorer, engine, alertRepo, logRepo, publisher, m, log)

	// --- API Server ---
	router := api.NewRouter(cfg, log, apiKeyRepo, pipeline, m, db)
	apiServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      middleware.Logging(log)(router),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		log.Info("starting decision service", "addr", apiServer.Addr)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("decision service failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	log.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		log.Error("admin server shutdown failed", "error", err)
	}
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error("decision service shutdown failed", "error", err)
	}

	log.Info("servers shut down gracefully")
}
