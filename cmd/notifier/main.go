package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/fraud-sentinel/internal/adapter/notifier"
	redisrepo "github.com/user/fraud-sentinel/internal/adapter/repository/redis"
	"github.com/user/fraud-sentinel/internal/pkg/config"
	"github.com/user/fraud-sentinel/internal/pkg/logger"
	"github.com/user/fraud-sentinel/internal/usecase"
)

const (
	consumerGroup      = "decision-notifiers"
	processingInterval = 1 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		slog.Error("REDIS_ADDR is required for the notifier worker")
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("starting notifier worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	log.Info("connected to redis")

	consumerName, err := os.Hostname()
	if err != nil {
		log.Warn("could not get hostname for consumer name, using default", "error", err)
		consumerName = "notifier-default"
	}

	stream, err := redisrepo.NewEventStream(redisClient, log, consumerGroup)
	if err != nil {
		log.Error("failed to create decision event stream", "error", err)
		os.Exit(1)
	}

	notifyUseCase := usecase.NewNotifyEventsUseCase(stream, notifier.NewStdoutNotifier(), log, consumerGroup, consumerName)

	ticker := time.NewTicker(processingInterval)
	defer ticker.Stop()

	log.Info("notifier worker started", "group", consumerGroup, "consumer", consumerName)

Loop:
	for {
		select {
		case <-ticker.C:
			if _, err := notifyUseCase.ProcessBatch(ctx); err != nil {
				log.Error("error processing decision events", "error", err)
			}
		case <-ctx.Done():
			log.Info("context cancelled, shutting down notifier loop")
			break Loop
		}
	}

	log.Info("notifier worker shut down gracefully")
}
