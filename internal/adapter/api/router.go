package api

import (
	"log/slog"
	"net/http"

	"github.com/user/fraud-sentinel/internal/adapter/api/handler"
	"github.com/user/fraud-sentinel/internal/adapter/api/middleware"
	"github.com/user/fraud-sentinel/internal/adapter/metrics"
	"github.com/user/fraud-sentinel/internal/domain"
	"github.com/user/fraud-sentinel/internal/pkg/config"
)

// NewRouter creates and configures the main HTTP router for the decision
// service. The write endpoints (ingest, override) sit behind API-key auth;
// ingest is additionally rate limited.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	apiKeyRepo domain.APIKeyRepository,
	pipeline handler.PipelineUseCase,
	m *metrics.PipelineMetrics,
	store handler.Pinger,
) http.Handler {
	mux := http.NewServeMux()

	alertHandler := handler.NewAlertHandler(pipeline, logger)

	authMiddleware := middleware.Auth(apiKeyRepo, logger)
	rateLimitMiddleware := middleware.RateLimit(cfg.IngestRateLimit, cfg.IngestRateBurst, m)

	mux.Handle("POST /transactions", authMiddleware(rateLimitMiddleware(http.HandlerFunc(alertHandler.CreateTransaction))))
	mux.HandleFunc("GET /alerts", alertHandler.ListAlerts)
	mux.HandleFunc("GET /alerts/{id}/history", alertHandler.GetHistory)
	mux.Handle("POST /alerts/{id}/action", authMiddleware(http.HandlerFunc(alertHandler.ApplyAction)))

	mux.Handle("GET /health", handler.NewHealthHandler(store))

	return mux
}
