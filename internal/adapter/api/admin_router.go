package api

import (
	"log/slog"
	"net/http"

	"github.com/user/fraud-sentinel/internal/adapter/api/handler"
	"github.com/user/fraud-sentinel/internal/domain"
)

// NewAdminRouter creates the HTTP router for stream admin operations,
// mounted on the admin/metrics server.
func NewAdminRouter(repo domain.StreamAdminRepository, stream string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	adminHandler := handler.NewAdminHandler(repo, stream, logger)

	mux.HandleFunc("GET /admin/stream/groups", adminHandler.GetGroupInfo)
	mux.HandleFunc("GET /admin/stream/groups/{group}/pending", adminHandler.GetPendingSummary)
	mux.HandleFunc("POST /admin/stream/trim", adminHandler.TrimStream)

	return mux
}
