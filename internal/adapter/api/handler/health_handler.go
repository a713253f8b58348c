package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports connectivity of a backing dependency.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports service and store connectivity.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new HealthHandler. store may be nil.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// ServeHTTP answers GET /health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "store": "unknown"}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.PingContext(ctx); err != nil {
			status["store"] = "disconnected"
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status["store"] = "connected"
	}

	writeJSON(w, http.StatusOK, status)
}
