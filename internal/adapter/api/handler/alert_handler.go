package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/user/fraud-sentinel/internal/domain"
)

// PipelineUseCase is the slice of the decision pipeline the HTTP layer needs.
type PipelineUseCase interface {
	Ingest(ctx context.Context, tx domain.Transaction) (*domain.Alert, error)
	Override(ctx context.Context, alertID, action string) (*domain.Alert, error)
	RecentAlerts(ctx context.Context, limit int) ([]*domain.Alert, error)
	History(ctx context.Context, alertID string) ([]*domain.DecisionEntry, error)
}

// AlertHandler handles the transaction ingest and alert triage endpoints.
type AlertHandler struct {
	useCase PipelineUseCase
	logger  *slog.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(uc PipelineUseCase, logger *slog.Logger) *AlertHandler {
	return &AlertHandler{useCase: uc, logger: logger}
}

type actionRequest struct {
	Action string `json:"action"`
}

// CreateTransaction handles POST /transactions: runs the full decision
// pipeline for one inbound transaction.
func (h *AlertHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	// Unknown fields are ignored so clients can send richer payloads than
	// the pipeline consumes.
	var tx domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if tx.AccountID == "" {
		writeError(w, http.StatusBadRequest, "account_id is required")
		return
	}
	if tx.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	alert, err := h.useCase.Ingest(r.Context(), tx)
	if err != nil {
		h.writePipelineError(w, err, "ingest")
		return
	}

	writeJSON(w, http.StatusCreated, alert)
}

// ListAlerts handles GET /alerts: the recent triage feed.
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, ok := parsePositiveInt(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	alerts, err := h.useCase.RecentAlerts(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list alerts", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch alerts")
		return
	}
	if alerts == nil {
		alerts = []*domain.Alert{}
	}

	writeJSON(w, http.StatusOK, alerts)
}

// GetHistory handles GET /alerts/{id}/history: the alert's decision log.
func (h *AlertHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	entries, err := h.useCase.History(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "alert not found")
			return
		}
		h.logger.Error("failed to fetch decision history", "error", err, "alert_id", id)
		writeError(w, http.StatusInternalServerError, "failed to fetch decision history")
		return
	}
	if entries == nil {
		entries = []*domain.DecisionEntry{}
	}

	writeJSON(w, http.StatusOK, entries)
}

// ApplyAction handles POST /alerts/{id}/action: an analyst override.
func (h *AlertHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	alert, err := h.useCase.Override(r.Context(), id, req.Action)
	if err != nil {
		h.writePipelineError(w, err, "override")
		return
	}

	writeJSON(w, http.StatusOK, alert)
}

func (h *AlertHandler) writePipelineError(w http.ResponseWriter, err error, op string) {
	var partial *domain.PartialWriteError
	switch {
	case errors.Is(err, domain.ErrScoringUnavailable):
		writeError(w, http.StatusBadGateway, "scoring service unavailable")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "alert not found")
	case errors.Is(err, domain.ErrInvalidAction):
		writeError(w, http.StatusBadRequest, "invalid action")
	case errors.As(err, &partial):
		// The alert exists but its audit entry is missing; the caller must
		// know rather than treat the operation as clean success.
		h.logger.Error("partial write", "error", err, "op", op, "alert_id", partial.AlertID)
		writeError(w, http.StatusInternalServerError, "decision recorded but audit log append failed for alert "+partial.AlertID)
	default:
		h.logger.Error("pipeline operation failed", "error", err, "op", op)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
