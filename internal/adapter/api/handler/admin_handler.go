package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/user/fraud-sentinel/internal/domain"
)

// AdminHandler exposes operational views of the decision event stream.
type AdminHandler struct {
	repo   domain.StreamAdminRepository
	stream string
	logger *slog.Logger
}

// NewAdminHandler creates a new AdminHandler bound to one stream.
func NewAdminHandler(repo domain.StreamAdminRepository, stream string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{repo: repo, stream: stream, logger: logger}
}

// GetGroupInfo handles GET /admin/stream/groups.
func (h *AdminHandler) GetGroupInfo(w http.ResponseWriter, r *http.Request) {
	groups, err := h.repo.GetGroupInfo(r.Context(), h.stream)
	if err != nil {
		h.logger.Error("failed to get stream group info", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get group info")
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// GetPendingSummary handles GET /admin/stream/groups/{group}/pending.
func (h *AdminHandler) GetPendingSummary(w http.ResponseWriter, r *http.Request) {
	group := r.PathValue("group")

	summary, err := h.repo.GetPendingSummary(r.Context(), h.stream, group)
	if err != nil {
		h.logger.Error("failed to get pending summary", "error", err, "group", group)
		writeError(w, http.StatusInternalServerError, "failed to get pending summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// TrimStream handles POST /admin/stream/trim.
func (h *AdminHandler) TrimStream(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MaxLen int64 `json:"max_len"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MaxLen < 0 {
		writeError(w, http.StatusBadRequest, "max_len must be a non-negative integer")
		return
	}

	removed, err := h.repo.TrimStream(r.Context(), h.stream, req.MaxLen)
	if err != nil {
		h.logger.Error("failed to trim stream", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to trim stream")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}
