package middleware

import (
	"log/slog"
	"net/http"

	"github.com/user/fraud-sentinel/internal/domain"
)

// APIKeyHeader carries the credential for the write endpoints (transaction
// ingest and analyst override).
const APIKeyHeader = "X-API-Key"

// Auth guards a handler with an API key check. Rejections use the same JSON
// error envelope as the decision endpoints themselves.
func Auth(repo domain.APIKeyRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				logger.Warn("request without API key", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
				writeError(w, http.StatusUnauthorized, "API key required")
				return
			}

			valid, err := repo.IsValid(r.Context(), key)
			if err != nil {
				logger.Error("API key validation failed", "error", err, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if !valid {
				logger.Warn("rejected invalid API key", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
				writeError(w, http.StatusUnauthorized, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
