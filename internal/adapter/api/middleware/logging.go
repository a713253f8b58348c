package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// accessRecorder captures the status and response size for the access log.
type accessRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rec *accessRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *accessRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

// Logging logs every request in the decision service's vocabulary: the
// outcome status decides the level (5xx error, 4xx warn), and alert routes
// carry the alert acted on. Rejected overrides and scoring outages therefore
// stand out in the access log without grepping bodies.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &accessRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"status", rec.status,
				"bytes", rec.bytes,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			// Path values are populated by the mux during routing, so the
			// alert id is available here once the handler has run.
			if id := r.PathValue("id"); id != "" {
				attrs = append(attrs, "alert_id", id)
			}

			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("request failed", attrs...)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("request rejected", attrs...)
			default:
				logger.Info("request handled", attrs...)
			}
		})
	}
}
