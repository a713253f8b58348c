package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/user/fraud-sentinel/internal/adapter/metrics"
)

// RateLimit bounds inbound request volume with a token bucket. Requests over
// the limit are rejected with 429 rather than queued, keeping the scoring
// hop from piling up. m may be nil.
func RateLimit(rps float64, burst int, m *metrics.PipelineMetrics) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if m != nil {
					m.RateLimitedRequests.Inc()
				}
				writeError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
