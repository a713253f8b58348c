package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PipelineMetrics holds all Prometheus metrics for the decision service.
type PipelineMetrics struct {
	TransactionsTotal   *prometheus.CounterVec
	ScoringFailures     prometheus.Counter
	ScoringDuration     prometheus.Histogram
	OverridesTotal      *prometheus.CounterVec
	PublishFailures     prometheus.Counter
	PartialWritesTotal  prometheus.Counter
	APIKeyCacheHits     prometheus.Counter
	APIKeyCacheMisses   prometheus.Counter
	RateLimitedRequests prometheus.Counter
}

// NewPipelineMetrics initializes and registers the Prometheus metrics.
func NewPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{
		TransactionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fraud_sentinel",
			Subsystem: "pipeline",
			Name:      "transactions_total",
			Help:      "Total number of scored transactions by automatic decision.",
		}, []string{"decision"}),
		ScoringFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "fraud_sentinel",
			Subsystem: "pipeline",
			Name:      "scoring_failures_total",
			Help:      "Total number of ingests aborted because the scoring oracle was unavailable.",
		}),
		ScoringDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fraud_sentinel",
			Subsystem: "pipeline",
			Name:      "scoring_duration_seconds",
			Help:      "Latency of scoring oracle calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		OverridesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fraud_sentinel",
			Subsystem: "pipeline",
			Name:      "overrides_total",
			Help:      "Total number of analyst overrides by action.",
		}, []string{"action"}),
		PublishFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "fraud_sentinel",
			Subsystem: "pipeline",
			Name:      "event_publish_failures_total",
			Help:      "Total number of decision events that could not be published to the stream.",
		}),
		PartialWritesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "fraud_sentinel",
			Subsystem: "pipeline",
			Name:      "partial_writes_total",
			Help:      "Total number of alerts persisted whose decision log append failed.",
		}),
		APIKeyCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "fraud_sentinel",
			Subsystem: "auth",
			Name:      "api_key_cache_hits_total",
			Help:      "Total number of API key cache hits.",
		}),
		APIKeyCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "fraud_sentinel",
			Subsystem: "auth",
			Name:      "api_key_cache_misses_total",
			Help:      "Total number of API key cache misses.",
		}),
		RateLimitedRequests: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "fraud_sentinel",
			Subsystem: "http",
			Name:      "rate_limited_requests_total",
			Help:      "Total number of requests rejected by the ingest rate limiter.",
		}),
	}
}
