package domain

import (
	"context"
	"time"
)

// Scorer abstracts the external fraud-risk scoring oracle. Implementations
// must bound the call with a timeout and report every failure mode as
// ErrScoringUnavailable; retry policy belongs to the caller.
type Scorer interface {
	Score(ctx context.Context, tx Transaction) (float64, error)
}

// AlertRepository defines persistence for Alert records.
type AlertRepository interface {
	// Create persists a new alert. The alert's ID must already be assigned.
	Create(ctx context.Context, alert *Alert) error

	// FindByID returns the alert or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Alert, error)

	// ListRecent returns up to limit alerts ordered by creation time
	// descending, insertion order stable among equal timestamps.
	ListRecent(ctx context.Context, limit int) ([]*Alert, error)

	// Update applies mutate to the alert under a per-record lock so the
	// read-modify-write is atomic with respect to concurrent updates and
	// readers never observe a half-applied mutation. Returns the mutated
	// alert or ErrNotFound.
	Update(ctx context.Context, id string, mutate func(*Alert) error) (*Alert, error)
}

// DecisionLogRepository is the append-only audit trail. There is deliberately
// no update or delete in this contract.
type DecisionLogRepository interface {
	// Append writes one immutable decision entry.
	Append(ctx context.Context, entry *DecisionEntry) error

	// FindByAlertID returns an alert's full decision history, oldest first.
	FindByAlertID(ctx context.Context, alertID string) ([]*DecisionEntry, error)
}

// EventPublisher fans decision entries out to downstream consumers.
// Publishing is best-effort relative to the pipeline: a failure is reported
// to the caller for logging/metrics but must not fail the decision itself.
type EventPublisher interface {
	Publish(ctx context.Context, event DecisionEvent) error
}

// EventStream is the consumer side of the decision event fan-out.
type EventStream interface {
	ReadBatch(ctx context.Context, group, consumer string, count int) ([]DecisionEvent, error)
	Acknowledge(ctx context.Context, group string, messageIDs ...string) error
}

// StreamAdminRepository exposes operational introspection of the decision
// event stream for the admin server.
type StreamAdminRepository interface {
	GetGroupInfo(ctx context.Context, stream string) ([]ConsumerGroupInfo, error)
	GetPendingSummary(ctx context.Context, stream, group string) (*PendingMessageSummary, error)
	TrimStream(ctx context.Context, stream string, maxLen int64) (int64, error)
}

// APIKeyRepository validates analyst/client API keys. Implementations should
// cache lookups to keep the hot path off the database.
type APIKeyRepository interface {
	IsValid(ctx context.Context, key string) (bool, error)
}

// Notifier delivers out-of-band notifications for noteworthy decisions.
type Notifier interface {
	Notify(ctx context.Context, event DecisionEvent) error
}

// ConsumerGroupInfo describes one consumer group on the event stream.
type ConsumerGroupInfo struct {
	Name            string `json:"name"`
	Consumers       int64  `json:"consumers"`
	Pending         int64  `json:"pending"`
	LastDeliveredID string `json:"last_delivered_id"`
}

// PendingMessageSummary summarizes unacknowledged events for a group.
type PendingMessageSummary struct {
	Total          int64            `json:"total"`
	FirstMessageID string           `json:"first_message_id,omitempty"`
	LastMessageID  string           `json:"last_message_id,omitempty"`
	ConsumerTotals map[string]int64 `json:"consumer_totals,omitempty"`
}

// Clock lets tests control time-dependent fields like reviewed_at.
type Clock func() time.Time
