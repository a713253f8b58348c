package domain

import "time"

// DecisionEntry is one immutable fact in the decision log: who decided what,
// when, for which alert. Entries are only ever appended; nothing in the
// system edits or removes them.
type DecisionEntry struct {
	ID        string    `json:"id"`
	AlertID   string    `json:"alert_id"`
	AccountID string    `json:"account_id"`
	Amount    float64   `json:"amount"`
	Score     float64   `json:"score"`
	Decision  Decision  `json:"decision"`
	Auto      bool      `json:"auto"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// DecisionEvent is the fan-out copy of a decision entry published to the
// event stream for downstream consumers (notifier, dashboards).
type DecisionEvent struct {
	DecisionEntry
	StreamMessageID string `json:"-"`
}
