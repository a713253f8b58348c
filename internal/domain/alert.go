package domain

import (
	"fmt"
	"strings"
	"time"
)

// Decision is a verdict on a scored transaction.
type Decision string

const (
	DecisionPending Decision = "pending"
	DecisionApprove Decision = "approve"
	DecisionBlock   Decision = "block"
)

// ParseDecision validates an externally supplied verdict string.
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionPending, DecisionApprove, DecisionBlock:
		return Decision(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
}

// Reason codes attached to automatic verdicts.
const (
	ReasonAutoBlock   = "AUTO_BLOCK_HIGH_RISK_SCORE"
	ReasonAutoApprove = "AUTO_APPROVE_LOW_RISK_SCORE"
	ReasonAutoPending = "AUTO_PENDING_REVIEW"
)

// ManualOverrideReason builds the reason code for an analyst-issued verdict,
// e.g. MANUAL_OVERRIDE_APPROVE.
func ManualOverrideReason(action Decision) string {
	return "MANUAL_OVERRIDE_" + strings.ToUpper(string(action))
}

// Alert is the triage-queue record for one scored transaction. It is created
// exactly once per ingested transaction and mutated only by the manual
// override path. AnalystAction and ReviewedAt are either both nil or both
// set.
type Alert struct {
	ID            string     `json:"id"`
	AccountID     string     `json:"account_id"`
	CardID        string     `json:"card_id,omitempty"`
	Amount        float64    `json:"amount"`
	Merchant      string     `json:"merchant"`
	Category      string     `json:"category,omitempty"`
	Score         float64    `json:"score"`
	Decision      Decision   `json:"decision"`
	Reasons       []string   `json:"reasons"`
	AnalystAction *Decision  `json:"analyst_action"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Reviewed reports whether an analyst has acted on the alert.
func (a *Alert) Reviewed() bool {
	return a.AnalystAction != nil && a.ReviewedAt != nil
}
