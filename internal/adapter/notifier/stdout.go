package notifier

import (
	"context"
	"fmt"

	"github.com/user/fraud-sentinel/internal/domain"
)

// StdoutNotifier is an implementation of domain.Notifier that prints to
// standard output. It stands in for a pager/webhook integration.
type StdoutNotifier struct{}

// NewStdoutNotifier creates a new StdoutNotifier.
func NewStdoutNotifier() *StdoutNotifier {
	return &StdoutNotifier{}
}

// Notify prints the decision details to stdout.
func (n *StdoutNotifier) Notify(ctx context.Context, event domain.DecisionEvent) error {
	origin := "automatic"
	if !event.Auto {
		origin = "analyst"
	}
	fmt.Printf(
		"--- DECISION ---\nAlert: %s\nAccount: %s\nAmount: %.2f\nScore: %.2f\nDecision: %s (%s)\nReason: %s\n----------------\n",
		event.AlertID,
		event.AccountID,
		event.Amount,
		event.Score,
		event.Decision,
		origin,
		event.Reason,
	)
	return nil
}
