package policy

import (
	"fmt"

	"github.com/user/fraud-sentinel/internal/domain"
)

// Engine maps a risk score to a verdict under configured thresholds. It is
// pure and does no I/O, so it can be unit tested without a store or oracle.
type Engine struct {
	blockThreshold   float64
	approveThreshold float64
	autoEnabled      bool
}

// NewEngine validates the threshold ordering and returns a policy engine.
// approveThreshold must be strictly below blockThreshold and both must lie
// in [0,1]; anything else is a configuration error.
func NewEngine(blockThreshold, approveThreshold float64, autoEnabled bool) (*Engine, error) {
	if blockThreshold < 0 || blockThreshold > 1 || approveThreshold < 0 || approveThreshold > 1 {
		return nil, fmt.Errorf("thresholds must be within [0,1]: block=%v approve=%v", blockThreshold, approveThreshold)
	}
	if approveThreshold >= blockThreshold {
		return nil, fmt.Errorf("approve threshold %v must be below block threshold %v", approveThreshold, blockThreshold)
	}
	return &Engine{
		blockThreshold:   blockThreshold,
		approveThreshold: approveThreshold,
		autoEnabled:      autoEnabled,
	}, nil
}

// Decide returns the verdict and reason code for a score. Boundaries are
// inclusive: a score exactly at a threshold takes that threshold's outcome,
// never pending.
func (e *Engine) Decide(score float64) (domain.Decision, string) {
	if !e.autoEnabled {
		return domain.DecisionPending, domain.ReasonAutoPending
	}
	switch {
	case score >= e.blockThreshold:
		return domain.DecisionBlock, domain.ReasonAutoBlock
	case score <= e.approveThreshold:
		return domain.DecisionApprove, domain.ReasonAutoApprove
	default:
		return domain.DecisionPending, domain.ReasonAutoPending
	}
}
