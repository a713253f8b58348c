package policy

import (
	"testing"

	"github.com/user/fraud-sentinel/internal/domain"
)

func TestNewEngine_Validation(t *testing.T) {
	tests := []struct {
		name    string
		block   float64
		approve float64
		wantErr bool
	}{
		{"Valid Thresholds", 0.8, 0.3, false},
		{"Approve Equals Block", 0.5, 0.5, true},
		{"Approve Above Block", 0.3, 0.8, true},
		{"Block Above Range", 1.5, 0.3, true},
		{"Approve Below Range", 0.8, -0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.block, tt.approve, true)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewEngine(%v, %v) error = %v, wantErr %v", tt.block, tt.approve, err, tt.wantErr)
			}
		})
	}
}

func TestEngine_Decide(t *testing.T) {
	engine, err := NewEngine(0.8, 0.3, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name         string
		score        float64
		wantDecision domain.Decision
		wantReason   string
	}{
		{"High Risk", 0.95, domain.DecisionBlock, domain.ReasonAutoBlock},
		{"Low Risk", 0.10, domain.DecisionApprove, domain.ReasonAutoApprove},
		{"Mid Risk", 0.55, domain.DecisionPending, domain.ReasonAutoPending},
		{"Exactly Block Threshold", 0.80, domain.DecisionBlock, domain.ReasonAutoBlock},
		{"Exactly Approve Threshold", 0.30, domain.DecisionApprove, domain.ReasonAutoApprove},
		{"Just Below Block", 0.79, domain.DecisionPending, domain.ReasonAutoPending},
		{"Just Above Approve", 0.31, domain.DecisionPending, domain.ReasonAutoPending},
		{"Maximum Score", 1.0, domain.DecisionBlock, domain.ReasonAutoBlock},
		{"Minimum Score", 0.0, domain.DecisionApprove, domain.ReasonAutoApprove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, reason := engine.Decide(tt.score)
			if decision != tt.wantDecision {
				t.Errorf("Decide(%v) decision = %q, want %q", tt.score, decision, tt.wantDecision)
			}
			if reason != tt.wantReason {
				t.Errorf("Decide(%v) reason = %q, want %q", tt.score, reason, tt.wantReason)
			}
		})
	}
}

func TestEngine_Decide_AutoDisabled(t *testing.T) {
	engine, err := NewEngine(0.8, 0.3, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, score := range []float64{0.0, 0.3, 0.55, 0.8, 1.0} {
		decision, reason := engine.Decide(score)
		if decision != domain.DecisionPending {
			t.Errorf("Decide(%v) with auto disabled = %q, want pending", score, decision)
		}
		if reason != domain.ReasonAutoPending {
			t.Errorf("Decide(%v) reason = %q, want %q", score, reason, domain.ReasonAutoPending)
		}
	}
}
