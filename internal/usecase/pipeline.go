package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/user/fraud-sentinel/internal/adapter/metrics"
	"github.com/user/fraud-sentinel/internal/domain"
	"github.com/user/fraud-sentinel/internal/policy"
)

// MaxRecentAlerts caps the triage feed size.
const MaxRecentAlerts = 50

// DecisionPipeline orchestrates the transaction risk decision flow: score
// acquisition, policy evaluation, alert materialization, and audit logging.
// It is the only writer of the alert store and the decision log.
type DecisionPipeline struct {
	scorer    domain.Scorer
	engine    *policy.Engine
	alerts    domain.AlertRepository
	log       domain.DecisionLogRepository
	publisher domain.EventPublisher // optional; nil disables fan-out
	metrics   *metrics.PipelineMetrics
	logger    *slog.Logger
	now       domain.Clock
}

// NewDecisionPipeline creates the pipeline orchestrator. publisher and
// metrics may be nil.
func NewDecisionPipeline(
	scorer domain.Scorer,
	engine *policy.Engine,
	alerts domain.AlertRepository,
	log domain.DecisionLogRepository,
	publisher domain.EventPublisher,
	m *metrics.PipelineMetrics,
	logger *slog.Logger,
) *DecisionPipeline {
	return &DecisionPipeline{
		scorer:    scorer,
		engine:    engine,
		alerts:    alerts,
		log:       log,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With("component", "decision_pipeline"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the pipeline's time source. Tests only.
func (p *DecisionPipeline) WithClock(clock domain.Clock) *DecisionPipeline {
	p.now = clock
	return p
}

// Ingest runs the full pipeline for one inbound transaction and returns the
// created alert. A scoring failure aborts the operation fail-closed: no
// alert, no log entry. An alert persisted without its log entry is reported
// as a PartialWriteError rather than swallowed.
func (p *DecisionPipeline) Ingest(ctx context.Context, tx domain.Transaction) (*domain.Alert, error) {
	tx.ApplyDefaults()

	start := p.now()
	score, err := p.scorer.Score(ctx, tx)
	if p.metrics != nil {
		p.metrics.ScoringDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if p.metrics != nil {
			p.metrics.ScoringFailures.Inc()
		}
		p.logger.Warn("ingest aborted, scoring unavailable", "error", err, "account_id", tx.AccountID)
		return nil, err
	}

	decision, reason := p.engine.Decide(score)

	alert := &domain.Alert{
		ID:        uuid.NewString(),
		AccountID: tx.AccountID,
		CardID:    tx.CardID,
		Amount:    tx.Amount,
		Merchant:  tx.Merchant,
		Category:  tx.Category,
		Score:     score,
		Decision:  decision,
		Reasons:   []string{reason},
		CreatedAt: p.now(),
	}

	if err := p.alerts.Create(ctx, alert); err != nil {
		p.logger.Error("failed to create alert", "error", err, "account_id", tx.AccountID)
		return nil, fmt.Errorf("create alert: %w", err)
	}

	if err := p.appendEntry(ctx, alert, decision, reason, true); err != nil {
		if p.metrics != nil {
			p.metrics.PartialWritesTotal.Inc()
		}
		p.logger.Error("alert created but decision log append failed", "error", err, "alert_id", alert.ID)
		return alert, &domain.PartialWriteError{AlertID: alert.ID, Step: "decision_log_append", Err: err}
	}

	if p.metrics != nil {
		p.metrics.TransactionsTotal.WithLabelValues(string(decision)).Inc()
	}
	p.logger.Info("transaction decided",
		"alert_id", alert.ID,
		"account_id", alert.AccountID,
		"score", score,
		"decision", decision,
		"reason", reason,
	)

	return alert, nil
}

// Override applies an analyst verdict to an existing alert. The analyst
// authority always wins: any recognized action is accepted regardless of the
// alert's current decision, including re-affirming or reversing it, and
// every override appends a new log entry.
func (p *DecisionPipeline) Override(ctx context.Context, alertID, action string) (*domain.Alert, error) {
	verdict, err := domain.ParseDecision(action)
	if err != nil {
		return nil, err
	}

	reason := domain.ManualOverrideReason(verdict)

	alert, err := p.alerts.Update(ctx, alertID, func(a *domain.Alert) error {
		reviewedAt := p.now()
		a.Decision = verdict
		a.AnalystAction = &verdict
		a.ReviewedAt = &reviewedAt
		a.Reasons = append(a.Reasons, reason)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := p.appendEntry(ctx, alert, verdict, reason, false); err != nil {
		if p.metrics != nil {
			p.metrics.PartialWritesTotal.Inc()
		}
		p.logger.Error("override applied but decision log append failed", "error", err, "alert_id", alert.ID)
		return alert, &domain.PartialWriteError{AlertID: alert.ID, Step: "decision_log_append", Err: err}
	}

	if p.metrics != nil {
		p.metrics.OverridesTotal.WithLabelValues(string(verdict)).Inc()
	}
	p.logger.Info("manual override applied",
		"alert_id", alert.ID,
		"account_id", alert.AccountID,
		"action", verdict,
	)

	return alert, nil
}

// RecentAlerts returns the triage feed, most recent first, capped at
// MaxRecentAlerts.
func (p *DecisionPipeline) RecentAlerts(ctx context.Context, limit int) ([]*domain.Alert, error) {
	if limit <= 0 || limit > MaxRecentAlerts {
		limit = MaxRecentAlerts
	}
	return p.alerts.ListRecent(ctx, limit)
}

// History returns the full decision log for one alert, oldest first. The
// alert must exist.
func (p *DecisionPipeline) History(ctx context.Context, alertID string) ([]*domain.DecisionEntry, error) {
	if _, err := p.alerts.FindByID(ctx, alertID); err != nil {
		return nil, err
	}
	return p.log.FindByAlertID(ctx, alertID)
}

func (p *DecisionPipeline) appendEntry(ctx context.Context, alert *domain.Alert, decision domain.Decision, reason string, auto bool) error {
	entry := &domain.DecisionEntry{
		ID:        uuid.NewString(),
		AlertID:   alert.ID,
		AccountID: alert.AccountID,
		Amount:    alert.Amount,
		Score:     alert.Score,
		Decision:  decision,
		Auto:      auto,
		Reason:    reason,
		CreatedAt: p.now(),
	}

	if err := p.log.Append(ctx, entry); err != nil {
		return err
	}

	// Fan-out is best-effort: the decision is already durable in the log.
	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, domain.DecisionEvent{DecisionEntry: *entry}); err != nil {
			if p.metrics != nil {
				p.metrics.PublishFailures.Inc()
			}
			p.logger.Warn("failed to publish decision event", "error", err, "alert_id", alert.ID)
		}
	}

	return nil
}
