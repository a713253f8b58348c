package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/user/fraud-sentinel/internal/domain"
)

// DecisionLogRepository implements domain.DecisionLogRepository backed by
// PostgreSQL. The table is append-only: this type exposes no UPDATE or
// DELETE path, making the log the sole source of truth for who decided
// what, when.
type DecisionLogRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewDecisionLogRepository creates a new PostgreSQL decision log repository.
func NewDecisionLogRepository(db *sql.DB, logger *slog.Logger) *DecisionLogRepository {
	return &DecisionLogRepository{db: db, logger: logger}
}

// Append writes one immutable decision entry.
func (r *DecisionLogRepository) Append(ctx context.Context, entry *domain.DecisionEntry) error {
	query := `
        INSERT INTO decision_log (id, alert_id, account_id, amount, score, decision, auto, reason, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.AlertID,
		entry.AccountID,
		entry.Amount,
		entry.Score,
		string(entry.Decision),
		entry.Auto,
		entry.Reason,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append decision entry for alert %s: %w", entry.AlertID, err)
	}
	return nil
}

// FindByAlertID returns the alert's decision history, oldest first.
func (r *DecisionLogRepository) FindByAlertID(ctx context.Context, alertID string) ([]*domain.DecisionEntry, error) {
	query := `
        SELECT id, alert_id, account_id, amount, score, decision, auto, reason, created_at
        FROM decision_log WHERE alert_id = $1 ORDER BY created_at ASC, id ASC
    `
	rows, err := r.db.QueryContext(ctx, query, alertID)
	if err != nil {
		return nil, fmt.Errorf("query decision log for alert %s: %w", alertID, err)
	}
	defer rows.Close()

	var entries []*domain.DecisionEntry
	for rows.Next() {
		var (
			entry    domain.DecisionEntry
			decision string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.AlertID,
			&entry.AccountID,
			&entry.Amount,
			&entry.Score,
			&decision,
			&entry.Auto,
			&entry.Reason,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entry.Decision = domain.Decision(decision)
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
