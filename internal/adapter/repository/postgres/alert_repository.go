package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/user/fraud-sentinel/internal/domain"
)

// AlertRepository implements domain.AlertRepository backed by PostgreSQL.
type AlertRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewAlertRepository creates a new PostgreSQL alert repository.
func NewAlertRepository(db *sql.DB, logger *slog.Logger) *AlertRepository {
	return &AlertRepository{db: db, logger: logger}
}

const alertColumns = `id, account_id, card_id, amount, merchant, category, score, decision, reasons, analyst_action, reviewed_at, created_at`

// Create inserts a new alert row.
func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	query := `
        INSERT INTO alerts (` + alertColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
	_, err := r.db.ExecContext(ctx, query,
		alert.ID,
		alert.AccountID,
		nullString(alert.CardID),
		alert.Amount,
		alert.Merchant,
		nullString(alert.Category),
		alert.Score,
		string(alert.Decision),
		pq.Array(alert.Reasons),
		nullDecision(alert.AnalystAction),
		nullTime(alert.ReviewedAt),
		alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// FindByID returns the alert or domain.ErrNotFound.
func (r *AlertRepository) FindByID(ctx context.Context, id string) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`
	return scanAlert(r.db.QueryRowContext(ctx, query, id))
}

// ListRecent returns up to limit alerts, newest first. The id tiebreak keeps
// the ordering stable among alerts sharing a creation timestamp.
func (r *AlertRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts ORDER BY created_at DESC, id DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		alert, err := scanAlertRow(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

// Update applies mutate under SELECT ... FOR UPDATE so concurrent overrides
// of the same alert serialize and readers never see a partially applied
// mutation.
func (r *AlertRepository) Update(ctx context.Context, id string, mutate func(*domain.Alert) error) (*domain.Alert, error) {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer txn.Rollback() // Rollback is a no-op if Commit() is called

	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1 FOR UPDATE`
	alert, err := scanAlert(txn.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := mutate(alert); err != nil {
		return nil, err
	}

	update := `
        UPDATE alerts
        SET decision = $2, reasons = $3, analyst_action = $4, reviewed_at = $5
        WHERE id = $1
    `
	_, err = txn.ExecContext(ctx, update,
		alert.ID,
		string(alert.Decision),
		pq.Array(alert.Reasons),
		nullDecision(alert.AnalystAction),
		nullTime(alert.ReviewedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("update alert %s: %w", id, err)
	}

	if err := txn.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return alert, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlert(row *sql.Row) (*domain.Alert, error) {
	alert, err := scanAlertRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return alert, err
}

func scanAlertRow(row rowScanner) (*domain.Alert, error) {
	var (
		alert         domain.Alert
		cardID        sql.NullString
		category      sql.NullString
		decision      string
		reasons       pq.StringArray
		analystAction sql.NullString
		reviewedAt    sql.NullTime
	)
	err := row.Scan(
		&alert.ID,
		&alert.AccountID,
		&cardID,
		&alert.Amount,
		&alert.Merchant,
		&category,
		&alert.Score,
		&decision,
		&reasons,
		&analystAction,
		&reviewedAt,
		&alert.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	alert.CardID = cardID.String
	alert.Category = category.String
	alert.Decision = domain.Decision(decision)
	alert.Reasons = []string(reasons)
	if analystAction.Valid {
		action := domain.Decision(analystAction.String)
		alert.AnalystAction = &action
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		alert.ReviewedAt = &t
	}
	return &alert, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDecision(d *domain.Decision) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*d), Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
