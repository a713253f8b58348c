package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrScoringUnavailable covers every failure mode of the scoring oracle:
	// unreachable, timed out, or a malformed response. An ingest that hits it
	// is aborted with no state written.
	ErrScoringUnavailable = errors.New("scoring service unavailable")

	// ErrNotFound is returned when an alert id does not exist.
	ErrNotFound = errors.New("alert not found")

	// ErrInvalidAction is returned for an override verdict outside the
	// recognized decision set.
	ErrInvalidAction = errors.New("invalid action")
)

// PartialWriteError reports an alert that was persisted while its decision
// log append failed. The alert id lets an operator reconcile the log after
// the fact instead of the inconsistency being swallowed as success.
type PartialWriteError struct {
	AlertID string
	Step    string
	Err     error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write at %s for alert %s: %v", e.Step, e.AlertID, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
