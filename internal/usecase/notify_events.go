package usecase

import (
	"context"
	"log/slog"

	"github.com/user/fraud-sentinel/internal/domain"
)

const defaultEventBatchSize = 100

// NotifyEventsUseCase drains the decision event stream and forwards
// noteworthy decisions (blocks and analyst overrides) to a notifier. Routine
// automatic approvals are acknowledged without notification.
type NotifyEventsUseCase struct {
	stream   domain.EventStream
	notifier domain.Notifier
	logger   *slog.Logger
	group    string
	consumer string
}

// NewNotifyEventsUseCase creates a new use case for processing decision events.
func NewNotifyEventsUseCase(stream domain.EventStream, notifier domain.Notifier, logger *slog.Logger, group, consumer string) *NotifyEventsUseCase {
	return &NotifyEventsUseCase{
		stream:   stream,
		notifier: notifier,
		logger:   logger,
		group:    group,
		consumer: consumer,
	}
}

// ProcessBatch reads one batch of decision events, notifies for each event
// that warrants it, and acknowledges the batch. An event whose notification
// fails is left unacknowledged for redelivery.
func (uc *NotifyEventsUseCase) ProcessBatch(ctx context.Context) (int, error) {
	events, err := uc.stream.ReadBatch(ctx, uc.group, uc.consumer, defaultEventBatchSize)
	if err != nil {
		uc.logger.Error("failed to read decision events", "error", err)
		return 0, err
	}

	if len(events) == 0 {
		return 0, nil
	}

	acked := make([]string, 0, len(events))
	for _, event := range events {
		if uc.shouldNotify(event) {
			if err := uc.notifier.Notify(ctx, event); err != nil {
				uc.logger.Error("failed to deliver notification", "error", err, "alert_id", event.AlertID)
				continue
			}
		}
		acked = append(acked, event.StreamMessageID)
	}

	if len(acked) > 0 {
		if err := uc.stream.Acknowledge(ctx, uc.group, acked...); err != nil {
			uc.logger.Error("failed to acknowledge decision events", "error", err)
			return 0, err
		}
	}

	return len(acked), nil
}

func (uc *NotifyEventsUseCase) shouldNotify(event domain.DecisionEvent) bool {
	return event.Decision == domain.DecisionBlock || !event.Auto
}
