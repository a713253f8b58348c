package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/user/fraud-sentinel/internal/domain"
)

// mockEventStream is a mock implementation of domain.EventStream.
type mockEventStream struct {
	mu      sync.Mutex
	Batch   []domain.DecisionEvent
	Acked   []string
	ReadErr error
	AckErr  error
}

func (m *mockEventStream) ReadBatch(ctx context.Context, group, consumer string, count int) ([]domain.DecisionEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	return m.Batch, nil
}

func (m *mockEventStream) Acknowledge(ctx context.Context, group string, messageIDs ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AckErr != nil {
		return m.AckErr
	}
	m.Acked = append(m.Acked, messageIDs...)
	return nil
}

type mockNotifier struct {
	mu        sync.Mutex
	Delivered []domain.DecisionEvent
	NotifyErr error
}

func (m *mockNotifier) Notify(ctx context.Context, event domain.DecisionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.NotifyErr != nil {
		return m.NotifyErr
	}
	m.Delivered = append(m.Delivered, event)
	return nil
}

func blockEvent(id string) domain.DecisionEvent {
	return domain.DecisionEvent{
		DecisionEntry:   domain.DecisionEntry{AlertID: "a-" + id, Decision: domain.DecisionBlock, Auto: true, Reason: domain.ReasonAutoBlock},
		StreamMessageID: id,
	}
}

func approveEvent(id string) domain.DecisionEvent {
	return domain.DecisionEvent{
		DecisionEntry:   domain.DecisionEntry{AlertID: "a-" + id, Decision: domain.DecisionApprove, Auto: true, Reason: domain.ReasonAutoApprove},
		StreamMessageID: id,
	}
}

func TestNotifyEventsUseCase_ProcessBatch(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Blocks And Overrides Are Notified", func(t *testing.T) {
		override := domain.DecisionEvent{
			DecisionEntry:   domain.DecisionEntry{AlertID: "a-3", Decision: domain.DecisionApprove, Auto: false, Reason: "MANUAL_OVERRIDE_APPROVE"},
			StreamMessageID: "3",
		}
		stream := &mockEventStream{Batch: []domain.DecisionEvent{blockEvent("1"), approveEvent("2"), override}}
		notifier := &mockNotifier{}
		uc := NewNotifyEventsUseCase(stream, notifier, logger, "notifiers", "worker-1")

		n, err := uc.ProcessBatch(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n != 3 {
			t.Errorf("processed = %d, want 3", n)
		}
		if len(notifier.Delivered) != 2 {
			t.Errorf("expected 2 notifications (block + override), got %d", len(notifier.Delivered))
		}
		if len(stream.Acked) != 3 {
			t.Errorf("expected all 3 events acked, got %d", len(stream.Acked))
		}
	})

	t.Run("Failed Notification Leaves Event Pending", func(t *testing.T) {
		stream := &mockEventStream{Batch: []domain.DecisionEvent{blockEvent("1"), approveEvent("2")}}
		notifier := &mockNotifier{NotifyErr: errors.New("pager down")}
		uc := NewNotifyEventsUseCase(stream, notifier, logger, "notifiers", "worker-1")

		n, err := uc.ProcessBatch(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n != 1 {
			t.Errorf("processed = %d, want 1 (the approve needs no notification)", n)
		}
		if len(stream.Acked) != 1 || stream.Acked[0] != "2" {
			t.Errorf("only the approve should be acked, got %v", stream.Acked)
		}
	})

	t.Run("Empty Batch", func(t *testing.T) {
		stream := &mockEventStream{}
		uc := NewNotifyEventsUseCase(stream, &mockNotifier{}, logger, "notifiers", "worker-1")

		n, err := uc.ProcessBatch(context.Background())
		if err != nil || n != 0 {
			t.Errorf("empty batch: n=%d err=%v, want 0, nil", n, err)
		}
	})

	t.Run("Read Error", func(t *testing.T) {
		stream := &mockEventStream{ReadErr: errors.New("stream down")}
		uc := NewNotifyEventsUseCase(stream, &mockNotifier{}, logger, "notifiers", "worker-1")

		if _, err := uc.ProcessBatch(context.Background()); err == nil {
			t.Fatal("expected an error, got nil")
		}
	})
}
