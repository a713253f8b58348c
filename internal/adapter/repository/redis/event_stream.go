package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/fraud-sentinel/internal/domain"
)

// StreamKey is the Redis Stream carrying decision events for downstream
// consumers (notifier worker, dashboards).
const StreamKey = "decision_events"

// EventStream implements domain.EventPublisher and domain.EventStream using
// Redis Streams. The decision log in PostgreSQL remains the source of truth;
// the stream is fan-out only.
type EventStream struct {
	client *redis.Client
	logger *slog.Logger
}

// NewEventStream creates a Redis-backed decision event stream. If group is
// non-empty the consumer group is created up front; an already-existing
// group is not an error.
func NewEventStream(client *redis.Client, logger *slog.Logger, group string) (*EventStream, error) {
	s := &EventStream{
		client: client,
		logger: logger.With("component", "event_stream"),
	}

	if group != "" {
		err := client.XGroupCreateMkStream(context.Background(), StreamKey, group, "0").Err()
		if err != nil && !isBusyGroupError(err) {
			return nil, fmt.Errorf("failed to create consumer group: %w", err)
		}
	}

	return s, nil
}

// Publish XADDs one decision event to the stream.
func (s *EventStream) Publish(ctx context.Context, event domain.DecisionEvent) error {
	payload, err := json.Marshal(event.DecisionEntry)
	if err != nil {
		return fmt.Errorf("failed to marshal decision event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: StreamKey,
		Values: map[string]interface{}{"payload": payload},
	}
	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to XADD decision event: %w", err)
	}
	return nil
}

// ReadBatch reads up to count decision events for a consumer group, blocking
// briefly when the stream is idle.
func (s *EventStream) ReadBatch(ctx context.Context, group, consumer string, count int) ([]domain.DecisionEvent, error) {
	args := &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{StreamKey, ">"},
		Count:    int64(count),
		Block:    2 * time.Second,
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to XREADGROUP decision events: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, nil
	}

	messages := streams[0].Messages
	events := make([]domain.DecisionEvent, 0, len(messages))
	for _, msg := range messages {
		payload, ok := msg.Values["payload"].(string)
		if !ok {
			s.logger.Warn("invalid message format in stream, skipping", "message_id", msg.ID)
			continue
		}

		var entry domain.DecisionEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			s.logger.Warn("failed to unmarshal decision event, skipping", "message_id", msg.ID, "error", err)
			continue
		}
		events = append(events, domain.DecisionEvent{DecisionEntry: entry, StreamMessageID: msg.ID})
	}

	return events, nil
}

// Acknowledge marks processed events as done for the consumer group.
func (s *EventStream) Acknowledge(ctx context.Context, group string, messageIDs ...string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	if err := s.client.XAck(ctx, StreamKey, group, messageIDs...).Err(); err != nil {
		return fmt.Errorf("failed to XACK decision events: %w", err)
	}
	return nil
}

func isBusyGroupError(err error) bool {
	return err != nil && err.Error() == "BUSYGROUP Consumer Group name already exists"
}
