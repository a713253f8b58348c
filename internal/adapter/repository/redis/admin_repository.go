package redis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/user/fraud-sentinel/internal/domain"
)

// AdminRepository implements domain.StreamAdminRepository for the decision
// event stream.
type AdminRepository struct {
	client *redis.Client
	logger *slog.Logger
}

// NewAdminRepository creates a new Redis admin repository.
func NewAdminRepository(client *redis.Client, logger *slog.Logger) *AdminRepository {
	return &AdminRepository{client: client, logger: logger}
}

// GetGroupInfo retrieves information about all consumer groups on a stream.
func (r *AdminRepository) GetGroupInfo(ctx context.Context, stream string) ([]domain.ConsumerGroupInfo, error) {
	groups, err := r.client.XInfoGroups(ctx, stream).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get group info for stream %s: %w", stream, err)
	}

	result := make([]domain.ConsumerGroupInfo, len(groups))
	for i, g := range groups {
		result[i] = domain.ConsumerGroupInfo{
			Name:            g.Name,
			Consumers:       g.Consumers,
			Pending:         g.Pending,
			LastDeliveredID: g.LastDeliveredID,
		}
	}
	return result, nil
}

// GetPendingSummary summarizes unacknowledged events for a consumer group.
func (r *AdminRepository) GetPendingSummary(ctx context.Context, stream, group string) (*domain.PendingMessageSummary, error) {
	pending, err := r.client.XPending(ctx, stream, group).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get pending summary for stream %s, group %s: %w", stream, group, err)
	}

	return &domain.PendingMessageSummary{
		Total:          pending.Count,
		FirstMessageID: pending.Lower,
		LastMessageID:  pending.Higher,
		ConsumerTotals: pending.Consumers,
	}, nil
}

// TrimStream caps the stream at maxLen entries, returning the number removed.
func (r *AdminRepository) TrimStream(ctx context.Context, stream string, maxLen int64) (int64, error) {
	return r.client.XTrimMaxLen(ctx, stream, maxLen).Result()
}
