package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/interiorfitout/backoffice/internal/core/domain"
)

const dedupTTL = time.Hour

// EventDedup provides idempotency checks for login audit events.
// Key format: dedup:login:<outcome>:<email>:<admin_id>:<ip>:<unix_timestamp>
type EventDedup struct {
	client redis.UniversalClient
}

// NewEventDedup creates an EventDedup wrapping the given Redis client.
func NewEventDedup(client redis.UniversalClient) *EventDedup {
	return &EventDedup{client: client}
}

// IsDuplicate reports whether this exact event has already been stored.
func (d *EventDedup) IsDuplicate(ctx context.Context, event domain.LoginEvent) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(event)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been stored (expires after dedupTTL).
func (d *EventDedup) Mark(ctx context.Context, event domain.LoginEvent) error {
	return d.client.Set(ctx, d.key(event), "1", dedupTTL).Err()
}

func (d *EventDedup) key(e domain.LoginEvent) string {
	return fmt.Sprintf("dedup:login:%s:%s:%s:%s:%d", e.Outcome, e.Email, e.AdminID, e.RemoteIP, e.OccurredAt.Unix())
}
