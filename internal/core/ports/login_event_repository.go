package ports

import (
	"context"

	"github.com/interiorfitout/backoffice/internal/core/domain"
)

// LoginEventRepository persists the admin login audit trail.
type LoginEventRepository interface {
	Insert(ctx context.Context, event *domain.LoginEvent) error
}

// LoginEventService processes audit events dequeued by the dispatcher.
type LoginEventService interface {
	Process(ctx context.Context, event domain.LoginEvent) error
}

// EventDeduplicator suppresses repeated identical audit events.
type EventDeduplicator interface {
	IsDuplicate(ctx context.Context, event domain.LoginEvent) (bool, error)
	Mark(ctx context.Context, event domain.LoginEvent) error
}
