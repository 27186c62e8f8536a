package ports

import (
	"context"

	"github.com/interiorfitout/backoffice/internal/core/domain"
)

// ContentCounter counts documents in the site's content collections.
type ContentCounter interface {
	Count(ctx context.Context, collection string, filter map[string]any) (int64, error)
}

// DashboardService builds the admin landing page summary.
type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}
