package ports

import (
	"context"
	"time"

	"github.com/interiorfitout/backoffice/internal/core/domain"
)

// AdminRepository defines persistence for back-office administrators.
// Emails passed in are already normalised by the caller.
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	List(ctx context.Context) ([]*domain.Admin, error)
	// TouchLastLogin stamps a successful login.
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	SetActive(ctx context.Context, email string, active bool) error
}
