package ports

import (
	"context"
	"time"

	"github.com/interiorfitout/backoffice/internal/core/domain"
)

// ListEnquiriesFilter carries all query parameters for listing enquiries.
type ListEnquiriesFilter struct {
	Status string    // optional: filter by enquiry status
	Search string    // optional: partial match on name, email or company
	From   time.Time // optional: created_at >= From
	To     time.Time // optional: created_at <= To
	Page   int       // 1-based
	Limit  int       // capped at 100 by the service
}

// EnquiryRepository defines persistence operations for enquiries.
type EnquiryRepository interface {
	Create(ctx context.Context, e *domain.Enquiry) error
	FindByID(ctx context.Context, id string) (*domain.Enquiry, error)
	List(ctx context.Context, filter ListEnquiriesFilter) ([]*domain.Enquiry, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.EnquiryStatus, at time.Time) error
	Delete(ctx context.Context, id string) error
}
