package ports

import (
	"context"

	"github.com/interiorfitout/backoffice/internal/core/domain"
)

// SubmitEnquiryInput is the contact form payload after validation.
type SubmitEnquiryInput struct {
	Name        string
	Email       string
	Phone       string
	Company     string
	ProjectType string
	Message     string
	SourceIP    string
}

// ListEnquiriesInput carries all parameters for the admin list endpoint.
type ListEnquiriesInput struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// ListEnquiriesResult is returned by List.
type ListEnquiriesResult struct {
	Items      []*domain.Enquiry
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// EnquiryService defines use-case operations for enquiries.
type EnquiryService interface {
	Submit(ctx context.Context, input SubmitEnquiryInput) (*domain.Enquiry, error)
	Get(ctx context.Context, id string) (*domain.Enquiry, error)
	List(ctx context.Context, input ListEnquiriesInput) (*ListEnquiriesResult, error)
	ChangeStatus(ctx context.Context, id string, status domain.EnquiryStatus) (*domain.Enquiry, error)
	Delete(ctx context.Context, id string) error
}
