package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/ports"
	"github.com/interiorfitout/backoffice/internal/pkg/metrics"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type EnquiryService struct {
	repo   ports.EnquiryRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewEnquiryService(repo ports.EnquiryRepository, logger zerolog.Logger) *EnquiryService {
	return &EnquiryService{repo: repo, logger: logger, now: time.Now}
}

// Submit stores a contact form message as a new enquiry.
func (s *EnquiryService) Submit(ctx context.Context, input ports.SubmitEnquiryInput) (*domain.Enquiry, error) {
	now := s.now().UTC()
	enquiry := &domain.Enquiry{
		Reference:   generateReference(now),
		Name:        strings.TrimSpace(input.Name),
		Email:       domain.NormalizeEmail(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		Company:     strings.TrimSpace(input.Company),
		ProjectType: input.ProjectType,
		Message:     strings.TrimSpace(input.Message),
		Status:      domain.EnquiryNew,
		SourceIP:    input.SourceIP,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, enquiry); err != nil {
		s.logger.Error().Err(err).Msg("failed to store enquiry")
		return nil, err
	}

	metrics.EnquiriesSubmittedTotal.WithLabelValues(projectTypeLabel(enquiry.ProjectType)).Inc()
	s.logger.Info().Str("reference", enquiry.Reference).Msg("enquiry received")
	return enquiry, nil
}

func (s *EnquiryService) Get(ctx context.Context, id string) (*domain.Enquiry, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of enquiries. Page defaults to 1 and limit to 20,
// capped at 100.
func (s *EnquiryService) List(ctx context.Context, input ports.ListEnquiriesInput) (*ports.ListEnquiriesResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	items, total, err := s.repo.List(ctx, ports.ListEnquiriesFilter{
		Status: input.Status,
		Search: strings.TrimSpace(input.Search),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListEnquiriesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// ChangeStatus moves an enquiry through new → read → replied → archived.
func (s *EnquiryService) ChangeStatus(ctx context.Context, id string, status domain.EnquiryStatus) (*domain.Enquiry, error) {
	enquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !enquiry.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, enquiry.Status, status)
	}

	now := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}
	enquiry.Status = status
	enquiry.UpdatedAt = now

	metrics.EnquiryStatusChangesTotal.WithLabelValues(string(status)).Inc()
	return enquiry, nil
}

func (s *EnquiryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("enquiry_id", id).Msg("enquiry deleted")
	return nil
}

// generateReference returns a sortable reference in the format ENQ-<ULID>.
func generateReference(at time.Time) string {
	id, err := ulid.New(ulid.Timestamp(at), rand.Reader)
	if err != nil {
		return fmt.Sprintf("ENQ-%d", at.UnixNano())
	}
	return "ENQ-" + id.String()
}

func projectTypeLabel(t string) string {
	if t == "" {
		return "unspecified"
	}
	return t
}
