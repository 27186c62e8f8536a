package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/ports"
)

type stubEnquiryService struct {
	submitted ports.SubmitEnquiryInput
	listed    ports.ListEnquiriesInput
	changeErr error
}

func (s *stubEnquiryService) Submit(_ context.Context, in ports.SubmitEnquiryInput) (*domain.Enquiry, error) {
	s.submitted = in
	return &domain.Enquiry{ID: "e1", Reference: "ENQ-01", Status: domain.EnquiryNew}, nil
}

func (s *stubEnquiryService) Get(_ context.Context, id string) (*domain.Enquiry, error) {
	if id != "e1" {
		return nil, domain.ErrEnquiryNotFound
	}
	return &domain.Enquiry{ID: "e1", Reference: "ENQ-01", Status: domain.EnquiryNew, CreatedAt: time.Now()}, nil
}

func (s *stubEnquiryService) List(_ context.Context, in ports.ListEnquiriesInput) (*ports.ListEnquiriesResult, error) {
	s.listed = in
	return &ports.ListEnquiriesResult{
		Items: []*domain.Enquiry{{ID: "e1", Status: domain.EnquiryNew}},
		Total: 1, Page: 1, Limit: 20, TotalPages: 1,
	}, nil
}

func (s *stubEnquiryService) ChangeStatus(_ context.Context, id string, status domain.EnquiryStatus) (*domain.Enquiry, error) {
	if s.changeErr != nil {
		return nil, s.changeErr
	}
	return &domain.Enquiry{ID: id, Status: status}, nil
}

func (s *stubEnquiryService) Delete(_ context.Context, id string) error {
	if id != "e1" {
		return domain.ErrEnquiryNotFound
	}
	return nil
}

func TestEnquiryHandler_Submit(t *testing.T) {
	svc := &stubEnquiryService{}
	c, rec := newTestContext(http.MethodPost, "/api/contact",
		`{"name":"Jane","email":"jane@example.com","projectType":"office","message":"We need a new fit-out."}`)

	if err := NewEnquiryHandler(svc).Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.submitted.Email != "jane@example.com" || svc.submitted.SourceIP == "" {
		t.Fatalf("unexpected service input %+v", svc.submitted)
	}
	if ref := decodeEnvelope(t, rec)["data"].(map[string]any)["reference"]; ref != "ENQ-01" {
		t.Fatalf("unexpected reference %v", ref)
	}
}

func TestEnquiryHandler_Submit_Validation(t *testing.T) {
	svc := &stubEnquiryService{}
	bodies := []string{
		`{"email":"jane@example.com","message":"long enough message"}`,
		`{"name":"Jane","email":"not-an-email","message":"long enough message"}`,
		`{"name":"Jane","email":"jane@example.com","message":"short"}`,
		`{"name":"Jane","email":"jane@example.com","message":"long enough message","projectType":"spaceship"}`,
	}
	for _, body := range bodies {
		c, _ := newTestContext(http.MethodPost, "/api/contact", body)
		assertHTTPError(t, NewEnquiryHandler(svc).Submit(c), http.StatusBadRequest)
	}
}

func TestEnquiryHandler_List(t *testing.T) {
	svc := &stubEnquiryService{}
	c, rec := newTestContext(http.MethodGet, "/api/admin/enquiries?status=new&search=acme&page=2&limit=5", "")

	if err := NewEnquiryHandler(svc).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.listed.Status != "new" || svc.listed.Search != "acme" || svc.listed.Page != 2 || svc.listed.Limit != 5 {
		t.Fatalf("unexpected list input %+v", svc.listed)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if items := data["items"].([]any); len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	c, _ = newTestContext(http.MethodGet, "/api/admin/enquiries?status=bogus", "")
	assertHTTPError(t, NewEnquiryHandler(svc).List(c), http.StatusBadRequest)
}

func TestEnquiryHandler_UpdateStatus(t *testing.T) {
	svc := &stubEnquiryService{}
	c, rec := newTestContext(http.MethodPatch, "/api/admin/enquiries/e1/status", `{"status":"read"}`)
	c.SetParamNames("id")
	c.SetParamValues("e1")

	if err := NewEnquiryHandler(svc).UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if status := decodeEnvelope(t, rec)["data"].(map[string]any)["status"]; status != "read" {
		t.Fatalf("unexpected status %v", status)
	}

	svc.changeErr = domain.ErrInvalidTransition
	c, _ = newTestContext(http.MethodPatch, "/api/admin/enquiries/e1/status", `{"status":"new"}`)
	if err := NewEnquiryHandler(svc).UpdateStatus(c); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
