package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Admin repository stub
// ---------------------------------------------------------------------------

type stubAdminRepo struct {
	mu       sync.Mutex
	byID     map[string]*domain.Admin
	findErr  error
	touchErr error
	touched  []string
	nextID   int
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{byID: make(map[string]*domain.Admin)}
}

func cloneAdmin(a *domain.Admin) *domain.Admin {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == admin.Email {
			return nil, domain.ErrAdminExists
		}
	}
	r.nextID++
	copy := cloneAdmin(admin)
	copy.ID = fmt.Sprintf("admin-%d", r.nextID)
	r.byID[copy.ID] = cloneAdmin(copy)
	return copy, nil
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, a := range r.byID {
		if a.Email == email {
			return cloneAdmin(a), nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	if a, ok := r.byID[id]; ok {
		return cloneAdmin(a), nil
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) List(_ context.Context) ([]*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Admin, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, cloneAdmin(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubAdminRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.touchErr != nil {
		return r.touchErr
	}
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.LastLoginAt = &at
	r.touched = append(r.touched, id)
	return nil
}

func (r *stubAdminRepo) SetActive(_ context.Context, email string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == email {
			a.IsActive = active
			return nil
		}
	}
	return domain.ErrAdminNotFound
}

// seed stores an admin with a real bcrypt hash and returns its ID.
func (r *stubAdminRepo) seed(name, email, password string, active bool) string {
	hash, err := HashPassword(password)
	if err != nil {
		panic(err)
	}
	created, err := r.Create(context.Background(), &domain.Admin{
		Name:         name,
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hash,
		IsActive:     active,
	})
	if err != nil {
		panic(err)
	}
	return created.ID
}

// ---------------------------------------------------------------------------
// Limiter / audit stubs
// ---------------------------------------------------------------------------

type stubLimiter struct {
	checkErr error
	failErr  error
	fails    int
	resets   int
}

func (l *stubLimiter) Check(context.Context, string, string) error { return l.checkErr }

func (l *stubLimiter) Fail(context.Context, string, string) error {
	l.fails++
	return l.failErr
}

func (l *stubLimiter) Reset(context.Context, string) error {
	l.resets++
	return nil
}

type stubAudit struct {
	mu     sync.Mutex
	events []domain.LoginEvent
}

func (a *stubAudit) Record(e domain.LoginEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *stubAudit) outcomes() []domain.LoginOutcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.LoginOutcome, len(a.events))
	for i, e := range a.events {
		out[i] = e.Outcome
	}
	return out
}

// ---------------------------------------------------------------------------
// Enquiry repository stub
// ---------------------------------------------------------------------------

type stubEnquiryRepo struct {
	byID       map[string]*domain.Enquiry
	createErr  error
	lastFilter ports.ListEnquiriesFilter
	total      int64
	deleted    []string
}

func newStubEnquiryRepo() *stubEnquiryRepo {
	return &stubEnquiryRepo{byID: make(map[string]*domain.Enquiry)}
}

func (r *stubEnquiryRepo) Create(_ context.Context, e *domain.Enquiry) error {
	if r.createErr != nil {
		return r.createErr
	}
	e.ID = fmt.Sprintf("enq-%d", len(r.byID)+1)
	clone := *e
	r.byID[e.ID] = &clone
	return nil
}

func (r *stubEnquiryRepo) FindByID(_ context.Context, id string) (*domain.Enquiry, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEnquiryNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEnquiryRepo) List(_ context.Context, f ports.ListEnquiriesFilter) ([]*domain.Enquiry, int64, error) {
	r.lastFilter = f
	out := make([]*domain.Enquiry, 0, len(r.byID))
	for _, e := range r.byID {
		clone := *e
		out = append(out, &clone)
	}
	total := r.total
	if total == 0 {
		total = int64(len(out))
	}
	return out, total, nil
}

func (r *stubEnquiryRepo) UpdateStatus(_ context.Context, id string, status domain.EnquiryStatus, at time.Time) error {
	e, ok := r.byID[id]
	if !ok {
		return domain.ErrEnquiryNotFound
	}
	e.Status = status
	e.UpdatedAt = at
	return nil
}

func (r *stubEnquiryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrEnquiryNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

var errBoom = errors.New("boom")
