package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/interiorfitout/backoffice/internal/api/handler"
	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/ports"
	"github.com/interiorfitout/backoffice/internal/core/service"
)

// ---------------------------------------------------------------------------
// In-memory repositories
// ---------------------------------------------------------------------------

type memoryAdmins struct {
	mu   sync.Mutex
	byID map[string]*domain.Admin
}

func (r *memoryAdmins) Create(_ context.Context, a *domain.Admin) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *a
	clone.ID = fmt.Sprintf("admin-%d", len(r.byID)+1)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memoryAdmins) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *memoryAdmins) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrAdminNotFound
}

func (r *memoryAdmins) List(context.Context) ([]*domain.Admin, error) { return nil, nil }

func (r *memoryAdmins) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[id]; ok {
		a.LastLoginAt = &at
		return nil
	}
	return domain.ErrAdminNotFound
}

func (r *memoryAdmins) SetActive(_ context.Context, email string, active bool) error {
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

type memoryEnquiries struct {
	mu   sync.Mutex
	byID map[string]*domain.Enquiry
}

func (r *memoryEnquiries) Create(_ context.Context, e *domain.Enquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = fmt.Sprintf("enq-%d", len(r.byID)+1)
	clone := *e
	r.byID[e.ID] = &clone
	return nil
}

func (r *memoryEnquiries) FindByID(_ context.Context, id string) (*domain.Enquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.byID[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, domain.ErrEnquiryNotFound
}

func (r *memoryEnquiries) List(_ context.Context, _ ports.ListEnquiriesFilter) ([]*domain.Enquiry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Enquiry, 0, len(r.byID))
	for _, e := range r.byID {
		clone := *e
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *memoryEnquiries) UpdateStatus(_ context.Context, id string, s domain.EnquiryStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.byID[id]; ok {
		e.Status, e.UpdatedAt = s, at
		return nil
	}
	return domain.ErrEnquiryNotFound
}

func (r *memoryEnquiries) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrEnquiryNotFound
	}
	delete(r.byID, id)
	return nil
}

type fixedCounter struct{}

func (fixedCounter) Count(context.Context, string, map[string]any) (int64, error) { return 3, nil }

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

var testTokens = service.TokenConfig{AccessSecret: "access-secret", RefreshSecret: "refresh-secret"}

type harness struct {
	e      *echo.Echo
	admins *memoryAdmins
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	admins := &memoryAdmins{byID: map[string]*domain.Admin{}}
	hash, err := service.HashPassword("correct")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	_, _ = admins.Create(context.Background(), &domain.Admin{
		Name: "Site Admin", Email: "admin@x.com", PasswordHash: hash, IsActive: true,
	})

	log := zerolog.Nop()
	auth := service.NewAuthService(admins, service.NewTokenManager(testTokens), nil, nil, log)
	enquiries := service.NewEnquiryService(&memoryEnquiries{byID: map[string]*domain.Enquiry{}}, log)

	reg := prometheus.NewRegistry()
	e := NewRouter(Deps{
		Auth:      auth,
		Enquiries: enquiries,
		Dashboard: service.NewDashboardService(fixedCounter{}),
		Readiness: map[string]handler.PingFunc{
			"mongodb": func(context.Context) error { return nil },
		},
		ContactRatePerMinute: 100,
		Registerer:           reg,
		Gatherer:             reg,
		Logger:               log,
	})
	return &harness{e: e, admins: admins}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (h *harness) do(t *testing.T, method, path, token string, body any) (int, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s %s: invalid json %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, resp
}

type loginPayload struct {
	Admin struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"admin"`
	Tokens struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"tokens"`
}

func (h *harness) login(t *testing.T) loginPayload {
	t.Helper()
	code, resp := h.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@x.com", "password": "correct"})
	if code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", code, resp.Message)
	}
	var p loginPayload
	if err := json.Unmarshal(resp.Data, &p); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return p
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRouter_LoginScenario(t *testing.T) {
	h := newHarness(t)
	p := h.login(t)

	if p.Tokens.AccessToken == "" || p.Tokens.RefreshToken == "" {
		t.Fatalf("expected non-empty tokens")
	}
	if p.Admin.Email != "admin@x.com" || p.Admin.Role != "admin" {
		t.Fatalf("unexpected admin %+v", p.Admin)
	}
}

func TestRouter_LoginFailuresAreUniform(t *testing.T) {
	h := newHarness(t)

	code1, wrongPassword := h.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@x.com", "password": "nope"})
	code2, unknownEmail := h.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ghost@x.com", "password": "nope"})

	if code1 != http.StatusUnauthorized || code2 != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", code1, code2)
	}
	if wrongPassword.Message != unknownEmail.Message || wrongPassword.Success || unknownEmail.Success {
		t.Fatalf("responses differ: %+v vs %+v", wrongPassword, unknownEmail)
	}

	code, resp := h.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@x.com"})
	if code != http.StatusBadRequest || resp.Success {
		t.Fatalf("expected 400 for missing password, got %d %+v", code, resp)
	}
}

func TestRouter_DeactivatedAdminCannotLogin(t *testing.T) {
	h := newHarness(t)
	_ = h.admins.SetActive(context.Background(), "admin@x.com", false)

	code, _ := h.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@x.com", "password": "correct"})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	h := newHarness(t)

	code, resp := h.do(t, http.MethodGet, "/api/admin/me", "", nil)
	if code != http.StatusUnauthorized || resp.Success {
		t.Fatalf("expected 401 {success:false}, got %d %+v", code, resp)
	}

	p := h.login(t)
	for _, path := range []string{"/api/admin/me", "/api/admin/dashboard", "/api/admin/enquiries"} {
		if code, resp := h.do(t, http.MethodGet, path, p.Tokens.AccessToken, nil); code != http.StatusOK || !resp.Success {
			t.Fatalf("%s: expected 200, got %d %+v", path, code, resp)
		}
	}

	if code, _ := h.do(t, http.MethodGet, "/api/admin/me", p.Tokens.RefreshToken, nil); code != http.StatusUnauthorized {
		t.Fatalf("refresh token must not authorise requests, got %d", code)
	}

	swapped := service.NewTokenManager(service.TokenConfig{
		AccessSecret:  testTokens.RefreshSecret,
		RefreshSecret: testTokens.AccessSecret,
	})
	forged, err := swapped.IssuePair(domain.Identity{AdminID: p.Admin.ID, Email: p.Admin.Email, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if code, resp := h.do(t, http.MethodGet, "/api/admin/me", forged.AccessToken, nil); code != http.StatusUnauthorized || resp.Message != "Invalid token" {
		t.Fatalf("access token signed with the refresh secret accepted: %d %q", code, resp.Message)
	}
}

func TestRouter_ExpiredVersusInvalid(t *testing.T) {
	h := newHarness(t)
	p := h.login(t)

	past := service.NewTokenManager(testTokens).WithClock(func() time.Time { return time.Now().Add(-time.Hour) })
	stale, err := past.IssuePair(domain.Identity{AdminID: p.Admin.ID, Email: p.Admin.Email, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, expired := h.do(t, http.MethodGet, "/api/admin/me", stale.AccessToken, nil)
	_, invalid := h.do(t, http.MethodGet, "/api/admin/me", p.Tokens.AccessToken+"x", nil)

	if expired.Message != "Token expired" {
		t.Fatalf("expected expired message, got %q", expired.Message)
	}
	if invalid.Message != "Invalid token" {
		t.Fatalf("expected invalid message, got %q", invalid.Message)
	}
}

func TestRouter_RefreshRoundTrip(t *testing.T) {
	h := newHarness(t)
	p := h.login(t)

	code, resp := h.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refreshToken": p.Tokens.RefreshToken})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", code, resp.Message)
	}
	var data struct {
		Tokens struct {
			AccessToken string `json:"accessToken"`
		} `json:"tokens"`
	}
	_ = json.Unmarshal(resp.Data, &data)

	code, resp = h.do(t, http.MethodGet, "/api/admin/me", data.Tokens.AccessToken, nil)
	if code != http.StatusOK {
		t.Fatalf("refreshed token rejected: %d %s", code, resp.Message)
	}
	var me struct {
		Admin struct {
			ID string `json:"id"`
		} `json:"admin"`
	}
	_ = json.Unmarshal(resp.Data, &me)
	if me.Admin.ID != p.Admin.ID {
		t.Fatalf("refreshed identity %q differs from %q", me.Admin.ID, p.Admin.ID)
	}

	if code, _ := h.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refreshToken": p.Tokens.AccessToken}); code != http.StatusUnauthorized {
		t.Fatalf("access token accepted as refresh token: %d", code)
	}
	if code, _ := h.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{}); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing refresh token, got %d", code)
	}
}

func TestRouter_EnquiryLifecycle(t *testing.T) {
	h := newHarness(t)

	code, resp := h.do(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "message": "Please quote for our new office.",
	})
	if code != http.StatusCreated {
		t.Fatalf("contact: expected 201, got %d (%s)", code, resp.Message)
	}

	token := h.login(t).Tokens.AccessToken

	code, resp = h.do(t, http.MethodPatch, "/api/admin/enquiries/enq-1/status", token, map[string]string{"status": "replied"})
	if code != http.StatusOK {
		t.Fatalf("status change: expected 200, got %d (%s)", code, resp.Message)
	}
	code, resp = h.do(t, http.MethodPatch, "/api/admin/enquiries/enq-1/status", token, map[string]string{"status": "read"})
	if code != http.StatusUnprocessableEntity || resp.Success {
		t.Fatalf("backwards transition: expected 422, got %d", code)
	}
	if code, _ := h.do(t, http.MethodGet, "/api/admin/enquiries/missing", token, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if code, _ := h.do(t, http.MethodDelete, "/api/admin/enquiries/enq-1", token, nil); code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", code)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{"/health", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}

	h.login(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte("backoffice_http_requests_total")) {
		t.Fatalf("expected http metrics, got %d", rec.Code)
	}
}

func TestRouter_UnknownRouteUsesEnvelope(t *testing.T) {
	h := newHarness(t)
	code, resp := h.do(t, http.MethodGet, "/api/nope", "", nil)
	if code != http.StatusNotFound || resp.Success || resp.Message == "" {
		t.Fatalf("expected enveloped 404, got %d %+v", code, resp)
	}
}
