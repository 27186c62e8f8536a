package ports

import (
	"context"

	"github.com/interiorfitout/backoffice/internal/core/domain"
)

// ClientInfo describes the caller of an authentication endpoint. It is used
// for throttling and the audit trail only.
type ClientInfo struct {
	RemoteIP  string
	UserAgent string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Admin  *domain.Admin
	Tokens domain.TokenPair
}

// AuthService is the admin session use case consumed by the transport layer.
type AuthService interface {
	Login(ctx context.Context, email, password string, client ClientInfo) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string, client ClientInfo) (domain.TokenPair, error)
	// Authenticate runs the access gate over a raw Authorization header value.
	Authenticate(ctx context.Context, authorizationHeader string) domain.GateResult
	CurrentAdmin(ctx context.Context, id string) (*domain.Admin, error)
}

// TokenService issues and verifies the signed token pair.
type TokenService interface {
	IssuePair(identity domain.Identity) (domain.TokenPair, error)
	VerifyAccess(token string) (domain.Claims, error)
	VerifyRefresh(token string) (domain.Claims, error)
}

// AttemptLimiter throttles repeated failed logins.
type AttemptLimiter interface {
	Check(ctx context.Context, email, ip string) error
	Fail(ctx context.Context, email, ip string) error
	Reset(ctx context.Context, email string) error
}

// AuditRecorder receives login audit events. Record must not block.
type AuditRecorder interface {
	Record(event domain.LoginEvent)
}
