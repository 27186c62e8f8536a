package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/ports"
	"github.com/interiorfitout/backoffice/internal/pkg/metrics"
)

// AuthService implements admin login, token refresh and the access gate.
type AuthService struct {
	admins      ports.AdminRepository
	credentials *CredentialVerifier
	tokens      ports.TokenService
	limiter     ports.AttemptLimiter
	audit       ports.AuditRecorder
	log         zerolog.Logger
	now         func() time.Time
}

// NewAuthService wires the session use case. limiter and audit may be nil.
func NewAuthService(
	admins ports.AdminRepository,
	tokens ports.TokenService,
	limiter ports.AttemptLimiter,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	if limiter == nil {
		limiter = noopLimiter{}
	}
	if audit == nil {
		audit = noopAudit{}
	}
	return &AuthService{
		admins:      admins,
		credentials: NewCredentialVerifier(admins, log),
		tokens:      tokens,
		limiter:     limiter,
		audit:       audit,
		log:         log,
		now:         time.Now,
	}
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string, client ports.ClientInfo) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)

	if err := s.limiter.Check(ctx, email, client.RemoteIP); err != nil {
		if errors.Is(err, domain.ErrTooManyAttempts) {
			s.record(domain.LoginThrottled, "", email, client)
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			return nil, err
		}
		s.log.Warn().Err(err).Msg("login limiter unavailable, continuing")
	}

	admin, err := s.credentials.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			if ferr := s.limiter.Fail(ctx, email, client.RemoteIP); ferr != nil && !errors.Is(ferr, domain.ErrTooManyAttempts) {
				s.log.Warn().Err(ferr).Msg("failed to count login failure")
			}
			s.record(domain.LoginRejected, "", email, client)
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	tokens, err := s.tokens.IssuePair(admin.Identity())
	if err != nil {
		s.log.Error().Err(err).Str("admin_id", admin.ID).Msg("failed to issue tokens")
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login counter")
	}
	s.record(domain.LoginSucceeded, admin.ID, email, client)
	metrics.LoginAttemptsTotal.WithLabelValues("succeeded").Inc()
	s.log.Info().Str("admin_id", admin.ID).Str("ip", client.RemoteIP).Msg("admin logged in")

	return &ports.LoginResult{Admin: admin, Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a brand-new pair. It never
// looks at the password; only signature, expiry and the admin's active flag.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, client ports.ClientInfo) (domain.TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return domain.TokenPair{}, domain.ErrInvalidRefreshToken
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		if isConfigError(err) {
			s.log.Error().Err(err).Msg("refresh token verification misconfigured")
			return domain.TokenPair{}, err
		}
		return domain.TokenPair{}, s.rejectRefresh("", client)
	}

	admin, err := s.admins.FindByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return domain.TokenPair{}, s.rejectRefresh(claims.AdminID, client)
		}
		s.log.Error().Err(err).Str("admin_id", claims.AdminID).Msg("admin lookup failed during refresh")
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return domain.TokenPair{}, fmt.Errorf("refresh: %w", err)
	}
	if !admin.IsActive {
		return domain.TokenPair{}, s.rejectRefresh(admin.ID, client)
	}

	pair, err := s.tokens.IssuePair(admin.Identity())
	if err != nil {
		s.log.Error().Err(err).Str("admin_id", admin.ID).Msg("failed to issue tokens on refresh")
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return domain.TokenPair{}, fmt.Errorf("refresh: %w", err)
	}

	s.record(domain.RefreshSucceeded, admin.ID, admin.Email, client)
	metrics.RefreshTotal.WithLabelValues("succeeded").Inc()
	return pair, nil
}

// Authenticate is the access gate. The tagged result tells the caller which
// state of the check chain the request stopped in.
func (s *AuthService) Authenticate(ctx context.Context, authorizationHeader string) domain.GateResult {
	token, failure := bearerToken(authorizationHeader)
	if failure != domain.GateOK {
		return domain.GateResult{Failure: failure, Err: domain.ErrUnauthorized}
	}

	claims, err := s.tokens.VerifyAccess(token)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrTokenExpired):
		return domain.GateResult{Failure: domain.GateExpiredToken, Err: domain.ErrTokenExpired}
	case errors.Is(err, domain.ErrTokenInvalid):
		return domain.GateResult{Failure: domain.GateInvalidToken, Err: domain.ErrTokenInvalid}
	default:
		s.log.Error().Err(err).Msg("access token verification failed")
		return domain.GateResult{Failure: domain.GateUnavailable, Err: err}
	}

	admin, err := s.admins.FindByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return domain.GateResult{Failure: domain.GateInactiveAdmin, Err: domain.ErrUnauthorized}
		}
		s.log.Error().Err(err).Str("admin_id", claims.AdminID).Msg("admin lookup failed in gate")
		return domain.GateResult{Failure: domain.GateUnavailable, Err: err}
	}
	if !admin.IsActive {
		return domain.GateResult{Failure: domain.GateInactiveAdmin, Err: domain.ErrUnauthorized}
	}

	return domain.GateResult{Failure: domain.GateOK, Identity: claims.Identity}
}

// CurrentAdmin loads the record behind an authenticated identity.
func (s *AuthService) CurrentAdmin(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("current admin: %w", err)
	}
	if !admin.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return admin, nil
}

func (s *AuthService) rejectRefresh(adminID string, client ports.ClientInfo) error {
	s.record(domain.RefreshRejected, adminID, "", client)
	metrics.RefreshTotal.WithLabelValues("rejected").Inc()
	return domain.ErrInvalidRefreshToken
}

func (s *AuthService) record(outcome domain.LoginOutcome, adminID, email string, client ports.ClientInfo) {
	s.audit.Record(domain.LoginEvent{
		AdminID:    adminID,
		Email:      email,
		Outcome:    outcome,
		RemoteIP:   client.RemoteIP,
		UserAgent:  client.UserAgent,
		OccurredAt: s.now().UTC(),
	})
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, domain.GateFailure) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domain.GateMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.GateMalformedHeader
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.GateMalformedHeader
	}
	return token, domain.GateOK
}

func isConfigError(err error) bool {
	return errors.Is(err, domain.ErrSigningSecretMissing) || errors.Is(err, domain.ErrSigningSecretsShared)
}

type noopLimiter struct{}

func (noopLimiter) Check(context.Context, string, string) error { return nil }
func (noopLimiter) Fail(context.Context, string, string) error  { return nil }
func (noopLimiter) Reset(context.Context, string) error         { return nil }

type noopAudit struct{}

func (noopAudit) Record(domain.LoginEvent) {}
