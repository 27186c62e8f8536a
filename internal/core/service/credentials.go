package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/ports"
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// equalizeTiming burns one bcrypt comparison so unknown emails cost the same
// as wrong passwords.
func equalizeTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// HashPassword returns the bcrypt hash stored on admin records.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CredentialVerifier checks an email/password pair against stored admins.
type CredentialVerifier struct {
	repo ports.AdminRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewCredentialVerifier(repo ports.AdminRepository, log zerolog.Logger) *CredentialVerifier {
	return &CredentialVerifier{repo: repo, log: log, now: time.Now}
}

// Verify returns the matching active admin with LastLoginAt stamped. Every
// rejection cause collapses into domain.ErrInvalidCredentials; storage
// failures become domain.ErrLoginFailed.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*domain.Admin, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := v.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			equalizeTiming(password)
			return nil, domain.ErrInvalidCredentials
		}
		v.log.Error().Err(err).Msg("admin lookup failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrLoginFailed, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	now := v.now().UTC()
	if err := v.repo.TouchLastLogin(ctx, admin.ID, now); err != nil {
		v.log.Error().Err(err).Str("admin_id", admin.ID).Msg("failed to record last login")
		return nil, fmt.Errorf("%w: %v", domain.ErrLoginFailed, err)
	}
	admin.LastLoginAt = &now

	return admin, nil
}
