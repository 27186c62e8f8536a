package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/interiorfitout/backoffice/internal/core/domain"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
	defaultIssuer     = "fitout-site"
	defaultAudience   = "fitout-admin"
)

// TokenConfig holds the signing material and lifetimes for the token pair.
// Secrets have no defaults; an empty secret surfaces as
// domain.ErrSigningSecretMissing on the first issue or verify call.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	Audience      string
}

// TokenManager issues and verifies HS256 access/refresh tokens.
type TokenManager struct {
	cfg TokenConfig
	now func() time.Time
}

type tokenClaims struct {
	Email string          `json:"email"`
	Role  string          `json:"role"`
	Use   domain.TokenUse `json:"token_use"`
	jwt.RegisteredClaims
}

func NewTokenManager(cfg TokenConfig) *TokenManager {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = defaultIssuer
	}
	if cfg.Audience == "" {
		cfg.Audience = defaultAudience
	}
	return &TokenManager{cfg: cfg, now: time.Now}
}

// WithClock replaces the time source used for issuing and verifying.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// IssuePair signs a fresh access token with the access secret and a fresh
// refresh token with the refresh secret.
func (m *TokenManager) IssuePair(identity domain.Identity) (domain.TokenPair, error) {
	accessKey, refreshKey, err := m.keys()
	if err != nil {
		return domain.TokenPair{}, err
	}

	now := m.now()
	access, accessExp, err := m.sign(identity, domain.TokenUseAccess, accessKey, now, m.cfg.AccessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, refreshExp, err := m.sign(identity, domain.TokenUseRefresh, refreshKey, now, m.cfg.RefreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// VerifyAccess validates a token against the access secret only.
func (m *TokenManager) VerifyAccess(token string) (domain.Claims, error) {
	accessKey, _, err := m.keys()
	if err != nil {
		return domain.Claims{}, err
	}
	return m.verify(token, accessKey, domain.TokenUseAccess)
}

// VerifyRefresh validates a token against the refresh secret only.
func (m *TokenManager) VerifyRefresh(token string) (domain.Claims, error) {
	_, refreshKey, err := m.keys()
	if err != nil {
		return domain.Claims{}, err
	}
	return m.verify(token, refreshKey, domain.TokenUseRefresh)
}

func (m *TokenManager) keys() (access, refresh []byte, err error) {
	if m.cfg.AccessSecret == "" || m.cfg.RefreshSecret == "" {
		return nil, nil, domain.ErrSigningSecretMissing
	}
	access, refresh = []byte(m.cfg.AccessSecret), []byte(m.cfg.RefreshSecret)
	if subtle.ConstantTimeCompare(access, refresh) == 1 {
		return nil, nil, domain.ErrSigningSecretsShared
	}
	return access, refresh, nil
}

func (m *TokenManager) sign(identity domain.Identity, use domain.TokenUse, key []byte, now time.Time, ttl time.Duration) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := tokenClaims{
		Email: identity.Email,
		Role:  identity.Role,
		Use:   use,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.AdminID,
			Issuer:    m.cfg.Issuer,
			Audience:  jwt.ClaimStrings{m.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", use, err)
	}
	return signed, exp, nil
}

func (m *TokenManager) verify(tokenStr string, key []byte, use domain.TokenUse) (domain.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithAudience(m.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	claims := &tokenClaims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		// Signature is checked before claims, so an expired error implies the
		// token was genuinely ours.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Claims{}, domain.ErrTokenExpired
		}
		return domain.Claims{}, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if !token.Valid || claims.Use != use || claims.Subject == "" || claims.Role != domain.RoleAdmin {
		return domain.Claims{}, domain.ErrTokenInvalid
	}

	out := domain.Claims{
		Identity: domain.Identity{
			AdminID: claims.Subject,
			Email:   claims.Email,
			Role:    claims.Role,
		},
		Use:     claims.Use,
		TokenID: claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
