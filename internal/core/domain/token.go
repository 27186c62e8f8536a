package domain

import "time"

// TokenUse separates access tokens from refresh tokens inside the claims.
type TokenUse string

const (
	TokenUseAccess  TokenUse = "access"
	TokenUseRefresh TokenUse = "refresh"
)

// Identity is the set of claims carried by both tokens of a pair.
type Identity struct {
	AdminID string `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// Claims is a verified token's identity plus its registered metadata.
type Claims struct {
	Identity
	Use       TokenUse
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	AccessExpiresAt  time.Time `json:"-"`
	RefreshExpiresAt time.Time `json:"-"`
}
