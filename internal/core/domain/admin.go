package domain

import (
	"strings"
	"time"
)

// RoleAdmin is the only role the back office issues.
const RoleAdmin = "admin"

// Admin is a back-office operator. Records are created by the seed command,
// never through the HTTP API.
type Admin struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Identity returns the claims payload minted into tokens for this admin.
func (a *Admin) Identity() Identity {
	return Identity{AdminID: a.ID, Email: a.Email, Role: RoleAdmin}
}

// NormalizeEmail trims and lower-cases an address. Stored emails are always
// normalised so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
