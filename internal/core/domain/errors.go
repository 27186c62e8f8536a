package domain

import "errors"

// Authentication.
var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrLoginFailed         = errors.New("login failed")
	ErrTooManyAttempts     = errors.New("too many login attempts")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenInvalid        = errors.New("invalid token")
	ErrUnauthorized        = errors.New("unauthorized")
)

// Configuration.
var (
	ErrSigningSecretMissing = errors.New("token signing secret is not configured")
	ErrSigningSecretsShared = errors.New("access and refresh signing secrets must differ")
)

// Admin records.
var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrAdminExists   = errors.New("admin already exists")
)

// Enquiries.
var (
	ErrEnquiryNotFound   = errors.New("enquiry not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)
