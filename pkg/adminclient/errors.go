package adminclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotAuthenticated is returned when a session call needs tokens that are
	// not there.
	ErrNotAuthenticated = errors.New("adminclient: not authenticated")

	// ErrSessionExpired is returned when the refresh token was rejected. The
	// session has been cleared by the time the caller sees it.
	ErrSessionExpired = errors.New("adminclient: session expired")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("adminclient: %d %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// isRejection reports whether the server refused the request outright, as
// opposed to the request never completing.
func isRejection(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
}
