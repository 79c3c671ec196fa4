package auth

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured   = errors.New("identity service is not configured")
	ErrMissingEmail    = errors.New("email is required")
	ErrMissingPassword = errors.New("password is required")
	ErrMissingToken    = errors.New("access token is required")
	ErrNoSession       = errors.New("provider did not return a session")
)

// APIError carries the provider's own message for a failed call
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("identity service: %s (%s, status %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("identity service: %s (status %d)", e.Message, e.StatusCode)
}
