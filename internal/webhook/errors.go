package webhook

import (
	"context"
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when a workflow answers with data we cannot use
var ErrMalformedResponse = errors.New("malformed webhook response")

// ValidationError is raised before any network call when input or configuration is bad
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NetworkError covers timeouts, transport failures, and non-2xx responses
type NetworkError struct {
	Endpoint   Endpoint
	StatusCode int // zero when no response arrived
	Timeout    bool
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s webhook timed out: %v", e.Endpoint, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s webhook returned status %d", e.Endpoint, e.StatusCode)
	default:
		return fmt.Sprintf("%s webhook request failed: %v", e.Endpoint, e.Err)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage is the text shown in the error toast
func (e *NetworkError) UserMessage() string {
	if e.Timeout {
		return "The request timed out. Check your connection and try again."
	}
	if e.StatusCode >= 500 {
		return "The workflow service is having trouble. Please try again in a moment."
	}
	return "Something went wrong while contacting the workflow service. Please try again."
}

func newNetworkError(endpoint Endpoint, err error) *NetworkError {
	return &NetworkError{
		Endpoint: endpoint,
		Timeout:  errors.Is(err, context.DeadlineExceeded),
		Err:      err,
	}
}
