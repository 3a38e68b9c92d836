package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a response the remote service answered with a non-success
// status. Message carries the server's own description when the body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d", e.Status)
}

// TransportError means no usable response arrived at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError is local input rejected before any request was dispatched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsAuthFailure reports whether err is an APIError with an
// authentication-related status. Call sites outside the session guard use
// this to treat expired sessions the same way the guard does.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// UserMessage extracts the server-provided message from err, falling back to
// a generic transport-failure text. User-facing notifications go through this.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}
	return "unable to reach the server"
}
