package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an API failure for the caller's handling decision.
type Kind string

const (
	KindAuthentication Kind = "AUTHENTICATION" // no or expired session
	KindAuthorization  Kind = "AUTHORIZATION"  // row policy denial
	KindValidation     Kind = "VALIDATION"     // constraint or field rule failure
	KindNetwork        Kind = "NETWORK"        // transport failure
	KindDatabase       Kind = "DATABASE"       // uncategorized backend failure
	KindNotFound       Kind = "NOT_FOUND"      // row absent or inaccessible
	KindUnknown        Kind = "UNKNOWN"        // fallback
)

// Error is a failed API call. Message carries the server's user-facing text
// verbatim so callers can surface it directly.
type Error struct {
	StatusCode int
	Kind       Kind
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound returns true for NOT_FOUND failures.
func (e *Error) IsNotFound() bool {
	return e.Kind == KindNotFound
}

// IsAuth returns true when the session is missing or expired.
func (e *Error) IsAuth() bool {
	return e.Kind == KindAuthentication
}

// IsValidation returns true for constraint or field rule failures.
func (e *Error) IsValidation() bool {
	return e.Kind == KindValidation
}

// AsError returns err as an *Error when it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// classify maps an HTTP status and the server's message onto the taxonomy.
func classify(statusCode int, message string) Kind {
	switch statusCode {
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusForbidden:
		return KindAuthorization
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return KindValidation
	}

	if statusCode >= 500 {
		return KindDatabase
	}

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "not found"):
		return KindNotFound
	case strings.Contains(lower, "permission") || strings.Contains(lower, "denied"):
		return KindAuthorization
	case strings.Contains(lower, "token") || strings.Contains(lower, "credential"):
		return KindAuthentication
	}

	return KindUnknown
}

// netError wraps a transport-level failure.
func netError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "failed to reach server: " + err.Error()}
}
