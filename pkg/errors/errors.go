package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents the class of failure a run can hit
type ErrorType string

const (
	ErrorTypeConfig    ErrorType = "config"
	ErrorTypeAuth      ErrorType = "auth"
	ErrorTypeRateLimit ErrorType = "rate_limit"
	ErrorTypeNetwork   ErrorType = "network"
	ErrorTypeNotFound  ErrorType = "not_found"
	ErrorTypeUpstream  ErrorType = "upstream"
	ErrorTypeParsing   ErrorType = "parsing"
)

// ErrNoUserSpecified is returned when the target username is missing
var ErrNoUserSpecified = &Error{
	Type:    ErrorTypeConfig,
	Message: "no user specified",
}

// Error represents a typed failure with an optional HTTP status code
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	// ResetAt is the upstream rate limit reset time, zero when unknown
	ResetAt time.Time
	Err     error
}

func (e *Error) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("%s error: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error
func New(errorType ErrorType, code int, message string) *Error {
	return &Error{Type: errorType, Code: code, Message: message}
}

// Wrap creates a typed error around a cause
func Wrap(errorType ErrorType, err error, message string) *Error {
	return &Error{Type: errorType, Message: message, Err: err}
}

// FromStatus maps a non-success HTTP status to a typed error
func FromStatus(statusCode int) *Error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return New(ErrorTypeAuth, statusCode, "authentication failed")
	case http.StatusNotFound:
		return New(ErrorTypeNotFound, statusCode, "resource not found")
	case http.StatusTooManyRequests:
		return New(ErrorTypeRateLimit, statusCode, "rate limit exceeded")
	default:
		return New(ErrorTypeUpstream, statusCode, fmt.Sprintf("unexpected status code: %d", statusCode))
	}
}

// TypeOf returns the ErrorType of err, or "" when err is not a typed error
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ""
}

// Is reports whether err is a typed error of the given type
func Is(err error, errorType ErrorType) bool {
	return TypeOf(err) == errorType
}

// IsRetryable checks if an error type is worth retrying immediately.
// Rate limits are handled by the cooldown loop, not by retries.
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNetwork:
		return true
	default:
		return false
	}
}
