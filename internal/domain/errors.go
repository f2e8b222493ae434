package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface keeps the handler error mapping extensible.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionClosed indicates a picker session that was confirmed,
	// expired, or explicitly deleted.
	ErrSessionClosed = errors.New("session closed")
)

// SessionClosedError carries the session id for logging; matches
// ErrSessionClosed via errors.Is and maps to 410 so the wizard UI can
// distinguish "restart the picker" from a plain 404.
type SessionClosedError struct {
	SessionID string
}

func (e *SessionClosedError) Error() string {
	return "picker session " + e.SessionID + " is closed"
}

func (e *SessionClosedError) StatusCode() int { return http.StatusGone }

func (e *SessionClosedError) Is(target error) bool {
	return target == ErrSessionClosed
}
