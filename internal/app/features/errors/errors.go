// internal/app/features/errors/errors.go
package errors

import (
	"fmt"
	"net/http"
)

// Error is an HTTP-facing failure: a status code and a message that is
// safe to show the caller.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// New builds an Error with a formatted message.
func New(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// NotFound is returned when a referenced document does not exist.
func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, format, args...)
}

// BadRequest is returned for malformed input and validation failures.
func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

// Unauthorized is returned when the caller is not signed in, presents bad
// credentials, or does not own the document being mutated.
func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, format, args...)
}

// Forbidden is returned when the caller's role is not allowed on a route.
func Forbidden(format string, args ...any) *Error {
	return New(http.StatusForbidden, format, args...)
}

// TooManyRequests is returned by rate-limited endpoints.
func TooManyRequests(format string, args ...any) *Error {
	return New(http.StatusTooManyRequests, format, args...)
}
