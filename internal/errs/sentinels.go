// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates bad input shape or content.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates a missing, invalid or wrong-kind credential.
	ErrUnauthorized = errors.New("unauthorized")
)

// Status maps an error to an HTTP status code. Anything outside the
// sentinel taxonomy is an internal error.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Public returns the message safe to surface to clients. Validation,
// not-found and unauthorized messages pass through; storage and other
// internal failures are collapsed to a generic message.
func Public(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}
