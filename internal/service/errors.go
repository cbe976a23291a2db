package service

import (
	"errors"
	"strings"
)

// Centralized service layer errors. Handlers never inspect error text; the
// mapping from error to HTTP response lives in the handler error mapper.

// ===== Authentication Errors =====
var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are logged separately but must be indistinguishable to
	// the user, so the email space cannot be probed through login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
)

// ===== Resource Errors =====
var (
	ErrCampgroundNotFound = errors.New("campground not found")
	ErrReviewNotFound     = errors.New("review not found")
)

// ValidationError carries every violated-field message for a rejected form,
// in schema declaration order.
type ValidationError struct {
	Messages []string
}

// Error joins the field messages into the single user-visible message
func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}
