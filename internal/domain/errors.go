package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a domain operation wraps exactly one of
// these so the API boundary can choose a status code with errors.Is.
var (
	// ErrValidation is returned when input is malformed or out of range.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned when the caller's identity is missing or
	// their credentials do not check out.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an operation would violate a uniqueness rule.
	ErrConflict = errors.New("conflict")
)

// Field-level validation errors.
var (
	ErrEmptyUserID      = NewValidationError("id", "cannot be empty", nil)
	ErrEmptyName        = NewValidationError("name", "cannot be empty", nil)
	ErrInvalidPhone     = NewValidationError("phone", "must be 7 to 15 digits with an optional leading +", nil)
	ErrPasswordTooShort = NewValidationError("password", "must be at least 8 characters long", nil)
	ErrPasswordTooLong  = NewValidationError("password", "must be at most 72 characters long", nil)
	ErrEmptyHashedPass  = NewValidationError("password", "hash cannot be empty", nil)
	ErrEmptyPlaceName   = NewValidationError("placeName", "cannot be empty", nil)
	ErrEmptyAddress     = NewValidationError("address", "cannot be empty", nil)
	ErrInvalidRating    = NewValidationError("rating", "must be an integer between 1 and 5", nil)
	ErrEmptyReviewText  = NewValidationError("text", "cannot be empty", nil)
	ErrInvalidMinRating = NewValidationError("minRating", "must be an integer between 1 and 5", nil)
)

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError. err may be nil, in which case
// the error still matches ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Is reports whether target is ErrValidation, so every ValidationError
// classifies as a validation failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Unwrap returns the underlying cause, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
