package service

import (
	"fmt"

	"github.com/phrazzld/spot-api/internal/domain"
)

// Service errors. Each one wraps a domain error kind so callers can branch on
// either the specific condition or the kind with errors.Is. The API layer
// shows their text to clients.
var (
	// ErrInvalidCredentials is returned by Authenticate for an unknown phone
	// and for a wrong password alike.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid phone or password", domain.ErrUnauthorized)

	// ErrPhoneTaken is returned when registering a phone that already has an account.
	ErrPhoneTaken = fmt.Errorf("%w: phone number is already registered", domain.ErrConflict)

	// ErrAlreadyReviewed is returned when the user has already reviewed the place.
	ErrAlreadyReviewed = fmt.Errorf("%w: you have already reviewed this place", domain.ErrConflict)

	// ErrSubmissionContention is returned when a review could not be committed
	// after the configured number of attempts because of concurrent writers.
	ErrSubmissionContention = fmt.Errorf("%w: place is being modified concurrently, please retry", domain.ErrConflict)

	// ErrPlaceNotFound is returned when the requested place does not exist.
	ErrPlaceNotFound = fmt.Errorf("%w: place not found", domain.ErrNotFound)

	// ErrUserNotFound is returned when the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user not found", domain.ErrNotFound)

	// ErrUnknownReviewer is returned when an authenticated user id no longer
	// matches a stored account.
	ErrUnknownReviewer = fmt.Errorf("%w: reviewer account not found", domain.ErrUnauthorized)
)
