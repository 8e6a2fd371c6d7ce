package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating and text authored by one user for one place.
// A user may review a given place at most once.
type Review struct {
	ID        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	UserID    uuid.UUID `json:"userId"`
	PlaceID   uuid.UUID `json:"placeId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewWithAuthor is a Review joined with the display name of its author.
// It deliberately carries no other user fields.
type ReviewWithAuthor struct {
	Review
	UserName string `json:"userName"`
}

// NewReview creates a Review with a fresh ID.
func NewReview(userID, placeID uuid.UUID, rating int, text string) (*Review, error) {
	review := &Review{
		ID:        uuid.New(),
		Rating:    rating,
		Text:      strings.TrimSpace(text),
		UserID:    userID,
		PlaceID:   placeID,
		CreatedAt: time.Now().UTC(),
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// ValidateRating checks that rating lies within [MinRating, MaxRating].
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// Validate checks if the Review has valid data.
func (r *Review) Validate() error {
	if err := ValidateRating(r.Rating); err != nil {
		return err
	}
	if r.Text == "" {
		return ErrEmptyReviewText
	}
	if r.UserID == uuid.Nil {
		return NewValidationError("userId", "cannot be empty", nil)
	}
	if r.PlaceID == uuid.Nil {
		return NewValidationError("placeId", "cannot be empty", nil)
	}
	return nil
}
