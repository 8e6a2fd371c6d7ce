package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
)

// ReviewStore defines the interface for review data persistence.
type ReviewStore interface {
	// Create saves a new review.
	// Returns ErrReviewExists if the user already reviewed the place.
	Create(ctx context.Context, review *domain.Review) error

	// ListByPlace returns every review of a place joined with its author's
	// name, newest first (created_at desc, id desc).
	ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*domain.ReviewWithAuthor, error)

	// RatingsByPlace returns the raw ratings for each of the given places in a
	// single round trip. Places without reviews are absent from the map.
	RatingsByPlace(ctx context.Context, placeIDs []uuid.UUID) (map[uuid.UUID][]int, error)

	// WithTx returns a new ReviewStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ReviewStore
}
