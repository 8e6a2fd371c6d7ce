package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
)

// PlaceResult is the outcome of FindOrCreate. Created is true only for the
// call whose insert produced the row.
type PlaceResult struct {
	Place   *domain.Place
	Created bool
}

// PlaceFilter narrows a candidate search. A nil NameContains matches every place.
type PlaceFilter struct {
	// NameContains is matched case-insensitively as a literal substring.
	NameContains *string
}

// PlaceStore defines the interface for place data persistence.
type PlaceStore interface {
	// FindOrCreate returns the place identified by (name, address), inserting
	// it when absent. Concurrent calls for the same pair resolve to one row.
	// Returns ErrRetryable if the race could not be resolved in this transaction.
	FindOrCreate(ctx context.Context, name, address string) (PlaceResult, error)

	// GetByID retrieves a place by its ID.
	// Returns ErrPlaceNotFound if the place does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error)

	// Search returns candidate places matching filter, ordered by creation
	// time then id, both ascending.
	Search(ctx context.Context, filter PlaceFilter) ([]*domain.Place, error)

	// WithTx returns a new PlaceStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) PlaceStore
}
