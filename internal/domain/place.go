package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Place is a reviewable entity identified by its (Name, Address) pair.
// Places are created implicitly by the first review that mentions them and
// are never updated or deleted.
type Place struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewPlace creates a Place with a fresh ID. Name and address are trimmed but
// otherwise stored exactly as given; uniqueness is case-sensitive.
func NewPlace(name, address string) (*Place, error) {
	place := &Place{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Address:   strings.TrimSpace(address),
		CreatedAt: time.Now().UTC(),
	}

	if err := place.Validate(); err != nil {
		return nil, err
	}

	return place, nil
}

// Validate checks if the Place has valid data.
func (p *Place) Validate() error {
	if p.Name == "" {
		return ErrEmptyPlaceName
	}
	if p.Address == "" {
		return ErrEmptyAddress
	}
	return nil
}

// NameMatchesExactly reports whether the place name equals query ignoring case.
func (p *Place) NameMatchesExactly(query string) bool {
	return strings.ToLower(p.Name) == strings.ToLower(strings.TrimSpace(query))
}
