package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockPlaceStore is a testify mock of store.PlaceStore.
type MockPlaceStore struct {
	mock.Mock
}

// FindOrCreate is a mock implementation of store.PlaceStore.FindOrCreate
func (m *MockPlaceStore) FindOrCreate(ctx context.Context, name, address string) (store.PlaceResult, error) {
	args := m.Called(ctx, name, address)
	res, _ := args.Get(0).(store.PlaceResult)
	return res, args.Error(1)
}

// GetByID is a mock implementation of store.PlaceStore.GetByID
func (m *MockPlaceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	args := m.Called(ctx, id)
	if place, ok := args.Get(0).(*domain.Place); ok {
		return place, args.Error(1)
	}
	return nil, args.Error(1)
}

// Search is a mock implementation of store.PlaceStore.Search
func (m *MockPlaceStore) Search(ctx context.Context, filter store.PlaceFilter) ([]*domain.Place, error) {
	args := m.Called(ctx, filter)
	if places, ok := args.Get(0).([]*domain.Place); ok {
		return places, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the same mock so expectations carry into transactions.
func (m *MockPlaceStore) WithTx(tx *sql.Tx) store.PlaceStore {
	return m
}
