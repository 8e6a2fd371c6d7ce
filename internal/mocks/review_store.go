package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockReviewStore is a testify mock of store.ReviewStore.
type MockReviewStore struct {
	mock.Mock
}

// Create is a mock implementation of store.ReviewStore.Create
func (m *MockReviewStore) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

// ListByPlace is a mock implementation of store.ReviewStore.ListByPlace
func (m *MockReviewStore) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*domain.ReviewWithAuthor, error) {
	args := m.Called(ctx, placeID)
	if reviews, ok := args.Get(0).([]*domain.ReviewWithAuthor); ok {
		return reviews, args.Error(1)
	}
	return nil, args.Error(1)
}

// RatingsByPlace is a mock implementation of store.ReviewStore.RatingsByPlace
func (m *MockReviewStore) RatingsByPlace(ctx context.Context, placeIDs []uuid.UUID) (map[uuid.UUID][]int, error) {
	args := m.Called(ctx, placeIDs)
	if ratings, ok := args.Get(0).(map[uuid.UUID][]int); ok {
		return ratings, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the same mock so expectations carry into transactions.
func (m *MockReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return m
}
