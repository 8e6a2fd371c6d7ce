package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/service"
)

// MockUserService implements service.UserService for handler tests.
type MockUserService struct {
	RegisterFn     func(ctx context.Context, name, phone, password string) (*domain.User, error)
	AuthenticateFn func(ctx context.Context, phone, password string) (*domain.User, error)
	GetUserFn      func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements service.UserService.
func (m *MockUserService) Register(ctx context.Context, name, phone, password string) (*domain.User, error) {
	return m.RegisterFn(ctx, name, phone, password)
}

// Authenticate implements service.UserService.
func (m *MockUserService) Authenticate(ctx context.Context, phone, password string) (*domain.User, error) {
	return m.AuthenticateFn(ctx, phone, password)
}

// GetUser implements service.UserService.
func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.GetUserFn(ctx, userID)
}

// MockReviewService implements service.ReviewService for handler tests.
type MockReviewService struct {
	SubmitReviewFn func(ctx context.Context, userID uuid.UUID, in service.SubmitReviewInput) (*service.SubmitReviewResult, error)
}

var _ service.ReviewService = (*MockReviewService)(nil)

// SubmitReview implements service.ReviewService.
func (m *MockReviewService) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	in service.SubmitReviewInput,
) (*service.SubmitReviewResult, error) {
	return m.SubmitReviewFn(ctx, userID, in)
}

// MockPlaceService implements service.PlaceService for handler tests.
type MockPlaceService struct {
	SearchFn    func(ctx context.Context, q service.SearchQuery) (*service.SearchResult, error)
	GetDetailFn func(ctx context.Context, placeID, requesterID uuid.UUID) (*service.PlaceDetail, error)
}

var _ service.PlaceService = (*MockPlaceService)(nil)

// Search implements service.PlaceService.
func (m *MockPlaceService) Search(ctx context.Context, q service.SearchQuery) (*service.SearchResult, error) {
	return m.SearchFn(ctx, q)
}

// GetDetail implements service.PlaceService.
func (m *MockPlaceService) GetDetail(ctx context.Context, placeID, requesterID uuid.UUID) (*service.PlaceDetail, error) {
	return m.GetDetailFn(ctx, placeID, requesterID)
}
