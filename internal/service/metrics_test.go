package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/mocks"
	"github.com/phrazzld/spot-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "", service.ErrorKind(nil))
	assert.Equal(t, "validation", service.ErrorKind(domain.ErrInvalidRating))
	assert.Equal(t, "unauthorized", service.ErrorKind(service.ErrInvalidCredentials))
	assert.Equal(t, "not_found", service.ErrorKind(service.ErrPlaceNotFound))
	assert.Equal(t, "conflict", service.ErrorKind(service.ErrAlreadyReviewed))
	assert.Equal(t, "internal", service.ErrorKind(errors.New("boom")))
}

func TestServiceMetricsDecorators(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := service.NewMetrics(reg)

	places := service.NewPlaceServiceMetrics(&mocks.MockPlaceService{
		SearchFn: func(ctx context.Context, q service.SearchQuery) (*service.SearchResult, error) {
			if q.MinRating != nil {
				return nil, domain.ErrInvalidMinRating
			}
			return &service.SearchResult{}, nil
		},
		GetDetailFn: func(ctx context.Context, placeID, requesterID uuid.UUID) (*service.PlaceDetail, error) {
			return nil, service.ErrPlaceNotFound
		},
	}, m)

	reviews := service.NewReviewServiceMetrics(&mocks.MockReviewService{
		SubmitReviewFn: func(ctx context.Context, userID uuid.UUID, in service.SubmitReviewInput) (*service.SubmitReviewResult, error) {
			return nil, service.ErrAlreadyReviewed
		},
	}, m)

	ctx := context.Background()
	_, err := places.Search(ctx, service.SearchQuery{})
	require.NoError(t, err)
	bad := 9
	_, err = places.Search(ctx, service.SearchQuery{MinRating: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation, "decorator must return the wrapped error unchanged")
	_, _ = places.GetDetail(ctx, uuid.New(), uuid.New())
	_, _ = reviews.SubmitReview(ctx, uuid.New(), service.SubmitReviewInput{})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CallCounter().WithLabelValues("place", "search")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorCounter().WithLabelValues("place", "search", "validation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorCounter().WithLabelValues("place", "get_detail", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorCounter().WithLabelValues("review", "submit", "conflict")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.ErrorCounter()))

	count, err := testutil.GatherAndCount(reg, "spot_service_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "one histogram series per service method")
}
