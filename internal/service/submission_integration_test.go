//go:build integration

package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/platform/postgres"
	"github.com/phrazzld/spot-api/internal/service"
	"github.com/phrazzld/spot-api/internal/service/auth"
	"github.com/phrazzld/spot-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const concurrentSubmitters = 8

type services struct {
	users   service.UserService
	reviews service.ReviewService
	places  service.PlaceService
}

func newIntegrationServices(t *testing.T) services {
	t.Helper()
	db := testdb.GetTestDBWithT(t)
	testdb.ResetTables(t, db)

	placeStore := postgres.NewPostgresPlaceStore(db, nil)
	reviewStore := postgres.NewPostgresReviewStore(db, nil)
	return services{
		users:   service.NewUserService(postgres.NewPostgresUserStore(db, bcrypt.MinCost), db, auth.NewBcryptVerifier(), nil),
		reviews: service.NewReviewService(db, placeStore, reviewStore, service.DefaultMaxTxRetries, nil),
		places:  service.NewPlaceService(placeStore, reviewStore, nil),
	}
}

func registerUsers(ctx context.Context, t *testing.T, users service.UserService, n int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, n)
	for i := range ids {
		u, err := users.Register(ctx, fmt.Sprintf("User %d", i), fmt.Sprintf("+1555000%04d", i), "password123")
		require.NoError(t, err)
		ids[i] = u.ID
	}
	return ids
}

func TestConcurrentFirstReviewsCreateOnePlace(t *testing.T) {
	svc := newIntegrationServices(t)
	ctx := context.Background()
	userIDs := registerUsers(ctx, t, svc.users, concurrentSubmitters)

	results := make([]*service.SubmitReviewResult, len(userIDs))
	var g errgroup.Group
	for i, uid := range userIDs {
		g.Go(func() error {
			res, err := svc.reviews.SubmitReview(ctx, uid, service.SubmitReviewInput{
				PlaceName: "Race Cafe",
				Address:   "1 Contention Way",
				Rating:    i%5 + 1,
				Text:      "first!",
			})
			results[i] = res
			return err
		})
	}
	require.NoError(t, g.Wait())

	created := 0
	placeID := results[0].Place.ID
	for _, res := range results {
		assert.Equal(t, placeID, res.Place.ID, "all reviews attach to one place")
		if res.PlaceCreated {
			created++
		}
	}
	assert.Equal(t, 1, created, "exactly one submission creates the place")

	name := "race cafe"
	found, err := svc.places.Search(ctx, service.SearchQuery{Name: &name})
	require.NoError(t, err)
	require.Equal(t, 1, found.Count)

	detail, err := svc.places.GetDetail(ctx, placeID, userIDs[0])
	require.NoError(t, err)
	assert.Equal(t, concurrentSubmitters, detail.ReviewsCount)
	assert.Equal(t, found.Results[0].AverageRating, detail.AverageRating,
		"search and detail report the same average")
	assert.True(t, detail.Reviews[0].Own)
}

func TestConcurrentDuplicateReviewsByOneUser(t *testing.T) {
	svc := newIntegrationServices(t)
	ctx := context.Background()
	userID := registerUsers(ctx, t, svc.users, 1)[0]

	errs := make([]error, concurrentSubmitters)
	var g errgroup.Group
	for i := range errs {
		g.Go(func() error {
			_, errs[i] = svc.reviews.SubmitReview(ctx, userID, service.SubmitReviewInput{
				PlaceName: "Solo Diner",
				Address:   "2 Repeat Rd",
				Rating:    4,
				Text:      "again and again",
			})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, succeeded, "exactly one review per user and place")
}

func TestSubmitReviewRejectsInvalidInputWithoutWriting(t *testing.T) {
	svc := newIntegrationServices(t)
	ctx := context.Background()
	userID := registerUsers(ctx, t, svc.users, 1)[0]

	_, err := svc.reviews.SubmitReview(ctx, userID, service.SubmitReviewInput{
		PlaceName: "Ghost Place", Address: "0 Nowhere", Rating: 6, Text: "too good",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	name := "Ghost"
	found, err := svc.places.Search(ctx, service.SearchQuery{Name: &name})
	require.NoError(t, err)
	assert.Zero(t, found.Count, "no place is created by a rejected review")
}
