package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/mocks"
	"github.com/phrazzld/spot-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeRouter(h *PlaceHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/places/search", h.Search)
	r.Get("/places/{id}", h.GetPlace)
	return r
}

func TestSearchPlaces(t *testing.T) {
	t.Parallel()

	cafe := service.PlaceSummary{ID: uuid.New(), Name: "Cafe", AverageRating: 4.5}

	var gotQuery service.SearchQuery
	svc := &mocks.MockPlaceService{
		SearchFn: func(ctx context.Context, q service.SearchQuery) (*service.SearchResult, error) {
			gotQuery = q
			if q.MinRating != nil && (*q.MinRating < 1 || *q.MinRating > 5) {
				return nil, domain.ErrInvalidMinRating
			}
			return &service.SearchResult{Count: 1, Results: []service.PlaceSummary{cafe}}, nil
		},
	}
	router := placeRouter(NewPlaceHandler(svc, nil))

	t.Run("name and min rating are passed through", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/places/search?name=caf&minRating=4", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, gotQuery.Name)
		assert.Equal(t, "caf", *gotQuery.Name)
		require.NotNil(t, gotQuery.MinRating)
		assert.Equal(t, 4, *gotQuery.MinRating)

		var resp SearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
		assert.Equal(t, cafe.ID, resp.Results[0].ID)
		assert.InDelta(t, 4.5, resp.Results[0].AverageRating, 1e-9)
	})

	t.Run("no filters", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/places/search", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, gotQuery.Name)
		assert.Nil(t, gotQuery.MinRating)
	})

	t.Run("non integer min rating", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/places/search?minRating=four", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "minRating must be an integer between 1 and 5", decodeError(t, w))
	})

	t.Run("min rating out of range", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/places/search?minRating=6", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetPlace(t *testing.T) {
	t.Parallel()

	requester := uuid.New()
	placeID := uuid.New()
	own := service.ReviewEntry{ID: uuid.New(), Rating: 5, Text: "mine", UserName: "Ada", Own: true, CreatedAt: time.Now()}
	other := service.ReviewEntry{ID: uuid.New(), Rating: 2, Text: "theirs", UserName: "Bob", CreatedAt: time.Now()}

	svc := &mocks.MockPlaceService{
		GetDetailFn: func(ctx context.Context, id, uid uuid.UUID) (*service.PlaceDetail, error) {
			assert.Equal(t, requester, uid)
			if id != placeID {
				return nil, service.ErrPlaceNotFound
			}
			return &service.PlaceDetail{
				ID: placeID, Name: "Blue Bottle", Address: "1 Main St",
				AverageRating: 3.5, ReviewsCount: 2,
				Reviews: []service.ReviewEntry{own, other},
			}, nil
		},
	}
	router := placeRouter(NewPlaceHandler(svc, nil))

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodGet, "/places/"+placeID.String(), nil, requester))

		require.Equal(t, http.StatusOK, w.Code)
		var resp PlaceDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Blue Bottle", resp.Name)
		assert.Equal(t, 2, resp.ReviewsCount)
		require.Len(t, resp.Reviews, 2)
		assert.Equal(t, own.ID, resp.Reviews[0].ID)
		assert.Equal(t, "Bob", resp.Reviews[1].UserName)
		assert.NotContains(t, w.Body.String(), "phone")
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodGet, "/places/"+uuid.NewString(), nil, requester))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Place not found", decodeError(t, w))
	})

	t.Run("malformed id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodGet, "/places/not-a-uuid", nil, requester))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "id must be a valid UUID", decodeError(t, w))
	})
}
