package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/api/shared"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/mocks"
	"github.com/phrazzld/spot-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(shared.WithUserID(req.Context(), userID))
}

func TestSubmitReview(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	placeID := uuid.New()
	created := time.Date(2025, 5, 5, 10, 0, 0, 0, time.UTC)

	validBody := map[string]interface{}{
		"placeName": "Blue Bottle",
		"address":   "1 Main St",
		"rating":    5,
		"text":      "Great coffee",
	}

	tests := []struct {
		name        string
		body        interface{}
		submitErr   error
		wantStatus  int
		wantMessage string
	}{
		{name: "created", body: validBody, wantStatus: http.StatusCreated},
		{
			name:        "missing place name",
			body:        map[string]interface{}{"address": "1 Main St", "rating": 5, "text": "x"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid placeName: required field",
		},
		{
			name:        "fractional rating",
			body:        `{"placeName":"A","address":"B","rating":4.5,"text":"x"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request format",
		},
		{
			name:        "rating out of range",
			body:        validBody,
			submitErr:   domain.ErrInvalidRating,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "rating must be an integer between 1 and 5",
		},
		{
			name:        "already reviewed",
			body:        validBody,
			submitErr:   service.ErrAlreadyReviewed,
			wantStatus:  http.StatusConflict,
			wantMessage: "You have already reviewed this place",
		},
		{
			name:        "internal failure",
			body:        validBody,
			submitErr:   errors.New("pq: could not serialize access"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: GenericErrorMessage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotInput service.SubmitReviewInput
			svc := &mocks.MockReviewService{
				SubmitReviewFn: func(ctx context.Context, uid uuid.UUID, in service.SubmitReviewInput) (*service.SubmitReviewResult, error) {
					assert.Equal(t, userID, uid)
					gotInput = in
					if tc.submitErr != nil {
						return nil, tc.submitErr
					}
					return &service.SubmitReviewResult{
						Review: &domain.Review{
							ID: uuid.New(), Rating: in.Rating, Text: in.Text,
							UserID: uid, PlaceID: placeID, CreatedAt: created,
						},
						Place:        &domain.Place{ID: placeID, Name: in.PlaceName, Address: in.Address},
						PlaceCreated: true,
					}, nil
				},
			}

			var body []byte
			if s, ok := tc.body.(string); ok {
				body = []byte(s)
			} else {
				body, _ = json.Marshal(tc.body)
			}

			w := httptest.NewRecorder()
			NewReviewHandler(svc, nil).SubmitReview(w, authedRequest(http.MethodPost, "/reviews", body, userID))

			require.Equal(t, tc.wantStatus, w.Code, w.Body.String())
			if tc.wantStatus != http.StatusCreated {
				assert.Equal(t, tc.wantMessage, decodeError(t, w))
				return
			}

			assert.Equal(t, "Blue Bottle", gotInput.PlaceName)
			var resp ReviewResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, placeID, resp.PlaceID)
			assert.Equal(t, userID, resp.UserID)
			assert.Equal(t, 5, resp.Rating)
			assert.True(t, resp.PlaceCreated)
			assert.True(t, created.Equal(resp.CreatedAt))
		})
	}
}

func TestSubmitReviewWithoutUser(t *testing.T) {
	svc := &mocks.MockReviewService{}
	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()

	NewReviewHandler(svc, nil).SubmitReview(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
