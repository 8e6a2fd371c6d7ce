package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/spot-api/internal/api/shared"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/platform/logger"
	"github.com/phrazzld/spot-api/internal/service"
)

// ReviewHandler handles review submission.
type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReview handles POST /reviews. The place named in the body is created
// when it does not exist yet.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, requestFormatError(err), "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	res, err := h.reviewService.SubmitReview(r.Context(), userID, service.SubmitReviewInput{
		PlaceName: req.PlaceName,
		Address:   req.Address,
		Rating:    req.Rating,
		Text:      req.Text,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ReviewResponse{
		ID:           res.Review.ID,
		PlaceID:      res.Review.PlaceID,
		UserID:       res.Review.UserID,
		Rating:       res.Review.Rating,
		Text:         res.Review.Text,
		CreatedAt:    res.Review.CreatedAt,
		PlaceCreated: res.PlaceCreated,
	})
}
