package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/spot-api/internal/api/shared"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/platform/logger"
	"github.com/phrazzld/spot-api/internal/service"
)

// PlaceHandler serves place search and place detail.
type PlaceHandler struct {
	placeService service.PlaceService
	logger       *slog.Logger
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(placeService service.PlaceService, logger *slog.Logger) *PlaceHandler {
	if placeService == nil {
		panic("placeService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaceHandler{
		placeService: placeService,
		logger:       logger.With(slog.String("component", "place_handler")),
	}
}

// Search handles GET /places/search?name=&minRating=.
func (h *PlaceHandler) Search(w http.ResponseWriter, r *http.Request) {
	minRating, err := getOptionalQueryInt(r, "minRating", domain.ErrInvalidMinRating)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.placeService.Search(r.Context(), service.SearchQuery{
		Name:      getOptionalQueryString(r, "name"),
		MinRating: minRating,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := SearchResponse{
		Count:   res.Count,
		Results: make([]PlaceSummaryResponse, len(res.Results)),
	}
	for i, p := range res.Results {
		resp.Results[i] = PlaceSummaryResponse{ID: p.ID, Name: p.Name, AverageRating: p.AverageRating}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetPlace handles GET /places/{id}.
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	placeID, err := getPathUUID(r, "id")
	if err != nil {
		log.Debug("invalid place id", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	detail, err := h.placeService.GetDetail(r.Context(), placeID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := PlaceDetailResponse{
		ID:            detail.ID,
		Name:          detail.Name,
		Address:       detail.Address,
		AverageRating: detail.AverageRating,
		ReviewsCount:  detail.ReviewsCount,
		Reviews:       make([]PlaceReviewResponse, len(detail.Reviews)),
	}
	for i, rv := range detail.Reviews {
		resp.Reviews[i] = PlaceReviewResponse{
			ID:        rv.ID,
			Rating:    rv.Rating,
			Text:      rv.Text,
			CreatedAt: rv.CreatedAt,
			UserName:  rv.UserName,
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
