package api

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Phone    string `json:"phone"    validate:"required,max=32"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	UserID       uuid.UUID `json:"userId"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	// ExpiresAt is the RFC 3339 expiry of Token.
	ExpiresAt string `json:"expiresAt"`
}

// SubmitReviewRequest defines the payload for POST /reviews.
// Rating range and blank text are checked by the review service.
type SubmitReviewRequest struct {
	PlaceName string `json:"placeName" validate:"required,max=200"`
	Address   string `json:"address"   validate:"required,max=300"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"      validate:"required,max=5000"`
}

// ReviewResponse is a created review.
type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	PlaceID      uuid.UUID `json:"placeId"`
	UserID       uuid.UUID `json:"userId"`
	Rating       int       `json:"rating"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"createdAt"`
	PlaceCreated bool      `json:"placeCreated"`
}

// PlaceSummaryResponse is one search hit.
type PlaceSummaryResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	AverageRating float64   `json:"averageRating"`
}

// SearchResponse is the body of GET /places/search.
type SearchResponse struct {
	Count   int                    `json:"count"`
	Results []PlaceSummaryResponse `json:"results"`
}

// PlaceReviewResponse is a review on the place detail page.
// It never carries the author's phone.
type PlaceReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UserName  string    `json:"userName"`
}

// PlaceDetailResponse is the body of GET /places/{id}.
type PlaceDetailResponse struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Address       string                `json:"address"`
	AverageRating float64               `json:"averageRating"`
	ReviewsCount  int                   `json:"reviewsCount"`
	Reviews       []PlaceReviewResponse `json:"reviews"`
}
