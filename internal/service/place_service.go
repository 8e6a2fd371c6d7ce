package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/platform/logger"
	"github.com/phrazzld/spot-api/internal/redact"
	"github.com/phrazzld/spot-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// SearchQuery filters a place search. Nil fields are absent.
type SearchQuery struct {
	Name      *string
	MinRating *int
}

// PlaceSummary is one search hit.
type PlaceSummary struct {
	ID            uuid.UUID
	Name          string
	AverageRating float64
}

// SearchResult lists matching places, exact name matches first.
type SearchResult struct {
	Count   int
	Results []PlaceSummary
}

// ReviewEntry is a review as shown on a place page.
type ReviewEntry struct {
	ID        uuid.UUID
	Rating    int
	Text      string
	CreatedAt time.Time
	UserName  string
	// Own marks the requester's review.
	Own bool
}

// PlaceDetail is a place with its rating summary and every review.
type PlaceDetail struct {
	ID            uuid.UUID
	Name          string
	Address       string
	AverageRating float64
	ReviewsCount  int
	Reviews       []ReviewEntry
}

// PlaceService answers read queries about places.
type PlaceService interface {
	// Search returns places matching q. MinRating must be within 1..5.
	Search(ctx context.Context, q SearchQuery) (*SearchResult, error)

	// GetDetail returns a place with its reviews, the requester's own review
	// first and the rest newest first.
	GetDetail(ctx context.Context, placeID, requesterID uuid.UUID) (*PlaceDetail, error)
}

type placeServiceImpl struct {
	placeStore  store.PlaceStore
	reviewStore store.ReviewStore
	logger      *slog.Logger
}

var _ PlaceService = (*placeServiceImpl)(nil)

// NewPlaceService creates a new PlaceService.
func NewPlaceService(placeStore store.PlaceStore, reviewStore store.ReviewStore, logger *slog.Logger) PlaceService {
	if placeStore == nil {
		panic("placeStore cannot be nil")
	}
	if reviewStore == nil {
		panic("reviewStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &placeServiceImpl{
		placeStore:  placeStore,
		reviewStore: reviewStore,
		logger:      logger.With(slog.String("component", "place_service")),
	}
}

// Search implements PlaceService.Search.
//
// A place qualifies for a minimum rating when its reported (rounded) average
// is at least that value. Places without reviews never qualify.
func (s *placeServiceImpl) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if q.MinRating != nil {
		if err := domain.ValidateRating(*q.MinRating); err != nil {
			return nil, domain.ErrInvalidMinRating
		}
	}

	var name string
	filter := store.PlaceFilter{}
	if q.Name != nil {
		name = strings.TrimSpace(*q.Name)
		if name != "" {
			filter.NameContains = &name
		}
	}

	places, err := s.placeStore.Search(ctx, filter)
	if err != nil {
		log.Error("failed to search places",
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to search places: %w", err)
	}

	ids := make([]uuid.UUID, len(places))
	for i, p := range places {
		ids[i] = p.ID
	}

	ratings, err := s.reviewStore.RatingsByPlace(ctx, ids)
	if err != nil {
		log.Error("failed to fetch ratings for search",
			slog.String("error", redact.Error(err)),
			slog.Int("place_count", len(ids)))
		return nil, fmt.Errorf("failed to fetch ratings: %w", err)
	}

	type hit struct {
		summary PlaceSummary
		exact   bool
	}
	hits := make([]hit, 0, len(places))
	for _, p := range places {
		agg := domain.AggregateRatings(ratings[p.ID])
		if q.MinRating != nil && (agg.Count == 0 || agg.Average < float64(*q.MinRating)) {
			continue
		}
		hits = append(hits, hit{
			summary: PlaceSummary{ID: p.ID, Name: p.Name, AverageRating: agg.Average},
			exact:   filter.NameContains != nil && p.NameMatchesExactly(name),
		})
	}

	// Stable keeps the store's created_at, id order within each group.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].exact && !hits[j].exact
	})

	result := &SearchResult{Count: len(hits), Results: make([]PlaceSummary, len(hits))}
	for i, h := range hits {
		result.Results[i] = h.summary
	}

	log.Debug("place search completed",
		slog.Int("candidates", len(places)),
		slog.Int("results", result.Count))
	return result, nil
}

// GetDetail implements PlaceService.GetDetail.
// The place and its reviews are read concurrently.
func (s *placeServiceImpl) GetDetail(ctx context.Context, placeID, requesterID uuid.UUID) (*PlaceDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("place_id", placeID.String()))

	var (
		place   *domain.Place
		reviews []*domain.ReviewWithAuthor
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		place, err = s.placeStore.GetByID(gctx, placeID)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = s.reviewStore.ListByPlace(gctx, placeID)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, store.ErrPlaceNotFound) {
			log.Debug("place not found")
			return nil, fmt.Errorf("%w (%w)", ErrPlaceNotFound, err)
		}
		log.Error("failed to load place detail",
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to load place detail: %w", err)
	}

	entries := make([]ReviewEntry, 0, len(reviews))
	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
		entries = append(entries, ReviewEntry{
			ID:        r.ID,
			Rating:    r.Rating,
			Text:      r.Text,
			CreatedAt: r.CreatedAt,
			UserName:  r.UserName,
			Own:       r.UserID == requesterID,
		})
	}

	// Own review first; the rest keep the store's newest-first order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Own && !entries[j].Own
	})

	agg := domain.AggregateRatings(ratings)
	return &PlaceDetail{
		ID:            place.ID,
		Name:          place.Name,
		Address:       place.Address,
		AverageRating: agg.Average,
		ReviewsCount:  agg.Count,
		Reviews:       entries,
	}, nil
}
