package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/platform/logger"
	"github.com/phrazzld/spot-api/internal/redact"
	"github.com/phrazzld/spot-api/internal/store"
)

// DefaultMaxTxRetries is used when a non-positive retry budget is configured.
const DefaultMaxTxRetries = 3

// SubmitReviewInput is a review for a place identified by name and address.
type SubmitReviewInput struct {
	PlaceName string
	Address   string
	Rating    int
	Text      string
}

// SubmitReviewResult is the outcome of a successful submission.
type SubmitReviewResult struct {
	Review       *domain.Review
	Place        *domain.Place
	PlaceCreated bool
}

// ReviewService handles review submission.
type ReviewService interface {
	// SubmitReview records a review by userID, creating the place if it does
	// not exist yet. Place resolution and review insertion commit together or
	// not at all.
	SubmitReview(ctx context.Context, userID uuid.UUID, in SubmitReviewInput) (*SubmitReviewResult, error)
}

type reviewServiceImpl struct {
	db          *sql.DB
	placeStore  store.PlaceStore
	reviewStore store.ReviewStore
	maxAttempts int
	logger      *slog.Logger
}

var _ ReviewService = (*reviewServiceImpl)(nil)

// NewReviewService creates a new ReviewService. maxAttempts bounds how many
// times a transaction that lost a place-creation race is retried.
func NewReviewService(
	db *sql.DB,
	placeStore store.PlaceStore,
	reviewStore store.ReviewStore,
	maxAttempts int,
	logger *slog.Logger,
) ReviewService {
	if db == nil {
		panic("db cannot be nil")
	}
	if placeStore == nil {
		panic("placeStore cannot be nil")
	}
	if reviewStore == nil {
		panic("reviewStore cannot be nil")
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxTxRetries
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		db:          db,
		placeStore:  placeStore,
		reviewStore: reviewStore,
		maxAttempts: maxAttempts,
		logger:      logger.With(slog.String("component", "review_service")),
	}
}

// validate checks the input in the order clients see errors: rating, text, then place.
func (in SubmitReviewInput) validate() error {
	if err := domain.ValidateRating(in.Rating); err != nil {
		return err
	}
	if strings.TrimSpace(in.Text) == "" {
		return domain.ErrEmptyReviewText
	}
	if strings.TrimSpace(in.PlaceName) == "" {
		return domain.ErrEmptyPlaceName
	}
	if strings.TrimSpace(in.Address) == "" {
		return domain.ErrEmptyAddress
	}
	return nil
}

// SubmitReview implements ReviewService.SubmitReview.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	in SubmitReviewInput,
) (*SubmitReviewResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	if err := in.validate(); err != nil {
		log.Debug("review submission rejected by validation",
			slog.String("error", redact.Error(err)))
		return nil, err
	}

	var (
		result *SubmitReviewResult
		err    error
	)
	for attempt := 1; ; attempt++ {
		result, err = s.submitOnce(ctx, userID, in)
		if err == nil || !store.IsRetryableError(err) {
			break
		}
		if attempt >= s.maxAttempts {
			log.Warn("review submission retries exhausted",
				slog.Int("attempts", attempt),
				slog.String("error", redact.Error(err)))
			return nil, fmt.Errorf("%w (%w)", ErrSubmissionContention, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("review submission aborted: %w", ctxErr)
		}
		log.Info("retrying review submission after concurrent place write",
			slog.Int("attempt", attempt),
			slog.String("error", redact.Error(err)))
	}

	if err != nil {
		switch {
		case errors.Is(err, store.ErrReviewExists):
			log.Debug("user already reviewed place")
			return nil, fmt.Errorf("%w (%w)", ErrAlreadyReviewed, err)
		case errors.Is(err, domain.ErrValidation):
			return nil, err
		case errors.Is(err, store.ErrInvalidEntity):
			log.Warn("review references a missing user",
				slog.String("error", redact.Error(err)))
			return nil, fmt.Errorf("%w (%w)", ErrUnknownReviewer, err)
		default:
			log.Error("failed to submit review",
				slog.String("error", redact.Error(err)))
			return nil, fmt.Errorf("failed to submit review: %w", err)
		}
	}

	log.Info("review submitted",
		slog.String("review_id", result.Review.ID.String()),
		slog.String("place_id", result.Place.ID.String()),
		slog.Bool("place_created", result.PlaceCreated))
	return result, nil
}

// submitOnce runs one transaction attempt.
func (s *reviewServiceImpl) submitOnce(
	ctx context.Context,
	userID uuid.UUID,
	in SubmitReviewInput,
) (*SubmitReviewResult, error) {
	var result *SubmitReviewResult

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		placeRes, err := s.placeStore.WithTx(tx).FindOrCreate(ctx, in.PlaceName, in.Address)
		if err != nil {
			return fmt.Errorf("resolve place: %w", err)
		}

		review, err := domain.NewReview(userID, placeRes.Place.ID, in.Rating, in.Text)
		if err != nil {
			return err
		}

		if err := s.reviewStore.WithTx(tx).Create(ctx, review); err != nil {
			return fmt.Errorf("create review: %w", err)
		}

		result = &SubmitReviewResult{
			Review:       review,
			Place:        placeRes.Place,
			PlaceCreated: placeRes.Created,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
