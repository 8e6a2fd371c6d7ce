package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/platform/logger"
	"github.com/phrazzld/spot-api/internal/redact"
	"github.com/phrazzld/spot-api/internal/store"
)

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the ReviewStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// WithTx implements store.ReviewStore.WithTx
func (s *PostgresReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &PostgresReviewStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ReviewStore.Create
// Returns store.ErrReviewExists if the (user, place) pair already has a review.
// Returns store.ErrInvalidEntity if the user or place does not exist.
func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during create",
			slog.String("error", redact.Error(err)),
			slog.String("review_id", review.ID.String()))
		return err
	}

	query := `
		INSERT INTO reviews (id, user_id, place_id, rating, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		review.ID,
		review.UserID,
		review.PlaceID,
		review.Rating,
		review.Text,
		review.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) && constraintName(err) == reviewsUserPlaceKey {
			log.Info("user already reviewed place",
				slog.String("user_id", review.UserID.String()),
				slog.String("place_id", review.PlaceID.String()))
			return MapUniqueViolation(err, store.ErrReviewExists)
		}

		log.Error("failed to create review",
			slog.String("error", redact.Error(err)),
			slog.String("review_id", review.ID.String()),
			slog.String("place_id", review.PlaceID.String()))
		return MapError(err)
	}

	log.Info("review created successfully",
		slog.String("review_id", review.ID.String()),
		slog.String("user_id", review.UserID.String()),
		slog.String("place_id", review.PlaceID.String()),
		slog.Int("rating", review.Rating))
	return nil
}

// ListByPlace implements store.ReviewStore.ListByPlace
func (s *PostgresReviewStore) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*domain.ReviewWithAuthor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT r.id, r.user_id, r.place_id, r.rating, r.text, r.created_at, u.name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.place_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, placeID)
	if err != nil {
		log.Error("failed to list reviews",
			slog.String("error", redact.Error(err)),
			slog.String("place_id", placeID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	reviews := make([]*domain.ReviewWithAuthor, 0)
	for rows.Next() {
		var r domain.ReviewWithAuthor
		if err := rows.Scan(
			&r.ID,
			&r.UserID,
			&r.PlaceID,
			&r.Rating,
			&r.Text,
			&r.CreatedAt,
			&r.UserName,
		); err != nil {
			log.Error("failed to scan review row",
				slog.String("error", redact.Error(err)),
				slog.String("place_id", placeID.String()))
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating review rows",
			slog.String("error", redact.Error(err)),
			slog.String("place_id", placeID.String()))
		return nil, MapError(err)
	}

	return reviews, nil
}

// RatingsByPlace implements store.ReviewStore.RatingsByPlace
func (s *PostgresReviewStore) RatingsByPlace(ctx context.Context, placeIDs []uuid.UUID) (map[uuid.UUID][]int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ratings := make(map[uuid.UUID][]int, len(placeIDs))
	if len(placeIDs) == 0 {
		return ratings, nil
	}

	query, args, err := buildRatingsQuery(placeIDs)
	if err != nil {
		log.Error("failed to build ratings query",
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to build ratings query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to fetch ratings",
			slog.String("error", redact.Error(err)),
			slog.Int("place_count", len(placeIDs)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var placeID uuid.UUID
		var rating int
		if err := rows.Scan(&placeID, &rating); err != nil {
			log.Error("failed to scan rating row",
				slog.String("error", redact.Error(err)))
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		ratings[placeID] = append(ratings[placeID], rating)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating rating rows",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}

	return ratings, nil
}

func buildRatingsQuery(placeIDs []uuid.UUID) (string, []interface{}, error) {
	ids := make([]string, len(placeIDs))
	for i, id := range placeIDs {
		ids[i] = id.String()
	}

	return dialect.From("reviews").
		Prepared(true).
		Select("place_id", "rating").
		Where(goqu.I("place_id").In(ids)).
		ToSQL()
}
