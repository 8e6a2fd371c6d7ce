package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // register dialect
	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/platform/logger"
	"github.com/phrazzld/spot-api/internal/redact"
	"github.com/phrazzld/spot-api/internal/store"
)

var dialect = goqu.Dialect("postgres")

// PostgresPlaceStore implements the store.PlaceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPlaceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPlaceStore creates a new PostgreSQL implementation of the PlaceStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPlaceStore(db store.DBTX, logger *slog.Logger) *PostgresPlaceStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPlaceStore{
		db:     db,
		logger: logger.With(slog.String("component", "place_store")),
	}
}

// Ensure PostgresPlaceStore implements store.PlaceStore interface
var _ store.PlaceStore = (*PostgresPlaceStore)(nil)

// WithTx implements store.PlaceStore.WithTx
func (s *PostgresPlaceStore) WithTx(tx *sql.Tx) store.PlaceStore {
	return &PostgresPlaceStore{
		db:     tx,
		logger: s.logger,
	}
}

// FindOrCreate implements store.PlaceStore.FindOrCreate
//
// The insert uses ON CONFLICT DO NOTHING, which under READ COMMITTED blocks
// on a concurrent insert of the same (name, address) until that transaction
// finishes. When nothing is returned the row already exists and is re-read.
// If the re-read also finds nothing the competing row was not yet visible
// and store.ErrRetryable is returned so the caller can retry the transaction.
func (s *PostgresPlaceStore) FindOrCreate(ctx context.Context, name, address string) (store.PlaceResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	candidate, err := domain.NewPlace(name, address)
	if err != nil {
		return store.PlaceResult{}, err
	}

	insert := `
		INSERT INTO places (id, name, address, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name, address) DO NOTHING
		RETURNING id, name, address, created_at
	`
	place, err := scanPlace(s.db.QueryRowContext(ctx, insert,
		candidate.ID,
		candidate.Name,
		candidate.Address,
		candidate.CreatedAt,
	))
	switch {
	case err == nil:
		log.Info("place created",
			slog.String("place_id", place.ID.String()))
		return store.PlaceResult{Place: place, Created: true}, nil
	case errors.Is(err, sql.ErrNoRows):
		// Conflict: fall through to the lookup.
	case IsUniqueViolation(err) || IsSerializationFailure(err):
		log.Warn("place insert lost a race",
			slog.String("error", redact.Error(err)))
		return store.PlaceResult{}, fmt.Errorf("%w: place insert conflict", store.ErrRetryable)
	default:
		log.Error("failed to insert place",
			slog.String("error", redact.Error(err)))
		return store.PlaceResult{}, MapError(err)
	}

	lookup := `
		SELECT id, name, address, created_at
		FROM places
		WHERE name = $1 AND address = $2
	`
	place, err = scanPlace(s.db.QueryRowContext(ctx, lookup, candidate.Name, candidate.Address))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("conflicting place not visible after insert conflict")
			return store.PlaceResult{}, fmt.Errorf("%w: place not visible after conflict", store.ErrRetryable)
		}
		log.Error("failed to fetch existing place",
			slog.String("error", redact.Error(err)))
		return store.PlaceResult{}, MapError(err)
	}

	log.Debug("place already exists",
		slog.String("place_id", place.ID.String()))
	return store.PlaceResult{Place: place, Created: false}, nil
}

// GetByID implements store.PlaceStore.GetByID
// Returns store.ErrPlaceNotFound if the place does not exist.
func (s *PostgresPlaceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, address, created_at
		FROM places
		WHERE id = $1
	`
	place, err := scanPlace(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("place not found", slog.String("place_id", id.String()))
			return nil, store.ErrPlaceNotFound
		}
		log.Error("failed to get place by ID",
			slog.String("error", redact.Error(err)),
			slog.String("place_id", id.String()))
		return nil, MapError(err)
	}

	return place, nil
}

// Search implements store.PlaceStore.Search
func (s *PostgresPlaceStore) Search(ctx context.Context, filter store.PlaceFilter) ([]*domain.Place, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := buildPlaceSearchQuery(filter)
	if err != nil {
		log.Error("failed to build place search query",
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to build place search query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to search places",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	places := make([]*domain.Place, 0)
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.CreatedAt); err != nil {
			log.Error("failed to scan place row",
				slog.String("error", redact.Error(err)))
			return nil, fmt.Errorf("failed to scan place row: %w", err)
		}
		places = append(places, &p)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating place rows",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}

	log.Debug("place search completed",
		slog.Int("count", len(places)))
	return places, nil
}

func buildPlaceSearchQuery(filter store.PlaceFilter) (string, []interface{}, error) {
	ds := dialect.From("places").
		Prepared(true).
		Select("id", "name", "address", "created_at").
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc())

	if filter.NameContains != nil {
		if name := strings.TrimSpace(*filter.NameContains); name != "" {
			ds = ds.Where(goqu.I("name").ILike("%" + escapeLike(name) + "%"))
		}
	}

	return ds.ToSQL()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using the default
// backslash escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanPlace(row *sql.Row) (*domain.Place, error) {
	var p domain.Place
	if err := row.Scan(&p.ID, &p.Name, &p.Address, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
