package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/platform/logger"
	"github.com/phrazzld/spot-api/internal/redact"
	"github.com/phrazzld/spot-api/internal/service/auth"
	"github.com/phrazzld/spot-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// defaultDummyHash is a bcrypt hash at bcrypt.DefaultCost. It is compared
// against when the phone is unknown so that a login for a missing account
// costs about as much as one with a wrong password.
const defaultDummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3J0i8mZ5iSkQvFvFZk0YQ2e"

// UserServiceOption configures a UserService.
type UserServiceOption func(*userServiceImpl)

// WithBcryptCost makes unknown-phone logins compare against a hash of the
// given cost. It should match the cost the user store hashes passwords with.
func WithBcryptCost(cost int) UserServiceOption {
	return func(s *userServiceImpl) {
		if cost == bcrypt.DefaultCost {
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte("spot-dummy-password"), cost)
		if err != nil {
			s.logger.Warn("keeping default dummy hash",
				slog.Int("bcrypt_cost", cost),
				slog.String("error", redact.Error(err)))
			return
		}
		s.dummyHash = string(hash)
	}
}

// UserService provides registration and authentication.
type UserService interface {
	// Register creates a user. The password is hashed by the store.
	Register(ctx context.Context, name, phone, password string) (*domain.User, error)

	// Authenticate returns the user owning phone if password matches.
	// Returns ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, phone, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type userServiceImpl struct {
	userStore store.UserStore
	db        *sql.DB
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
	dummyHash string
}

var _ UserService = (*userServiceImpl)(nil)

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	db *sql.DB,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
	opts ...UserServiceOption,
) UserService {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if db == nil {
		panic("db cannot be nil")
	}
	if verifier == nil {
		panic("verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &userServiceImpl{
		userStore: userStore,
		db:        db,
		verifier:  verifier,
		logger:    logger.With(slog.String("component", "user_service")),
		dummyHash: defaultDummyHash,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user inside a transaction.
func (s *userServiceImpl) Register(ctx context.Context, name, phone, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, phone, password)
	if err != nil {
		log.Debug("registration rejected by validation",
			slog.String("error", redact.Error(err)))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrPhoneExists) {
			log.Debug("attempted to register an existing phone")
			return nil, fmt.Errorf("%w (%w)", ErrPhoneTaken, err)
		}
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		log.Error("failed to register user",
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()))
	return user, nil
}

// Authenticate verifies a phone and password pair.
func (s *userServiceImpl) Authenticate(ctx context.Context, phone, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = s.verifier.Compare(s.dummyHash, password)
			log.Debug("login for unknown phone")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for login",
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Error("stored password hash is unusable",
				slog.String("error", redact.Error(err)),
				slog.String("user_id", user.ID.String()))
		} else {
			log.Debug("login with wrong password",
				slog.String("user_id", user.ID.String()))
		}
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("%w (%w)", ErrUserNotFound, err)
		}
		log.Error("failed to retrieve user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}
