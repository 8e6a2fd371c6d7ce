package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/phrazzld/spot-api/internal/mocks"
	"github.com/phrazzld/spot-api/internal/service"
	"github.com/phrazzld/spot-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectCommit()

		users := mocks.NewMockUserStore()
		svc := service.NewUserService(users, db, &mocks.MockPasswordVerifier{}, nil)

		user, err := svc.Register(context.Background(), "Ada", "+1 555 010 2000", "password123")
		require.NoError(t, err)
		assert.Equal(t, "+15550102000", user.Phone)
		assert.Contains(t, users.Users, "+15550102000")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate phone is a conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectRollback()

		users := mocks.NewMockUserStore()
		users.CreateError = store.ErrPhoneExists
		svc := service.NewUserService(users, db, &mocks.MockPasswordVerifier{}, nil)

		_, err = svc.Register(context.Background(), "Ada", "+15550102000", "password123")
		assert.ErrorIs(t, err, service.ErrPhoneTaken)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.ErrorIs(t, err, store.ErrPhoneExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid input never opens a transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		svc := service.NewUserService(mocks.NewMockUserStore(), db, &mocks.MockPasswordVerifier{}, nil)

		_, err = svc.Register(context.Background(), "Ada", "12", "password123")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserService_Authenticate(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	stored := &domain.User{ID: uuid.New(), Name: "Ada", Phone: "+15550102000", HashedPassword: "hash"}
	users := mocks.NewMockUserStore()
	users.Users[stored.Phone] = stored

	t.Run("valid credentials", func(t *testing.T) {
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
		svc := service.NewUserService(users, db, verifier, nil)

		user, err := svc.Authenticate(context.Background(), "+15550102000", "password123")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
		assert.Equal(t, "hash", verifier.CompareCalledWith.HashedPassword)
	})

	t.Run("wrong password and unknown phone look the same", func(t *testing.T) {
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: false}
		svc := service.NewUserService(users, db, verifier, nil)

		_, wrongPassword := svc.Authenticate(context.Background(), "+15550102000", "nope")
		_, unknownPhone := svc.Authenticate(context.Background(), "+19999999999", "nope")

		assert.ErrorIs(t, wrongPassword, service.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownPhone, service.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownPhone.Error())
		assert.ErrorIs(t, unknownPhone, domain.ErrUnauthorized)
		assert.Equal(t, 2, verifier.CompareCallCount, "unknown phone still pays for a hash comparison")
	})

	t.Run("store failure is internal", func(t *testing.T) {
		failing := mocks.NewMockUserStore()
		failing.GetByPhoneFn = func(ctx context.Context, phone string) (*domain.User, error) {
			return nil, errors.New("connection reset")
		}
		svc := service.NewUserService(failing, db, &mocks.MockPasswordVerifier{}, nil)

		_, err := svc.Authenticate(context.Background(), "+15550102000", "password123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestUserService_AuthenticateUnknownPhoneUsesConfiguredCost(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, cost := range []int{bcrypt.MinCost, bcrypt.DefaultCost} {
		verifier := &mocks.MockPasswordVerifier{}
		svc := service.NewUserService(mocks.NewMockUserStore(), db, verifier, nil, service.WithBcryptCost(cost))

		_, err := svc.Authenticate(context.Background(), "+19999999999", "password123")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)

		hashCost, err := bcrypt.Cost([]byte(verifier.CompareCalledWith.HashedPassword))
		require.NoError(t, err)
		assert.Equal(t, cost, hashCost)
	}
}

func TestUserService_GetUser(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	svc := service.NewUserService(mocks.NewMockUserStore(), db, &mocks.MockPasswordVerifier{}, nil)

	_, err = svc.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewUserServicePanicsOnNilDependencies(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Panics(t, func() { service.NewUserService(nil, db, &mocks.MockPasswordVerifier{}, nil) })
	assert.Panics(t, func() { service.NewUserService(mocks.NewMockUserStore(), nil, &mocks.MockPasswordVerifier{}, nil) })
	assert.Panics(t, func() { service.NewUserService(mocks.NewMockUserStore(), db, nil, nil) })
}
