package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/spot-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "duplicate key value violates unique constraint",
		Detail:         "Key (phone)=(+15550102000) already exists.",
		TableName:      "users",
		ColumnName:     "phone",
		ConstraintName: constraint,
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedError error
		expectedMsg   string
	}{
		{
			name:          "nil_error",
			err:           nil,
			expectedError: nil,
		},
		{
			name:          "sql_no_rows",
			err:           sql.ErrNoRows,
			expectedError: store.ErrNotFound,
		},
		{
			name:          "unique_violation",
			err:           newPgError(uniqueViolationCode, usersPhoneKey),
			expectedError: store.ErrDuplicate,
			expectedMsg:   usersPhoneKey,
		},
		{
			name:          "foreign_key_violation",
			err:           newPgError(foreignKeyViolationCode, reviewsPlaceForeignKey),
			expectedError: store.ErrInvalidEntity,
			expectedMsg:   reviewsPlaceForeignKey,
		},
		{
			name:          "check_constraint_violation",
			err:           newPgError(checkViolationCode, reviewsRatingCheck),
			expectedError: store.ErrInvalidEntity,
			expectedMsg:   reviewsRatingCheck,
		},
		{
			name:          "not_null_violation",
			err:           newPgError(notNullViolationCode, ""),
			expectedError: store.ErrInvalidEntity,
			expectedMsg:   "phone",
		},
		{
			name:          "serialization_failure",
			err:           newPgError(serializationFailure, ""),
			expectedError: store.ErrRetryable,
		},
		{
			name:          "deadlock",
			err:           fmt.Errorf("exec: %w", newPgError(deadlockDetected, "")),
			expectedError: store.ErrRetryable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if tt.expectedError == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.expectedError)
			if tt.expectedMsg != "" {
				assert.Contains(t, got.Error(), tt.expectedMsg)
			}
		})
	}
}

func TestMapErrorDoesNotLeakValues(t *testing.T) {
	err := MapError(newPgError(uniqueViolationCode, usersPhoneKey))

	assert.NotContains(t, err.Error(), "+15550102000")
	assert.NotContains(t, err.Error(), "Key (phone)")
}

func TestMapErrorPassesThroughUnknownErrors(t *testing.T) {
	generic := errors.New("connection refused")
	assert.Same(t, generic, MapError(generic))

	unknown := newPgError("XX000", "")
	assert.Equal(t, error(unknown), MapError(unknown))
}

func TestViolationPredicates(t *testing.T) {
	unique := newPgError(uniqueViolationCode, placesNameAddressKey)
	fk := newPgError(foreignKeyViolationCode, reviewsUserForeignKey)
	check := newPgError(checkViolationCode, reviewsRatingCheck)
	serial := newPgError(serializationFailure, "")

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", unique)))
	assert.False(t, IsUniqueViolation(fk))
	assert.False(t, IsUniqueViolation(nil))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(check))

	assert.True(t, IsCheckConstraintViolation(check))
	assert.False(t, IsCheckConstraintViolation(errors.New("check")))

	assert.True(t, IsSerializationFailure(serial))
	assert.True(t, IsSerializationFailure(newPgError(deadlockDetected, "")))
	assert.False(t, IsSerializationFailure(unique))
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(sql.ErrNoRows))
	assert.True(t, IsNotFoundError(fmt.Errorf("scan: %w", sql.ErrNoRows)))
	assert.True(t, IsNotFoundError(store.ErrPlaceNotFound))
	assert.False(t, IsNotFoundError(errors.New("other")))
	assert.False(t, IsNotFoundError(nil))
}

func TestMapUniqueViolation(t *testing.T) {
	unique := newPgError(uniqueViolationCode, reviewsUserPlaceKey)

	err := MapUniqueViolation(unique, store.ErrReviewExists)
	assert.ErrorIs(t, err, store.ErrReviewExists)
	assert.Contains(t, err.Error(), reviewsUserPlaceKey)

	generic := MapUniqueViolation(unique, nil)
	assert.ErrorIs(t, generic, store.ErrDuplicate)

	other := errors.New("other")
	assert.Same(t, other, MapUniqueViolation(other, store.ErrReviewExists))
}
