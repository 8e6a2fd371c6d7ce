package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/api/shared"
	"github.com/phrazzld/spot-api/internal/domain"
)

// getUserIDFromContext returns the id the auth middleware placed in the
// request context.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return shared.UserIDFromContext(r.Context())
}

// getPathUUID parses the named chi URL parameter as a UUID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", nil)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "must be a valid UUID", nil)
	}
	return id, nil
}

// requestFormatError classifies a body decoding failure as a validation error.
func requestFormatError(err error) error {
	return domain.NewValidationError("body", "is not valid JSON", err)
}

// getOptionalQueryString returns nil when the parameter is absent.
func getOptionalQueryString(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	v := r.URL.Query().Get(name)
	return &v
}

// getOptionalQueryInt returns nil when the parameter is absent or blank and
// a ValidationError when it is not an integer.
func getOptionalQueryInt(r *http.Request, name string, invalid *domain.ValidationError) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalid
	}
	return &n, nil
}
