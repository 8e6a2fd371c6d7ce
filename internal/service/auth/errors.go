package auth

import (
	"fmt"

	"github.com/phrazzld/spot-api/internal/domain"
)

// Authentication errors. All of them classify as domain.ErrUnauthorized.
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = fmt.Errorf("%w: invalid authentication token", domain.ErrUnauthorized)

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = fmt.Errorf("%w: authentication token has expired", domain.ErrUnauthorized)

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = fmt.Errorf("%w: authentication token not yet valid", domain.ErrUnauthorized)

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = fmt.Errorf("%w: authentication token is missing", domain.ErrUnauthorized)

	// ErrInvalidRefreshToken indicates the refresh token is malformed or its signature doesn't match
	ErrInvalidRefreshToken = fmt.Errorf("%w: invalid refresh token", domain.ErrUnauthorized)

	// ErrExpiredRefreshToken indicates the refresh token has expired
	ErrExpiredRefreshToken = fmt.Errorf("%w: refresh token has expired", domain.ErrUnauthorized)

	// ErrWrongTokenType indicates an access token was used where a refresh token was expected, or vice versa
	ErrWrongTokenType = fmt.Errorf("%w: wrong token type", domain.ErrUnauthorized)
)
