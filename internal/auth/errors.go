package auth

import (
	"errors"

	apperrors "github.com/spec-kit/school-service/pkg/util/errorutil"
)

// Failure taxonomy for the session core. Services return these sentinels;
// the HTTP boundary translates them to status codes and keeps the detail
// out of response bodies.
var (
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so responses cannot be used for username enumeration.
	ErrInvalidCredentials = errors.New("user not found or invalid credentials")

	// ErrMalformedToken marks a bearer string that does not parse as a
	// signed token of the expected shape (including a missing exp claim).
	ErrMalformedToken = errors.New("malformed token")

	// ErrBadSignature marks a token whose signature does not verify under
	// the configured secret and algorithm.
	ErrBadSignature = errors.New("token signature invalid")

	// ErrTokenExpired marks a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrSessionRevoked marks a token invalidated by logout ahead of its
	// natural expiry.
	ErrSessionRevoked = errors.New("session revoked")

	// ErrUserNotFound is returned by refresh when the token's user record
	// no longer exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrLedgerUnavailable means the revocation ledger could not be
	// consulted; validation fails closed on it.
	ErrLedgerUnavailable = errors.New("revocation ledger unavailable")
)

// MapAuthError translates a taxonomy value into a transport-level error.
// All token failures share one generic 401 so the response body cannot be
// used as a forgery oracle; the distinct sentinels stay available for logs.
func MapAuthError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidCredentials):
		return apperrors.NewUnauthorized("user not found or invalid credentials")
	case errors.Is(err, ErrMalformedToken),
		errors.Is(err, ErrBadSignature),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrSessionRevoked),
		errors.Is(err, ErrUserNotFound):
		return apperrors.NewUnauthorized("invalid or expired token")
	case errors.Is(err, ErrLedgerUnavailable):
		return apperrors.NewDependencyUnavailable("authentication backend unavailable")
	default:
		return apperrors.MapError(err)
	}
}
