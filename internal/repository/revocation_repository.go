package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/school-service/internal/auth"
)

const revocationKeyPrefix = "session:revoked:"

// RevocationRepository is the ledger recording which users' tokens are no
// longer honored ahead of their natural expiry. Single-key Redis operations
// give all the atomicity the ledger needs: revoke is a blind write, the
// check is a blind read, and a read racing a concurrent revoke may observe
// either state.
type RevocationRepository interface {
	MarkRevoked(ctx context.Context, subjectID string) error
	IsRevoked(ctx context.Context, subjectID string) (bool, error)
	ClearRevoked(ctx context.Context, subjectID string) error
}

type revocationRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRevocationRepository returns a Redis-backed ledger. Markers expire
// after ttl, which must be at least the token validity window so a marker
// always outlives the tokens it covers.
func NewRevocationRepository(client *redis.Client, ttl time.Duration) RevocationRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &revocationRepository{client: client, ttl: ttl}
}

func revocationKey(subjectID string) string {
	return revocationKeyPrefix + subjectID
}

// MarkRevoked writes the marker. Idempotent: re-revoking only refreshes
// the marker TTL.
func (r *revocationRepository) MarkRevoked(ctx context.Context, subjectID string) error {
	if err := r.client.Set(ctx, revocationKey(subjectID), "1", r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", auth.ErrLedgerUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether a fresh marker exists for the user. Any
// transport failure is surfaced as ErrLedgerUnavailable so callers fail
// closed instead of treating the user as not-revoked.
func (r *revocationRepository) IsRevoked(ctx context.Context, subjectID string) (bool, error) {
	err := r.client.Get(ctx, revocationKey(subjectID)).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", auth.ErrLedgerUnavailable, err)
	}
}

// ClearRevoked removes the marker; called when a fresh login supersedes
// whatever token the marker covered.
func (r *revocationRepository) ClearRevoked(ctx context.Context, subjectID string) error {
	if err := r.client.Del(ctx, revocationKey(subjectID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", auth.ErrLedgerUnavailable, err)
	}
	return nil
}
