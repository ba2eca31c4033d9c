package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/repository"
)

// SessionService issues, validates and revokes session tokens. It holds no
// per-request state; all methods are safe for concurrent use. The only
// shared mutable state is the revocation ledger behind RevocationRepository.
//
// A logout whose ledger write has been acknowledged is guaranteed to fail
// every Validate that starts afterwards. A logout racing an in-flight
// Validate may land either way; callers must not rely on ordering there.
type SessionService struct {
	users       repository.UserRepository
	revocations repository.RevocationRepository
	tokens      *auth.TokenManager
	logger      *zap.Logger
}

// NewSessionService builds the service.
func NewSessionService(users repository.UserRepository, revocations repository.RevocationRepository, tokens *auth.TokenManager, logger *zap.Logger) *SessionService {
	return &SessionService{
		users:       users,
		revocations: revocations,
		tokens:      tokens,
		logger:      logger,
	}
}

// Login authenticates a user by username and password and issues a token.
// Unknown username and wrong password are indistinguishable to the caller.
// A fresh login clears any revocation marker left by an earlier logout, so
// the new token is honored immediately.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, auth.ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, auth.ErrInvalidCredentials
	}

	if err := s.revocations.ClearRevoked(ctx, user.ID); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	// Last-login bookkeeping is best-effort and must not fail the login.
	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("touch last login failed", zap.String("user_id", user.ID), zap.Error(err))
	}

	s.logger.Info("session issued",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role.String()),
		zap.Time("expires_at", expiresAt))
	return user, token, expiresAt, nil
}

// Validate runs the full per-request state machine: structural decode,
// expiry, then the revocation check. A ledger failure is surfaced as
// ErrLedgerUnavailable, never as a pass.
func (s *SessionService) Validate(ctx context.Context, token string) (*domain.SessionPayload, error) {
	payload, err := s.tokens.Decode(token)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, payload.SubjectID)
	if err != nil {
		return nil, err
	}
	if revoked {
		s.logger.Debug("token rejected", zap.String("subject_id", payload.SubjectID), zap.Error(auth.ErrSessionRevoked))
		return nil, auth.ErrSessionRevoked
	}
	return payload, nil
}

// Logout marks every token currently held by the user as no longer honored.
// Idempotent: a second logout only refreshes the marker.
func (s *SessionService) Logout(ctx context.Context, subjectID string) error {
	if err := s.revocations.MarkRevoked(ctx, subjectID); err != nil {
		return err
	}
	s.logger.Info("session revoked", zap.String("subject_id", subjectID))
	return nil
}

// Refresh exchanges a still-valid token for a fresh one. The user record is
// re-fetched so role or name changes land in the new token; a deleted user
// yields ErrUserNotFound.
func (s *SessionService) Refresh(ctx context.Context, oldToken string) (string, time.Time, error) {
	payload, err := s.Validate(ctx, oldToken)
	if err != nil {
		return "", time.Time{}, err
	}

	user, err := s.users.GetByID(ctx, payload.SubjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, auth.ErrUserNotFound
		}
		return "", time.Time{}, err
	}

	return s.tokens.Issue(user)
}
