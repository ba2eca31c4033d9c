package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/repository"
)

// fakeUserRepository is an in-memory credential store.
type fakeUserRepository struct {
	users        map[string]*domain.User
	loginTouches int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepository) TouchLastLogin(_ context.Context, _ string) error {
	f.loginTouches++
	return nil
}

type sessionFixture struct {
	service *SessionService
	users   *fakeUserRepository
	redis   *miniredis.Miniredis
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := newFakeUserRepository()
	hash, err := auth.HashPassword("pw1", 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	users.users["alice-id"] = &domain.User{
		ID:           "alice-id",
		Username:     "alice",
		Name:         "Alice",
		Surname:      "Moretti",
		PasswordHash: hash,
		Role:         domain.RoleTeacher,
	}

	tokens := auth.NewTokenManager("test-secret", 24*time.Hour, 0)
	ledger := repository.NewRevocationRepository(client, 24*time.Hour)
	return &sessionFixture{
		service: NewSessionService(users, ledger, tokens, zap.NewNop()),
		users:   users,
		redis:   mr,
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	fx := newSessionFixture(t)
	ctx := context.Background()

	user, token, expiresAt, err := fx.service.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("user = %q, want alice", user.Username)
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expires_at %v not in the future", expiresAt)
	}
	if fx.users.loginTouches != 1 {
		t.Errorf("login touches = %d, want 1", fx.users.loginTouches)
	}

	payload, err := fx.service.Validate(ctx, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if payload.Username != "alice" || payload.Role != domain.RoleTeacher {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	fx := newSessionFixture(t)
	ctx := context.Background()

	// Wrong password and unknown username must be indistinguishable.
	_, _, _, err := fx.service.Login(ctx, "alice", "wrong")
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	_, _, _, err = fx.service.Login(ctx, "nobody", "pw1")
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLogoutRevokesFreshToken(t *testing.T) {
	fx := newSessionFixture(t)
	ctx := context.Background()

	_, token, _, err := fx.service.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// The token is nowhere near expiry; revocation alone must kill it.
	if err := fx.service.Logout(ctx, "alice-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := fx.service.Validate(ctx, token); !errors.Is(err, auth.ErrSessionRevoked) {
		t.Fatalf("validate after logout: got %v, want ErrSessionRevoked", err)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	fx := newSessionFixture(t)
	ctx := context.Background()

	_, token, _, err := fx.service.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := fx.service.Logout(ctx, "alice-id"); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	if err := fx.service.Logout(ctx, "alice-id"); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if _, err := fx.service.Validate(ctx, token); !errors.Is(err, auth.ErrSessionRevoked) {
		t.Fatalf("validate after double logout: got %v, want ErrSessionRevoked", err)
	}
}

func TestReloginSupersedesRevocation(t *testing.T) {
	fx := newSessionFixture(t)
	ctx := context.Background()

	_, oldToken, _, err := fx.service.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := fx.service.Logout(ctx, "alice-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}

	_, newToken, _, err := fx.service.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("re-login: %v", err)
	}
	if newToken == oldToken {
		t.Fatal("re-login returned the same token")
	}
	if _, err := fx.service.Validate(ctx, newToken); err != nil {
		t.Fatalf("validate new token: %v", err)
	}
}

func TestValidateFailsClosedWhenLedgerDown(t *testing.T) {
	fx := newSessionFixture(t)
	ctx := context.Background()

	_, token, _, err := fx.service.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	fx.redis.Close()
	if _, err := fx.service.Validate(ctx, token); !errors.Is(err, auth.ErrLedgerUnavailable) {
		t.Fatalf("validate with dead ledger: got %v, want ErrLedgerUnavailable", err)
	}
}

func TestRefresh(t *testing.T) {
	fx := newSessionFixture(t)
	ctx := context.Background()

	_, token, _, err := fx.service.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Role changes between issuance and refresh land in the new token.
	fx.users.users["alice-id"].Role = domain.RoleAdmin

	newToken, _, err := fx.service.Refresh(ctx, token)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	payload, err := fx.service.Validate(ctx, newToken)
	if err != nil {
		t.Fatalf("validate refreshed token: %v", err)
	}
	if payload.Role != domain.RoleAdmin {
		t.Errorf("refreshed role = %v, want admin", payload.Role)
	}
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	fx := newSessionFixture(t)
	ctx := context.Background()

	_, token, _, err := fx.service.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := fx.service.Logout(ctx, "alice-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, _, err := fx.service.Refresh(ctx, token); !errors.Is(err, auth.ErrSessionRevoked) {
		t.Fatalf("refresh after logout: got %v, want ErrSessionRevoked", err)
	}
}

func TestRefreshDeletedUser(t *testing.T) {
	fx := newSessionFixture(t)
	ctx := context.Background()

	_, token, _, err := fx.service.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	delete(fx.users.users, "alice-id")

	if _, _, err := fx.service.Refresh(ctx, token); !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("refresh for deleted user: got %v, want ErrUserNotFound", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	fx := newSessionFixture(t)

	if _, err := fx.service.Validate(context.Background(), "garbage"); !errors.Is(err, auth.ErrMalformedToken) {
		t.Fatalf("validate garbage: got %v, want ErrMalformedToken", err)
	}
}
