package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/school-service/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Username: "alice",
		Name:     "Alice",
		Surname:  "Moretti",
		Role:     domain.RoleTeacher,
	}
}

func TestIssueDecodeRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 24*time.Hour, 0)

	token, expiresAt, err := tm.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	payload, err := tm.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.SubjectID != "user-1" || payload.Username != "alice" {
		t.Errorf("unexpected identity: %+v", payload)
	}
	if payload.Name != "Alice" || payload.Surname != "Moretti" {
		t.Errorf("unexpected names: %+v", payload)
	}
	if payload.Role != domain.RoleTeacher {
		t.Errorf("role = %v, want teacher", payload.Role)
	}
	if !payload.ExpiresAt.After(payload.IssuedAt) {
		t.Errorf("expires_at %v not after issued_at %v", payload.ExpiresAt, payload.IssuedAt)
	}
	if got := payload.ExpiresAt.Unix(); got != expiresAt.Unix() {
		t.Errorf("expires_at = %v, want %v", got, expiresAt.Unix())
	}
}

func TestIssueProducesDistinctTokens(t *testing.T) {
	tm := NewTokenManager("test-secret", 24*time.Hour, 0)
	user := testUser()

	// Back-to-back issuance lands within one second; the tokens must
	// still differ so a fresh login never replays an earlier credential.
	first, _, err := tm.Issue(user)
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	second, _, err := tm.Issue(user)
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}
	if first == second {
		t.Fatal("consecutive logins produced identical tokens")
	}

	for _, token := range []string{first, second} {
		if _, err := tm.Decode(token); err != nil {
			t.Errorf("decode: %v", err)
		}
	}
}

func TestDecodeTamperedSignature(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 0)

	token, _, err := tm.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip the first character of the signature segment.
	dot := strings.LastIndexByte(token, '.')
	if dot < 0 || dot == len(token)-1 {
		t.Fatalf("token has no signature segment: %q", token)
	}
	sigStart := dot + 1
	flipped := byte('A')
	if token[sigStart] == 'A' {
		flipped = 'B'
	}
	tampered := token[:sigStart] + string(flipped) + token[sigStart+1:]

	if _, err := tm.Decode(tampered); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("decode tampered token: got %v, want ErrBadSignature", err)
	}
}

func TestDecodeWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour, 0)
	verifier := NewTokenManager("secret-b", time.Hour, 0)

	token, _, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Decode(token); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("decode with wrong secret: got %v, want ErrBadSignature", err)
	}
}

func TestDecodeWrongAlgorithm(t *testing.T) {
	claims := &sessionClaims{
		Username: "alice",
		Role:     domain.RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tm := NewTokenManager("test-secret", time.Hour, 0)
	if _, err := tm.Decode(token); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("decode HS512 token: got %v, want ErrBadSignature", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 0)

	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tm.Decode(tokenStr); !errors.Is(err, ErrMalformedToken) {
			t.Errorf("decode %q: got %v, want ErrMalformedToken", tokenStr, err)
		}
	}
}

func TestDecodeMissingExpiry(t *testing.T) {
	claims := &sessionClaims{
		Username: "alice",
		Role:     domain.RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "user-1",
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tm := NewTokenManager("test-secret", time.Hour, 0)
	if _, err := tm.Decode(token); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("decode token without exp: got %v, want ErrMalformedToken", err)
	}
}

func TestDecodeExpired(t *testing.T) {
	signAt := func(issued, expires time.Time) string {
		claims := &sessionClaims{
			Username: "alice",
			Role:     domain.RoleTeacher,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				IssuedAt:  jwt.NewNumericDate(issued),
				ExpiresAt: jwt.NewNumericDate(expires),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return token
	}

	tm := NewTokenManager("test-secret", 24*time.Hour, 0)
	now := time.Now().UTC()

	// Still inside the window: issued 23h59m ago with a 24h expiry.
	valid := signAt(now.Add(-23*time.Hour-59*time.Minute), now.Add(time.Minute))
	if _, err := tm.Decode(valid); err != nil {
		t.Fatalf("decode token inside window: %v", err)
	}

	// Past the window: expired one minute ago.
	expired := signAt(now.Add(-24*time.Hour-time.Minute), now.Add(-time.Minute))
	if _, err := tm.Decode(expired); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("decode expired token: got %v, want ErrTokenExpired", err)
	}
}

func TestDecodeLeewayToleratesSkew(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 30*time.Second)

	claims := &sessionClaims{
		Username: "alice",
		Role:     domain.RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC().Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(-10 * time.Second)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// Expired 10s ago but inside the 30s leeway.
	if _, err := tm.Decode(token); err != nil {
		t.Fatalf("decode within leeway: %v", err)
	}
}
