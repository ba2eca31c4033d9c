package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/school-service/internal/domain"
)

// TokenManager is the stateless codec between user records and signed
// session tokens. It never consults the revocation ledger; that layering
// belongs to the session service.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
}

// NewTokenManager builds a new codec.
func NewTokenManager(secret string, ttl, leeway time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if leeway < 0 {
		leeway = 0
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, leeway: leeway}
}

// sessionClaims is the wire shape of a session payload.
type sessionClaims struct {
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Surname  string      `json:"surname"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for the user. Timestamps are stamped in UTC;
// expiry is issuance plus the configured window.
func (tm *TokenManager) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(tm.ttl)
	claims := &sessionClaims{
		Username: user.Username,
		Name:     user.Name,
		Surname:  user.Surname,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			// The jti keeps tokens distinct even when two logins land in
			// the same second; iat/exp only carry second precision.
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Decode structurally validates a token string and returns its payload.
// Failures map onto the taxonomy: ErrMalformedToken, ErrBadSignature,
// ErrTokenExpired.
func (tm *TokenManager) Decode(tokenStr string) (*domain.SessionPayload, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrBadSignature
		}
		return tm.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithLeeway(tm.leeway))
	if err != nil {
		return nil, mapParseError(err)
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrMalformedToken
	}

	payload := &domain.SessionPayload{
		SubjectID: claims.Subject,
		Username:  claims.Username,
		Name:      claims.Name,
		Surname:   claims.Surname,
		Role:      claims.Role,
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		payload.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return payload, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrBadSignature):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		// Includes jwt.ErrTokenMalformed and a missing exp claim.
		return ErrMalformedToken
	}
}
