package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-service/internal/domain"
	apperrors "github.com/spec-kit/school-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// SessionValidator is the slice of the session service the middleware needs.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*domain.SessionPayload, error)
}

// Middleware validates bearer tokens and attaches the session payload
// to the request.
type Middleware struct {
	sessions SessionValidator
}

// NewMiddleware constructs middleware.
func NewMiddleware(sessions SessionValidator) *Middleware {
	return &Middleware{sessions: sessions}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token, err := BearerToken(c)
	if err != nil {
		return err
	}

	payload, err := m.sessions.Validate(c.UserContext(), token)
	if err != nil {
		return MapAuthError(err)
	}

	c.Locals(principalKey, payload)
	return c.Next()
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", apperrors.NewUnauthorized("missing authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return parts[1], nil
}

// RequireRoles ensures the authenticated principal holds one of the allowed
// roles. Unlike authentication failures, the acceptable roles are safe to
// disclose and are listed in the rejection.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	names := make([]string, 0, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
		names = append(names, role.String())
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("requires one of roles: " + strings.Join(names, ", "))
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated session payload.
func PrincipalFromContext(c *fiber.Ctx) (*domain.SessionPayload, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	payload, ok := val.(*domain.SessionPayload)
	return payload, ok
}
