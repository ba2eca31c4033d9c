package auth_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/school-service/internal/api/http"
	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/observability"
)

// stubValidator resolves fixed tokens to payloads or errors.
type stubValidator struct {
	payloads map[string]*domain.SessionPayload
	errs     map[string]error
}

func (s *stubValidator) Validate(_ context.Context, token string) (*domain.SessionPayload, error) {
	if err, ok := s.errs[token]; ok {
		return nil, err
	}
	if payload, ok := s.payloads[token]; ok {
		return payload, nil
	}
	return nil, auth.ErrMalformedToken
}

func payloadWithRole(role domain.Role) *domain.SessionPayload {
	now := time.Now().UTC()
	return &domain.SessionPayload{
		SubjectID: "user-1",
		Username:  "alice",
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}

func newTestApp() *fiber.App {
	validator := &stubValidator{
		payloads: map[string]*domain.SessionPayload{
			"teacher-token": payloadWithRole(domain.RoleTeacher),
			"student-token": payloadWithRole(domain.RoleStudent),
		},
		errs: map[string]error{
			"revoked-token": auth.ErrSessionRevoked,
			"expired-token": auth.ErrTokenExpired,
			"ledger-down":   auth.ErrLedgerUnavailable,
		},
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	mw := auth.NewMiddleware(validator)
	app.Get("/staff", mw.Handle, auth.RequireRoles(domain.RoleAdmin, domain.RoleTeacher), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()

	req := httptest.NewRequest("GET", "/staff", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestMiddlewareRejectsMissingOrBadHeader(t *testing.T) {
	app := newTestApp()

	if status, _ := doGet(t, app, ""); status != fiber.StatusUnauthorized {
		t.Errorf("missing header: status %d, want 401", status)
	}
	if status, _ := doGet(t, app, "Basic abc"); status != fiber.StatusUnauthorized {
		t.Errorf("non-bearer header: status %d, want 401", status)
	}
}

func TestMiddlewareTranslatesValidationFailures(t *testing.T) {
	app := newTestApp()

	for _, token := range []string{"garbage", "revoked-token", "expired-token"} {
		status, body := doGet(t, app, "Bearer "+token)
		if status != fiber.StatusUnauthorized {
			t.Errorf("%s: status %d, want 401", token, status)
		}
		// Response bodies stay generic regardless of the failure kind.
		if strings.Contains(body, "revoked") || strings.Contains(body, "signature") {
			t.Errorf("%s: body leaks failure detail: %s", token, body)
		}
	}
}

func TestMiddlewareFailsClosedOnLedgerOutage(t *testing.T) {
	app := newTestApp()

	status, _ := doGet(t, app, "Bearer ledger-down")
	if status != fiber.StatusServiceUnavailable {
		t.Errorf("ledger outage: status %d, want 503", status)
	}
}

func TestRoleGating(t *testing.T) {
	app := newTestApp()

	status, _ := doGet(t, app, "Bearer teacher-token")
	if status != fiber.StatusOK {
		t.Errorf("teacher: status %d, want 200", status)
	}

	status, body := doGet(t, app, "Bearer student-token")
	if status != fiber.StatusForbidden {
		t.Errorf("student: status %d, want 403", status)
	}
	if !strings.Contains(body, "admin, teacher") {
		t.Errorf("forbidden body does not list acceptable roles: %s", body)
	}
}
