package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/school-service/internal/api/dto"
	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/service"
)

// AuthHandler exposes session endpoints.
type AuthHandler struct {
	sessions *service.SessionService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	user, token, exp, err := h.sessions.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return auth.MapAuthError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":       user.ID,
				"username": user.Username,
				"name":     user.Name,
				"surname":  user.Surname,
				"role":     user.Role.String(),
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout; it revokes every token held by the
// authenticated caller.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.sessions.Logout(c.UserContext(), principal.SubjectID); err != nil {
		return auth.MapAuthError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "logged_out"}})
}

// Refresh handles POST /auth/refresh; it exchanges the presented bearer
// token for a fresh one.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token, err := auth.BearerToken(c)
	if err != nil {
		return err
	}

	newToken, exp, err := h.sessions.Refresh(c.UserContext(), token)
	if err != nil {
		return auth.MapAuthError(err)
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"auth": dto.AuthResponse{Token: newToken, ExpiresAt: exp},
		},
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(fiber.Map{
		"data": dto.SessionResponse{
			SubjectID: principal.SubjectID,
			Username:  principal.Username,
			Name:      principal.Name,
			Surname:   principal.Surname,
			Role:      principal.Role.String(),
			IssuedAt:  principal.IssuedAt,
			ExpiresAt: principal.ExpiresAt,
		},
	})
}
