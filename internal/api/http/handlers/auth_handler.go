package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roster-service/internal/api/dto"
	"github.com/spec-kit/roster-service/internal/auth"
	"github.com/spec-kit/roster-service/internal/service"
	"github.com/spec-kit/roster-service/internal/session"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// AuthHandler exposes login and logout.
type AuthHandler struct {
	service *service.AuthService
	store   *session.ActiveRestaurantStore
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, store *session.ActiveRestaurantStore) *AuthHandler {
	return &AuthHandler{service: authService, store: store}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.CodeMissing, "invalid payload")
	}

	result, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:              result.Token,
		ExpiresAt:          result.ExpiresAt,
		MustChangePassword: result.MustChangePassword,
		Profile:            dto.FromProfile(result.Profile),
	}})
}

// Logout POST /auth/logout. Tokens are stateless; logout clears the caller's
// active-restaurant selection so the next session starts clean.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized(apperrors.CodeUnauthorized, "authentication required")
	}
	if err := h.store.Clear(c.UserContext(), principal.Profile.ID); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}
