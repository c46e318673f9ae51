package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roster-service/internal/api/dto"
	"github.com/spec-kit/roster-service/internal/auth"
	"github.com/spec-kit/roster-service/internal/service"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// MeHandler exposes the signed-in member's own profile surface.
type MeHandler struct {
	auth     *service.AuthService
	profiles *service.ProfileService
	leads    *service.AreaLeadService
}

// NewMeHandler constructs handler.
func NewMeHandler(authService *service.AuthService, profileService *service.ProfileService, leadService *service.AreaLeadService) *MeHandler {
	return &MeHandler{auth: authService, profiles: profileService, leads: leadService}
}

// Get GET /me.
func (h *MeHandler) Get(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	leads, err := h.leads.ListActiveForUser(c.UserContext(), principal.Profile.ID)
	if err != nil {
		return err
	}
	leadItems := make([]dto.AreaLeadResponse, 0, len(leads))
	for i := range leads {
		leadItems = append(leadItems, dto.FromAreaLead(&leads[i]))
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"profile":    dto.FromProfile(principal.Profile),
		"area_leads": leadItems,
	}})
}

// ChangeEmail PUT /me/email.
func (h *MeHandler) ChangeEmail(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.ChangeEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.CodeMissing, "invalid payload")
	}
	if req.Password == "" || req.NewEmail == "" {
		return apperrors.NewValidationError(apperrors.CodeMissing, "password and new_email are required")
	}

	if err := h.profiles.ChangeEmail(c.UserContext(), principal.Profile.ID, req.Password, req.NewEmail); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"email": req.NewEmail}})
}

// ChangePassword PUT /me/password.
func (h *MeHandler) ChangePassword(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.CodeMissing, "invalid payload")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError(apperrors.CodeMissing, "current_password and new_password are required")
	}

	if err := h.auth.ChangePassword(c.UserContext(), principal.Profile.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}

// ChangeAvatar PUT /me/avatar. The body is the raw image; Content-Type carries
// the mime type.
func (h *MeHandler) ChangeAvatar(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	path, err := h.profiles.ChangeAvatar(c.UserContext(), principal.Profile.ID, c.Get(fiber.HeaderContentType), c.Body())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"avatar_path": path}})
}

// GetAvatar GET /me/avatar.
func (h *MeHandler) GetAvatar(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	contentType, data, err := h.profiles.GetAvatar(c.UserContext(), principal.Profile.ID)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}
