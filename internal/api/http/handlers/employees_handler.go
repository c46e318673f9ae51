package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roster-service/internal/api/dto"
	"github.com/spec-kit/roster-service/internal/auth"
	"github.com/spec-kit/roster-service/internal/service"
	"github.com/spec-kit/roster-service/internal/session"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// EmployeesHandler manages the roster endpoints.
type EmployeesHandler struct {
	service *service.EmployeeService
	store   *session.ActiveRestaurantStore
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService, store *session.ActiveRestaurantStore) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService, store: store}
}

// List GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	restaurantID, err := resolveRestaurant(c, principal, h.store)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	profiles, err := h.service.List(c.UserContext(), restaurantID, service.ListEmployeesParams{
		Status: c.Query("status"),
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProfiles(profiles)})
}

// Create POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	restaurantID, err := resolveRestaurant(c, principal, h.store)
	if err != nil {
		return err
	}

	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.CodeMissing, "invalid payload")
	}

	profile, err := h.service.Create(c.UserContext(), principal.Profile, restaurantID, service.CreateEmployeeParams{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
		Zone:     req.Zone,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromProfile(profile)})
}

// Get GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	restaurantID, err := resolveRestaurant(c, principal, h.store)
	if err != nil {
		return err
	}

	profile, leads, err := h.service.GetDetail(c.UserContext(), principal.Profile, restaurantID, c.Params("id"))
	if err != nil {
		return err
	}
	leadItems := make([]dto.AreaLeadResponse, 0, len(leads))
	for i := range leads {
		leadItems = append(leadItems, dto.FromAreaLead(&leads[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"profile":    dto.FromProfile(profile),
		"area_leads": leadItems,
	}})
}

// Update PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	restaurantID, err := resolveRestaurant(c, principal, h.store)
	if err != nil {
		return err
	}

	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.CodeMissing, "invalid payload")
	}

	profile, err := h.service.Update(c.UserContext(), principal.Profile, restaurantID, c.Params("id"), service.UpdateEmployeeParams{
		FullName:     req.FullName,
		Role:         req.Role,
		RestaurantID: req.RestaurantID,
		Email:        req.Email,
		Password:     req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProfile(profile)})
}

// Activate POST /employees/:id/activate.
func (h *EmployeesHandler) Activate(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

// Deactivate POST /employees/:id/deactivate.
func (h *EmployeesHandler) Deactivate(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

func (h *EmployeesHandler) setActive(c *fiber.Ctx, active bool) error {
	principal, _ := auth.PrincipalFromContext(c)
	restaurantID, err := resolveRestaurant(c, principal, h.store)
	if err != nil {
		return err
	}

	if err := h.service.SetActive(c.UserContext(), principal.Profile, restaurantID, c.Params("id"), active); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"is_active": active}})
}

// Delete DELETE /employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	restaurantID, err := resolveRestaurant(c, principal, h.store)
	if err != nil {
		return err
	}

	if err := h.service.SoftDelete(c.UserContext(), principal.Profile, restaurantID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
