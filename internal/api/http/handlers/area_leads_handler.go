package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roster-service/internal/api/dto"
	"github.com/spec-kit/roster-service/internal/auth"
	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/service"
	"github.com/spec-kit/roster-service/internal/session"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// AreaLeadsHandler manages zone lead assignments.
type AreaLeadsHandler struct {
	leads     *service.AreaLeadService
	employees *service.EmployeeService
	store     *session.ActiveRestaurantStore
}

// NewAreaLeadsHandler constructs handler.
func NewAreaLeadsHandler(leads *service.AreaLeadService, employees *service.EmployeeService, store *session.ActiveRestaurantStore) *AreaLeadsHandler {
	return &AreaLeadsHandler{leads: leads, employees: employees, store: store}
}

// Assign POST /employees/:id/area-leads.
func (h *AreaLeadsHandler) Assign(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	restaurantID, err := resolveRestaurant(c, principal, h.store)
	if err != nil {
		return err
	}

	var req dto.AssignAreaLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.CodeMissing, "invalid payload")
	}
	zone, ok := domain.ParseZone(req.Zone)
	if !ok {
		return apperrors.NewValidationError(apperrors.CodeMissing, "zone must be kitchen, floor or bar")
	}

	// Runs the management guard chain and scopes the target to the restaurant.
	target, err := h.employees.Get(c.UserContext(), principal.Profile, restaurantID, c.Params("id"))
	if err != nil {
		return err
	}
	if target.Role != domain.RoleEmployee {
		return apperrors.NewValidationError(apperrors.CodeAreaLeadOnlyEmployee, "area leads can only hold the employee role")
	}

	var lead *domain.AreaLead
	if req.Slot != nil {
		lead, err = h.leads.Replace(c.UserContext(), restaurantID, zone, *req.Slot, target.ID, principal.Profile.ID)
	} else {
		lead, err = h.leads.Assign(c.UserContext(), restaurantID, zone, target.ID, principal.Profile.ID)
	}
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromAreaLead(lead)})
}

// Revoke DELETE /employees/:id/area-leads/:leadID.
func (h *AreaLeadsHandler) Revoke(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	restaurantID, err := resolveRestaurant(c, principal, h.store)
	if err != nil {
		return err
	}

	target, err := h.employees.Get(c.UserContext(), principal.Profile, restaurantID, c.Params("id"))
	if err != nil {
		return err
	}

	if err := h.leads.RevokeForUser(c.UserContext(), c.Params("leadID"), target.ID, restaurantID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// List GET /area-leads.
func (h *AreaLeadsHandler) List(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	restaurantID, err := resolveRestaurant(c, principal, h.store)
	if err != nil {
		return err
	}

	items, err := h.leads.ListActive(c.UserContext(), restaurantID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromAreaLeadListItems(items)})
}
