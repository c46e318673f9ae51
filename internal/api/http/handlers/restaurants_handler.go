package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/roster-service/internal/api/dto"
	"github.com/spec-kit/roster-service/internal/auth"
	"github.com/spec-kit/roster-service/internal/repository"
	"github.com/spec-kit/roster-service/internal/session"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// RestaurantsHandler lists restaurants and manages the global actor's
// active-restaurant selection.
type RestaurantsHandler struct {
	restaurants repository.RestaurantRepository
	store       *session.ActiveRestaurantStore
}

// NewRestaurantsHandler constructs handler.
func NewRestaurantsHandler(restaurants repository.RestaurantRepository, store *session.ActiveRestaurantStore) *RestaurantsHandler {
	return &RestaurantsHandler{restaurants: restaurants, store: store}
}

// List GET /restaurants.
func (h *RestaurantsHandler) List(c *fiber.Ctx) error {
	restaurants, err := h.restaurants.List(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.FromRestaurants(restaurants)})
}

// GetActive GET /restaurants/active.
func (h *RestaurantsHandler) GetActive(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	restaurantID, err := h.store.Get(c.UserContext(), principal.Profile.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if restaurantID == "" {
		return c.JSON(fiber.Map{"data": fiber.Map{"restaurant_id": nil}})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"restaurant_id": restaurantID}})
}

// SetActive PUT /restaurants/active.
func (h *RestaurantsHandler) SetActive(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.SelectRestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(apperrors.CodeMissing, "invalid payload")
	}
	if req.RestaurantID == "" {
		return apperrors.NewValidationError(apperrors.CodeMissing, "restaurant_id is required")
	}

	restaurant, err := h.restaurants.GetByID(c.UserContext(), req.RestaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError(apperrors.CodeRestaurantInvalid, "restaurant does not exist")
		}
		return apperrors.MapError(err)
	}
	if !restaurant.IsActive {
		return apperrors.NewValidationError(apperrors.CodeRestaurantInvalid, "restaurant is not active")
	}

	if err := h.store.Set(c.UserContext(), principal.Profile.ID, restaurant.ID); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"restaurant_id": restaurant.ID}})
}
