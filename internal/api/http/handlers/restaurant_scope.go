package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roster-service/internal/auth"
	"github.com/spec-kit/roster-service/internal/session"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// resolveRestaurant determines which restaurant a roster operation applies to.
// Scoped actors always operate on their own restaurant; global actors must
// have selected one first.
func resolveRestaurant(c *fiber.Ctx, principal *auth.Principal, store *session.ActiveRestaurantStore) (string, error) {
	profile := principal.Profile
	if !profile.Role.IsGlobal() {
		if profile.RestaurantID == nil {
			return "", apperrors.NewForbidden(apperrors.CodeRestaurantMismatch, "profile has no restaurant")
		}
		return *profile.RestaurantID, nil
	}

	restaurantID, err := store.Get(c.UserContext(), profile.ID)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	if restaurantID == "" {
		return "", apperrors.NewValidationError(apperrors.CodeNoEffectiveRestaurant, "select a restaurant first")
	}
	return restaurantID, nil
}
