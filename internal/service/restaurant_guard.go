package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/roster-service/internal/repository"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// assertRestaurantUsable rejects operations against a missing or deactivated
// restaurant. Every write that targets a restaurant runs through it, including
// the lead-assignment path, so a stale selection cannot reach a closed site.
func assertRestaurantUsable(ctx context.Context, restaurants repository.RestaurantRepository, restaurantID string) error {
	restaurant, err := restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError(apperrors.CodeRestaurantInvalid, "restaurant does not exist")
		}
		return apperrors.MapError(err)
	}
	if !restaurant.IsActive {
		return apperrors.NewValidationError(apperrors.CodeRestaurantInvalid, "restaurant is not active")
	}
	return nil
}
