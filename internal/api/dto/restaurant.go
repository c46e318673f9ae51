package dto

import "github.com/spec-kit/roster-service/internal/domain"

// RestaurantResponse payload.
type RestaurantResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// FromRestaurants maps a slice.
func FromRestaurants(restaurants []domain.Restaurant) []RestaurantResponse {
	result := make([]RestaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		result = append(result, RestaurantResponse{
			ID:       restaurant.ID,
			Name:     restaurant.Name,
			IsActive: restaurant.IsActive,
		})
	}
	return result
}

// SelectRestaurantRequest payload for the active-restaurant selection.
type SelectRestaurantRequest struct {
	RestaurantID string `json:"restaurant_id"`
}
