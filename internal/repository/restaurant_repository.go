package repository

import (
	"context"

	"github.com/spec-kit/roster-service/internal/domain"
)

// RestaurantRepository reads the externally-owned restaurant reference data.
type RestaurantRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
	List(ctx context.Context) ([]domain.Restaurant, error)
}

type restaurantRepository struct {
	db Querier
}

// NewRestaurantRepository instantiates the repository.
func NewRestaurantRepository(db Querier) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	const query = `SELECT id, name, is_active FROM restaurants WHERE id=$1`

	var restaurant domain.Restaurant
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.IsActive,
	); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) List(ctx context.Context) ([]domain.Restaurant, error) {
	const query = `SELECT id, name, is_active FROM restaurants ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Restaurant
	for rows.Next() {
		var restaurant domain.Restaurant
		if err := rows.Scan(&restaurant.ID, &restaurant.Name, &restaurant.IsActive); err != nil {
			return nil, err
		}
		result = append(result, restaurant)
	}
	return result, rows.Err()
}
