package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const activeRestaurantTTL = 30 * 24 * time.Hour

// ActiveRestaurantStore remembers which restaurant a global (admin/office)
// actor is currently operating against. Restaurant-scoped actors never use it;
// their restaurant comes from their own profile.
type ActiveRestaurantStore struct {
	client *redis.Client
}

// NewActiveRestaurantStore builds the store.
func NewActiveRestaurantStore(client *redis.Client) *ActiveRestaurantStore {
	return &ActiveRestaurantStore{client: client}
}

func key(userID string) string {
	return fmt.Sprintf("active_restaurant:%s", userID)
}

// Set records the selection for a user.
func (s *ActiveRestaurantStore) Set(ctx context.Context, userID, restaurantID string) error {
	if err := s.client.Set(ctx, key(userID), restaurantID, activeRestaurantTTL).Err(); err != nil {
		return fmt.Errorf("store active restaurant: %w", err)
	}
	return nil
}

// Get returns the selection, or "" when none exists.
func (s *ActiveRestaurantStore) Get(ctx context.Context, userID string) (string, error) {
	val, err := s.client.Get(ctx, key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("load active restaurant: %w", err)
	}
	return val, nil
}

// Clear removes the selection.
func (s *ActiveRestaurantStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("clear active restaurant: %w", err)
	}
	return nil
}
