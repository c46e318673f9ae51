package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/roster-service/internal/events"
)

// NotificationService reacts to roster events. Delivery is log-based for now;
// the worker feeds it from the dispatcher.
type NotificationService struct {
	logger *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger) *NotificationService {
	return &NotificationService{logger: logger}
}

// Notify records one event for the operations channel.
func (s *NotificationService) Notify(_ context.Context, event events.Event) error {
	s.logger.Info("roster event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("restaurant_id", event.RestaurantID),
		zap.String("actor_id", event.ActorID),
	)
	return nil
}
