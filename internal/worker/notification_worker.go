package worker

import (
	"context"

	"github.com/spec-kit/roster-service/internal/events"
	"github.com/spec-kit/roster-service/internal/service"
)

// NotificationWorker wires the notification service into the event dispatcher.
type NotificationWorker struct {
	notifications *service.NotificationService
}

// NewNotificationWorker creates the worker.
func NewNotificationWorker(notifications *service.NotificationService) *NotificationWorker {
	return &NotificationWorker{notifications: notifications}
}

// Register subscribes to every roster event type.
func (w *NotificationWorker) Register(dispatcher events.Dispatcher) {
	handler := func(ctx context.Context, event events.Event) error {
		return w.notifications.Notify(ctx, event)
	}

	for _, eventType := range []events.EventType{
		events.EventEmployeeCreated,
		events.EventEmployeeDeactivated,
		events.EventEmployeeReactivated,
		events.EventEmployeeDeleted,
		events.EventAreaLeadAssigned,
		events.EventAreaLeadRevoked,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
