package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated     EventType = "employee_created"
	EventEmployeeDeactivated EventType = "employee_deactivated"
	EventEmployeeReactivated EventType = "employee_reactivated"
	EventEmployeeDeleted     EventType = "employee_deleted"
	EventAreaLeadAssigned    EventType = "area_lead_assigned"
	EventAreaLeadRevoked     EventType = "area_lead_revoked"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	RestaurantID string      `json:"restaurant_id,omitempty"`
	ActorID      string      `json:"actor_id,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// EmployeeLifecyclePayload payload.
type EmployeeLifecyclePayload struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// AreaLeadPayload payload.
type AreaLeadPayload struct {
	LeadID string `json:"lead_id"`
	UserID string `json:"user_id"`
	Zone   string `json:"zone"`
	Slot   int16  `json:"slot"`
}
