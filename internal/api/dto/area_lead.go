package dto

import (
	"time"

	"github.com/spec-kit/roster-service/internal/domain"
)

// AssignAreaLeadRequest payload. Slot is optional: when omitted the first free
// slot of the zone is used; when set the current occupant of that slot is
// replaced.
type AssignAreaLeadRequest struct {
	Zone string `json:"zone"`
	Slot *int16 `json:"slot,omitempty"`
}

// AreaLeadResponse is the API shape of one assignment.
type AreaLeadResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Zone         string    `json:"zone"`
	Slot         int16     `json:"slot"`
	UserID       string    `json:"user_id"`
	AssignedBy   string    `json:"assigned_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// FromAreaLead maps the domain model.
func FromAreaLead(lead *domain.AreaLead) AreaLeadResponse {
	return AreaLeadResponse{
		ID:           lead.ID,
		RestaurantID: lead.RestaurantID,
		Zone:         string(lead.Zone),
		Slot:         lead.Slot,
		UserID:       lead.UserID,
		AssignedBy:   lead.AssignedBy,
		CreatedAt:    lead.CreatedAt,
	}
}

// AreaLeadListItemResponse is one row of the restaurant-wide listing.
type AreaLeadListItemResponse struct {
	ID       string `json:"id"`
	Zone     string `json:"zone"`
	Slot     int16  `json:"slot"`
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
}

// FromAreaLeadListItems maps a listing.
func FromAreaLeadListItems(items []domain.AreaLeadListItem) []AreaLeadListItemResponse {
	result := make([]AreaLeadListItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, AreaLeadListItemResponse{
			ID:       item.ID,
			Zone:     string(item.Zone),
			Slot:     item.Slot,
			UserID:   item.UserID,
			FullName: item.FullName,
		})
	}
	return result
}
