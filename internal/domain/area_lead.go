package domain

import "time"

// Zone enumerates the operational areas of a restaurant that can have leads.
type Zone string

const (
	ZoneKitchen Zone = "kitchen"
	ZoneFloor   Zone = "floor"
	ZoneBar     Zone = "bar"
)

// ParseZone validates a zone key.
func ParseZone(value string) (Zone, bool) {
	switch Zone(value) {
	case ZoneKitchen, ZoneFloor, ZoneBar:
		return Zone(value), true
	}
	return "", false
}

// Slots per zone. Exactly two concurrent area-lead holders are allowed.
const (
	LeadSlotFirst  int16 = 1
	LeadSlotSecond int16 = 2
)

// AreaLead is one row per (restaurant, zone, slot) assignment event. Rows are
// historical: a revoked row is terminal and a new grant always inserts a new row.
type AreaLead struct {
	ID           string
	RestaurantID string
	Zone         Zone
	Slot         int16
	UserID       string
	AssignedBy   string
	IsActive     bool
	RevokedAt    *time.Time
	CreatedAt    time.Time
}

// AreaLeadListItem is a lead row joined with its holder's name for listings.
type AreaLeadListItem struct {
	ID       string
	Zone     Zone
	Slot     int16
	UserID   string
	FullName string
}
