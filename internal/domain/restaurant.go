package domain

// Restaurant is a reference entity owned outside this service. The roster only
// reads it: an inactive restaurant rejects new employees and lead assignments.
type Restaurant struct {
	ID       string
	Name     string
	IsActive bool
}
