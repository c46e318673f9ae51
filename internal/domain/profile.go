package domain

import "time"

// Role enumerates staff roles. admin and office are global roles and are never
// managed through the employee surface; the rest are restaurant-scoped.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleOffice     Role = "office"
	RoleManager    Role = "manager"
	RoleSubManager Role = "sub_manager"
	RoleEmployee   Role = "employee"
)

// ParseEditableRole accepts only the roles assignable through the roster.
func ParseEditableRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleEmployee, RoleManager, RoleSubManager:
		return Role(value), true
	}
	return "", false
}

// IsGlobal reports whether the role operates across all restaurants.
func (r Role) IsGlobal() bool {
	return r == RoleAdmin || r == RoleOffice
}

// CanCreateEmployees reports whether the role may provision new accounts.
func (r Role) CanCreateEmployees() bool {
	return r.IsGlobal()
}

// CanManageRoster reports whether the role may edit employees at all.
func (r Role) CanManageRoster() bool {
	return r.IsGlobal() || r == RoleManager || r == RoleSubManager
}

// Profile is one row per staff identity. The id is the identity-provider
// account id. is_area_lead is a denormalized cache over active area_leads rows.
type Profile struct {
	ID                 string
	EmployeeCode       int64
	FullName           string
	Role               Role
	RestaurantID       *string
	IsActive           bool
	DeletedAt          *time.Time
	IsAreaLead         bool
	AvatarPath         *string
	MustChangePassword bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
