package dto

import (
	"time"

	"github.com/spec-kit/roster-service/internal/domain"
)

// ProfileResponse is the API shape of a staff profile.
type ProfileResponse struct {
	ID                 string     `json:"id"`
	EmployeeCode       int64      `json:"employee_code"`
	FullName           string     `json:"full_name"`
	Role               string     `json:"role"`
	RestaurantID       *string    `json:"restaurant_id"`
	IsActive           bool       `json:"is_active"`
	IsAreaLead         bool       `json:"is_area_lead"`
	AvatarPath         *string    `json:"avatar_path,omitempty"`
	MustChangePassword bool       `json:"must_change_password"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// FromProfile maps the domain model.
func FromProfile(profile *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                 profile.ID,
		EmployeeCode:       profile.EmployeeCode,
		FullName:           profile.FullName,
		Role:               string(profile.Role),
		RestaurantID:       profile.RestaurantID,
		IsActive:           profile.IsActive,
		IsAreaLead:         profile.IsAreaLead,
		AvatarPath:         profile.AvatarPath,
		MustChangePassword: profile.MustChangePassword,
		DeletedAt:          profile.DeletedAt,
		CreatedAt:          profile.CreatedAt,
		UpdatedAt:          profile.UpdatedAt,
	}
}

// FromProfiles maps a slice.
func FromProfiles(profiles []domain.Profile) []ProfileResponse {
	result := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		result = append(result, FromProfile(&profiles[i]))
	}
	return result
}
