package dto

// CreateEmployeeRequest payload. Zone optionally grants an area-lead slot at
// creation time and is only accepted for the employee role.
type CreateEmployeeRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Role     string  `json:"role"`
	Zone     *string `json:"zone,omitempty"`
}

// UpdateEmployeeRequest payload. Omitted fields stay unchanged. RestaurantID
// transfers the member to another restaurant.
type UpdateEmployeeRequest struct {
	FullName     *string `json:"full_name,omitempty"`
	Role         *string `json:"role,omitempty"`
	RestaurantID *string `json:"restaurant_id,omitempty"`
	Email        *string `json:"email,omitempty"`
	Password     *string `json:"password,omitempty"`
}
