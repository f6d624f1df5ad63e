package user

// CreateUserRequest is the admin-side account creation body. Unlike
// self-registration it may assign any role, including ADMIN, because
// the endpoint itself is admin-gated.
type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"`
}

// UpdateUserRequest carries the mutable account fields. Username and
// password are not editable through this surface.
type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    *bool  `json:"active"`
}

type UpsertTouristProfileRequest struct {
	Nationality string   `json:"nationality"`
	Preferences string   `json:"preferences"`
	Interests   []string `json:"interests"`
}
