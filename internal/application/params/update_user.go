package params

// UpdateUser holds the admin user update input. Nil fields are left
// untouched.
type UpdateUser struct {
	Name     *string
	Phone    *string
	City     *string
	District *string
	Address  *string
	IsBanned *bool
}
