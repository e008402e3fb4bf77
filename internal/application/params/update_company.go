package params

// UpdateCompany holds the admin company update input. Nil fields are
// left untouched.
type UpdateCompany struct {
	CompanyName *string
	IsActive    *bool
}
