package request

// UpdateUser is the admin user update payload. Omitted fields are left
// untouched.
type UpdateUser struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	City     *string `json:"city"`
	District *string `json:"district"`
	Address  *string `json:"address"`
	IsBanned *bool   `json:"is_banned"`
}

type UpdateCompany struct {
	CompanyName *string `json:"company_name"`
	IsActive    *bool   `json:"is_active"`
}

type Settings struct {
	WhatsAppNumber  string `json:"whatsapp_number"`
	WhatsAppMessage string `json:"whatsapp_message"`
}
