package request

// Register is the registration payload. Company registrations carry the
// company name and served districts on top of the common fields.
type Register struct {
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Phone        string   `json:"phone"`
	City         string   `json:"city"`
	District     string   `json:"district"`
	Address      string   `json:"address"`
	CompanyName  string   `json:"company_name"`
	ServiceAreas []string `json:"service_areas"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ExchangeSession carries the one-time id handed out by the identity
// provider after the social login redirect.
type ExchangeSession struct {
	SessionID string `json:"session_id"`
}
