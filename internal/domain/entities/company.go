package entities

import "time"

// Company is the cleaning company profile attached to a user with the
// company role. A freshly registered company is inactive until approved
// by an administrator and does not see the order pool.
type Company struct {
	CreatedAt       time.Time
	UserID          string
	CompanyName     string
	Email           string
	Phone           string
	City            string
	Address         string
	Districts       []string
	TotalAreaWashed float64
	IsActive        bool
}
