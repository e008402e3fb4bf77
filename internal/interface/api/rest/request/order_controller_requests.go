package request

import "github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"

type CreateOrder struct {
	City         string                `json:"city"`
	District     string                `json:"district"`
	Address      string                `json:"address"`
	Phone        string                `json:"phone"`
	SpecialNotes string                `json:"special_notes"`
	Carpets      []entities.CarpetItem `json:"carpets"`
}

type UpdateStatus struct {
	Status string `json:"status"`
}

type CancelOrder struct {
	Reason string `json:"reason"`
}

type AssignOrder struct {
	CompanyID string `json:"company_id"`
}

// UpdateCarpets carries the measured lines recorded by the company on
// pickup.
type UpdateCarpets struct {
	Carpets []MeasuredCarpet `json:"carpets"`
}

type MeasuredCarpet struct {
	CarpetType string  `json:"carpet_type"`
	Area       float64 `json:"area"`
}
