package request

import "github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"

// Calculate is the public price estimation payload.
type Calculate struct {
	Carpets []entities.CarpetItem `json:"carpets"`
}
