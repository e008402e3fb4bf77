package params

import "github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"

// CreateOrder holds the input of the order creation use case.
type CreateOrder struct {
	City         string
	District     string
	Address      string
	Phone        string
	SpecialNotes string
	Carpets      []entities.CarpetItem
}
