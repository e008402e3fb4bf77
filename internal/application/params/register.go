package params

import "github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"

// Register holds the input of the registration use case.
type Register struct {
	Email        string
	Password     string
	Name         string
	Role         entities.Role
	Phone        string
	City         string
	District     string
	Address      string
	CompanyName  string
	ServiceAreas []string
}
