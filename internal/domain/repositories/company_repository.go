package repositories

import (
	"context"

	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

// CompanyRepository persists cleaning company profiles.
type CompanyRepository interface {
	CreateCompany(ctx context.Context, company *entities.Company) error
	GetCompanyByUserID(ctx context.Context, userID string) (*entities.Company, error)
	ListCompanies(ctx context.Context) ([]*entities.Company, error)
	// ListPendingCompanies returns profiles awaiting admin approval.
	ListPendingCompanies(ctx context.Context) ([]*entities.Company, error)
	// SaveCompany updates the mutable fields of an existing profile.
	SaveCompany(ctx context.Context, company *entities.Company) error
	DeleteCompany(ctx context.Context, userID string) error
	// AddAreaWashed increments the company's total washed area counter.
	AddAreaWashed(ctx context.Context, userID string, area float64) error
	CountCompanies(ctx context.Context) (int, error)
}
