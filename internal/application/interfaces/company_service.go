package interfaces

import (
	"context"

	"github.com/sercandadas/haliyol-marketplace-service/internal/application/params"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

// CompanyService represents the company dashboard actions.
type CompanyService interface {
	GetProfile(ctx context.Context, actor *entities.User) (*entities.Company, error)
	GetStats(ctx context.Context, actor *entities.User) (*entities.CompanyStats, error)
	GetReport(ctx context.Context, actor *entities.User, p params.Report) (*entities.Report, error)
}
