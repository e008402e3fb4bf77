package interfaces

import (
	"context"
	"io"

	"github.com/sercandadas/haliyol-marketplace-service/internal/application/params"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

// AdminService represents the back-office actions.
type AdminService interface {
	GetStats(ctx context.Context, actor *entities.User) (*entities.AdminStats, error)
	GetReport(ctx context.Context, actor *entities.User, p params.Report) (*entities.Report, error)

	ListCompanies(ctx context.Context, actor *entities.User) ([]*entities.Company, error)
	ListPendingCompanies(ctx context.Context, actor *entities.User) ([]*entities.Company, error)
	ApproveCompany(ctx context.Context, actor *entities.User, userID string) (*entities.Company, error)
	RejectCompany(ctx context.Context, actor *entities.User, userID string) error
	UpdateCompany(ctx context.Context, actor *entities.User, userID string, p *params.UpdateCompany) (*entities.Company, error)

	ListUsers(ctx context.Context, actor *entities.User) ([]*entities.User, error)
	UpdateUser(ctx context.Context, actor *entities.User, userID string, p *params.UpdateUser) (*entities.User, error)
	DeleteUser(ctx context.Context, actor *entities.User, userID string) error
	BanUser(ctx context.Context, actor *entities.User, userID string) error
	UnbanUser(ctx context.Context, actor *entities.User, userID string) error

	// ExportCSV streams the named dataset (orders, users or companies)
	// as CSV to w.
	ExportCSV(ctx context.Context, actor *entities.User, exportType string, w io.Writer) error
}
