package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/interfaces"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/params"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/repositories"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
)

type AdminService struct {
	users     repositories.UserRepository
	companies repositories.CompanyRepository
	orders    repositories.OrderRepository
	sessions  repositories.SessionRepository
	trm       trm.Manager
	logger    logger.Logger
}

func NewAdminService(
	users repositories.UserRepository,
	companies repositories.CompanyRepository,
	orders repositories.OrderRepository,
	sessions repositories.SessionRepository,
	trm trm.Manager,
	logger logger.Logger,
) (*AdminService, error) {
	if trm == nil {
		return nil, errors.New("nil dependency: transaction manager")
	}
	return &AdminService{
		users:     users,
		companies: companies,
		orders:    orders,
		sessions:  sessions,
		trm:       trm,
		logger:    logger,
	}, nil
}

var _ interfaces.AdminService = (*AdminService)(nil)

func requireAdmin(actor *entities.User) error {
	if actor.Role != entities.RoleAdmin {
		return fmt.Errorf("%w: admin access required", errs.ErrForbidden)
	}
	return nil
}

// GetStats builds the admin dashboard counters.
func (s *AdminService) GetStats(ctx context.Context, actor *entities.User) (*entities.AdminStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	stats := &entities.AdminStats{}
	var err error

	stats.TotalOrders, err = s.orders.CountOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	stats.PendingOrders, err = s.orders.CountOrders(ctx, entities.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("count pending orders: %w", err)
	}
	stats.ActiveOrders, err = s.orders.CountOrders(ctx,
		entities.StatusAssigned,
		entities.StatusPickedUp,
		entities.StatusWashing,
		entities.StatusReady,
	)
	if err != nil {
		return nil, fmt.Errorf("count active orders: %w", err)
	}
	stats.CompletedOrders, err = s.orders.CountOrders(ctx, entities.StatusDelivered)
	if err != nil {
		return nil, fmt.Errorf("count completed orders: %w", err)
	}
	stats.CancelledOrders, err = s.orders.CountOrders(ctx, entities.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("count cancelled orders: %w", err)
	}
	stats.TotalCustomers, err = s.users.CountUsersByRole(ctx, entities.RoleCustomer)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	stats.TotalCompanies, err = s.companies.CountCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("count companies: %w", err)
	}

	return stats, nil
}

// GetReport aggregates delivered orders over the resolved window, across
// all companies or narrowed to one.
func (s *AdminService) GetReport(ctx context.Context, actor *entities.User, p params.Report) (*entities.Report, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	start, end := p.Window(time.Now())

	orders, err := s.orders.GetDeliveredOrders(ctx, repositories.DeliveredFilter{
		From:      start,
		To:        end,
		CompanyID: p.CompanyID,
	})
	if err != nil {
		return nil, fmt.Errorf("get delivered orders: %w", err)
	}

	return buildReport(orders, start, end, p.Period, true), nil
}

func (s *AdminService) ListCompanies(ctx context.Context, actor *entities.User) ([]*entities.Company, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.companies.ListCompanies(ctx)
}

func (s *AdminService) ListPendingCompanies(ctx context.Context, actor *entities.User) ([]*entities.Company, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.companies.ListPendingCompanies(ctx)
}

// ApproveCompany activates a freshly registered company so it can see
// and claim pooled orders.
func (s *AdminService) ApproveCompany(ctx context.Context, actor *entities.User, userID string) (*entities.Company, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	company, err := s.companies.GetCompanyByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if company.IsActive {
		return company, nil
	}

	company.IsActive = true
	if err = s.companies.SaveCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("save company: %w", err)
	}

	s.logger.With(ctx, "company", userID).Info("company approved")

	return company, nil
}

// RejectCompany removes the pending company profile. The user account
// survives and may register a new profile later.
func (s *AdminService) RejectCompany(ctx context.Context, actor *entities.User, userID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	company, err := s.companies.GetCompanyByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if company.IsActive {
		return fmt.Errorf("%w: company already approved", errs.ErrDataConflict)
	}

	if err = s.companies.DeleteCompany(ctx, userID); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}

	s.logger.With(ctx, "company", userID).Info("company rejected")

	return nil
}

func (s *AdminService) UpdateCompany(ctx context.Context, actor *entities.User, userID string, p *params.UpdateCompany) (*entities.Company, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	company, err := s.companies.GetCompanyByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if p.CompanyName != nil {
		company.CompanyName = *p.CompanyName
	}
	if p.IsActive != nil {
		company.IsActive = *p.IsActive
	}

	if err = s.companies.SaveCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("save company: %w", err)
	}

	return company, nil
}

func (s *AdminService) ListUsers(ctx context.Context, actor *entities.User) ([]*entities.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.users.ListUsers(ctx)
}

func (s *AdminService) UpdateUser(ctx context.Context, actor *entities.User, userID string, p *params.UpdateUser) (*entities.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Phone != nil {
		user.Phone = *p.Phone
	}
	if p.City != nil {
		user.City = *p.City
	}
	if p.District != nil {
		user.District = *p.District
	}
	if p.Address != nil {
		user.Address = *p.Address
	}
	if p.IsBanned != nil && *p.IsBanned != user.IsBanned {
		if user.Role == entities.RoleAdmin {
			return nil, fmt.Errorf("%w: cannot ban an admin", errs.ErrForbidden)
		}
		user.IsBanned = *p.IsBanned
	}

	if err = s.users.SaveProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	return user, nil
}

// DeleteUser removes the user together with the dependent company
// profile and sessions. Admin accounts cannot be deleted.
func (s *AdminService) DeleteUser(ctx context.Context, actor *entities.User, userID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == entities.RoleAdmin {
		return fmt.Errorf("%w: cannot delete an admin account", errs.ErrForbidden)
	}

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		if user.Role == entities.RoleCompany {
			if err := s.companies.DeleteCompany(ctx, userID); err != nil && !errors.Is(err, errs.ErrNotFound) {
				return fmt.Errorf("delete company profile: %w", err)
			}
		}
		if err := s.sessions.DeleteUserSessions(ctx, userID); err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		return s.users.DeleteUser(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.logger.With(ctx, "user", userID).Info("user deleted")

	return nil
}

// BanUser blocks the account and revokes every live session, so the ban
// takes effect immediately.
func (s *AdminService) BanUser(ctx context.Context, actor *entities.User, userID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == entities.RoleAdmin {
		return fmt.Errorf("%w: cannot ban an admin account", errs.ErrForbidden)
	}

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		if err := s.users.SetBanned(ctx, userID, true); err != nil {
			return fmt.Errorf("ban user: %w", err)
		}
		return s.sessions.DeleteUserSessions(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.logger.With(ctx, "user", userID).Info("user banned")

	return nil
}

func (s *AdminService) UnbanUser(ctx context.Context, actor *entities.User, userID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return err
	}

	return s.users.SetBanned(ctx, userID, false)
}

// ExportCSV streams the named dataset as CSV.
func (s *AdminService) ExportCSV(ctx context.Context, actor *entities.User, exportType string, w io.Writer) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	switch exportType {
	case "orders":
		if err := s.exportOrders(ctx, cw); err != nil {
			return err
		}
	case "users":
		if err := s.exportUsers(ctx, cw); err != nil {
			return err
		}
	case "companies":
		if err := s.exportCompanies(ctx, cw); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown export type %q", errs.ErrInvalidRequest, exportType)
	}

	cw.Flush()
	return cw.Error()
}

func (s *AdminService) exportOrders(ctx context.Context, w *csv.Writer) error {
	orders, err := s.orders.GetAllOrders(ctx)
	if err != nil {
		return fmt.Errorf("get orders: %w", err)
	}

	header := []string{
		"order_id", "status", "customer_name", "customer_phone",
		"city", "district", "company_name", "carpet_count",
		"total_area", "final_price", "created_at",
	}
	if err = w.Write(header); err != nil {
		return err
	}

	for _, o := range orders {
		record := []string{
			o.ID,
			string(o.Status),
			o.CustomerName,
			o.CustomerPhone,
			o.City,
			o.District,
			o.CompanyName,
			strconv.Itoa(o.CarpetCount),
			strconv.FormatFloat(o.ActualTotalArea, 'f', -1, 64),
			o.FinalPrice.String(),
			o.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err = w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (s *AdminService) exportUsers(ctx context.Context, w *csv.Writer) error {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("get users: %w", err)
	}

	header := []string{"user_id", "email", "name", "role", "phone", "city", "is_banned", "created_at"}
	if err = w.Write(header); err != nil {
		return err
	}

	for _, u := range users {
		record := []string{
			u.ID,
			u.Email,
			u.Name,
			string(u.Role),
			u.Phone,
			u.City,
			strconv.FormatBool(u.IsBanned),
			u.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err = w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (s *AdminService) exportCompanies(ctx context.Context, w *csv.Writer) error {
	companies, err := s.companies.ListCompanies(ctx)
	if err != nil {
		return fmt.Errorf("get companies: %w", err)
	}

	header := []string{"user_id", "company_name", "email", "phone", "city", "is_active", "total_area_washed", "created_at"}
	if err = w.Write(header); err != nil {
		return err
	}

	for _, c := range companies {
		record := []string{
			c.UserID,
			c.CompanyName,
			c.Email,
			c.Phone,
			c.City,
			strconv.FormatBool(c.IsActive),
			strconv.FormatFloat(c.TotalAreaWashed, 'f', -1, 64),
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err = w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
