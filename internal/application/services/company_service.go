package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/interfaces"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/params"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/repositories"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
)

type CompanyService struct {
	companies repositories.CompanyRepository
	orders    repositories.OrderRepository
	logger    logger.Logger
}

func NewCompanyService(
	companies repositories.CompanyRepository,
	orders repositories.OrderRepository,
	logger logger.Logger,
) (*CompanyService, error) {
	if companies == nil {
		return nil, errors.New("nil dependency: company repository")
	}
	if orders == nil {
		return nil, errors.New("nil dependency: order repository")
	}
	return &CompanyService{
		companies: companies,
		orders:    orders,
		logger:    logger,
	}, nil
}

var _ interfaces.CompanyService = (*CompanyService)(nil)

func (s *CompanyService) GetProfile(ctx context.Context, actor *entities.User) (*entities.Company, error) {
	if actor.Role != entities.RoleCompany {
		return nil, fmt.Errorf("%w: company access required", errs.ErrForbidden)
	}
	company, err := s.companies.GetCompanyByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: company profile not found", errs.ErrNotFound)
		}
		return nil, err
	}
	return company, nil
}

// GetStats builds the company dashboard counters.
func (s *CompanyService) GetStats(ctx context.Context, actor *entities.User) (*entities.CompanyStats, error) {
	company, err := s.GetProfile(ctx, actor)
	if err != nil {
		return nil, err
	}

	stats := &entities.CompanyStats{TotalAreaWashed: company.TotalAreaWashed}

	stats.TotalOrders, err = s.orders.CountOrdersByCompany(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	stats.PendingOrders, err = s.orders.CountOrdersByCompany(ctx, actor.ID,
		entities.StatusAssigned,
		entities.StatusPickedUp,
		entities.StatusWashing,
		entities.StatusReady,
	)
	if err != nil {
		return nil, fmt.Errorf("count pending orders: %w", err)
	}

	stats.CompletedOrders, err = s.orders.CountOrdersByCompany(ctx, actor.ID, entities.StatusDelivered)
	if err != nil {
		return nil, fmt.Errorf("count completed orders: %w", err)
	}

	if company.IsActive {
		stats.PoolOrders, err = s.orders.CountPool(ctx, company.City, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("count pool: %w", err)
		}
	}

	return stats, nil
}

// GetReport aggregates the company's delivered orders over the resolved
// reporting window.
func (s *CompanyService) GetReport(ctx context.Context, actor *entities.User, p params.Report) (*entities.Report, error) {
	if actor.Role != entities.RoleCompany {
		return nil, fmt.Errorf("%w: company access required", errs.ErrForbidden)
	}

	start, end := p.Window(time.Now())

	orders, err := s.orders.GetDeliveredOrders(ctx, repositories.DeliveredFilter{
		From:      start,
		To:        end,
		CompanyID: actor.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("get delivered orders: %w", err)
	}

	return buildReport(orders, start, end, p.Period, false), nil
}

// buildReport folds delivered orders into totals and the per carpet type
// breakdown. With perCompany set it adds the per company section used by
// the admin report.
func buildReport(orders []*entities.Order, start, end time.Time, period string, perCompany bool) *entities.Report {
	report := &entities.Report{
		StartDate:   start,
		EndDate:     end,
		Period:      period,
		CarpetStats: entities.NewCarpetStats(),
	}
	if report.Period == "" {
		report.Period = "daily"
	}

	byCompany := make(map[string]*entities.CompanyReportEntry)

	for _, order := range orders {
		report.TotalOrders++
		report.TotalArea += order.ActualTotalArea
		report.TotalPrice = report.TotalPrice.Add(order.FinalPrice)

		var entry *entities.CompanyReportEntry
		if perCompany && order.CompanyID != "" {
			entry = byCompany[order.CompanyID]
			if entry == nil {
				entry = &entities.CompanyReportEntry{
					CompanyID:   order.CompanyID,
					Name:        order.CompanyName,
					CarpetStats: entities.NewCarpetStats(),
				}
				byCompany[order.CompanyID] = entry
				report.CompanyStats = append(report.CompanyStats, entry)
			}
			entry.OrderCount++
			entry.TotalArea += order.ActualTotalArea
			entry.TotalPrice = entry.TotalPrice.Add(order.FinalPrice)
		}

		for _, carpet := range order.ActualCarpets {
			totals, ok := report.CarpetStats[carpet.Type]
			if !ok {
				continue
			}
			totals.Area += carpet.Area
			totals.Price = totals.Price.Add(carpet.Price)

			if entry != nil {
				if t, ok := entry.CarpetStats[carpet.Type]; ok {
					t.Area += carpet.Area
					t.Price = t.Price.Add(carpet.Price)
				}
			}
		}
	}

	return report
}
