package response

import (
	"time"

	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

type Company struct {
	CreatedAt       time.Time `json:"created_at"`
	UserID          string    `json:"user_id"`
	CompanyName     string    `json:"company_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	City            string    `json:"city"`
	Address         string    `json:"address"`
	Districts       []string  `json:"districts"`
	TotalAreaWashed float64   `json:"total_area_washed"`
	IsActive        bool      `json:"is_active"`
}

func NewCompanyFromEntity(e *entities.Company) *Company {
	return &Company{
		CreatedAt:       e.CreatedAt,
		UserID:          e.UserID,
		CompanyName:     e.CompanyName,
		Email:           e.Email,
		Phone:           e.Phone,
		City:            e.City,
		Address:         e.Address,
		Districts:       e.Districts,
		TotalAreaWashed: e.TotalAreaWashed,
		IsActive:        e.IsActive,
	}
}

func NewCompaniesFromEntities(es []*entities.Company) []*Company {
	companies := make([]*Company, 0, len(es))
	for _, e := range es {
		companies = append(companies, NewCompanyFromEntity(e))
	}
	return companies
}

type CompanyStats struct {
	TotalOrders     int     `json:"total_orders"`
	PendingOrders   int     `json:"pending_orders"`
	CompletedOrders int     `json:"completed_orders"`
	PoolOrders      int     `json:"pool_orders"`
	TotalAreaWashed float64 `json:"total_area_washed"`
}

func NewCompanyStatsFromEntity(e *entities.CompanyStats) *CompanyStats {
	return &CompanyStats{
		TotalOrders:     e.TotalOrders,
		PendingOrders:   e.PendingOrders,
		CompletedOrders: e.CompletedOrders,
		PoolOrders:      e.PoolOrders,
		TotalAreaWashed: e.TotalAreaWashed,
	}
}

// CarpetTypeTotals is the per carpet type slice of a report.
type CarpetTypeTotals struct {
	Area  float64 `json:"area"`
	Price float64 `json:"price"`
}

type CompanyReportEntry struct {
	CompanyID   string                      `json:"company_id"`
	Name        string                      `json:"name"`
	OrderCount  int                         `json:"order_count"`
	TotalArea   float64                     `json:"total_area"`
	TotalPrice  float64                     `json:"total_price"`
	CarpetStats map[string]CarpetTypeTotals `json:"carpet_stats"`
}

type Report struct {
	StartDate    time.Time                   `json:"start_date"`
	EndDate      time.Time                   `json:"end_date"`
	Period       string                      `json:"period"`
	TotalOrders  int                         `json:"total_orders"`
	TotalArea    float64                     `json:"total_area"`
	TotalPrice   float64                     `json:"total_price"`
	CarpetStats  map[string]CarpetTypeTotals `json:"carpet_stats"`
	CompanyStats []*CompanyReportEntry       `json:"company_stats,omitempty"`
}

func NewReportFromEntity(e *entities.Report) *Report {
	report := &Report{
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Period:      e.Period,
		TotalOrders: e.TotalOrders,
		TotalArea:   e.TotalArea,
		TotalPrice:  e.TotalPrice.InexactFloat64(),
		CarpetStats: newCarpetStats(e.CarpetStats),
	}

	for _, entry := range e.CompanyStats {
		report.CompanyStats = append(report.CompanyStats, &CompanyReportEntry{
			CompanyID:   entry.CompanyID,
			Name:        entry.Name,
			OrderCount:  entry.OrderCount,
			TotalArea:   entry.TotalArea,
			TotalPrice:  entry.TotalPrice.InexactFloat64(),
			CarpetStats: newCarpetStats(entry.CarpetStats),
		})
	}

	return report
}

func newCarpetStats(stats map[entities.CarpetType]*entities.CarpetTypeTotals) map[string]CarpetTypeTotals {
	out := make(map[string]CarpetTypeTotals, len(stats))
	for t, totals := range stats {
		out[string(t)] = CarpetTypeTotals{
			Area:  totals.Area,
			Price: totals.Price.InexactFloat64(),
		}
	}
	return out
}
