package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// CarpetTypeTotals accumulates washed area and revenue for one carpet
// type of the catalog.
type CarpetTypeTotals struct {
	Area  float64
	Price decimal.Decimal
}

// CompanyReportEntry is the per company breakdown of an admin report.
type CompanyReportEntry struct {
	CompanyID   string
	Name        string
	OrderCount  int
	TotalArea   float64
	TotalPrice  decimal.Decimal
	CarpetStats map[CarpetType]*CarpetTypeTotals
}

// Report aggregates delivered orders over a time window. CompanyStats
// is populated only for admin reports.
type Report struct {
	StartDate    time.Time
	EndDate      time.Time
	Period       string
	TotalOrders  int
	TotalArea    float64
	TotalPrice   decimal.Decimal
	CarpetStats  map[CarpetType]*CarpetTypeTotals
	CompanyStats []*CompanyReportEntry
}

// NewCarpetStats returns a totals map preallocated with every catalog
// type so report consumers always see the full breakdown.
func NewCarpetStats() map[CarpetType]*CarpetTypeTotals {
	stats := make(map[CarpetType]*CarpetTypeTotals, len(Catalog))
	for t := range Catalog {
		stats[t] = &CarpetTypeTotals{}
	}
	return stats
}

// AdminStats is the admin dashboard counter set.
type AdminStats struct {
	TotalOrders     int
	PendingOrders   int
	ActiveOrders    int
	CompletedOrders int
	CancelledOrders int
	TotalCustomers  int
	TotalCompanies  int
}

// CompanyStats is the company dashboard counter set.
type CompanyStats struct {
	TotalOrders     int
	PendingOrders   int
	CompletedOrders int
	PoolOrders      int
	TotalAreaWashed float64
}
