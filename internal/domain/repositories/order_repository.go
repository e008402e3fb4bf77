package repositories

import (
	"context"
	"time"

	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

// DeliveredFilter narrows delivered order queries for reporting.
// Zero CompanyID means all companies.
type DeliveredFilter struct {
	From      time.Time
	To        time.Time
	CompanyID string
}

// OrderRepository persists carpet cleaning orders.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *entities.Order) error
	GetOrderByID(ctx context.Context, id string) (*entities.Order, error)

	// Role scoped listings, newest first.
	GetOrdersByCustomer(ctx context.Context, customerID string) ([]*entities.Order, error)
	// GetOrdersForCompany returns orders assigned to the company plus the
	// pending pool of its city, minus orders it rejected.
	GetOrdersForCompany(ctx context.Context, companyID, city string) ([]*entities.Order, error)
	GetAllOrders(ctx context.Context) ([]*entities.Order, error)
	// GetPool returns pending orders. Empty city means every city (admin
	// view); excludeCompanyID drops orders that company rejected.
	GetPool(ctx context.Context, city, excludeCompanyID string) ([]*entities.Order, error)

	// ClaimOrder atomically assigns a pending unclaimed order to the
	// company. Returns errs.ErrDataConflict when another company won the
	// race or the order already left the pool.
	ClaimOrder(ctx context.Context, orderID, companyID, companyName string, at time.Time) error
	// AddRejection records that the company declined the pooled order.
	// The order stays pending and visible to other companies.
	AddRejection(ctx context.Context, orderID, companyID string) error
	CancelOrder(ctx context.Context, orderID, reason string, at time.Time) error
	// UpdateOrderStatus moves the order to the given status and stamps the
	// matching date column the first time the status is reached.
	UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus, at time.Time) error
	// SaveActualCarpets persists the measured lines and derived totals of
	// the given order.
	SaveActualCarpets(ctx context.Context, order *entities.Order) error

	// Counters for dashboards and the discount rule.
	CountOrdersByCustomer(ctx context.Context, customerID string, status entities.OrderStatus) (int, error)
	CountOrders(ctx context.Context, statuses ...entities.OrderStatus) (int, error)
	CountOrdersByCompany(ctx context.Context, companyID string, statuses ...entities.OrderStatus) (int, error)
	CountPool(ctx context.Context, city, excludeCompanyID string) (int, error)

	// GetDeliveredOrders returns delivered orders matching the filter,
	// for the reporting endpoints.
	GetDeliveredOrders(ctx context.Context, filter DeliveredFilter) ([]*entities.Order, error)
}
