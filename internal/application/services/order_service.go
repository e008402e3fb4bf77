package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/interfaces"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/params"
	"github.com/sercandadas/haliyol-marketplace-service/internal/config"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/repositories"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
	"github.com/shopspring/decimal"
)

type OrderService struct {
	orders    repositories.OrderRepository
	companies repositories.CompanyRepository
	trm       trm.Manager
	logger    logger.Logger
	config    *config.Config
}

func NewOrderService(
	orders repositories.OrderRepository,
	companies repositories.CompanyRepository,
	trm trm.Manager,
	logger logger.Logger,
	config *config.Config,
) (*OrderService, error) {
	if config == nil {
		return nil, errors.New("nil dependency: config")
	}
	if trm == nil {
		return nil, errors.New("nil dependency: transaction manager")
	}
	return &OrderService{
		orders:    orders,
		companies: companies,
		trm:       trm,
		logger:    logger,
		config:    config,
	}, nil
}

var _ interfaces.OrderService = (*OrderService)(nil)

// CreateOrder opens a new order in the pending pool of the customer's
// city. Lines are stored as declared; pricing happens later, when the
// company measures the carpets on pickup.
func (s *OrderService) CreateOrder(ctx context.Context, actor *entities.User, p *params.CreateOrder) (*entities.Order, error) {
	if actor.Role != entities.RoleCustomer {
		return nil, fmt.Errorf("%w: only customers can create orders", errs.ErrForbidden)
	}
	if len(p.Carpets) == 0 {
		return nil, fmt.Errorf("%w: at least one carpet is required", errs.ErrInvalidRequest)
	}

	carpets := make([]entities.CarpetItem, 0, len(p.Carpets))
	for _, c := range p.Carpets {
		c.Area = c.Width * c.Length
		carpets = append(carpets, c)
	}

	order := &entities.Order{
		ID:              entities.NewOrderID(),
		CustomerID:      actor.ID,
		CustomerName:    actor.Name,
		CustomerPhone:   p.Phone,
		CustomerEmail:   actor.Email,
		CustomerAddress: p.Address,
		City:            p.City,
		District:        p.District,
		SpecialNotes:    p.SpecialNotes,
		Status:          entities.StatusPending,
		Carpets:         carpets,
		CarpetCount:     len(carpets),
		CreatedAt:       time.Now().UTC(),
	}
	if order.CustomerPhone == "" {
		order.CustomerPhone = actor.Phone
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.With(ctx, "order", order.ID, "city", order.City).
		Infof("order created by customer %s", actor.ID)

	return order, nil
}

// GetOrders lists the orders visible to the actor: customers see their
// own, companies see assigned orders plus their city pool, admins see
// everything.
func (s *OrderService) GetOrders(ctx context.Context, actor *entities.User) ([]*entities.Order, error) {
	switch actor.Role {
	case entities.RoleCustomer:
		return s.orders.GetOrdersByCustomer(ctx, actor.ID)

	case entities.RoleCompany:
		company, err := s.activeCompany(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		return s.orders.GetOrdersForCompany(ctx, actor.ID, company.City)

	case entities.RoleAdmin:
		return s.orders.GetAllOrders(ctx)
	}
	return nil, errs.ErrForbidden
}

// GetPool lists claimable pending orders. Companies see the pool of
// their own city minus orders they already rejected; admins see every
// city.
func (s *OrderService) GetPool(ctx context.Context, actor *entities.User) ([]*entities.Order, error) {
	switch actor.Role {
	case entities.RoleCompany:
		company, err := s.activeCompany(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		return s.orders.GetPool(ctx, company.City, actor.ID)

	case entities.RoleAdmin:
		return s.orders.GetPool(ctx, "", "")
	}
	return nil, errs.ErrForbidden
}

// GetOrder returns a single order, enforcing the same visibility rules
// as GetOrders.
func (s *OrderService) GetOrder(ctx context.Context, actor *entities.User, orderID string) (*entities.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case entities.RoleAdmin:
		return order, nil
	case entities.RoleCustomer:
		if order.CustomerID == actor.ID {
			return order, nil
		}
	case entities.RoleCompany:
		if order.CompanyID == actor.ID {
			return order, nil
		}
		// Pooled orders of the company's city are visible too.
		if order.Status == entities.StatusPending {
			company, err := s.activeCompany(ctx, actor.ID)
			if err != nil {
				return nil, err
			}
			if company.City == order.City {
				return order, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: not your order", errs.ErrForbidden)
}

// AcceptOrder claims a pooled order for the acting company. The claim is
// a conditional update, so of two simultaneous accepts exactly one wins
// and the other gets a conflict.
func (s *OrderService) AcceptOrder(ctx context.Context, actor *entities.User, orderID string) (*entities.Order, error) {
	if actor.Role != entities.RoleCompany {
		return nil, fmt.Errorf("%w: only companies can accept orders", errs.ErrForbidden)
	}

	company, err := s.activeCompany(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	var order *entities.Order

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		order, err = s.orders.GetOrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status != entities.StatusPending || order.CompanyID != "" {
			return fmt.Errorf("%w: order already assigned", errs.ErrDataConflict)
		}
		if order.City != company.City {
			return fmt.Errorf("%w: order is outside your service city", errs.ErrForbidden)
		}

		now := time.Now().UTC()
		if err = s.orders.ClaimOrder(ctx, orderID, actor.ID, company.CompanyName, now); err != nil {
			return err
		}

		order.Status = entities.StatusAssigned
		order.CompanyID = actor.ID
		order.CompanyName = company.CompanyName
		order.AssignedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.With(ctx, "order", orderID).Infof("order accepted by company %s", actor.ID)

	return order, nil
}

// RejectOrder records that the company declines the pooled order. The
// order stays pending and claimable by other companies.
func (s *OrderService) RejectOrder(ctx context.Context, actor *entities.User, orderID string) error {
	if actor.Role != entities.RoleCompany {
		return fmt.Errorf("%w: only companies can reject orders", errs.ErrForbidden)
	}

	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != entities.StatusPending {
		return fmt.Errorf("%w: order already left the pool", errs.ErrDataConflict)
	}
	if order.RejectedByCompany(actor.ID) {
		return nil
	}

	return s.orders.AddRejection(ctx, orderID, actor.ID)
}

// CancelOrder cancels the order on behalf of its customer or an admin.
// Customers lose the right to cancel once the carpet is picked up.
func (s *OrderService) CancelOrder(ctx context.Context, actor *entities.User, orderID, reason string) (*entities.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case entities.RoleAdmin:
	case entities.RoleCustomer:
		if order.CustomerID != actor.ID {
			return nil, fmt.Errorf("%w: not your order", errs.ErrForbidden)
		}
	default:
		return nil, errs.ErrForbidden
	}

	if !order.Status.CancellableBy(actor.Role) {
		return nil, &errs.TransitionError{
			From:   order.Status,
			To:     entities.StatusCancelled,
			Reason: "order can no longer be cancelled",
		}
	}

	now := time.Now().UTC()
	if err = s.orders.CancelOrder(ctx, orderID, reason, now); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}

	order.Status = entities.StatusCancelled
	order.CancelReason = reason
	order.CancelledAt = &now

	s.logger.With(ctx, "order", orderID).Infof("order cancelled by %s", actor.Role)

	return order, nil
}

// UpdateStatus advances the order exactly one step forward in the
// washing pipeline. Only the assigned company or an admin may advance.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *entities.User, orderID string, status entities.OrderStatus) (*entities.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrInvalidRequest, status)
	}
	if status == entities.StatusCancelled {
		return nil, fmt.Errorf("%w: use the cancel endpoint", errs.ErrInvalidRequest)
	}
	// Assignment must attach a company, which only the claim paths do.
	if status == entities.StatusAssigned {
		return nil, fmt.Errorf("%w: use the accept or assign endpoint", errs.ErrInvalidRequest)
	}

	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case entities.RoleAdmin:
	case entities.RoleCompany:
		if order.CompanyID != actor.ID {
			return nil, fmt.Errorf("%w: order is assigned to another company", errs.ErrForbidden)
		}
	default:
		return nil, errs.ErrForbidden
	}

	if !order.Status.CanAdvanceTo(status) {
		return nil, &errs.TransitionError{From: order.Status, To: status}
	}

	now := time.Now().UTC()
	if err = s.orders.UpdateOrderStatus(ctx, orderID, status, now); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order.Status = status
	switch status {
	case entities.StatusPickedUp:
		order.PickupDate = &now
	case entities.StatusWashing:
		order.WashingDate = &now
	case entities.StatusDelivered:
		order.DeliveryDate = &now
	}

	s.logger.With(ctx, "order", orderID, "status", status).Info("order status updated")

	return order, nil
}

// AssignOrder lets an admin hand a pending order to a specific company,
// bypassing the pool.
func (s *OrderService) AssignOrder(ctx context.Context, actor *entities.User, orderID, companyID string) (*entities.Order, error) {
	if actor.Role != entities.RoleAdmin {
		return nil, fmt.Errorf("%w: admin access required", errs.ErrForbidden)
	}

	company, err := s.companies.GetCompanyByUserID(ctx, companyID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: company not found", errs.ErrNotFound)
		}
		return nil, err
	}

	var order *entities.Order

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		order, err = s.orders.GetOrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status != entities.StatusPending || order.CompanyID != "" {
			return fmt.Errorf("%w: order already assigned", errs.ErrDataConflict)
		}

		now := time.Now().UTC()
		if err = s.orders.ClaimOrder(ctx, orderID, companyID, company.CompanyName, now); err != nil {
			return err
		}

		order.Status = entities.StatusAssigned
		order.CompanyID = companyID
		order.CompanyName = company.CompanyName
		order.AssignedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// UpdateCarpets replaces the order lines with the measured ones and
// reprices the order. A first-time customer whose measured total reaches
// the discount threshold gets the percentage knocked off.
func (s *OrderService) UpdateCarpets(ctx context.Context, actor *entities.User, orderID string, entries []entities.CarpetEntry) (*entities.Order, error) {
	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case entities.RoleAdmin:
	case entities.RoleCompany:
		if order.CompanyID != actor.ID {
			return nil, fmt.Errorf("%w: order is assigned to another company", errs.ErrForbidden)
		}
	default:
		return nil, errs.ErrForbidden
	}

	if order.Status.Terminal() {
		return nil, fmt.Errorf("%w: order is closed", errs.ErrDataConflict)
	}

	quote := entities.CalculateMeasured(entries)
	if len(quote.Lines) == 0 {
		return nil, fmt.Errorf("%w: no valid carpet entries", errs.ErrInvalidRequest)
	}

	previousArea := order.ActualTotalArea

	measured := make([]entities.CarpetEntry, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		measured = append(measured, entities.CarpetEntry{
			Type:  line.Type,
			Area:  line.Area,
			Price: line.Price,
		})
	}

	order.ActualCarpets = measured
	order.ActualTotalArea = quote.TotalArea
	order.ActualTotalPrice = quote.TotalPrice
	order.DiscountPercentage = 0
	order.DiscountAmount = decimal.Zero
	order.FinalPrice = quote.TotalPrice

	eligible, err := s.firstOrderDiscountEligible(ctx, order.CustomerID, quote.TotalPrice)
	if err != nil {
		return nil, err
	}
	if eligible {
		pct := decimal.NewFromInt(int64(s.config.Discount.Percentage))
		order.DiscountPercentage = s.config.Discount.Percentage
		order.DiscountAmount = quote.TotalPrice.Mul(pct).Div(decimal.NewFromInt(100))
		order.FinalPrice = quote.TotalPrice.Sub(order.DiscountAmount)
	}

	areaDelta := quote.TotalArea - previousArea

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		if err := s.orders.SaveActualCarpets(ctx, order); err != nil {
			return fmt.Errorf("save measured carpets: %w", err)
		}
		if order.CompanyID != "" && areaDelta != 0 {
			return s.companies.AddAreaWashed(ctx, order.CompanyID, areaDelta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// firstOrderDiscountEligible reports whether the order qualifies for the
// first order discount: the measured total reaches the threshold and the
// customer has never had an order delivered.
func (s *OrderService) firstOrderDiscountEligible(ctx context.Context, customerID string, total decimal.Decimal) (bool, error) {
	threshold := decimal.NewFromFloat(s.config.Discount.Threshold)
	if total.LessThan(threshold) {
		return false, nil
	}

	delivered, err := s.orders.CountOrdersByCustomer(ctx, customerID, entities.StatusDelivered)
	if err != nil {
		return false, fmt.Errorf("count delivered orders: %w", err)
	}
	return delivered == 0, nil
}

// activeCompany loads the acting company's profile and verifies it was
// approved. Unapproved companies cannot see or claim orders.
func (s *OrderService) activeCompany(ctx context.Context, userID string) (*entities.Company, error) {
	company, err := s.companies.GetCompanyByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("%w: company profile not found", errs.ErrForbidden)
		}
		return nil, err
	}
	if !company.IsActive {
		return nil, fmt.Errorf("%w: company awaiting approval", errs.ErrForbidden)
	}
	return company, nil
}
