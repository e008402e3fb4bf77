package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus of an order. Forward progression is strictly linear;
// cancelled is reachable from every non-terminal status.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAssigned  OrderStatus = "assigned"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusWashing   OrderStatus = "washing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// next is the explicit forward transition table. A status missing from
// the table has no forward transition.
var next = map[OrderStatus]OrderStatus{
	StatusPending:  StatusAssigned,
	StatusAssigned: StatusPickedUp,
	StatusPickedUp: StatusWashing,
	StatusWashing:  StatusReady,
	StatusReady:    StatusDelivered,
}

// Valid reports whether the status is one of the known statuses.
func (s OrderStatus) Valid() bool {
	if s == StatusCancelled || s == StatusDelivered {
		return true
	}
	_, ok := next[s]
	return ok
}

// Terminal reports whether no further transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Next returns the single permitted forward status. The second return
// value is false for terminal statuses.
func (s OrderStatus) Next() (OrderStatus, bool) {
	n, ok := next[s]
	return n, ok
}

// CanAdvanceTo reports whether to is exactly one step forward from s.
// Skipping steps and moving backwards are both rejected.
func (s OrderStatus) CanAdvanceTo(to OrderStatus) bool {
	n, ok := next[s]
	return ok && n == to
}

// CancellableBy reports whether the given role may cancel an order in
// this status. Customers may cancel only before the carpet is physically
// collected; admins may cancel any non-terminal order.
func (s OrderStatus) CancellableBy(role Role) bool {
	if s.Terminal() {
		return false
	}
	switch role {
	case RoleAdmin:
		return true
	case RoleCustomer:
		return s == StatusPending || s == StatusAssigned
	}
	return false
}

// Order is a carpet cleaning order. Created by a customer in status
// pending, claimed by a company from the pool (or assigned by an admin),
// then walked through the washing pipeline one status at a time.
// Orders are never deleted, only terminal-stated.
type Order struct {
	CreatedAt          time.Time
	AssignedAt         *time.Time
	PickupDate         *time.Time
	WashingDate        *time.Time
	DeliveryDate       *time.Time
	CancelledAt        *time.Time
	ID                 string
	CustomerID         string
	CustomerName       string
	CustomerPhone      string
	CustomerEmail      string
	CustomerAddress    string
	City               string
	District           string
	SpecialNotes       string
	Status             OrderStatus
	CompanyID          string
	CompanyName        string
	CancelReason       string
	Carpets            []CarpetItem
	ActualCarpets      []CarpetEntry
	RejectedBy         []string
	ActualTotalArea    float64
	ActualTotalPrice   decimal.Decimal
	DiscountAmount     decimal.Decimal
	FinalPrice         decimal.Decimal
	DiscountPercentage int
	CarpetCount        int
}

// RejectedByCompany reports whether the company already declined this
// order from the pool.
func (o *Order) RejectedByCompany(companyID string) bool {
	for _, id := range o.RejectedBy {
		if id == companyID {
			return true
		}
	}
	return false
}
