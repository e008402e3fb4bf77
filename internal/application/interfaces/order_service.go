package interfaces

import (
	"context"

	"github.com/sercandadas/haliyol-marketplace-service/internal/application/params"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

// OrderService represents all order actions. Every method takes the
// acting user and enforces the role policy of the action.
type OrderService interface {
	CreateOrder(ctx context.Context, actor *entities.User, p *params.CreateOrder) (*entities.Order, error)
	GetOrders(ctx context.Context, actor *entities.User) ([]*entities.Order, error)
	GetPool(ctx context.Context, actor *entities.User) ([]*entities.Order, error)
	GetOrder(ctx context.Context, actor *entities.User, orderID string) (*entities.Order, error)
	AcceptOrder(ctx context.Context, actor *entities.User, orderID string) (*entities.Order, error)
	RejectOrder(ctx context.Context, actor *entities.User, orderID string) error
	CancelOrder(ctx context.Context, actor *entities.User, orderID, reason string) (*entities.Order, error)
	UpdateStatus(ctx context.Context, actor *entities.User, orderID string, status entities.OrderStatus) (*entities.Order, error)
	AssignOrder(ctx context.Context, actor *entities.User, orderID, companyID string) (*entities.Order, error)
	UpdateCarpets(ctx context.Context, actor *entities.User, orderID string, entries []entities.CarpetEntry) (*entities.Order, error)
}
