package services

import (
	"context"
	"testing"
	"time"

	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/params"
	"github.com/sercandadas/haliyol-marketplace-service/internal/config"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
)

func newTestOrderService(t *testing.T, orders *mockOrderRepository, companies *mockCompanyRepository) *OrderService {
	t.Helper()

	cfg := &config.Config{}
	cfg.Discount.Threshold = 1000
	cfg.Discount.Percentage = 10

	s, err := NewOrderService(orders, companies, nopTrManager{}, logger.NewWithZap(zap.NewNop()), cfg)
	require.NoError(t, err)

	return s
}

func activeCompanyRepo(city string) *mockCompanyRepository {
	return &mockCompanyRepository{
		getCompanyByUserID: func(_ context.Context, userID string) (*entities.Company, error) {
			return &entities.Company{
				UserID:      userID,
				CompanyName: "Pırıl Halı Yıkama",
				City:        city,
				IsActive:    true,
			}, nil
		},
	}
}

func TestOrderServiceCreateOrder(t *testing.T) {
	customer := &entities.User{
		ID:    "user_000000000001",
		Name:  "Ayşe Yılmaz",
		Email: "ayse@example.com",
		Phone: "+90 555 111 22 33",
		Role:  entities.RoleCustomer,
	}

	t.Run("computes areas and opens pending", func(t *testing.T) {
		var created *entities.Order
		orders := &mockOrderRepository{
			createOrder: func(_ context.Context, o *entities.Order) error {
				created = o
				return nil
			},
		}
		s := newTestOrderService(t, orders, &mockCompanyRepository{})

		order, err := s.CreateOrder(context.Background(), customer, &params.CreateOrder{
			City:     "İstanbul",
			District: "Kadıköy",
			Address:  "Moda Cad. 12",
			Carpets: []entities.CarpetItem{
				{Type: entities.CarpetNormal, Width: 2, Length: 3},
				{Type: entities.CarpetSilk, Width: 1, Length: 1.5},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, entities.StatusPending, order.Status)
		assert.Equal(t, customer.ID, order.CustomerID)
		assert.Equal(t, customer.Phone, order.CustomerPhone)
		assert.Equal(t, 2, order.CarpetCount)
		assert.InDelta(t, 6.0, order.Carpets[0].Area, 1e-9)
		assert.InDelta(t, 1.5, order.Carpets[1].Area, 1e-9)
	})

	t.Run("companies cannot create", func(t *testing.T) {
		s := newTestOrderService(t, &mockOrderRepository{}, &mockCompanyRepository{})

		_, err := s.CreateOrder(context.Background(), &entities.User{Role: entities.RoleCompany}, &params.CreateOrder{
			Carpets: []entities.CarpetItem{{Type: entities.CarpetNormal, Width: 2, Length: 3}},
		})
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("requires at least one carpet", func(t *testing.T) {
		s := newTestOrderService(t, &mockOrderRepository{}, &mockCompanyRepository{})

		_, err := s.CreateOrder(context.Background(), customer, &params.CreateOrder{City: "İstanbul"})
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})
}

func TestOrderServiceAcceptOrder(t *testing.T) {
	company := &entities.User{ID: "user_00000000c0de", Role: entities.RoleCompany}

	pendingOrder := func() *entities.Order {
		return &entities.Order{
			ID:     "ORD-AAAA1111",
			Status: entities.StatusPending,
			City:   "İstanbul",
		}
	}

	t.Run("claims a pooled order", func(t *testing.T) {
		order := pendingOrder()
		claimed := false
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return order, nil
			},
			claimOrder: func(_ context.Context, orderID, companyID, companyName string, _ time.Time) error {
				claimed = true
				assert.Equal(t, order.ID, orderID)
				assert.Equal(t, company.ID, companyID)
				assert.Equal(t, "Pırıl Halı Yıkama", companyName)
				return nil
			},
		}
		s := newTestOrderService(t, orders, activeCompanyRepo("İstanbul"))

		got, err := s.AcceptOrder(context.Background(), company, order.ID)
		require.NoError(t, err)

		assert.True(t, claimed)
		assert.Equal(t, entities.StatusAssigned, got.Status)
		assert.Equal(t, company.ID, got.CompanyID)
		require.NotNil(t, got.AssignedAt)
	})

	t.Run("conflict when already assigned", func(t *testing.T) {
		order := pendingOrder()
		order.Status = entities.StatusAssigned
		order.CompanyID = "user_00000000beef"
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return order, nil
			},
		}
		s := newTestOrderService(t, orders, activeCompanyRepo("İstanbul"))

		_, err := s.AcceptOrder(context.Background(), company, order.ID)
		assert.ErrorIs(t, err, errs.ErrDataConflict)
	})

	t.Run("forbidden outside the service city", func(t *testing.T) {
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return pendingOrder(), nil
			},
		}
		s := newTestOrderService(t, orders, activeCompanyRepo("Ankara"))

		_, err := s.AcceptOrder(context.Background(), company, "ORD-AAAA1111")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("forbidden for unapproved companies", func(t *testing.T) {
		companies := &mockCompanyRepository{
			getCompanyByUserID: func(_ context.Context, userID string) (*entities.Company, error) {
				return &entities.Company{UserID: userID, City: "İstanbul", IsActive: false}, nil
			},
		}
		s := newTestOrderService(t, &mockOrderRepository{}, companies)

		_, err := s.AcceptOrder(context.Background(), company, "ORD-AAAA1111")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestOrderServiceRejectOrder(t *testing.T) {
	company := &entities.User{ID: "user_00000000c0de", Role: entities.RoleCompany}

	t.Run("records the rejection", func(t *testing.T) {
		rejected := false
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return &entities.Order{ID: "ORD-AAAA1111", Status: entities.StatusPending}, nil
			},
			addRejection: func(_ context.Context, _, companyID string) error {
				rejected = true
				assert.Equal(t, company.ID, companyID)
				return nil
			},
		}
		s := newTestOrderService(t, orders, activeCompanyRepo("İstanbul"))

		require.NoError(t, s.RejectOrder(context.Background(), company, "ORD-AAAA1111"))
		assert.True(t, rejected)
	})

	t.Run("repeated rejection is a no-op", func(t *testing.T) {
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return &entities.Order{
					ID:         "ORD-AAAA1111",
					Status:     entities.StatusPending,
					RejectedBy: []string{company.ID},
				}, nil
			},
			addRejection: func(_ context.Context, _, _ string) error {
				t.Fatal("rejection must not be stored twice")
				return nil
			},
		}
		s := newTestOrderService(t, orders, activeCompanyRepo("İstanbul"))

		assert.NoError(t, s.RejectOrder(context.Background(), company, "ORD-AAAA1111"))
	})

	t.Run("conflict once the order left the pool", func(t *testing.T) {
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return &entities.Order{ID: "ORD-AAAA1111", Status: entities.StatusAssigned}, nil
			},
		}
		s := newTestOrderService(t, orders, activeCompanyRepo("İstanbul"))

		err := s.RejectOrder(context.Background(), company, "ORD-AAAA1111")
		assert.ErrorIs(t, err, errs.ErrDataConflict)
	})
}

func TestOrderServiceCancelOrder(t *testing.T) {
	customer := &entities.User{ID: "user_000000000001", Role: entities.RoleCustomer}

	t.Run("customer cancels a pending order", func(t *testing.T) {
		cancelled := false
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return &entities.Order{
					ID:         "ORD-AAAA1111",
					CustomerID: customer.ID,
					Status:     entities.StatusPending,
				}, nil
			},
			cancelOrder: func(_ context.Context, _, reason string, _ time.Time) error {
				cancelled = true
				assert.Equal(t, "changed my mind", reason)
				return nil
			},
		}
		s := newTestOrderService(t, orders, &mockCompanyRepository{})

		order, err := s.CancelOrder(context.Background(), customer, "ORD-AAAA1111", "changed my mind")
		require.NoError(t, err)

		assert.True(t, cancelled)
		assert.Equal(t, entities.StatusCancelled, order.Status)
		assert.Equal(t, "changed my mind", order.CancelReason)
	})

	t.Run("customer cannot cancel after pickup", func(t *testing.T) {
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return &entities.Order{
					ID:         "ORD-AAAA1111",
					CustomerID: customer.ID,
					Status:     entities.StatusPickedUp,
				}, nil
			},
		}
		s := newTestOrderService(t, orders, &mockCompanyRepository{})

		_, err := s.CancelOrder(context.Background(), customer, "ORD-AAAA1111", "")
		var terr *errs.TransitionError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, entities.StatusPickedUp, terr.From)
	})

	t.Run("admin cancels mid-pipeline", func(t *testing.T) {
		admin := &entities.User{ID: "user_00000000adee", Role: entities.RoleAdmin}
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return &entities.Order{ID: "ORD-AAAA1111", Status: entities.StatusWashing}, nil
			},
		}
		s := newTestOrderService(t, orders, &mockCompanyRepository{})

		order, err := s.CancelOrder(context.Background(), admin, "ORD-AAAA1111", "customer request")
		require.NoError(t, err)
		assert.Equal(t, entities.StatusCancelled, order.Status)
	})

	t.Run("forbidden for someone else's order", func(t *testing.T) {
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return &entities.Order{
					ID:         "ORD-AAAA1111",
					CustomerID: "user_00000000feed",
					Status:     entities.StatusPending,
				}, nil
			},
		}
		s := newTestOrderService(t, orders, &mockCompanyRepository{})

		_, err := s.CancelOrder(context.Background(), customer, "ORD-AAAA1111", "")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestOrderServiceUpdateStatus(t *testing.T) {
	company := &entities.User{ID: "user_00000000c0de", Role: entities.RoleCompany}

	assignedOrder := func() *entities.Order {
		return &entities.Order{
			ID:        "ORD-AAAA1111",
			Status:    entities.StatusAssigned,
			CompanyID: company.ID,
		}
	}

	t.Run("advances one step and stamps the date", func(t *testing.T) {
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return assignedOrder(), nil
			},
		}
		s := newTestOrderService(t, orders, &mockCompanyRepository{})

		order, err := s.UpdateStatus(context.Background(), company, "ORD-AAAA1111", entities.StatusPickedUp)
		require.NoError(t, err)

		assert.Equal(t, entities.StatusPickedUp, order.Status)
		require.NotNil(t, order.PickupDate)
	})

	t.Run("rejects skipping a step", func(t *testing.T) {
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return assignedOrder(), nil
			},
		}
		s := newTestOrderService(t, orders, &mockCompanyRepository{})

		_, err := s.UpdateStatus(context.Background(), company, "ORD-AAAA1111", entities.StatusWashing)
		var terr *errs.TransitionError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, entities.StatusAssigned, terr.From)
		assert.Equal(t, entities.StatusWashing, terr.To)
	})

	t.Run("assignment goes through the claim endpoints", func(t *testing.T) {
		admin := &entities.User{ID: "user_00000000adee", Role: entities.RoleAdmin}
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return &entities.Order{ID: "ORD-AAAA1111", Status: entities.StatusPending}, nil
			},
			updateOrderStatus: func(_ context.Context, _ string, _ entities.OrderStatus, _ time.Time) error {
				t.Fatal("an order must not become assigned without a company attached")
				return nil
			},
		}
		s := newTestOrderService(t, orders, &mockCompanyRepository{})

		_, err := s.UpdateStatus(context.Background(), admin, "ORD-AAAA1111", entities.StatusAssigned)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("cancelling goes through the cancel endpoint", func(t *testing.T) {
		s := newTestOrderService(t, &mockOrderRepository{}, &mockCompanyRepository{})

		_, err := s.UpdateStatus(context.Background(), company, "ORD-AAAA1111", entities.StatusCancelled)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		s := newTestOrderService(t, &mockOrderRepository{}, &mockCompanyRepository{})

		_, err := s.UpdateStatus(context.Background(), company, "ORD-AAAA1111", "ironing")
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("forbidden for another company's order", func(t *testing.T) {
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				order := assignedOrder()
				order.CompanyID = "user_00000000beef"
				return order, nil
			},
		}
		s := newTestOrderService(t, orders, &mockCompanyRepository{})

		_, err := s.UpdateStatus(context.Background(), company, "ORD-AAAA1111", entities.StatusPickedUp)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestOrderServiceUpdateCarpets(t *testing.T) {
	company := &entities.User{ID: "user_00000000c0de", Role: entities.RoleCompany}

	pickedUpOrder := func() *entities.Order {
		return &entities.Order{
			ID:         "ORD-AAAA1111",
			CustomerID: "user_000000000001",
			CompanyID:  company.ID,
			Status:     entities.StatusPickedUp,
		}
	}

	t.Run("first order at the threshold gets the discount", func(t *testing.T) {
		var savedArea float64
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return pickedUpOrder(), nil
			},
			countOrdersByCustomer: func(_ context.Context, _ string, status entities.OrderStatus) (int, error) {
				assert.Equal(t, entities.StatusDelivered, status)
				return 0, nil
			},
		}
		companies := &mockCompanyRepository{
			addAreaWashed: func(_ context.Context, companyID string, area float64) error {
				assert.Equal(t, company.ID, companyID)
				savedArea = area
				return nil
			},
		}
		s := newTestOrderService(t, orders, companies)

		// 10 m2 normal at 100 TL/m2 hits the 1000 TL threshold.
		order, err := s.UpdateCarpets(context.Background(), company, "ORD-AAAA1111", []entities.CarpetEntry{
			{Type: entities.CarpetNormal, Area: 10},
		})
		require.NoError(t, err)

		assert.Equal(t, "1000", order.ActualTotalPrice.String())
		assert.Equal(t, 10, order.DiscountPercentage)
		assert.Equal(t, "100", order.DiscountAmount.String())
		assert.Equal(t, "900", order.FinalPrice.String())
		assert.InDelta(t, 10.0, savedArea, 1e-9)
	})

	t.Run("no discount for returning customers", func(t *testing.T) {
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return pickedUpOrder(), nil
			},
			countOrdersByCustomer: func(_ context.Context, _ string, _ entities.OrderStatus) (int, error) {
				return 2, nil
			},
		}
		s := newTestOrderService(t, orders, &mockCompanyRepository{})

		order, err := s.UpdateCarpets(context.Background(), company, "ORD-AAAA1111", []entities.CarpetEntry{
			{Type: entities.CarpetNormal, Area: 10},
		})
		require.NoError(t, err)

		assert.Equal(t, 0, order.DiscountPercentage)
		assert.True(t, order.DiscountAmount.Equal(decimal.Zero))
		assert.Equal(t, "1000", order.FinalPrice.String())
	})

	t.Run("no discount below the threshold", func(t *testing.T) {
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return pickedUpOrder(), nil
			},
			countOrdersByCustomer: func(_ context.Context, _ string, _ entities.OrderStatus) (int, error) {
				t.Fatal("delivered count must not be queried below the threshold")
				return 0, nil
			},
		}
		s := newTestOrderService(t, orders, &mockCompanyRepository{})

		order, err := s.UpdateCarpets(context.Background(), company, "ORD-AAAA1111", []entities.CarpetEntry{
			{Type: entities.CarpetNormal, Area: 5},
		})
		require.NoError(t, err)
		assert.Equal(t, "500", order.FinalPrice.String())
	})

	t.Run("remeasuring adjusts the washed area by the delta", func(t *testing.T) {
		order := pickedUpOrder()
		order.ActualTotalArea = 8
		var delta float64
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return order, nil
			},
		}
		companies := &mockCompanyRepository{
			addAreaWashed: func(_ context.Context, _ string, area float64) error {
				delta = area
				return nil
			},
		}
		s := newTestOrderService(t, orders, companies)

		_, err := s.UpdateCarpets(context.Background(), company, "ORD-AAAA1111", []entities.CarpetEntry{
			{Type: entities.CarpetNormal, Area: 5},
		})
		require.NoError(t, err)
		assert.InDelta(t, -3.0, delta, 1e-9)
	})

	t.Run("rejects entries with no valid line", func(t *testing.T) {
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return pickedUpOrder(), nil
			},
		}
		s := newTestOrderService(t, orders, &mockCompanyRepository{})

		_, err := s.UpdateCarpets(context.Background(), company, "ORD-AAAA1111", []entities.CarpetEntry{
			{Type: entities.CarpetNormal, Area: 0},
		})
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("conflict on closed orders", func(t *testing.T) {
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				order := pickedUpOrder()
				order.Status = entities.StatusDelivered
				return order, nil
			},
		}
		s := newTestOrderService(t, orders, &mockCompanyRepository{})

		_, err := s.UpdateCarpets(context.Background(), company, "ORD-AAAA1111", []entities.CarpetEntry{
			{Type: entities.CarpetNormal, Area: 5},
		})
		assert.ErrorIs(t, err, errs.ErrDataConflict)
	})
}

func TestOrderServiceAssignOrder(t *testing.T) {
	admin := &entities.User{ID: "user_00000000adee", Role: entities.RoleAdmin}

	t.Run("hands a pending order to the company", func(t *testing.T) {
		orders := &mockOrderRepository{
			getOrderByID: func(_ context.Context, _ string) (*entities.Order, error) {
				return &entities.Order{ID: "ORD-AAAA1111", Status: entities.StatusPending}, nil
			},
		}
		s := newTestOrderService(t, orders, activeCompanyRepo("İstanbul"))

		order, err := s.AssignOrder(context.Background(), admin, "ORD-AAAA1111", "user_00000000c0de")
		require.NoError(t, err)

		assert.Equal(t, entities.StatusAssigned, order.Status)
		assert.Equal(t, "user_00000000c0de", order.CompanyID)
	})

	t.Run("unknown company", func(t *testing.T) {
		s := newTestOrderService(t, &mockOrderRepository{}, &mockCompanyRepository{})

		_, err := s.AssignOrder(context.Background(), admin, "ORD-AAAA1111", "user_00000000c0de")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("admin only", func(t *testing.T) {
		s := newTestOrderService(t, &mockOrderRepository{}, &mockCompanyRepository{})

		_, err := s.AssignOrder(context.Background(), &entities.User{Role: entities.RoleCompany}, "ORD-AAAA1111", "x")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}
