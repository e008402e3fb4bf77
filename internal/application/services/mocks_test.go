package services

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/repositories"
)

// nopTrManager runs the transactional function directly.
type nopTrManager struct{}

func (nopTrManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (nopTrManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ trm.Manager = nopTrManager{}

// mockUserRepository is a function-field test double.
type mockUserRepository struct {
	createUser       func(ctx context.Context, u *entities.User) error
	getUserByID      func(ctx context.Context, id string) (*entities.User, error)
	getUserByEmail   func(ctx context.Context, email string) (*entities.User, error)
	saveProfile      func(ctx context.Context, u *entities.User) error
	setBanned        func(ctx context.Context, id string, banned bool) error
	deleteUser       func(ctx context.Context, id string) error
	listUsers        func(ctx context.Context) ([]*entities.User, error)
	countUsersByRole func(ctx context.Context, role entities.Role) (int, error)
}

var _ repositories.UserRepository = (*mockUserRepository)(nil)

func (m *mockUserRepository) CreateUser(ctx context.Context, u *entities.User) error {
	if m.createUser == nil {
		return nil
	}
	return m.createUser(ctx, u)
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	if m.getUserByID == nil {
		return nil, errs.ErrNotFound
	}
	return m.getUserByID(ctx, id)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	if m.getUserByEmail == nil {
		return nil, errs.ErrNotFound
	}
	return m.getUserByEmail(ctx, email)
}

func (m *mockUserRepository) SaveProfile(ctx context.Context, u *entities.User) error {
	if m.saveProfile == nil {
		return nil
	}
	return m.saveProfile(ctx, u)
}

func (m *mockUserRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	if m.setBanned == nil {
		return nil
	}
	return m.setBanned(ctx, id, banned)
}

func (m *mockUserRepository) DeleteUser(ctx context.Context, id string) error {
	if m.deleteUser == nil {
		return nil
	}
	return m.deleteUser(ctx, id)
}

func (m *mockUserRepository) ListUsers(ctx context.Context) ([]*entities.User, error) {
	if m.listUsers == nil {
		return nil, nil
	}
	return m.listUsers(ctx)
}

func (m *mockUserRepository) CountUsersByRole(ctx context.Context, role entities.Role) (int, error) {
	if m.countUsersByRole == nil {
		return 0, nil
	}
	return m.countUsersByRole(ctx, role)
}

type mockSessionRepository struct {
	createSession           func(ctx context.Context, s *entities.Session) error
	getSessionByToken       func(ctx context.Context, token string) (*entities.Session, error)
	getSessionByExchangeKey func(ctx context.Context, key string) (*entities.Session, error)
	deleteSession           func(ctx context.Context, token string) error
	deleteUserSessions      func(ctx context.Context, userID string) error
}

var _ repositories.SessionRepository = (*mockSessionRepository)(nil)

func (m *mockSessionRepository) CreateSession(ctx context.Context, s *entities.Session) error {
	if m.createSession == nil {
		return nil
	}
	return m.createSession(ctx, s)
}

func (m *mockSessionRepository) GetSessionByToken(ctx context.Context, token string) (*entities.Session, error) {
	if m.getSessionByToken == nil {
		return nil, errs.ErrNotFound
	}
	return m.getSessionByToken(ctx, token)
}

func (m *mockSessionRepository) GetSessionByExchangeKey(ctx context.Context, key string) (*entities.Session, error) {
	if m.getSessionByExchangeKey == nil {
		return nil, errs.ErrNotFound
	}
	return m.getSessionByExchangeKey(ctx, key)
}

func (m *mockSessionRepository) DeleteSession(ctx context.Context, token string) error {
	if m.deleteSession == nil {
		return nil
	}
	return m.deleteSession(ctx, token)
}

func (m *mockSessionRepository) DeleteUserSessions(ctx context.Context, userID string) error {
	if m.deleteUserSessions == nil {
		return nil
	}
	return m.deleteUserSessions(ctx, userID)
}

type mockCompanyRepository struct {
	createCompany        func(ctx context.Context, c *entities.Company) error
	getCompanyByUserID   func(ctx context.Context, userID string) (*entities.Company, error)
	listCompanies        func(ctx context.Context) ([]*entities.Company, error)
	listPendingCompanies func(ctx context.Context) ([]*entities.Company, error)
	saveCompany          func(ctx context.Context, c *entities.Company) error
	deleteCompany        func(ctx context.Context, userID string) error
	addAreaWashed        func(ctx context.Context, userID string, area float64) error
	countCompanies       func(ctx context.Context) (int, error)
}

var _ repositories.CompanyRepository = (*mockCompanyRepository)(nil)

func (m *mockCompanyRepository) CreateCompany(ctx context.Context, c *entities.Company) error {
	if m.createCompany == nil {
		return nil
	}
	return m.createCompany(ctx, c)
}

func (m *mockCompanyRepository) GetCompanyByUserID(ctx context.Context, userID string) (*entities.Company, error) {
	if m.getCompanyByUserID == nil {
		return nil, errs.ErrNotFound
	}
	return m.getCompanyByUserID(ctx, userID)
}

func (m *mockCompanyRepository) ListCompanies(ctx context.Context) ([]*entities.Company, error) {
	if m.listCompanies == nil {
		return nil, nil
	}
	return m.listCompanies(ctx)
}

func (m *mockCompanyRepository) ListPendingCompanies(ctx context.Context) ([]*entities.Company, error) {
	if m.listPendingCompanies == nil {
		return nil, nil
	}
	return m.listPendingCompanies(ctx)
}

func (m *mockCompanyRepository) SaveCompany(ctx context.Context, c *entities.Company) error {
	if m.saveCompany == nil {
		return nil
	}
	return m.saveCompany(ctx, c)
}

func (m *mockCompanyRepository) DeleteCompany(ctx context.Context, userID string) error {
	if m.deleteCompany == nil {
		return nil
	}
	return m.deleteCompany(ctx, userID)
}

func (m *mockCompanyRepository) AddAreaWashed(ctx context.Context, userID string, area float64) error {
	if m.addAreaWashed == nil {
		return nil
	}
	return m.addAreaWashed(ctx, userID, area)
}

func (m *mockCompanyRepository) CountCompanies(ctx context.Context) (int, error) {
	if m.countCompanies == nil {
		return 0, nil
	}
	return m.countCompanies(ctx)
}

type mockOrderRepository struct {
	createOrder           func(ctx context.Context, o *entities.Order) error
	getOrderByID          func(ctx context.Context, id string) (*entities.Order, error)
	getOrdersByCustomer   func(ctx context.Context, customerID string) ([]*entities.Order, error)
	getOrdersForCompany   func(ctx context.Context, companyID, city string) ([]*entities.Order, error)
	getAllOrders          func(ctx context.Context) ([]*entities.Order, error)
	getPool               func(ctx context.Context, city, excludeCompanyID string) ([]*entities.Order, error)
	claimOrder            func(ctx context.Context, orderID, companyID, companyName string, at time.Time) error
	addRejection          func(ctx context.Context, orderID, companyID string) error
	cancelOrder           func(ctx context.Context, orderID, reason string, at time.Time) error
	updateOrderStatus     func(ctx context.Context, orderID string, status entities.OrderStatus, at time.Time) error
	saveActualCarpets     func(ctx context.Context, o *entities.Order) error
	countOrdersByCustomer func(ctx context.Context, customerID string, status entities.OrderStatus) (int, error)
	countOrders           func(ctx context.Context, statuses ...entities.OrderStatus) (int, error)
	countOrdersByCompany  func(ctx context.Context, companyID string, statuses ...entities.OrderStatus) (int, error)
	countPool             func(ctx context.Context, city, excludeCompanyID string) (int, error)
	getDeliveredOrders    func(ctx context.Context, filter repositories.DeliveredFilter) ([]*entities.Order, error)
}

var _ repositories.OrderRepository = (*mockOrderRepository)(nil)

func (m *mockOrderRepository) CreateOrder(ctx context.Context, o *entities.Order) error {
	if m.createOrder == nil {
		return nil
	}
	return m.createOrder(ctx, o)
}

func (m *mockOrderRepository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	if m.getOrderByID == nil {
		return nil, errs.ErrNotFound
	}
	return m.getOrderByID(ctx, id)
}

func (m *mockOrderRepository) GetOrdersByCustomer(ctx context.Context, customerID string) ([]*entities.Order, error) {
	if m.getOrdersByCustomer == nil {
		return nil, nil
	}
	return m.getOrdersByCustomer(ctx, customerID)
}

func (m *mockOrderRepository) GetOrdersForCompany(ctx context.Context, companyID, city string) ([]*entities.Order, error) {
	if m.getOrdersForCompany == nil {
		return nil, nil
	}
	return m.getOrdersForCompany(ctx, companyID, city)
}

func (m *mockOrderRepository) GetAllOrders(ctx context.Context) ([]*entities.Order, error) {
	if m.getAllOrders == nil {
		return nil, nil
	}
	return m.getAllOrders(ctx)
}

func (m *mockOrderRepository) GetPool(ctx context.Context, city, excludeCompanyID string) ([]*entities.Order, error) {
	if m.getPool == nil {
		return nil, nil
	}
	return m.getPool(ctx, city, excludeCompanyID)
}

func (m *mockOrderRepository) ClaimOrder(ctx context.Context, orderID, companyID, companyName string, at time.Time) error {
	if m.claimOrder == nil {
		return nil
	}
	return m.claimOrder(ctx, orderID, companyID, companyName, at)
}

func (m *mockOrderRepository) AddRejection(ctx context.Context, orderID, companyID string) error {
	if m.addRejection == nil {
		return nil
	}
	return m.addRejection(ctx, orderID, companyID)
}

func (m *mockOrderRepository) CancelOrder(ctx context.Context, orderID, reason string, at time.Time) error {
	if m.cancelOrder == nil {
		return nil
	}
	return m.cancelOrder(ctx, orderID, reason, at)
}

func (m *mockOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus, at time.Time) error {
	if m.updateOrderStatus == nil {
		return nil
	}
	return m.updateOrderStatus(ctx, orderID, status, at)
}

func (m *mockOrderRepository) SaveActualCarpets(ctx context.Context, o *entities.Order) error {
	if m.saveActualCarpets == nil {
		return nil
	}
	return m.saveActualCarpets(ctx, o)
}

func (m *mockOrderRepository) CountOrdersByCustomer(ctx context.Context, customerID string, status entities.OrderStatus) (int, error) {
	if m.countOrdersByCustomer == nil {
		return 0, nil
	}
	return m.countOrdersByCustomer(ctx, customerID, status)
}

func (m *mockOrderRepository) CountOrders(ctx context.Context, statuses ...entities.OrderStatus) (int, error) {
	if m.countOrders == nil {
		return 0, nil
	}
	return m.countOrders(ctx, statuses...)
}

func (m *mockOrderRepository) CountOrdersByCompany(ctx context.Context, companyID string, statuses ...entities.OrderStatus) (int, error) {
	if m.countOrdersByCompany == nil {
		return 0, nil
	}
	return m.countOrdersByCompany(ctx, companyID, statuses...)
}

func (m *mockOrderRepository) CountPool(ctx context.Context, city, excludeCompanyID string) (int, error) {
	if m.countPool == nil {
		return 0, nil
	}
	return m.countPool(ctx, city, excludeCompanyID)
}

func (m *mockOrderRepository) GetDeliveredOrders(ctx context.Context, filter repositories.DeliveredFilter) ([]*entities.Order, error) {
	if m.getDeliveredOrders == nil {
		return nil, nil
	}
	return m.getDeliveredOrders(ctx, filter)
}

type mockOAuthClient struct {
	sessionData func(ctx context.Context, sessionID string) (*OAuthSessionData, error)
}

var _ OAuthClient = (*mockOAuthClient)(nil)

func (m *mockOAuthClient) SessionData(ctx context.Context, sessionID string) (*OAuthSessionData, error) {
	if m.sessionData == nil {
		return nil, errs.ErrInvalidCredentials
	}
	return m.sessionData(ctx, sessionID)
}
