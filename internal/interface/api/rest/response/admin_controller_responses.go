package response

import "github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"

type AdminStats struct {
	TotalOrders     int `json:"total_orders"`
	PendingOrders   int `json:"pending_orders"`
	ActiveOrders    int `json:"active_orders"`
	CompletedOrders int `json:"completed_orders"`
	CancelledOrders int `json:"cancelled_orders"`
	TotalCustomers  int `json:"total_customers"`
	TotalCompanies  int `json:"total_companies"`
}

func NewAdminStatsFromEntity(e *entities.AdminStats) *AdminStats {
	return &AdminStats{
		TotalOrders:     e.TotalOrders,
		PendingOrders:   e.PendingOrders,
		ActiveOrders:    e.ActiveOrders,
		CompletedOrders: e.CompletedOrders,
		CancelledOrders: e.CancelledOrders,
		TotalCustomers:  e.TotalCustomers,
		TotalCompanies:  e.TotalCompanies,
	}
}

func NewUsersFromEntities(es []*entities.User) []*User {
	users := make([]*User, 0, len(es))
	for _, e := range es {
		users = append(users, NewUserFromEntity(e))
	}
	return users
}
