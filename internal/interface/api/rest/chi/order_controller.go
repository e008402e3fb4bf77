package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/interfaces"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/params"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/header"
	"github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/request"
	"github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/response"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
)

type OrderController struct {
	service interfaces.OrderService
	logger  logger.Logger
}

// NewOrderController registers http.Handlers with additional options.
func NewOrderController(
	service interfaces.OrderService,
	logger logger.Logger,
	options ChiServerOptions,
) {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := OrderController{
		service: service,
		logger:  logger,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Post(options.BaseURL+"/orders", c.CreateOrder)
		r.Get(options.BaseURL+"/orders", c.GetOrders)
		r.Get(options.BaseURL+"/orders/pool", c.GetPool)
		r.Get(options.BaseURL+"/orders/{id}", c.GetOrder)
		r.Post(options.BaseURL+"/orders/{id}/accept", c.AcceptOrder)
		r.Post(options.BaseURL+"/orders/{id}/reject", c.RejectOrder)
		r.Post(options.BaseURL+"/orders/{id}/cancel", c.CancelOrder)
		r.Post(options.BaseURL+"/orders/{id}/assign", c.AssignOrder)
		r.Patch(options.BaseURL+"/orders/{id}/status", c.UpdateStatus)
		r.Post(options.BaseURL+"/orders/{id}/update-carpets", c.UpdateCarpets)
	})
}

// CreateOrder opens a new order for the authenticated customer.
func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	// Check content type.
	if !header.IsApplicationJSONContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	// Read, decode payload and close request body.
	var p request.CreateOrder

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	// Check payload.
	if p.City == "" {
		c.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "city"})
		return
	}
	if p.Address == "" {
		c.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "address"})
		return
	}
	if len(p.Carpets) == 0 {
		c.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "carpets"})
		return
	}

	order, err := c.service.CreateOrder(r.Context(), actor, &params.CreateOrder{
		City:         p.City,
		District:     p.District,
		Address:      p.Address,
		Phone:        p.Phone,
		SpecialNotes: p.SpecialNotes,
		Carpets:      p.Carpets,
	})
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("create order: %w", err))
		return
	}

	c.writeOrder(w, http.StatusCreated, order)
}

// GetOrders lists the orders visible to the authenticated user.
func (c *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	orders, err := c.service.GetOrders(r.Context(), actor)
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("get orders: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(response.NewOrdersFromEntities(orders)); err != nil {
		c.ErrorHandlerFunc(w, r, err)
	}
}

// GetPool lists the claimable pending orders.
func (c *OrderController) GetPool(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	orders, err := c.service.GetPool(r.Context(), actor)
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("get pool: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(response.NewOrdersFromEntities(orders)); err != nil {
		c.ErrorHandlerFunc(w, r, err)
	}
}

// GetOrder returns a single order.
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	order, err := c.service.GetOrder(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("get order: %w", err))
		return
	}

	c.writeOrder(w, http.StatusOK, order)
}

// AcceptOrder claims a pooled order for the authenticated company.
func (c *OrderController) AcceptOrder(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	order, err := c.service.AcceptOrder(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("accept order: %w", err))
		return
	}

	c.writeOrder(w, http.StatusOK, order)
}

// RejectOrder hides the pooled order from the authenticated company.
func (c *OrderController) RejectOrder(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	if err := c.service.RejectOrder(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("reject order: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CancelOrder cancels the order with an optional reason.
func (c *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	// Reason is optional, the body may be empty.
	var p request.CancelOrder

	defer r.Body.Close()

	if header.IsApplicationJSONContentType(r) {
		_ = json.NewDecoder(r.Body).Decode(&p)
	}

	order, err := c.service.CancelOrder(r.Context(), actor, chi.URLParam(r, "id"), p.Reason)
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("cancel order: %w", err))
		return
	}

	c.writeOrder(w, http.StatusOK, order)
}

// AssignOrder lets an admin hand a pending order to a company.
func (c *OrderController) AssignOrder(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	// Check content type.
	if !header.IsApplicationJSONContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	var p request.AssignOrder

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	if p.CompanyID == "" {
		c.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "company_id"})
		return
	}

	order, err := c.service.AssignOrder(r.Context(), actor, chi.URLParam(r, "id"), p.CompanyID)
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("assign order: %w", err))
		return
	}

	c.writeOrder(w, http.StatusOK, order)
}

// UpdateStatus advances the order one step forward.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	// Check content type.
	if !header.IsApplicationJSONContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	var p request.UpdateStatus

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	if p.Status == "" {
		c.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "status"})
		return
	}

	order, err := c.service.UpdateStatus(r.Context(), actor, chi.URLParam(r, "id"), entities.OrderStatus(p.Status))
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("update status: %w", err))
		return
	}

	c.writeOrder(w, http.StatusOK, order)
}

// UpdateCarpets records the measured carpet lines and reprices the
// order.
func (c *OrderController) UpdateCarpets(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	// Check content type.
	if !header.IsApplicationJSONContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	var p request.UpdateCarpets

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	if len(p.Carpets) == 0 {
		c.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "carpets"})
		return
	}

	entries := make([]entities.CarpetEntry, 0, len(p.Carpets))
	for _, carpet := range p.Carpets {
		entries = append(entries, entities.CarpetEntry{
			Type: entities.CarpetType(carpet.CarpetType),
			Area: carpet.Area,
		})
	}

	order, err := c.service.UpdateCarpets(r.Context(), actor, chi.URLParam(r, "id"), entries)
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("update carpets: %w", err))
		return
	}

	c.writeOrder(w, http.StatusOK, order)
}

func (c *OrderController) writeOrder(w http.ResponseWriter, code int, order *entities.Order) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(response.NewOrderFromEntity(order)); err != nil {
		c.logger.Errorf("encode order response: %s", err)
	}
}

// ErrorHandlerFunc handles sending of an error in the JSON format,
// writing appropriate status code and handling the failure to marshal that.
func (c *OrderController) ErrorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	errorHandlerFunc(w, c.logger, err)
}
