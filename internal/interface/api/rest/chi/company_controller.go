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
	"github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/response"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
)

type CompanyController struct {
	service interfaces.CompanyService
	logger  logger.Logger
}

// NewCompanyController registers http.Handlers with additional options.
func NewCompanyController(
	service interfaces.CompanyService,
	logger logger.Logger,
	options ChiServerOptions,
) {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := CompanyController{
		service: service,
		logger:  logger,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Get(options.BaseURL+"/company/profile", c.GetProfile)
		r.Get(options.BaseURL+"/company/stats", c.GetStats)
		r.Get(options.BaseURL+"/company/reports", c.GetReport)
	})
}

// GetProfile returns the authenticated company's profile.
func (c *CompanyController) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	company, err := c.service.GetProfile(r.Context(), actor)
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("get profile: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(response.NewCompanyFromEntity(company)); err != nil {
		c.ErrorHandlerFunc(w, r, err)
	}
}

// GetStats returns the company dashboard counters.
func (c *CompanyController) GetStats(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	stats, err := c.service.GetStats(r.Context(), actor)
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("get stats: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(response.NewCompanyStatsFromEntity(stats)); err != nil {
		c.ErrorHandlerFunc(w, r, err)
	}
}

// GetReport returns the delivered orders report for the query period.
func (c *CompanyController) GetReport(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	query := r.URL.Query()

	report, err := c.service.GetReport(r.Context(), actor, params.Report{
		Period: query.Get("period"),
		Start:  query.Get("start"),
		End:    query.Get("end"),
	})
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("get report: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(response.NewReportFromEntity(report)); err != nil {
		c.ErrorHandlerFunc(w, r, err)
	}
}

// ErrorHandlerFunc handles sending of an error in the JSON format,
// writing appropriate status code and handling the failure to marshal that.
func (c *CompanyController) ErrorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	errorHandlerFunc(w, c.logger, err)
}
