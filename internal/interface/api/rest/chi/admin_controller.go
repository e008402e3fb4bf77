package rest

import (
	"bytes"
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

type AdminController struct {
	service  interfaces.AdminService
	settings interfaces.SettingsService
	logger   logger.Logger
}

// NewAdminController registers http.Handlers with additional options.
func NewAdminController(
	service interfaces.AdminService,
	settings interfaces.SettingsService,
	logger logger.Logger,
	options ChiServerOptions,
) {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := AdminController{
		service:  service,
		settings: settings,
		logger:   logger,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Get(options.BaseURL+"/admin/stats", c.GetStats)
		r.Get(options.BaseURL+"/admin/reports", c.GetReport)

		r.Get(options.BaseURL+"/admin/companies", c.ListCompanies)
		r.Get(options.BaseURL+"/admin/companies/pending", c.ListPendingCompanies)
		r.Post(options.BaseURL+"/admin/companies/{id}/approve", c.ApproveCompany)
		r.Post(options.BaseURL+"/admin/companies/{id}/reject", c.RejectCompany)
		r.Patch(options.BaseURL+"/admin/companies/{id}", c.UpdateCompany)

		r.Get(options.BaseURL+"/admin/users", c.ListUsers)
		r.Patch(options.BaseURL+"/admin/users/{id}", c.UpdateUser)
		r.Delete(options.BaseURL+"/admin/users/{id}", c.DeleteUser)
		r.Post(options.BaseURL+"/admin/users/{id}/ban", c.BanUser)
		r.Post(options.BaseURL+"/admin/users/{id}/unban", c.UnbanUser)

		r.Get(options.BaseURL+"/admin/export/{type}", c.Export)

		r.Get(options.BaseURL+"/admin/settings", c.GetSettings)
		r.Post(options.BaseURL+"/admin/settings", c.SaveSettings)
	})
}

// GetStats returns the admin dashboard counters.
func (c *AdminController) GetStats(w http.ResponseWriter, r *http.Request) {
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

	c.writeJSON(w, r, response.NewAdminStatsFromEntity(stats))
}

// GetReport returns the delivered orders report across companies.
func (c *AdminController) GetReport(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	query := r.URL.Query()

	report, err := c.service.GetReport(r.Context(), actor, params.Report{
		Period:    query.Get("period"),
		CompanyID: query.Get("company_id"),
		Start:     query.Get("start"),
		End:       query.Get("end"),
	})
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("get report: %w", err))
		return
	}

	c.writeJSON(w, r, response.NewReportFromEntity(report))
}

func (c *AdminController) ListCompanies(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	companies, err := c.service.ListCompanies(r.Context(), actor)
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("list companies: %w", err))
		return
	}

	c.writeJSON(w, r, response.NewCompaniesFromEntities(companies))
}

func (c *AdminController) ListPendingCompanies(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	companies, err := c.service.ListPendingCompanies(r.Context(), actor)
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("list pending companies: %w", err))
		return
	}

	c.writeJSON(w, r, response.NewCompaniesFromEntities(companies))
}

// ApproveCompany activates a pending company profile.
func (c *AdminController) ApproveCompany(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	company, err := c.service.ApproveCompany(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("approve company: %w", err))
		return
	}

	c.writeJSON(w, r, response.NewCompanyFromEntity(company))
}

// RejectCompany removes a pending company profile.
func (c *AdminController) RejectCompany(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	if err := c.service.RejectCompany(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("reject company: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *AdminController) UpdateCompany(w http.ResponseWriter, r *http.Request) {
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

	var p request.UpdateCompany

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	company, err := c.service.UpdateCompany(r.Context(), actor, chi.URLParam(r, "id"), &params.UpdateCompany{
		CompanyName: p.CompanyName,
		IsActive:    p.IsActive,
	})
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("update company: %w", err))
		return
	}

	c.writeJSON(w, r, response.NewCompanyFromEntity(company))
}

func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	users, err := c.service.ListUsers(r.Context(), actor)
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("list users: %w", err))
		return
	}

	c.writeJSON(w, r, response.NewUsersFromEntities(users))
}

func (c *AdminController) UpdateUser(w http.ResponseWriter, r *http.Request) {
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

	var p request.UpdateUser

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	user, err := c.service.UpdateUser(r.Context(), actor, chi.URLParam(r, "id"), &params.UpdateUser{
		Name:     p.Name,
		Phone:    p.Phone,
		City:     p.City,
		District: p.District,
		Address:  p.Address,
		IsBanned: p.IsBanned,
	})
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("update user: %w", err))
		return
	}

	c.writeJSON(w, r, response.NewUserFromEntity(user))
}

func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	if err := c.service.DeleteUser(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("delete user: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *AdminController) BanUser(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	if err := c.service.BanUser(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("ban user: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *AdminController) UnbanUser(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	if err := c.service.UnbanUser(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("unban user: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export streams the requested dataset as a CSV attachment.
func (c *AdminController) Export(w http.ResponseWriter, r *http.Request) {
	actor, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	exportType := chi.URLParam(r, "type")

	// Buffer the dataset so authorization and type failures come back
	// as plain JSON errors, not as a downloaded attachment.
	var buf bytes.Buffer
	if err := c.service.ExportCSV(r.Context(), actor, exportType, &buf); err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("export %s: %w", exportType, err))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.csv", exportType))

	if _, err := buf.WriteTo(w); err != nil {
		c.logger.Errorf("write %s export: %s", exportType, err)
	}
}

// GetSettings returns the stored contact settings.
func (c *AdminController) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.settings.GetSettings(r.Context())
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("get settings: %w", err))
		return
	}

	c.writeJSON(w, r, response.NewSettingsFromEntity(settings))
}

// SaveSettings stores the contact settings.
func (c *AdminController) SaveSettings(w http.ResponseWriter, r *http.Request) {
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

	var p request.Settings

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	settings := &entities.Settings{
		WhatsAppNumber:  p.WhatsAppNumber,
		WhatsAppMessage: p.WhatsAppMessage,
	}

	if err := c.settings.SaveSettings(r.Context(), actor, settings); err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("save settings: %w", err))
		return
	}

	c.writeJSON(w, r, response.NewSettingsFromEntity(settings))
}

func (c *AdminController) writeJSON(w http.ResponseWriter, r *http.Request, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.ErrorHandlerFunc(w, r, err)
	}
}

// ErrorHandlerFunc handles sending of an error in the JSON format,
// writing appropriate status code and handling the failure to marshal that.
func (c *AdminController) ErrorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	errorHandlerFunc(w, c.logger, err)
}
