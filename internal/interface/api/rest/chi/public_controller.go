package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/interfaces"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/header"
	"github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/request"
	"github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/response"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
)

// PublicController serves the endpoints that require no session: the
// health probe, locations, the price list and the estimate calculator.
type PublicController struct {
	settings interfaces.SettingsService
	logger   logger.Logger
}

// NewPublicController registers http.Handlers with additional options.
func NewPublicController(
	settings interfaces.SettingsService,
	logger logger.Logger,
	options ChiServerOptions,
) {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := PublicController{
		settings: settings,
		logger:   logger,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Get("/", c.Root)
		r.Get("/health", c.Health)
		r.Get(options.BaseURL+"/locations/cities", c.GetCities)
		r.Get(options.BaseURL+"/locations/districts/{city}", c.GetDistricts)
		r.Get(options.BaseURL+"/locations/all", c.GetLocations)
		r.Get(options.BaseURL+"/pricing", c.GetPricing)
		r.Post(options.BaseURL+"/pricing/calculate", c.Calculate)
		r.Get(options.BaseURL+"/public/settings", c.GetSettings)
	})
}

func (c *PublicController) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"message": "HALIYOL Marketplace API"}); err != nil {
		c.logger.Errorf("encode root response: %s", err)
	}
}

func (c *PublicController) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		c.logger.Errorf("encode health response: %s", err)
	}
}

// GetCities lists the served cities in presentation order.
func (c *PublicController) GetCities(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response.Cities{Cities: entities.Cities()}); err != nil {
		c.ErrorHandlerFunc(w, r, err)
	}
}

// GetDistricts lists the districts of one city. Unknown cities are a 404.
func (c *PublicController) GetDistricts(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	districts, ok := entities.Districts(city)
	if !ok {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: city %q is not served", errs.ErrNotFound, city))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response.Districts{City: city, Districts: districts}); err != nil {
		c.ErrorHandlerFunc(w, r, err)
	}
}

// GetLocations returns the whole city to districts table.
func (c *PublicController) GetLocations(w http.ResponseWriter, r *http.Request) {
	locations := response.Locations{
		Cities:    entities.Cities(),
		Districts: entities.AllLocations(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(locations); err != nil {
		c.ErrorHandlerFunc(w, r, err)
	}
}

// GetPricing returns the carpet type price list.
func (c *PublicController) GetPricing(w http.ResponseWriter, r *http.Request) {
	pricing := make([]response.PriceEntry, 0, len(entities.Catalog))
	for t, entry := range entities.Catalog {
		pricing = append(pricing, response.PriceEntry{
			CarpetType: t,
			Name:       entry.Name,
			UnitPrice:  entry.UnitPrice.InexactFloat64(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(pricing); err != nil {
		c.ErrorHandlerFunc(w, r, err)
	}
}

// Calculate prices the declared carpet lines without creating an order.
func (c *PublicController) Calculate(w http.ResponseWriter, r *http.Request) {
	// Check content type.
	if !header.IsApplicationJSONContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	var p request.Calculate

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	if len(p.Carpets) == 0 {
		c.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "carpets"})
		return
	}

	quote := entities.CalculateEstimate(p.Carpets)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response.NewQuoteFromEntity(quote)); err != nil {
		c.ErrorHandlerFunc(w, r, err)
	}
}

// GetSettings returns the public contact settings.
func (c *PublicController) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.settings.GetSettings(r.Context())
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("get settings: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(response.NewSettingsFromEntity(settings)); err != nil {
		c.ErrorHandlerFunc(w, r, err)
	}
}

// ErrorHandlerFunc handles sending of an error in the JSON format,
// writing appropriate status code and handling the failure to marshal that.
func (c *PublicController) ErrorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	errorHandlerFunc(w, c.logger, err)
}
