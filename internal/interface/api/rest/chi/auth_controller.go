package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/interfaces"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/params"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/header"
	"github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/middleware"
	"github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/request"
	"github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/response"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/limiter"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
)

type AuthController struct {
	service           interfaces.AuthService
	limiter           *limiter.DynamicRateLimiter
	logger            logger.Logger
	sessionExpiration time.Duration
}

// NewAuthController registers http.Handlers with additional options.
// The rate limiter guards the unauthenticated credential endpoints;
// auth is the session middleware protecting /auth/me and /auth/logout.
func NewAuthController(
	service interfaces.AuthService,
	sessionExpiration time.Duration,
	rateLimiter *limiter.DynamicRateLimiter,
	auth MiddlewareFunc,
	logger logger.Logger,
	options ChiServerOptions,
) {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := AuthController{
		service:           service,
		limiter:           rateLimiter,
		sessionExpiration: sessionExpiration,
		logger:            logger,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Post(options.BaseURL+"/auth/register", c.Register)
		r.Post(options.BaseURL+"/auth/login", c.Login)
		r.Post(options.BaseURL+"/auth/session", c.ExchangeSession)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post(options.BaseURL+"/auth/logout", c.Logout)
			r.Get(options.BaseURL+"/auth/me", c.Me)
		})
	})
}

const MaxPasswordLength = 72

// Register a new customer or company account.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if !c.limiter.Allow() {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: too many attempts", errs.ErrRateLimit))
		return
	}

	// Check content type.
	if !header.IsApplicationJSONContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	// Read, decode payload and close request body.
	var p request.Register

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	// Check payload.
	if p.Email == "" {
		c.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "email"})
		return
	}
	if p.Password == "" {
		c.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "password"})
		return
	}

	// Password must not exceed 72 characters in length [bcrypt.ErrPasswordTooLong]
	if len(p.Password) > MaxPasswordLength {
		c.ErrorHandlerFunc(w, r, fmt.Errorf(
			"%w: password must not exceed 72 characters in length",
			errs.ErrInvalidRequest))
		return
	}

	user, session, err := c.service.Register(r.Context(), &params.Register{
		Email:        p.Email,
		Password:     p.Password,
		Name:         p.Name,
		Role:         entities.Role(p.Role),
		Phone:        p.Phone,
		City:         p.City,
		District:     p.District,
		Address:      p.Address,
		CompanyName:  p.CompanyName,
		ServiceAreas: p.ServiceAreas,
	})
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("register user: %w", err))
		return
	}

	c.setSessionCookie(w, session)
	c.writeAuth(w, r, http.StatusCreated, user, session)
}

// Login with email and password.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if !c.limiter.Allow() {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: too many attempts", errs.ErrRateLimit))
		return
	}

	// Check content type.
	if !header.IsApplicationJSONContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	// Read, decode payload and close request body.
	var p request.Login

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	// Check payload.
	if p.Email == "" {
		c.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "email"})
		return
	}
	if p.Password == "" {
		c.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "password"})
		return
	}

	user, session, err := c.service.Login(r.Context(), p.Email, p.Password)
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("login: %w", err))
		return
	}

	c.setSessionCookie(w, session)
	c.writeAuth(w, r, http.StatusOK, user, session)
}

// ExchangeSession trades the identity provider session id for an
// application session. The id arrives in the JSON body; the X-Session-ID
// header is accepted for older clients.
func (c *AuthController) ExchangeSession(w http.ResponseWriter, r *http.Request) {
	if !c.limiter.Allow() {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: too many attempts", errs.ErrRateLimit))
		return
	}

	var p request.ExchangeSession

	defer r.Body.Close()

	if header.IsApplicationJSONContentType(r) {
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
			return
		}
	}

	sessionID := p.SessionID
	if sessionID == "" {
		sessionID = r.Header.Get("X-Session-ID")
	}
	if sessionID == "" {
		c.ErrorHandlerFunc(w, r, &errs.RequiredJSONBodyParamError{ParamName: "session_id"})
		return
	}

	user, session, err := c.service.ExchangeSession(r.Context(), sessionID)
	if err != nil {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("exchange session: %w", err))
		return
	}

	c.setSessionCookie(w, session)
	c.writeAuth(w, r, http.StatusOK, user, session)
}

// Logout revokes the current session and clears the cookie.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	token := header.BearerToken(r)
	if token == "" {
		if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
			token = cookie.Value
		}
	}

	if token != "" {
		if err := c.service.Logout(r.Context(), token); err != nil {
			c.ErrorHandlerFunc(w, r, fmt.Errorf("logout: %w", err))
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	user, found := entities.FromContext(r.Context())
	if !found {
		c.ErrorHandlerFunc(w, r, errs.ErrUnauthenticated)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response.NewUserFromEntity(user)); err != nil {
		c.ErrorHandlerFunc(w, r, err)
	}
}

func (c *AuthController) setSessionCookie(w http.ResponseWriter, session *entities.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  time.Now().Add(c.sessionExpiration),
		HttpOnly: true,
	})
}

func (c *AuthController) writeAuth(w http.ResponseWriter, r *http.Request, code int, user *entities.User, session *entities.Session) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(response.NewAuth(user, session)); err != nil {
		c.logger.Errorf("encode auth response: %s", err)
	}
}

// ErrorHandlerFunc handles sending of an error in the JSON format,
// writing appropriate status code and handling the failure to marshal that.
func (c *AuthController) ErrorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	errorHandlerFunc(w, c.logger, err)
}
