package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/interfaces"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/sercandadas/haliyol-marketplace-service/internal/interface/api/rest/header"
)

// SessionCookie is the name of the session cookie set on login.
const SessionCookie = "session_token"

// Auth resolves the session token from the cookie or the Authorization
// header and stores the authenticated user in the request context.
func Auth(service interfaces.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			token := header.BearerToken(r)
			if token == "" {
				cookie, err := r.Cookie(SessionCookie)
				if err != nil {
					errorHandlerFunc(w, r, fmt.Errorf("session token: %w", errs.ErrUnauthenticated))
					return
				}
				token = cookie.Value
			}

			u, err := service.Authenticate(r.Context(), token)
			if err != nil {
				errorHandlerFunc(w, r, err)
				return
			}

			r = r.WithContext(entities.NewContext(r.Context(), u))

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(f)
	}
}

// errorHandlerFunc handles sending of an error in the JSON format,
// writing appropriate status code and handling the failure to marshal that.
func errorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	errJSON := errs.JSON{Detail: err.Error()}
	code := http.StatusUnauthorized

	switch {
	case errors.Is(err, errs.ErrAccountBanned):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrUnauthenticated),
		errors.Is(err, errs.ErrSessionExpired),
		errors.Is(err, errs.ErrNotFound):
		code = http.StatusUnauthorized
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err = json.NewEncoder(w).Encode(errJSON); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
