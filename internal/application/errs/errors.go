package errs

import (
	"errors"
	"fmt"

	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

// Common sentinel errors. Controllers map them to HTTP status codes.
var (
	ErrNotFound           = errors.New("not found")
	ErrDataConflict       = errors.New("data conflict")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrSessionExpired     = errors.New("session expired")
	ErrForbidden          = errors.New("access denied")
	ErrAccountBanned      = errors.New("account is banned")
	ErrRateLimit          = errors.New("rate limit")
)

// JSON is the error response body. The field is named detail because
// that is what API consumers surface to the user verbatim.
// Should only be used immediately before marshalling.
type JSON struct {
	Detail string `json:"detail"`
}

// RequiredJSONBodyParamError lets users know which required request
// parameter is not provided.
type RequiredJSONBodyParamError struct {
	ParamName string
}

func (e *RequiredJSONBodyParamError) Error() string {
	return fmt.Sprintf("JSON body argument %q is required, but not found", e.ParamName)
}

func (e *RequiredJSONBodyParamError) Unwrap() error {
	return ErrInvalidRequest
}

// TransitionError reports an order status transition rejected by the
// transition table. Maps to a 400 with the reason as detail.
type TransitionError struct {
	From   entities.OrderStatus
	To     entities.OrderStatus
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot move order from %q to %q", e.From, e.To)
	}
	return fmt.Sprintf("cannot move order from %q to %q: %s", e.From, e.To, e.Reason)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidRequest
}
