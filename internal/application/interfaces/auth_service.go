package interfaces

import (
	"context"

	"github.com/sercandadas/haliyol-marketplace-service/internal/application/params"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

// AuthService represents all authentication actions.
type AuthService interface {
	// ExchangeSession trades a one-time identity provider session id for
	// an application session. Replaying the same id yields the session
	// created by the first exchange.
	ExchangeSession(ctx context.Context, sessionID string) (*entities.User, *entities.Session, error)
	Register(ctx context.Context, p *params.Register) (*entities.User, *entities.Session, error)
	Login(ctx context.Context, email, password string) (*entities.User, *entities.Session, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a session token to its live, unbanned user.
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}
