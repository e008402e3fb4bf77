package repositories

import (
	"context"

	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

// SessionRepository persists server side sessions.
type SessionRepository interface {
	// CreateSession stores a new session. Returns errs.ErrDataConflict
	// when the one-time exchange key was already used.
	CreateSession(ctx context.Context, session *entities.Session) error
	GetSessionByToken(ctx context.Context, token string) (*entities.Session, error)
	// GetSessionByExchangeKey resolves the session minted by a previous
	// exchange of the given provider session id.
	GetSessionByExchangeKey(ctx context.Context, key string) (*entities.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteUserSessions(ctx context.Context, userID string) error
}
