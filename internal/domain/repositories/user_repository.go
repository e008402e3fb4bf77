package repositories

import (
	"context"

	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

// UserRepository persists marketplace users.
type UserRepository interface {
	// CreateUser stores a new user. Returns errs.ErrDataConflict when the
	// email is already registered.
	CreateUser(ctx context.Context, user *entities.User) error
	GetUserByID(ctx context.Context, id string) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	// SaveProfile updates the mutable profile fields of an existing user.
	SaveProfile(ctx context.Context, user *entities.User) error
	SetBanned(ctx context.Context, id string, banned bool) error
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]*entities.User, error)
	CountUsersByRole(ctx context.Context, role entities.Role) (int, error)
}
