package interfaces

import (
	"context"

	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

// SettingsService represents the contact settings actions.
type SettingsService interface {
	// GetSettings never fails with not found; unset settings are empty.
	GetSettings(ctx context.Context) (*entities.Settings, error)
	SaveSettings(ctx context.Context, actor *entities.User, settings *entities.Settings) error
}
