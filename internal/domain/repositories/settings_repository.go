package repositories

import (
	"context"

	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

// SettingsRepository persists the single application settings row.
type SettingsRepository interface {
	// GetSettings returns errs.ErrNotFound when settings were never saved.
	GetSettings(ctx context.Context) (*entities.Settings, error)
	SaveSettings(ctx context.Context, settings *entities.Settings) error
}
