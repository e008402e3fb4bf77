package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/interfaces"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/repositories"
)

type SettingsService struct {
	settings repositories.SettingsRepository
}

func NewSettingsService(settings repositories.SettingsRepository) (*SettingsService, error) {
	if settings == nil {
		return nil, errors.New("nil dependency: settings repository")
	}
	return &SettingsService{settings: settings}, nil
}

var _ interfaces.SettingsService = (*SettingsService)(nil)

// GetSettings returns the stored contact settings, or empty settings
// when nothing was saved yet.
func (s *SettingsService) GetSettings(ctx context.Context) (*entities.Settings, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return &entities.Settings{}, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

func (s *SettingsService) SaveSettings(ctx context.Context, actor *entities.User, settings *entities.Settings) error {
	if actor.Role != entities.RoleAdmin {
		return fmt.Errorf("%w: admin access required", errs.ErrForbidden)
	}
	return s.settings.SaveSettings(ctx, settings)
}
