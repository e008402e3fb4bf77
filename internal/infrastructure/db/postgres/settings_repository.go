package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/repositories"
)

type SettingsRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
}

func NewSettingsRepository(db *sql.DB, getter *trmsql.CtxGetter) (*SettingsRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &SettingsRepository{db: db, getter: getter}, nil
}

var _ repositories.SettingsRepository = (*SettingsRepository)(nil)

func (r *SettingsRepository) GetSettings(ctx context.Context) (*entities.Settings, error) {
	const query = "SELECT whatsapp_number, whatsapp_message FROM settings WHERE id = 1"

	s := new(entities.Settings)

	err := r.db.QueryRowContext(ctx, query).Scan(&s.WhatsAppNumber, &s.WhatsAppMessage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return s, nil
}

func (r *SettingsRepository) SaveSettings(ctx context.Context, s *entities.Settings) error {
	const query = `
		INSERT INTO settings (id, whatsapp_number, whatsapp_message)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET whatsapp_number = EXCLUDED.whatsapp_number,
			whatsapp_message = EXCLUDED.whatsapp_message`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		s.WhatsAppNumber, s.WhatsAppMessage,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
