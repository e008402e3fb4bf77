package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/repositories"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
)

type SessionRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewSessionRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*SessionRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &SessionRepository{db: db, getter: getter, logger: logger}, nil
}

var _ repositories.SessionRepository = (*SessionRepository)(nil)

func (r *SessionRepository) CreateSession(ctx context.Context, s *entities.Session) error {
	const query = `
		INSERT INTO sessions (token, user_id, exchange_key, expires_at, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		s.Token, s.UserID, s.ExchangeKey, s.ExpiresAt, s.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: session already exists", errs.ErrDataConflict)
		}
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

func (r *SessionRepository) GetSessionByToken(ctx context.Context, token string) (*entities.Session, error) {
	const query = `
		SELECT token, user_id, COALESCE(exchange_key, ''), expires_at, created_at
		FROM sessions WHERE token = $1`

	return r.scanSession(r.db.QueryRowContext(ctx, query, token))
}

func (r *SessionRepository) GetSessionByExchangeKey(ctx context.Context, key string) (*entities.Session, error) {
	const query = `
		SELECT token, user_id, COALESCE(exchange_key, ''), expires_at, created_at
		FROM sessions WHERE exchange_key = $1`

	return r.scanSession(r.db.QueryRowContext(ctx, query, key))
}

func (r *SessionRepository) DeleteSession(ctx context.Context, token string) error {
	const query = "DELETE FROM sessions WHERE token = $1"

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return checkAffected(res)
}

func (r *SessionRepository) DeleteUserSessions(ctx context.Context, userID string) error {
	const query = "DELETE FROM sessions WHERE user_id = $1"

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}

	return nil
}

func (r *SessionRepository) scanSession(row rowScanner) (*entities.Session, error) {
	s := new(entities.Session)

	err := row.Scan(&s.Token, &s.UserID, &s.ExchangeKey, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return s, nil
}
