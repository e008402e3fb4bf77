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

type UserRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewUserRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*UserRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &UserRepository{db: db, getter: getter, logger: logger}, nil
}

var _ repositories.UserRepository = (*UserRepository)(nil)

const userColumns = `
	id, email, name, password_hash, role, phone,
	city, district, address, picture, is_banned, created_at`

func (r *UserRepository) CreateUser(ctx context.Context, u *entities.User) error {
	const query = `
		INSERT INTO users (
			id, email, name, password_hash, role, phone,
			city, district, address, picture, is_banned, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.Phone,
		u.City, u.District, u.Address, u.Picture, u.IsBanned, u.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: email %q already exists", errs.ErrDataConflict, u.Email)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	const query = "SELECT" + userColumns + " FROM users WHERE id = $1"

	return r.scanUser(r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	const query = "SELECT" + userColumns + " FROM users WHERE email = $1"

	return r.scanUser(r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, email))
}

func (r *UserRepository) SaveProfile(ctx context.Context, u *entities.User) error {
	const query = `
		UPDATE users
		SET name = $2, phone = $3, city = $4, district = $5,
			address = $6, picture = $7, is_banned = $8
		WHERE id = $1`

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		u.ID, u.Name, u.Phone, u.City, u.District, u.Address, u.Picture, u.IsBanned,
	)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	return checkAffected(res)
}

func (r *UserRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	const query = "UPDATE users SET is_banned = $2 WHERE id = $1"

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, id, banned)
	if err != nil {
		return fmt.Errorf("set banned: %w", err)
	}

	return checkAffected(res)
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	const query = "DELETE FROM users WHERE id = $1"

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	return checkAffected(res)
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]*entities.User, error) {
	const query = "SELECT" + userColumns + " FROM users ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Errorf("close rows: %s", err)
		}
	}()

	users := make([]*entities.User, 0)

	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepository) CountUsersByRole(ctx context.Context, role entities.Role) (int, error) {
	const query = "SELECT COUNT(*) FROM users WHERE role = $1"

	var count int
	if err := r.db.QueryRowContext(ctx, query, role).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepository) scanUser(row rowScanner) (*entities.User, error) {
	u := new(entities.User)

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Role,
		&u.Phone,
		&u.City,
		&u.District,
		&u.Address,
		&u.Picture,
		&u.IsBanned,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

// checkAffected maps a zero row update to not found.
func checkAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
