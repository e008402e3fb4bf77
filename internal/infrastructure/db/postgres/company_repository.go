package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
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

type CompanyRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewCompanyRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*CompanyRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &CompanyRepository{db: db, getter: getter, logger: logger}, nil
}

var _ repositories.CompanyRepository = (*CompanyRepository)(nil)

const companyColumns = `
	user_id, company_name, email, phone, city, address,
	districts, total_area_washed, is_active, created_at`

func (r *CompanyRepository) CreateCompany(ctx context.Context, c *entities.Company) error {
	const query = `
		INSERT INTO companies (
			user_id, company_name, email, phone, city, address,
			districts, total_area_washed, is_active, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	districts, err := json.Marshal(c.Districts)
	if err != nil {
		return fmt.Errorf("marshal districts: %w", err)
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		c.UserID, c.CompanyName, c.Email, c.Phone, c.City, c.Address,
		districts, c.TotalAreaWashed, c.IsActive, c.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: company profile already exists", errs.ErrDataConflict)
		}
		return fmt.Errorf("create company: %w", err)
	}

	return nil
}

func (r *CompanyRepository) GetCompanyByUserID(ctx context.Context, userID string) (*entities.Company, error) {
	const query = "SELECT" + companyColumns + " FROM companies WHERE user_id = $1"

	return r.scanCompany(r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, userID))
}

func (r *CompanyRepository) ListCompanies(ctx context.Context) ([]*entities.Company, error) {
	const query = "SELECT" + companyColumns + " FROM companies ORDER BY created_at DESC"

	return r.queryCompanies(ctx, query)
}

func (r *CompanyRepository) ListPendingCompanies(ctx context.Context) ([]*entities.Company, error) {
	const query = "SELECT" + companyColumns +
		" FROM companies WHERE NOT is_active ORDER BY created_at"

	return r.queryCompanies(ctx, query)
}

func (r *CompanyRepository) SaveCompany(ctx context.Context, c *entities.Company) error {
	const query = `
		UPDATE companies
		SET company_name = $2, email = $3, phone = $4, city = $5,
			address = $6, districts = $7, is_active = $8
		WHERE user_id = $1`

	districts, err := json.Marshal(c.Districts)
	if err != nil {
		return fmt.Errorf("marshal districts: %w", err)
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		c.UserID, c.CompanyName, c.Email, c.Phone, c.City,
		c.Address, districts, c.IsActive,
	)
	if err != nil {
		return fmt.Errorf("save company: %w", err)
	}

	return checkAffected(res)
}

func (r *CompanyRepository) DeleteCompany(ctx context.Context, userID string) error {
	const query = "DELETE FROM companies WHERE user_id = $1"

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}

	return checkAffected(res)
}

func (r *CompanyRepository) AddAreaWashed(ctx context.Context, userID string, area float64) error {
	const query = `
		UPDATE companies
		SET total_area_washed = total_area_washed + $2
		WHERE user_id = $1`

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, userID, area)
	if err != nil {
		return fmt.Errorf("add area washed: %w", err)
	}

	return checkAffected(res)
}

func (r *CompanyRepository) CountCompanies(ctx context.Context) (int, error) {
	const query = "SELECT COUNT(*) FROM companies"

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *CompanyRepository) queryCompanies(ctx context.Context, query string) ([]*entities.Company, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Errorf("close rows: %s", err)
		}
	}()

	companies := make([]*entities.Company, 0)

	for rows.Next() {
		c, err := r.scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return companies, nil
}

func (r *CompanyRepository) scanCompany(row rowScanner) (*entities.Company, error) {
	c := new(entities.Company)

	var districts []byte

	err := row.Scan(
		&c.UserID,
		&c.CompanyName,
		&c.Email,
		&c.Phone,
		&c.City,
		&c.Address,
		&districts,
		&c.TotalAreaWashed,
		&c.IsActive,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	if len(districts) > 0 {
		if err = json.Unmarshal(districts, &c.Districts); err != nil {
			return nil, fmt.Errorf("unmarshal districts: %w", err)
		}
	}

	return c, nil
}
