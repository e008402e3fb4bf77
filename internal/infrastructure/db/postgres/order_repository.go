package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/sercandadas/haliyol-marketplace-service/internal/application/errs"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/repositories"
	"github.com/sercandadas/haliyol-marketplace-service/pkg/logger"
)

type OrderRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewOrderRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*OrderRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &OrderRepository{db: db, getter: getter, logger: logger}, nil
}

var _ repositories.OrderRepository = (*OrderRepository)(nil)

const orderColumns = `
	id, customer_id, customer_name, customer_phone, customer_email,
	customer_address, city, district, special_notes, status,
	company_id, company_name, cancel_reason,
	carpets, actual_carpets, rejected_by,
	actual_total_area, actual_total_price, discount_percentage,
	discount_amount, final_price, carpet_count,
	created_at, assigned_at, pickup_date, washing_date,
	delivery_date, cancelled_at`

func (r *OrderRepository) CreateOrder(ctx context.Context, o *entities.Order) error {
	const query = `
		INSERT INTO orders (
			id, customer_id, customer_name, customer_phone, customer_email,
			customer_address, city, district, special_notes, status,
			carpets, actual_carpets, rejected_by, carpet_count, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, '[]'::jsonb, '[]'::jsonb, $12, $13)`

	carpets, err := json.Marshal(o.Carpets)
	if err != nil {
		return fmt.Errorf("marshal carpets: %w", err)
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		o.ID, o.CustomerID, o.CustomerName, o.CustomerPhone, o.CustomerEmail,
		o.CustomerAddress, o.City, o.District, o.SpecialNotes, o.Status,
		carpets, o.CarpetCount, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	const query = "SELECT" + orderColumns + " FROM orders WHERE id = $1"

	return r.scanOrder(r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, id))
}

func (r *OrderRepository) GetOrdersByCustomer(ctx context.Context, customerID string) ([]*entities.Order, error) {
	const query = "SELECT" + orderColumns +
		" FROM orders WHERE customer_id = $1 ORDER BY created_at DESC"

	return r.queryOrders(ctx, query, customerID)
}

func (r *OrderRepository) GetOrdersForCompany(ctx context.Context, companyID, city string) ([]*entities.Order, error) {
	const query = "SELECT" + orderColumns + `
		FROM orders
		WHERE company_id = $1
			OR (status = 'pending' AND company_id = ''
				AND city = $2 AND NOT (rejected_by ? $1))
		ORDER BY created_at DESC`

	return r.queryOrders(ctx, query, companyID, city)
}

func (r *OrderRepository) GetAllOrders(ctx context.Context) ([]*entities.Order, error) {
	const query = "SELECT" + orderColumns + " FROM orders ORDER BY created_at DESC"

	return r.queryOrders(ctx, query)
}

func (r *OrderRepository) GetPool(ctx context.Context, city, excludeCompanyID string) ([]*entities.Order, error) {
	const query = "SELECT" + orderColumns + `
		FROM orders
		WHERE status = 'pending' AND company_id = ''
			AND ($1 = '' OR city = $1)
			AND ($2 = '' OR NOT (rejected_by ? $2))
		ORDER BY created_at DESC`

	return r.queryOrders(ctx, query, city, excludeCompanyID)
}

func (r *OrderRepository) ClaimOrder(ctx context.Context, orderID, companyID, companyName string, at time.Time) error {
	const query = `
		UPDATE orders
		SET status = 'assigned', company_id = $2, company_name = $3, assigned_at = $4
		WHERE id = $1 AND status = 'pending' AND company_id = ''`

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		orderID, companyID, companyName, at,
	)
	if err != nil {
		return fmt.Errorf("claim order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: order already assigned", errs.ErrDataConflict)
	}

	return nil
}

func (r *OrderRepository) AddRejection(ctx context.Context, orderID, companyID string) error {
	const query = `
		UPDATE orders
		SET rejected_by = rejected_by || to_jsonb($2::text)
		WHERE id = $1 AND NOT (rejected_by ? $2)`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, orderID, companyID)
	if err != nil {
		return fmt.Errorf("add rejection: %w", err)
	}

	return nil
}

func (r *OrderRepository) CancelOrder(ctx context.Context, orderID, reason string, at time.Time) error {
	const query = `
		UPDATE orders
		SET status = 'cancelled', cancel_reason = $2, cancelled_at = $3
		WHERE id = $1`

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, orderID, reason, at)
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}

	return checkAffected(res)
}

// statusDateColumn maps a status to the date column it stamps.
var statusDateColumn = map[entities.OrderStatus]string{
	entities.StatusAssigned:  "assigned_at",
	entities.StatusPickedUp:  "pickup_date",
	entities.StatusWashing:   "washing_date",
	entities.StatusDelivered: "delivery_date",
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus, at time.Time) error {
	query := "UPDATE orders SET status = $2 WHERE id = $1"
	args := []any{orderID, status}

	if column, ok := statusDateColumn[status]; ok {
		// COALESCE keeps the first stamp when a status is ever replayed.
		query = fmt.Sprintf(
			"UPDATE orders SET status = $2, %s = COALESCE(%s, $3) WHERE id = $1",
			column, column,
		)
		args = append(args, at)
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	return checkAffected(res)
}

func (r *OrderRepository) SaveActualCarpets(ctx context.Context, o *entities.Order) error {
	const query = `
		UPDATE orders
		SET actual_carpets = $2, actual_total_area = $3, actual_total_price = $4,
			discount_percentage = $5, discount_amount = $6, final_price = $7
		WHERE id = $1`

	actual, err := json.Marshal(o.ActualCarpets)
	if err != nil {
		return fmt.Errorf("marshal actual carpets: %w", err)
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		o.ID, actual, o.ActualTotalArea, o.ActualTotalPrice,
		o.DiscountPercentage, o.DiscountAmount, o.FinalPrice,
	)
	if err != nil {
		return fmt.Errorf("save actual carpets: %w", err)
	}

	return checkAffected(res)
}

func (r *OrderRepository) CountOrdersByCustomer(ctx context.Context, customerID string, status entities.OrderStatus) (int, error) {
	const query = "SELECT COUNT(*) FROM orders WHERE customer_id = $1 AND status = $2"

	var count int
	err := r.getter.DefaultTrOrDB(ctx, r.db).
		QueryRowContext(ctx, query, customerID, status).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *OrderRepository) CountOrders(ctx context.Context, statuses ...entities.OrderStatus) (int, error) {
	query := "SELECT COUNT(*) FROM orders"
	condition, args := statusFilter(statuses, 0)
	if condition != "" {
		query += " WHERE " + condition
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *OrderRepository) CountOrdersByCompany(ctx context.Context, companyID string, statuses ...entities.OrderStatus) (int, error) {
	query := "SELECT COUNT(*) FROM orders WHERE company_id = $1"
	args := []any{companyID}

	condition, statusArgs := statusFilter(statuses, 1)
	if condition != "" {
		query += " AND " + condition
		args = append(args, statusArgs...)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *OrderRepository) CountPool(ctx context.Context, city, excludeCompanyID string) (int, error) {
	const query = `
		SELECT COUNT(*) FROM orders
		WHERE status = 'pending' AND company_id = ''
			AND ($1 = '' OR city = $1)
			AND ($2 = '' OR NOT (rejected_by ? $2))`

	var count int
	err := r.db.QueryRowContext(ctx, query, city, excludeCompanyID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *OrderRepository) GetDeliveredOrders(ctx context.Context, filter repositories.DeliveredFilter) ([]*entities.Order, error) {
	const query = "SELECT" + orderColumns + `
		FROM orders
		WHERE status = 'delivered'
			AND delivery_date >= $1 AND delivery_date <= $2
			AND ($3 = '' OR company_id = $3)
		ORDER BY delivery_date DESC`

	return r.queryOrders(ctx, query, filter.From, filter.To, filter.CompanyID)
}

// statusFilter builds an IN condition over the status column starting
// after the given placeholder offset.
func statusFilter(statuses []entities.OrderStatus, offset int) (string, []any) {
	if len(statuses) == 0 {
		return "", nil
	}

	placeholders := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, s := range statuses {
		placeholders[i] = fmt.Sprintf("$%d", offset+i+1)
		args[i] = s
	}

	return "status IN (" + strings.Join(placeholders, ", ") + ")", args
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*entities.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Errorf("close rows: %s", err)
		}
	}()

	orders := make([]*entities.Order, 0)

	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepository) scanOrder(row rowScanner) (*entities.Order, error) {
	o := new(entities.Order)

	var (
		carpets, actualCarpets, rejectedBy []byte

		assignedAt, pickupDate, washingDate sql.NullTime
		deliveryDate, cancelledAt           sql.NullTime
	)

	err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerEmail,
		&o.CustomerAddress,
		&o.City,
		&o.District,
		&o.SpecialNotes,
		&o.Status,
		&o.CompanyID,
		&o.CompanyName,
		&o.CancelReason,
		&carpets,
		&actualCarpets,
		&rejectedBy,
		&o.ActualTotalArea,
		&o.ActualTotalPrice,
		&o.DiscountPercentage,
		&o.DiscountAmount,
		&o.FinalPrice,
		&o.CarpetCount,
		&o.CreatedAt,
		&assignedAt,
		&pickupDate,
		&washingDate,
		&deliveryDate,
		&cancelledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	if err = json.Unmarshal(carpets, &o.Carpets); err != nil {
		return nil, fmt.Errorf("unmarshal carpets: %w", err)
	}
	if err = json.Unmarshal(actualCarpets, &o.ActualCarpets); err != nil {
		return nil, fmt.Errorf("unmarshal actual carpets: %w", err)
	}
	if err = json.Unmarshal(rejectedBy, &o.RejectedBy); err != nil {
		return nil, fmt.Errorf("unmarshal rejections: %w", err)
	}

	o.AssignedAt = nullableTime(assignedAt)
	o.PickupDate = nullableTime(pickupDate)
	o.WashingDate = nullableTime(washingDate)
	o.DeliveryDate = nullableTime(deliveryDate)
	o.CancelledAt = nullableTime(cancelledAt)

	return o, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
