package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrimart/agri-storefront/internal/domain"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	AccountID *string
	Statuses  []domain.OrderStatus
	Limit     int
	Offset    int
}

// StatusPatch is a conditional partial update of an order. TrackingNumber nil
// leaves the stored value untouched.
type StatusPatch struct {
	OrderID         string
	ExpectedVersion int
	Status          domain.OrderStatus
	TrackingNumber  *string
}

// OrderRepository encapsulates order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListWithFilter(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	// ApplyStatusPatch writes the patch only if the stored version still equals
	// ExpectedVersion, bumping the version. Returns ErrVersionConflict otherwise.
	ApplyStatusPatch(ctx context.Context, patch StatusPatch) (*domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, account_id, status, total_amount, shipping_address, tracking_number, notes, version, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (account_id, status, total_amount, shipping_address, notes, version)
        VALUES ($1,$2,$3,$4,$5,1)
        RETURNING id, version, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		order.AccountID,
		order.Status,
		order.TotalAmount,
		order.ShippingAddress,
		order.Notes,
	).Scan(&order.ID, &order.Version, &order.CreatedAt, &order.UpdatedAt)
	return translate(err)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, translate(err)
	}
	return order, nil
}

func (r *orderRepository) ApplyStatusPatch(ctx context.Context, patch StatusPatch) (*domain.Order, error) {
	const query = `
        UPDATE orders
        SET status=$1, tracking_number=COALESCE($2::text, tracking_number), version=version+1, updated_at=NOW()
        WHERE id=$3 AND version=$4
        RETURNING ` + orderColumns
	row := r.pool.QueryRow(ctx, query, patch.Status, patch.TrackingNumber, patch.OrderID, patch.ExpectedVersion)
	order, err := scanOrder(row)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, translate(err)
	}
	// Nothing matched: either the order is gone or the version moved on.
	var current int
	if err := r.pool.QueryRow(ctx, `SELECT version FROM orders WHERE id=$1`, patch.OrderID).Scan(&current); err != nil {
		return nil, translate(err)
	}
	return nil, ErrVersionConflict
}

func (r *orderRepository) ListWithFilter(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		clauses = append(clauses, fmt.Sprintf("account_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		orderColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, translate(err)
		}
		result = append(result, *order)
	}
	return result, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	if err := row.Scan(
		&order.ID,
		&order.AccountID,
		&order.Status,
		&order.TotalAmount,
		&order.ShippingAddress,
		&order.TrackingNumber,
		&order.Notes,
		&order.Version,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
