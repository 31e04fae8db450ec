package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrimart/agri-storefront/internal/domain"
)

// NotificationRepository keeps the delivery state of customer notifications.
type NotificationRepository interface {
	Create(ctx context.Context, record *domain.NotificationRecord) error
	Update(ctx context.Context, record *domain.NotificationRecord) error
	// LatestUndelivered returns the newest pending or failed record for an order
	// that is newer than every sent record, or ErrNotFound.
	LatestUndelivered(ctx context.Context, orderID string) (*domain.NotificationRecord, error)
	ListByOrder(ctx context.Context, orderID string) ([]domain.NotificationRecord, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository constructs repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

const notificationColumns = `id, order_id, status, tracking_number, state, attempts, last_error, created_at, updated_at`

func (r *notificationRepository) Create(ctx context.Context, record *domain.NotificationRecord) error {
	const query = `
        INSERT INTO order_notifications (order_id, status, tracking_number, state, attempts, last_error)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		record.OrderID,
		record.Status,
		record.TrackingNumber,
		record.State,
		record.Attempts,
		record.LastError,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *notificationRepository) Update(ctx context.Context, record *domain.NotificationRecord) error {
	const query = `
        UPDATE order_notifications SET state=$1, attempts=$2, last_error=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query, record.State, record.Attempts, record.LastError, record.ID).Scan(&record.UpdatedAt)
	return translate(err)
}

func (r *notificationRepository) LatestUndelivered(ctx context.Context, orderID string) (*domain.NotificationRecord, error) {
	query := `SELECT ` + notificationColumns + ` FROM order_notifications
        WHERE order_id=$1 AND state <> 'sent'
          AND created_at > (
            SELECT COALESCE(MAX(created_at), '-infinity'::timestamptz)
            FROM order_notifications WHERE order_id=$1 AND state='sent')
        ORDER BY created_at DESC LIMIT 1`
	var record domain.NotificationRecord
	if err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&record.ID,
		&record.OrderID,
		&record.Status,
		&record.TrackingNumber,
		&record.State,
		&record.Attempts,
		&record.LastError,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *notificationRepository) ListByOrder(ctx context.Context, orderID string) ([]domain.NotificationRecord, error) {
	query := `SELECT ` + notificationColumns + ` FROM order_notifications WHERE order_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var result []domain.NotificationRecord
	for rows.Next() {
		var record domain.NotificationRecord
		if err := rows.Scan(
			&record.ID,
			&record.OrderID,
			&record.Status,
			&record.TrackingNumber,
			&record.State,
			&record.Attempts,
			&record.LastError,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, translate(err)
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
