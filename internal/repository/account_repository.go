package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrimart/agri-storefront/internal/domain"
)

// AccountRepository defines persistence access for storefront accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	SetRole(ctx context.Context, email string, role domain.Role) (*domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, email, display_name, password_hash, role, created_at`

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (email, display_name, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		account.Email,
		account.DisplayName,
		account.PasswordHash,
		account.Role,
	).Scan(&account.ID, &account.CreatedAt)
	return translate(err)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.fetchSingle(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id=$1`, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.fetchSingle(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email=$1`, email)
}

// SetRole is the out-of-band role assignment. The HTTP API never calls it.
func (r *accountRepository) SetRole(ctx context.Context, email string, role domain.Role) (*domain.Account, error) {
	return r.fetchSingle(ctx, `UPDATE accounts SET role=$2 WHERE email=$1 RETURNING `+accountColumns, email, role)
}

func (r *accountRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&account.ID,
		&account.Email,
		&account.DisplayName,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &account, nil
}
