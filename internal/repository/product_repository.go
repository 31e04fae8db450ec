package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/agrimart/agri-storefront/internal/domain"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	ActiveOnly bool
	Category   *domain.ProductCategory
	Limit      int
	Offset     int
}

// ProductRepository manages catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	// Patch writes only the supplied columns so concurrent patches of
	// different fields do not overwrite each other.
	Patch(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository constructs repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, name, description, price, image_url, category, stock, unit, is_active, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, description, price, image_url, category, stock, unit, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.ImageURL,
		product.Category,
		product.Stock,
		product.Unit,
		product.IsActive,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	return translate(err)
}

// ProductPatch sets only the non-nil columns.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	Category    *domain.ProductCategory
	Stock       *int
	Unit        *string
	IsActive    *bool
}

func (r *productRepository) Patch(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	sets := []string{}
	args := []any{}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.ImageURL != nil {
		set("image_url", *patch.ImageURL)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Stock != nil {
		set("stock", *patch.Stock)
	}
	if patch.Unit != nil {
		set("unit", *patch.Unit)
	}
	if patch.IsActive != nil {
		set("is_active", *patch.IsActive)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE products SET %s, updated_at=NOW() WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), productColumns)
	product, err := scanProduct(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err)
	}
	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.ActiveOnly {
		clauses = append(clauses, "is_active")
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		productColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, translate(err)
		}
		result = append(result, *product)
	}
	return result, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.ImageURL,
		&product.Category,
		&product.Stock,
		&product.Unit,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}
