package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrimart/agri-storefront/internal/domain"
)

// CreateProductRequest payload.
type CreateProductRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Price       decimal.Decimal        `json:"price"`
	ImageURL    string                 `json:"image_url"`
	Category    domain.ProductCategory `json:"category"`
	Stock       int                    `json:"stock"`
	Unit        string                 `json:"unit"`
	IsActive    *bool                  `json:"is_active"`
}

// UpdateProductRequest payload. Omitted fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	Price       *decimal.Decimal        `json:"price"`
	ImageURL    *string                 `json:"image_url"`
	Category    *domain.ProductCategory `json:"category"`
	Stock       *int                    `json:"stock"`
	Unit        *string                 `json:"unit"`
	IsActive    *bool                   `json:"is_active"`
}

// ProductResponse is the catalog view of a product.
type ProductResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Price       decimal.Decimal        `json:"price"`
	ImageURL    string                 `json:"image_url"`
	Category    domain.ProductCategory `json:"category"`
	Stock       int                    `json:"stock"`
	Unit        string                 `json:"unit"`
	IsActive    bool                   `json:"is_active"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		Category:    product.Category,
		Stock:       product.Stock,
		Unit:        product.Unit,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
