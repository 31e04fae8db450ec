package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agrimart/agri-storefront/internal/auth"
	"github.com/agrimart/agri-storefront/internal/domain"
	"github.com/agrimart/agri-storefront/internal/repository"
	apperrors "github.com/agrimart/agri-storefront/pkg/util/errorutil"
)

// CatalogService manages product listings.
type CatalogService struct {
	products repository.ProductRepository
}

// ProductInput describes a new product.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    domain.ProductCategory
	Stock       int
	Unit        string
	IsActive    bool
}

// ProductPatch updates only the non-nil fields.
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

// ProductListFilter narrows catalog listings.
type ProductListFilter struct {
	Category *domain.ProductCategory
	Limit    int
	Offset   int
}

// NewCatalogService constructs the service.
func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// Create adds a product.
func (s *CatalogService) Create(ctx context.Context, identity auth.Identity, input ProductInput) (*domain.Product, error) {
	if err := auth.Require(auth.TierAdministrator, identity); err != nil {
		return nil, err
	}
	product := &domain.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Category:    input.Category,
		Stock:       input.Stock,
		Unit:        strings.TrimSpace(input.Unit),
		IsActive:    input.IsActive,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, storeError("product", err)
	}
	return product, nil
}

// Update writes the supplied fields of patch to an existing product.
func (s *CatalogService) Update(ctx context.Context, identity auth.Identity, id string, patch ProductPatch) (*domain.Product, error) {
	if err := auth.Require(auth.TierAdministrator, identity); err != nil {
		return nil, err
	}
	fields := patch.normalize()
	if err := validatePatch(fields); err != nil {
		return nil, err
	}
	product, err := s.products.Patch(ctx, id, fields)
	if err != nil {
		return nil, storeError("product", err)
	}
	return product, nil
}

func (p ProductPatch) normalize() repository.ProductPatch {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		trimmed := strings.TrimSpace(*v)
		return &trimmed
	}
	return repository.ProductPatch{
		Name:        trim(p.Name),
		Description: trim(p.Description),
		Price:       p.Price,
		ImageURL:    trim(p.ImageURL),
		Category:    p.Category,
		Stock:       p.Stock,
		Unit:        trim(p.Unit),
		IsActive:    p.IsActive,
	}
}

// Delete removes a product unconditionally.
func (s *CatalogService) Delete(ctx context.Context, identity auth.Identity, id string) error {
	if err := auth.Require(auth.TierAdministrator, identity); err != nil {
		return err
	}
	return storeError("product", s.products.Delete(ctx, id))
}

// Get returns a product regardless of its visibility.
func (s *CatalogService) Get(ctx context.Context, identity auth.Identity, id string) (*domain.Product, error) {
	if err := auth.Require(auth.TierAdministrator, identity); err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("product", err)
	}
	return product, nil
}

// ListAll returns active and inactive products.
func (s *CatalogService) ListAll(ctx context.Context, identity auth.Identity, filter ProductListFilter) ([]domain.Product, error) {
	if err := auth.Require(auth.TierAdministrator, identity); err != nil {
		return nil, err
	}
	return s.list(ctx, false, filter)
}

// ListActive is the public storefront listing.
func (s *CatalogService) ListActive(ctx context.Context, filter ProductListFilter) ([]domain.Product, error) {
	return s.list(ctx, true, filter)
}

func (s *CatalogService) list(ctx context.Context, activeOnly bool, filter ProductListFilter) ([]domain.Product, error) {
	if filter.Category != nil && !filter.Category.Valid() {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": string(*filter.Category)})
	}
	products, err := s.products.List(ctx, repository.ProductFilter{
		ActiveOnly: activeOnly,
		Category:   filter.Category,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
	if err != nil {
		return nil, storeError("product", err)
	}
	return products, nil
}

// validateProduct checks the fields every stored product must satisfy. Stock has no floor.
func validatePatch(p repository.ProductPatch) error {
	details := map[string]any{}
	if p.Name != nil && *p.Name == "" {
		details["name"] = "required"
	}
	if p.Price != nil && !p.Price.IsPositive() {
		details["price"] = "must be positive"
	}
	if p.Category != nil && !p.Category.Valid() {
		details["category"] = "unknown category"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid product", details)
	}
	return nil
}

func validateProduct(p *domain.Product) error {
	details := map[string]any{}
	if p.Name == "" {
		details["name"] = "required"
	}
	if !p.Price.IsPositive() {
		details["price"] = "must be positive"
	}
	if !p.Category.Valid() {
		details["category"] = "unknown category"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid product", details)
	}
	return nil
}
