package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrimart/agri-storefront/internal/domain"
	apperrors "github.com/agrimart/agri-storefront/pkg/util/errorutil"
)

func seedInput() ProductInput {
	return ProductInput{
		Name:     "Hybrid maize seed",
		Price:    decimal.RequireFromString("12.75"),
		Category: domain.CategorySeeds,
		Stock:    40,
		Unit:     "kg",
		IsActive: true,
	}
}

func TestCatalogCreateValidates(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewCatalogService(repo)
	ctx := context.Background()

	product, err := svc.Create(ctx, adminIdentity(), seedInput())
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)

	bad := seedInput()
	bad.Name = "  "
	bad.Price = decimal.Zero
	bad.Category = "Livestock"
	_, err = svc.Create(ctx, adminIdentity(), bad)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	details := apperrors.ToDomainError(err).Details
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "price")
	assert.Contains(t, details, "category")
}

func TestCatalogRequiresAdministrator(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewCatalogService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, customerIdentity("cust-1"), seedInput())
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	_, err = svc.ListAll(ctx, customerIdentity("cust-1"), ProductListFilter{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	err = svc.Delete(ctx, customerIdentity("cust-1"), "p-1")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	assert.Zero(t, repo.calls)
}

func TestCatalogUpdatePatchesSuppliedFields(t *testing.T) {
	svc := NewCatalogService(newFakeProductRepo())
	ctx := context.Background()
	product, err := svc.Create(ctx, adminIdentity(), seedInput())
	require.NoError(t, err)

	stock := -5
	inactive := false
	updated, err := svc.Update(ctx, adminIdentity(), product.ID, ProductPatch{Stock: &stock, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, -5, updated.Stock)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Hybrid maize seed", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("12.75")))

	zero := decimal.Zero
	_, err = svc.Update(ctx, adminIdentity(), product.ID, ProductPatch{Price: &zero})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = svc.Update(ctx, adminIdentity(), "missing", ProductPatch{Stock: &stock})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestCatalogConcurrentPatchesKeepEachOthersFields(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewCatalogService(repo)
	ctx := context.Background()
	product, err := svc.Create(ctx, adminIdentity(), seedInput())
	require.NoError(t, err)

	// both administrators edit from the same read
	seen, err := svc.Get(ctx, adminIdentity(), product.ID)
	require.NoError(t, err)

	stock := seen.Stock + 2
	_, err = svc.Update(ctx, adminIdentity(), seen.ID, ProductPatch{Stock: &stock})
	require.NoError(t, err)

	price := seen.Price.Add(decimal.NewFromInt(1))
	updated, err := svc.Update(ctx, adminIdentity(), seen.ID, ProductPatch{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, stock, updated.Stock)
	assert.True(t, updated.Price.Equal(price))
}

func TestCatalogUpdateValidatesBeforeStore(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewCatalogService(repo)
	ctx := context.Background()

	negative := decimal.NewFromInt(-1)
	unknown := domain.ProductCategory("Livestock")
	blank := "   "
	cases := map[string]ProductPatch{
		"negative price":   {Price: &negative},
		"unknown category": {Category: &unknown},
		"blank name":       {Name: &blank},
	}
	for name, patch := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Update(ctx, adminIdentity(), "p-1", patch)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
		})
	}
	assert.Zero(t, repo.calls)
}

func TestCatalogListings(t *testing.T) {
	svc := NewCatalogService(newFakeProductRepo())
	ctx := context.Background()

	active, err := svc.Create(ctx, adminIdentity(), seedInput())
	require.NoError(t, err)
	hidden := seedInput()
	hidden.Name = "Drip kit"
	hidden.Category = domain.CategoryIrrigation
	hidden.IsActive = false
	_, err = svc.Create(ctx, adminIdentity(), hidden)
	require.NoError(t, err)

	public, err := svc.ListActive(ctx, ProductListFilter{})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, active.ID, public[0].ID)

	all, err := svc.ListAll(ctx, adminIdentity(), ProductListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	irrigation := domain.CategoryIrrigation
	filtered, err := svc.ListAll(ctx, adminIdentity(), ProductListFilter{Category: &irrigation})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Drip kit", filtered[0].Name)

	unknown := domain.ProductCategory("Livestock")
	_, err = svc.ListActive(ctx, ProductListFilter{Category: &unknown})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestCatalogDelete(t *testing.T) {
	svc := NewCatalogService(newFakeProductRepo())
	ctx := context.Background()
	product, err := svc.Create(ctx, adminIdentity(), seedInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, adminIdentity(), product.ID))
	_, err = svc.Get(ctx, adminIdentity(), product.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	err = svc.Delete(ctx, adminIdentity(), product.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
