package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategory enumerates catalog sections.
type ProductCategory string

const (
	CategorySeeds       ProductCategory = "Seeds"
	CategoryFertilizers ProductCategory = "Fertilizers"
	CategoryPesticides  ProductCategory = "Pesticides"
	CategoryEquipment   ProductCategory = "Equipment"
	CategoryIrrigation  ProductCategory = "Irrigation"
)

// Valid reports whether c is a known category.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategorySeeds, CategoryFertilizers, CategoryPesticides, CategoryEquipment, CategoryIrrigation:
		return true
	}
	return false
}

// Product is a catalog listing.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    ProductCategory
	// Stock has no floor; it may go negative.
	Stock     int
	Unit      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
