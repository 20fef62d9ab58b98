package model

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryAll         Category = "All"
	CategoryElectronics Category = "Electronics"
	CategoryAccessories Category = "Accessories"
	CategoryAudio       Category = "Audio"
)

// Categories lists the selectable categories, wildcard first.
var Categories = []Category{CategoryAll, CategoryElectronics, CategoryAccessories, CategoryAudio}

func (c Category) IsValid() bool {
	switch c {
	case CategoryElectronics, CategoryAccessories, CategoryAudio:
		return true
	}
	return false
}

type ProductStatus string

const (
	StatusInStock    ProductStatus = "In Stock"
	StatusLowStock   ProductStatus = "Low Stock"
	StatusOutOfStock ProductStatus = "Out of Stock"
)

func (s ProductStatus) IsValid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock:
		return true
	}
	return false
}

type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   Category        `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	Status     ProductStatus   `json:"status"`
	SupplierID string          `json:"supplierId"`
}
