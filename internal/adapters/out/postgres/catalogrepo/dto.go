// Package catalogrepo reads products and their categories. Catalog writes
// belong to another service; this package only resolves.
package catalogrepo

import (
	"github.com/shopspring/decimal"
)

type CategoryDTO struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(255);not null"`
}

func (CategoryDTO) TableName() string {
	return "categories"
}

type ProductDTO struct {
	ID         int64           `gorm:"primaryKey"`
	Name       string          `gorm:"type:varchar(255);not null"`
	URL        string          `gorm:"type:text"`
	Price      decimal.Decimal `gorm:"type:numeric;not null"`
	CategoryID *int64          `gorm:"index"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// productRow is a product joined with its category name, which is null when
// the category was removed.
type productRow struct {
	ID       int64
	Name     string
	URL      string
	Price    decimal.Decimal
	Category *string
}
