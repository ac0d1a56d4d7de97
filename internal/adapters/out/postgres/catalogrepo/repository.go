package catalogrepo

import (
	"context"
	"errors"

	"storefront/internal/adapters/out/postgres/pgerr"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogRepository implements ports.CatalogLookup over the products table.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// Resolve returns the current state of a product, or errs.ObjectNotFoundError.
func (r *GormCatalogRepository) Resolve(ctx context.Context, id catalog.ProductID) (catalog.Item, error) {
	if err := id.Validate(); err != nil {
		return catalog.Item{}, err
	}

	var row productRow
	err := r.db.WithContext(ctx).
		Table("products AS p").
		Select("p.id, p.name, p.url, p.price, c.name AS category").
		Joins("LEFT JOIN categories AS c ON c.id = p.category_id").
		Where("p.id = ?", int64(id)).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.Item{}, errs.NewObjectNotFoundError("productId", int64(id))
	}
	if err != nil {
		return catalog.Item{}, pgerr.Classify("catalog", err)
	}

	price, err := kernel.NewMoney(row.Price)
	if err != nil {
		return catalog.Item{}, err
	}

	var category string
	if row.Category != nil {
		category = *row.Category
	}

	return catalog.NewItem(catalog.ProductID(row.ID), price, row.Name, row.URL, category)
}
