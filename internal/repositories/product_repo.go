package repositories

import (
	"catalogo/internal/models"
)

// ProductRepository defines the interface for product data access.
// Reads that miss return (nil, nil) rather than an error, so callers can
// distinguish "absent" from a store failure.
type ProductRepository interface {
	Create(product *models.Product) error
	// CreateBatch inserts all products in a single transaction; any failure
	// rolls the whole batch back.
	CreateBatch(products []models.Product) error
	GetByID(id string) (*models.Product, error)
	List(offset, limit int) ([]models.Product, error)
	ListByCategory(categoryID uint) ([]models.Product, error)
	// Search matches query as a case-insensitive substring of name,
	// description or SKU.
	Search(query string, offset, limit int) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id string) (bool, error)
	Count() (int64, error)
	CountByCategory(categoryID uint) (int64, error)
	CountStockBelow(threshold int) (int64, error)
	TopSelling(limit int) ([]models.TopSellingProduct, error)
}
