package repositories

import (
	"errors"
	"fmt"
	"strings"

	"catalogo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create inserts a new product, minting a UUID when the caller did not.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// CreateBatch inserts all products inside one transaction. A failure on any
// row rolls back every row in the batch.
func (r *GORMProductRepository) CreateBatch(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = uuid.New().String()
		}
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&products).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create product batch: %w", err)
	}
	return nil
}

// GetByID retrieves a single product by its ID, or (nil, nil) when absent.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// List retrieves a page of products in store-default order.
func (r *GORMProductRepository) List(offset, limit int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListByCategory retrieves every product referencing the given category,
// unpaginated.
func (r *GORMProductRepository) ListByCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("category_id = ?", categoryID).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products for category %d: %w", categoryID, err)
	}
	return products, nil
}

// Search matches query as a case-insensitive substring of name, description
// or SKU. LOWER + LIKE is used instead of ILIKE so the query behaves the same
// on Postgres and SQLite.
func (r *GORMProductRepository) Search(query string, offset, limit int) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var products []models.Product
	err := r.db.
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern, pattern).
		Offset(offset).Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products for %q: %w", query, err)
	}
	return products, nil
}

// Update replaces all fields of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save writes every field, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	return nil
}

// Delete removes a product by its ID. Returns false when no row matched.
func (r *GORMProductRepository) Delete(id string) (bool, error) {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete product %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Count returns the total number of products.
func (r *GORMProductRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CountByCategory returns how many products reference the given category.
func (r *GORMProductRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products for category %d: %w", categoryID, err)
	}
	return count, nil
}

// CountStockBelow returns how many products have stock under the threshold.
func (r *GORMProductRepository) CountStockBelow(threshold int) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Where("stock < ?", threshold).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count low-stock products: %w", err)
	}
	return count, nil
}

// TopSelling returns the products with the highest summed sale-line quantity.
func (r *GORMProductRepository) TopSelling(limit int) ([]models.TopSellingProduct, error) {
	var rows []models.TopSellingProduct
	err := r.db.Table("sale_items").
		Select("sale_items.product_id AS product_id, products.name AS name, products.sku AS sku, SUM(sale_items.quantity) AS total_sold").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Group("sale_items.product_id, products.name, products.sku").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query top-selling products: %w", err)
	}
	return rows, nil
}
