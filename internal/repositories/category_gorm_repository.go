package repositories

import (
	"errors"
	"fmt"

	"catalogo/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// Create inserts a new category. The store assigns the autoincrement ID.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a single category by its ID, or (nil, nil) when absent.
func (r *GORMCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, err)
	}
	return &category, nil
}

// GetByName retrieves a category by name, matched case-insensitively,
// or (nil, nil) when absent.
func (r *GORMCategoryRepository) GetByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "LOWER(name) = LOWER(?)", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by name %q: %w", name, err)
	}
	return &category, nil
}

// List retrieves a page of categories in store-default order.
func (r *GORMCategoryRepository) List(offset, limit int) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Offset(offset).Limit(limit).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Update replaces all fields of an existing category.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	res := r.db.Save(category) // Save writes every field, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	return nil
}

// Delete removes a category by its ID. Returns false when no row matched.
func (r *GORMCategoryRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete category %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Count returns the total number of categories.
func (r *GORMCategoryRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}
