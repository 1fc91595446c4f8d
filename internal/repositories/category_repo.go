package repositories

import (
	"catalogo/internal/models"
)

// CategoryRepository defines the interface for category data access.
// Reads that miss return (nil, nil) rather than an error, so callers can
// distinguish "absent" from a store failure.
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	List(offset, limit int) ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uint) (bool, error)
	Count() (int64, error)
}
