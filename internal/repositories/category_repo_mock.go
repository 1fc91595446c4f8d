package repositories

import (
	"strings"
	"sync"

	"catalogo/internal/models"
)

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	categories map[uint]models.Category
	order      []uint
	nextID     uint
	mu         sync.RWMutex
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[uint]models.Category),
		nextID:     1,
	}
}

// Create adds a new category, assigning the next autoincrement ID.
func (r *MockCategoryRepository) Create(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == 0 {
		category.ID = r.nextID
		r.nextID++
	} else if category.ID >= r.nextID {
		r.nextID = category.ID + 1
	}
	if _, exists := r.categories[category.ID]; exists {
		return ErrDuplicateRow
	}
	r.categories[category.ID] = *category
	r.order = append(r.order, category.ID)
	return nil
}

// GetByID returns a category by its ID, or (nil, nil) when absent.
func (r *MockCategoryRepository) GetByID(id uint) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	return &category, nil
}

// GetByName returns a category by case-insensitive name, or (nil, nil).
func (r *MockCategoryRepository) GetByName(name string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		c := r.categories[id]
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, nil
}

// List returns a page of categories in insertion order.
func (r *MockCategoryRepository) List(offset, limit int) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(r.order) {
		return []models.Category{}, nil
	}
	end := len(r.order)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	categories := make([]models.Category, 0, end-offset)
	for _, id := range r.order[offset:end] {
		categories = append(categories, r.categories[id])
	}
	return categories, nil
}

// Update replaces an existing category.
func (r *MockCategoryRepository) Update(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[category.ID]; !ok {
		return nil
	}
	r.categories[category.ID] = *category
	return nil
}

// Delete removes a category by its ID.
func (r *MockCategoryRepository) Delete(id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return false, nil
	}
	delete(r.categories, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Count returns the total number of categories.
func (r *MockCategoryRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.categories)), nil
}
