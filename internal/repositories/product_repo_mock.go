package repositories

import (
	"strings"
	"sync"

	"catalogo/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It backs the seeder tests and local experiments where no store is wanted.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string // insertion order, so paging is stable
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create adds a new product, minting a UUID when the caller did not.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, exists := r.products[product.ID]; !exists {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// CreateBatch adds every product or none. The in-memory form only fails on a
// duplicate ID or duplicate SKU, mirroring the store's constraints.
func (r *MockProductRepository) CreateBatch(products []models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seenSKU := make(map[string]bool)
	for _, p := range r.products {
		if p.SKU != nil {
			seenSKU[*p.SKU] = true
		}
	}
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = uuid.New().String()
		}
		if _, exists := r.products[products[i].ID]; exists {
			return ErrDuplicateRow
		}
		if products[i].SKU != nil {
			if seenSKU[*products[i].SKU] {
				return ErrDuplicateRow
			}
			seenSKU[*products[i].SKU] = true
		}
	}
	for _, p := range products {
		r.products[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return nil
}

// GetByID returns a product by its ID, or (nil, nil) when absent.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// List returns a page of products in insertion order.
func (r *MockProductRepository) List(offset, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.page(r.order, offset, limit), nil
}

// ListByCategory returns every product referencing the given category.
func (r *MockProductRepository) ListByCategory(categoryID uint) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []models.Product
	for _, id := range r.order {
		if p := r.products[id]; p.CategoryID == categoryID {
			products = append(products, p)
		}
	}
	return products, nil
}

// Search matches query as a case-insensitive substring of name, description
// or SKU.
func (r *MockProductRepository) Search(query string, offset, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	var matched []string
	for _, id := range r.order {
		p := r.products[id]
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			(p.SKU != nil && strings.Contains(strings.ToLower(*p.SKU), needle)) {
			matched = append(matched, id)
		}
	}
	return r.page(matched, offset, limit), nil
}

// Update replaces an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return nil
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Count returns the total number of products.
func (r *MockProductRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.products)), nil
}

// CountByCategory returns how many products reference the given category.
func (r *MockProductRepository) CountByCategory(categoryID uint) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// CountStockBelow returns how many products have stock under the threshold.
func (r *MockProductRepository) CountStockBelow(threshold int) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.products {
		if p.Stock < threshold {
			count++
		}
	}
	return count, nil
}

// TopSelling always reports an empty list: the in-memory repository holds no
// sale lines.
func (r *MockProductRepository) TopSelling(limit int) ([]models.TopSellingProduct, error) {
	return []models.TopSellingProduct{}, nil
}

// page slices a window out of the ordered ID list. Callers must hold the lock.
func (r *MockProductRepository) page(ids []string, offset, limit int) []models.Product {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return []models.Product{}
	}
	end := len(ids)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	products := make([]models.Product, 0, end-offset)
	for _, id := range ids[offset:end] {
		products = append(products, r.products[id])
	}
	return products
}
