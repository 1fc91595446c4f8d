package services

import (
	"fmt"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
)

// CategoryInput carries the caller-supplied fields for a category create or
// full-replace update.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// DefaultCategories is the fixed set seeded at startup and by the seeding
// utility. Seeding is idempotent: a category is only inserted when no
// category with that name exists yet.
var DefaultCategories = []CategoryInput{
	{Name: "Electrónicos", Description: "Dispositivos electrónicos de consumo"},
	{Name: "Ropa", Description: "Prendas de vestir para hombres, mujeres y niños"},
	{Name: "Alimentos", Description: "Productos alimenticios y bebidas"},
	{Name: "Hogar", Description: "Artículos para el hogar y decoración"},
	{Name: "Deportes", Description: "Equipamiento deportivo y actividades al aire libre"},
}

// CategoryService handles business logic related to categories. It also
// consults the product repository so deletes can be guarded against
// orphaning products.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// CreateCategory inserts a new category after checking that no category
// already owns the name, compared case-insensitively. The check is
// lookup-before-insert, so two concurrent creates differing only in case can
// still both land; the column's unique constraint only catches exact repeats.
func (s *CategoryService) CreateCategory(input CategoryInput) (*models.Category, error) {
	existing, err := s.categoryRepo.GetByName(input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q", ErrCategoryExists, input.Name)
	}

	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a single category, or (nil, nil) when absent.
func (s *CategoryService) GetCategory(id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// GetCategories retrieves a page of categories in store-default order.
func (s *CategoryService) GetCategories(skip, limit int) ([]models.Category, error) {
	return s.categoryRepo.List(skip, limit)
}

// UpdateCategory replaces every mutable field of an existing category. When
// the name changes, the new name must not be owned by another category.
func (s *CategoryService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: id %d", ErrCategoryNotFound, id)
	}

	if input.Name != category.Name {
		existing, err := s.categoryRepo.GetByName(input.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%w: %q", ErrCategoryExists, input.Name)
		}
	}

	category.Name = input.Name
	category.Description = input.Description
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category. It reports (false, nil) when the id does
// not exist and refuses with ErrCategoryHasProducts while products still
// reference the category.
func (s *CategoryService) DeleteCategory(id uint) (bool, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return false, err
	}
	if category == nil {
		return false, nil
	}

	productCount, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return false, err
	}
	if productCount > 0 {
		return false, fmt.Errorf("%w: %d products reference category %d", ErrCategoryHasProducts, productCount, id)
	}

	return s.categoryRepo.Delete(id)
}

// FindCategoryByName performs a case-insensitive exact-match lookup, or
// (nil, nil) when absent.
func (s *CategoryService) FindCategoryByName(name string) (*models.Category, error) {
	return s.categoryRepo.GetByName(name)
}

// SeedDefaultCategories inserts each default category unless one with the
// same name already exists. It returns how many were inserted, which is zero
// on every run after the first.
func (s *CategoryService) SeedDefaultCategories() (int, error) {
	created := 0
	for _, input := range DefaultCategories {
		existing, err := s.categoryRepo.GetByName(input.Name)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		category := &models.Category{
			Name:        input.Name,
			Description: input.Description,
		}
		if err := s.categoryRepo.Create(category); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
