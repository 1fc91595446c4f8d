package services

import (
	"log"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/pkg/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level below which a product counts as
// low-stock in the summary report.
const LowStockThreshold = 10

// DefaultTopSellingLimit caps the top-selling report when the caller does not
// ask for a specific size.
const DefaultTopSellingLimit = 5

// ProductInput carries the caller-supplied fields for a product create or
// full-replace update. CategoryID is not checked against the categories
// table; a dangling reference is the caller's to avoid. Price and Stock are
// stored as sent, negative values included.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  uint    `json:"category_id" validate:"required"`
	SKU         *string `json:"sku" validate:"omitempty,max=50"`
	ImageURL    string  `json:"image_url"`
}

// ProductService handles business logic related to products. The events
// client is optional; when nil, no events are published.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	mqClient     *events.Client
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, mqClient *events.Client) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		mqClient:     mqClient,
	}
}

// CreateProduct mints a fresh UUID, inserts the full record and returns it.
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Price:       decimal.NewFromFloat(input.Price).Round(2),
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		SKU:         input.SKU,
		ImageURL:    input.ImageURL,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.publish(events.TypeProductCreated, map[string]interface{}{
		"product_id":  product.ID,
		"name":        product.Name,
		"category_id": product.CategoryID,
		"price":       product.Price.InexactFloat64(),
	})
	return product, nil
}

// GetProduct retrieves a single product, or (nil, nil) when absent.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// GetProducts retrieves a page of products in store-default order.
func (s *ProductService) GetProducts(skip, limit int) ([]models.Product, error) {
	return s.productRepo.List(skip, limit)
}

// UpdateProduct replaces every mutable field of an existing product. An
// absent id yields (nil, nil), not an error.
func (s *ProductService) UpdateProduct(id string, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = decimal.NewFromFloat(input.Price).Round(2)
	product.Stock = input.Stock
	product.CategoryID = input.CategoryID
	product.SKU = input.SKU
	product.ImageURL = input.ImageURL
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product and reports whether a row was deleted.
func (s *ProductService) DeleteProduct(id string) (bool, error) {
	return s.productRepo.Delete(id)
}

// GetProductsByCategory retrieves every product referencing a category,
// unordered and unpaginated.
func (s *ProductService) GetProductsByCategory(categoryID uint) ([]models.Product, error) {
	return s.productRepo.ListByCategory(categoryID)
}

// SearchProducts finds products whose name, description or SKU contains the
// query as a case-insensitive substring. No match is an empty page, never an
// error.
func (s *ProductService) SearchProducts(query string, skip, limit int) ([]models.Product, error) {
	return s.productRepo.Search(query, skip, limit)
}

// AdjustStock decrements a product's stock by quantity. It reports false
// without mutating anything when the product is missing or its stock is
// below the requested quantity.
func (s *ProductService) AdjustStock(id string, quantity int) (bool, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, nil
	}
	if product.Stock < quantity {
		return false, nil
	}

	product.Stock -= quantity
	if err := s.productRepo.Update(product); err != nil {
		return false, err
	}

	s.publish(events.TypeProductStockAdjusted, map[string]interface{}{
		"product_id": product.ID,
		"quantity":   quantity,
		"stock":      product.Stock,
	})
	return true, nil
}

// GetSummary returns the aggregate counts for the summary endpoint.
func (s *ProductService) GetSummary() (*models.CatalogSummary, error) {
	totalProducts, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.CountStockBelow(LowStockThreshold)
	if err != nil {
		return nil, err
	}
	totalCategories, err := s.categoryRepo.Count()
	if err != nil {
		return nil, err
	}
	return &models.CatalogSummary{
		TotalProducts:     totalProducts,
		TotalCategories:   totalCategories,
		LowStockProducts:  lowStock,
		LowStockThreshold: LowStockThreshold,
	}, nil
}

// GetTopSelling returns the products with the highest summed sale-line
// quantity, capped at limit (DefaultTopSellingLimit when limit <= 0).
func (s *ProductService) GetTopSelling(limit int) ([]models.TopSellingProduct, error) {
	if limit <= 0 {
		limit = DefaultTopSellingLimit
	}
	return s.productRepo.TopSelling(limit)
}

// publish sends one event, logging instead of failing the operation when the
// broker rejects it. A nil client disables publishing entirely.
func (s *ProductService) publish(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.Publish(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
