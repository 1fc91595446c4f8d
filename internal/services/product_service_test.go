package services_test

import (
	"testing"

	"catalogo/internal/models"
	"catalogo/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) CreateBatch(products []models.Product) error {
	args := m.Called(products)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(offset, limit int) ([]models.Product, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) ListByCategory(categoryID uint) ([]models.Product, error) {
	args := m.Called(categoryID)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Search(query string, offset, limit int) ([]models.Product, error) {
	args := m.Called(query, offset, limit)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(categoryID uint) (int64, error) {
	args := m.Called(categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountStockBelow(threshold int) (int64, error) {
	args := m.Called(threshold)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) TopSelling(limit int) ([]models.TopSellingProduct, error) {
	args := m.Called(limit)
	return args.Get(0).([]models.TopSellingProduct), args.Error(1)
}

func TestProductService_CreateProduct(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	sku := "EL-0001-0002"
	input := services.ProductInput{
		Name:        "Teclado mecánico",
		Description: "Teclado con switches rojos",
		Price:       79.999,
		Stock:       12,
		CategoryID:  1,
		SKU:         &sku,
	}

	productRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil)

	product, err := service.CreateProduct(input)
	assert.NoError(t, err)
	assert.NotEmpty(t, product.ID, "a fresh identifier must be generated")
	assert.Equal(t, "Teclado mecánico", product.Name)
	assert.Equal(t, uint(1), product.CategoryID)
	assert.Equal(t, &sku, product.SKU)
	// Price is rounded to two decimals on ingest.
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(80.00)), "got %s", product.Price)

	productRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_DoesNotCheckCategory(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	productRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil)

	// CategoryID 999 references nothing; creation still succeeds and the
	// category repository is never consulted.
	_, err := service.CreateProduct(services.ProductInput{Name: "Huérfano", Price: 5, CategoryID: 999})
	assert.NoError(t, err)
	categoryRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	existing := &models.Product{
		ID:         "prod-1",
		Name:       "Viejo",
		Price:      decimal.NewFromFloat(10),
		Stock:      1,
		CategoryID: 1,
	}
	productRepo.On("GetByID", "prod-1").Return(existing, nil)
	productRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil)

	updated, err := service.UpdateProduct("prod-1", services.ProductInput{
		Name:       "Nuevo",
		Price:      25.50,
		Stock:      7,
		CategoryID: 2,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Nuevo", updated.Name)
	assert.Equal(t, 7, updated.Stock)
	assert.Equal(t, uint(2), updated.CategoryID)
	// Full replace: fields omitted from the input are zeroed, not kept.
	assert.Empty(t, updated.Description)
	assert.Nil(t, updated.SKU)

	productRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_Absent(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	productRepo.On("GetByID", "missing").Return(nil, nil)

	updated, err := service.UpdateProduct("missing", services.ProductInput{Name: "X", CategoryID: 1})
	assert.NoError(t, err)
	assert.Nil(t, updated)
	productRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProductService_AdjustStock(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	product := &models.Product{ID: "prod-1", Name: "Camisa", Stock: 10, CategoryID: 1}
	productRepo.On("GetByID", "prod-1").Return(product, nil)
	productRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.Stock == 6
	})).Return(nil)

	ok, err := service.AdjustStock("prod-1", 4)
	assert.NoError(t, err)
	assert.True(t, ok)

	productRepo.AssertExpectations(t)
}

func TestProductService_AdjustStock_Insufficient(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	product := &models.Product{ID: "prod-1", Name: "Camisa", Stock: 3, CategoryID: 1}
	productRepo.On("GetByID", "prod-1").Return(product, nil)

	ok, err := service.AdjustStock("prod-1", 5)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, product.Stock, "stock must stay unchanged on failure")
	productRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProductService_AdjustStock_Missing(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	productRepo.On("GetByID", "missing").Return(nil, nil)

	ok, err := service.AdjustStock("missing", 1)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestProductService_GetSummary(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	productRepo.On("Count").Return(int64(42), nil)
	productRepo.On("CountStockBelow", services.LowStockThreshold).Return(int64(7), nil)
	categoryRepo.On("Count").Return(int64(5), nil)

	summary, err := service.GetSummary()
	assert.NoError(t, err)
	assert.Equal(t, int64(42), summary.TotalProducts)
	assert.Equal(t, int64(7), summary.LowStockProducts)
	assert.Equal(t, int64(5), summary.TotalCategories)
	assert.Equal(t, services.LowStockThreshold, summary.LowStockThreshold)
}

func TestProductService_GetTopSelling_DefaultLimit(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	productRepo.On("TopSelling", services.DefaultTopSellingLimit).Return([]models.TopSellingProduct{}, nil)

	rows, err := service.GetTopSelling(0)
	assert.NoError(t, err)
	assert.Empty(t, rows)
	productRepo.AssertExpectations(t)
}

func TestProductService_SearchProducts(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	expected := []models.Product{{ID: "prod-1", Name: "Camisa azul"}}
	productRepo.On("Search", "camisa", 0, 20).Return(expected, nil)

	products, err := service.SearchProducts("camisa", 0, 20)
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
}
