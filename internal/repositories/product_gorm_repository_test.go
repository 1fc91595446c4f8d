package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"catalogo/internal/models"
	"catalogo/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory SQLite database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}, &models.SaleItem{}))
	return db
}

func newProduct(name, description, sku string, stock int, categoryID uint) models.Product {
	p := models.Product{
		Name:        name,
		Description: description,
		Price:       decimal.NewFromFloat(19.99),
		Stock:       stock,
		CategoryID:  categoryID,
	}
	if sku != "" {
		p.SKU = &sku
	}
	return p
}

func TestGORMProductRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	byName := newProduct("Camisa SHIRT Roja", "prenda superior", "RO-0001-0001", 5, 1)
	byDescription := newProduct("Prenda básica", "a soft shirt for summer", "RO-0002-0002", 5, 1)
	bySKU := newProduct("Prenda premium", "edición limitada", "SHIRT-0003", 5, 1)
	unrelated := newProduct("Pantalón", "prenda inferior", "RO-0004-0004", 5, 1)
	for _, p := range []models.Product{byName, byDescription, bySKU, unrelated} {
		require.NoError(t, repo.Create(&p))
	}

	results, err := repo.Search("shirt", 0, 100)
	require.NoError(t, err)

	names := make([]string, len(results))
	for i, p := range results {
		names[i] = p.Name
	}
	assert.ElementsMatch(t, []string{"Camisa SHIRT Roja", "Prenda básica", "Prenda premium"}, names)

	// No match is an empty page, not an error.
	empty, err := repo.Search("zzz-no-such-thing", 0, 100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGORMProductRepository_ListPaging(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	for i := 1; i <= 15; i++ {
		p := newProduct(fmt.Sprintf("P-%02d", i), "", "", 5, 1)
		require.NoError(t, repo.Create(&p))
	}

	page, err := repo.List(10, 5)
	require.NoError(t, err)
	require.Len(t, page, 5)

	// Store-default order on SQLite is insertion order, so skipping ten
	// rows lands on P-11.
	for i, p := range page {
		assert.Equal(t, fmt.Sprintf("P-%02d", i+11), p.Name)
	}
}

func TestGORMProductRepository_GetAndDeleteAbsent(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	product, err := repo.GetByID("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, product)

	deleted, err := repo.Delete("no-such-id")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGORMProductRepository_CreateBatchRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	// The third row collides on SKU with the first; the whole batch must
	// roll back, leaving the table empty.
	batch := []models.Product{
		newProduct("Uno", "", "DUP-0001", 1, 1),
		newProduct("Dos", "", "EL-0002-0002", 1, 1),
		newProduct("Tres", "", "DUP-0001", 1, 1),
	}
	err := repo.CreateBatch(batch)
	require.Error(t, err)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGORMProductRepository_Counts(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	require.NoError(t, repo.CreateBatch([]models.Product{
		newProduct("Bajo stock", "", "", 3, 1),
		newProduct("Stock normal", "", "", 50, 1),
		newProduct("Otra categoría", "", "", 2, 2),
	}))

	total, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	low, err := repo.CountStockBelow(10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), low)

	inCategory, err := repo.CountByCategory(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), inCategory)
}

func TestGORMProductRepository_TopSelling(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	slow := newProduct("Lento", "", "", 5, 1)
	steady := newProduct("Constante", "", "", 5, 1)
	fast := newProduct("Rápido", "", "", 5, 1)
	for _, p := range []*models.Product{&slow, &steady, &fast} {
		require.NoError(t, repo.Create(p))
	}

	sales := []models.SaleItem{
		{ProductID: slow.ID, Quantity: 3},
		{ProductID: steady.ID, Quantity: 5},
		{ProductID: steady.ID, Quantity: 7},
		{ProductID: fast.ID, Quantity: 20},
	}
	require.NoError(t, db.Create(&sales).Error)

	rows, err := repo.TopSelling(2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, fast.ID, rows[0].ProductID)
	assert.Equal(t, 20, rows[0].TotalSold)
	assert.Equal(t, steady.ID, rows[1].ProductID)
	assert.Equal(t, 12, rows[1].TotalSold)
}

func TestGORMCategoryRepository_GetByNameCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMCategoryRepository(db)

	category := models.Category{Name: "Electrónicos", Description: "Dispositivos"}
	require.NoError(t, repo.Create(&category))
	assert.NotZero(t, category.ID, "the store assigns the id")

	found, err := repo.GetByName("ELECTRóNICOS")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, category.ID, found.ID)

	missing, err := repo.GetByName("Juguetes")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGORMCategoryRepository_DeleteReportsMatch(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMCategoryRepository(db)

	category := models.Category{Name: "Ropa"}
	require.NoError(t, repo.Create(&category))

	deleted, err := repo.Delete(category.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	again, err := repo.Delete(category.ID)
	require.NoError(t, err)
	assert.False(t, again)
}
