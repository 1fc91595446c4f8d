// Package seeder populates the catalog with demonstration data: the five
// default categories plus a batch of synthetic products, optionally with a
// downloaded sample image each. It is a one-shot batch procedure, not a
// service endpoint.
package seeder

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"
	"catalogo/pkg/backoff"
	"catalogo/pkg/uploader"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Config controls the shape and pacing of a seeding run. The defaults match
// the demonstration dataset: 200 products priced between 10 and 1000.
type Config struct {
	ProductCount int
	PriceMin     float64
	PriceMax     float64
	MaxStock     int

	// Image download behaviour. Retries counts attempts after the first;
	// the delay before retry n is RetryBase doubled n times, capped at
	// RetryMax (1s, 2s, 4s with the defaults).
	ImageRetries int
	RetryBase    time.Duration
	RetryMax     time.Duration
	HTTPTimeout  time.Duration
	ImageURLs    []string

	// Pause between products, applied whether or not an image was fetched,
	// to bound the request rate against the image source.
	Pause time.Duration
}

// DefaultConfig returns the standard demonstration-data configuration.
func DefaultConfig() Config {
	return Config{
		ProductCount: 200,
		PriceMin:     10.0,
		PriceMax:     1000.0,
		MaxStock:     100,
		ImageRetries: 3,
		RetryBase:    time.Second,
		RetryMax:     4 * time.Second,
		HTTPTimeout:  10 * time.Second,
		ImageURLs: []string{
			"https://picsum.photos/seed/catalogo1/640/480",
			"https://picsum.photos/seed/catalogo2/640/480",
			"https://picsum.photos/seed/catalogo3/640/480",
			"https://picsum.photos/seed/catalogo4/640/480",
		},
		Pause: 200 * time.Millisecond,
	}
}

// Report summarizes what one seeding run produced.
type Report struct {
	CategoriesCreated int
	ProductsCreated   int
	ImagesAttached    int
	PerCategory       map[string]int64
}

// Seeder generates and commits the demonstration dataset. When uploader is
// nil, products are created without images.
type Seeder struct {
	categories *services.CategoryService
	products   repositories.ProductRepository
	uploader   uploader.Uploader
	httpClient *http.Client
	cfg        Config
	faker      *gofakeit.Faker
}

// New creates a Seeder.
func New(categories *services.CategoryService, products repositories.ProductRepository, up uploader.Uploader, cfg Config) *Seeder {
	return &Seeder{
		categories: categories,
		products:   products,
		uploader:   up,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		cfg:        cfg,
		faker:      gofakeit.New(0),
	}
}

// Run seeds the default categories (idempotently), then builds the full
// product batch and commits it in a single transaction. A failed commit
// rolls back every product; the categories stay, as they were committed
// one by one.
func (s *Seeder) Run(ctx context.Context) (*Report, error) {
	report := &Report{PerCategory: make(map[string]int64)}

	created, err := s.categories.SeedDefaultCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}
	report.CategoriesCreated = created

	categories, err := s.categories.GetCategories(0, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories available after seeding")
	}

	batch := make([]models.Product, 0, s.cfg.ProductCount)
	usedSKUs := make(map[string]bool, s.cfg.ProductCount)
	for i := 1; i <= s.cfg.ProductCount; i++ {
		category := categories[s.faker.Number(0, len(categories)-1)]
		sku := s.makeSKU(category.Name, usedSKUs)

		product := models.Product{
			ID:          uuid.New().String(),
			Name:        fmt.Sprintf("Producto %d - %s", i, s.faker.Word()),
			Description: s.faker.Sentence(10),
			Price:       s.randomPrice(),
			Stock:       s.faker.Number(0, s.cfg.MaxStock),
			CategoryID:  category.ID,
			SKU:         &sku,
		}

		if s.uploader != nil && len(s.cfg.ImageURLs) > 0 {
			imageURL, err := s.attachImage(ctx)
			if err != nil {
				log.Printf("Skipping image for product %d: %v", i, err)
			} else {
				product.ImageURL = imageURL
				report.ImagesAttached++
			}
		}

		batch = append(batch, product)

		if i%50 == 0 {
			log.Printf("Generated %d of %d products", i, s.cfg.ProductCount)
		}
		if s.cfg.Pause > 0 {
			time.Sleep(s.cfg.Pause)
		}
	}

	if err := s.products.CreateBatch(batch); err != nil {
		return report, fmt.Errorf("failed to commit product batch: %w", err)
	}
	report.ProductsCreated = len(batch)

	for _, category := range categories {
		count, err := s.products.CountByCategory(category.ID)
		if err != nil {
			return report, fmt.Errorf("failed to count products for %s: %w", category.Name, err)
		}
		report.PerCategory[category.Name] = count
	}
	return report, nil
}

// randomPrice draws a uniform price in [PriceMin, PriceMax] rounded to two
// decimals.
func (s *Seeder) randomPrice() decimal.Decimal {
	value := s.faker.Float64Range(s.cfg.PriceMin, s.cfg.PriceMax)
	return decimal.NewFromFloat(value).Round(2)
}

// makeSKU builds a SKU from the upper-cased initials of the category name
// plus a random ####-#### suffix. Suffixes are regenerated on collision with
// an earlier one from this run, so the unique sku column cannot reject the
// batch commit.
func (s *Seeder) makeSKU(categoryName string, used map[string]bool) string {
	var initials strings.Builder
	for _, word := range strings.Fields(categoryName) {
		initials.WriteRune([]rune(word)[0])
	}
	prefix := strings.ToUpper(initials.String())

	for {
		sku := fmt.Sprintf("%s-%s", prefix, s.faker.Numerify("####-####"))
		if !used[sku] {
			used[sku] = true
			return sku
		}
	}
}

// attachImage downloads one of the sample images and forwards it through the
// uploader, returning the hosted URL.
func (s *Seeder) attachImage(ctx context.Context) (string, error) {
	data, err := s.fetchImage(ctx)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "seed-image-*.jpg")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	return s.uploader.Upload(ctx, tmpPath)
}

// fetchImage downloads a random sample image, retrying transient failures up
// to ImageRetries times with exponential backoff between attempts.
func (s *Seeder) fetchImage(ctx context.Context) ([]byte, error) {
	url := s.cfg.ImageURLs[s.faker.Number(0, len(s.cfg.ImageURLs)-1)]

	var lastErr error
	for attempt := 0; attempt <= s.cfg.ImageRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff.Exponential(s.cfg.RetryBase, s.cfg.RetryMax, attempt-1))
		}

		data, err := s.download(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err
		log.Printf("Image download attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("image download failed after %d retries: %w", s.cfg.ImageRetries, lastErr)
}

func (s *Seeder) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
