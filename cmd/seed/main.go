// Command seed populates the catalog database with demonstration data: the
// five default categories and 200 synthetic products, optionally with sample
// images pushed through the configured uploader.
package main

import (
	"context"
	"log"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/seeder"
	"catalogo/internal/services"
	"catalogo/pkg/uploader"
)

func main() {
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SQLITE_PATH", "catalogo.db")
	viper.SetDefault("SEED_PRODUCT_COUNT", 200)
	viper.SetDefault("SEED_WITH_IMAGES", false)
	viper.SetDefault("MINIO_ENDPOINT", "")
	viper.SetDefault("MINIO_ACCESS_KEY", "")
	viper.SetDefault("MINIO_SECRET_KEY", "")
	viper.SetDefault("MINIO_BUCKET", "catalogo-images")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.AutomaticEnv()

	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.SaleItem{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	categoryService := services.NewCategoryService(categoryRepo, productRepo)

	cfg := seeder.DefaultConfig()
	cfg.ProductCount = viper.GetInt("SEED_PRODUCT_COUNT")

	var up uploader.Uploader
	if viper.GetBool("SEED_WITH_IMAGES") {
		up = buildUploader()
	}

	s := seeder.New(categoryService, productRepo, up, cfg)
	report, err := s.Run(context.Background())
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeding complete: %d categories created, %d products created, %d images attached",
		report.CategoriesCreated, report.ProductsCreated, report.ImagesAttached)
	log.Println("Products per category:")
	for name, count := range report.PerCategory {
		log.Printf("  - %s: %d", name, count)
	}
}

func openDatabase() (*gorm.DB, error) {
	if dsn := viper.GetString("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), &gorm.Config{})
}

// buildUploader prefers MinIO when configured, falling back to local disk so
// a seeding run always has somewhere to put images.
func buildUploader() uploader.Uploader {
	if endpoint := viper.GetString("MINIO_ENDPOINT"); endpoint != "" {
		up, err := uploader.NewMinioUploader(uploader.MinioConfig{
			Endpoint:  endpoint,
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
		})
		if err != nil {
			log.Printf("Warning: MinIO unavailable, using local uploads: %v", err)
		} else if err := up.EnsureBucket(context.Background()); err != nil {
			log.Printf("Warning: MinIO bucket unavailable, using local uploads: %v", err)
		} else {
			return up
		}
	}
	return uploader.NewLocalUploader(viper.GetString("UPLOAD_DIR"), viper.GetString("BASE_URL"))
}
