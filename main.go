package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalogo/internal/handlers"
	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"
	"catalogo/pkg/events"
	"catalogo/pkg/uploader"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SQLITE_PATH", "catalogo.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("MINIO_ENDPOINT", "")
	viper.SetDefault("MINIO_ACCESS_KEY", "")
	viper.SetDefault("MINIO_SECRET_KEY", "")
	viper.SetDefault("MINIO_BUCKET", "catalogo-images")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.SaleItem{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Events client (optional) ---
	// The catalog works without a broker; publishing is simply disabled.
	var mqClient *events.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = events.NewClient(events.Config{URL: mqURL})
		if err != nil {
			log.Printf("Warning: event publishing disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Uploader ---
	up, servesLocalUploads := buildUploader()

	// --- Repositories and services ---
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	categoryService := services.NewCategoryService(categoryRepo, productRepo)
	productService := services.NewProductService(productRepo, categoryRepo, mqClient)

	// Default categories are seeded on every startup; the pass is idempotent.
	if created, err := categoryService.SeedDefaultCategories(); err != nil {
		log.Printf("Warning: failed to seed default categories: %v", err)
	} else if created > 0 {
		log.Printf("Seeded %d default categories", created)
	}

	// --- Handlers ---
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	uploadHandler := handlers.NewUploadHandler(up)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	api := app.Group("/api")
	categoryHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	uploadHandler.RegisterRoutes(api)

	if servesLocalUploads {
		app.Static("/uploads", viper.GetString("UPLOAD_DIR"))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Catalog API is running",
			"version": "1.0.0",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server with graceful shutdown ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase connects to Postgres when DATABASE_URL is set, otherwise to a
// local SQLite file so the service runs without external infrastructure.
func openDatabase() (*gorm.DB, error) {
	if dsn := viper.GetString("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), &gorm.Config{})
}

// buildUploader prefers MinIO when configured and falls back to local-disk
// storage served by this process. The second return reports whether /uploads
// must be served locally.
func buildUploader() (uploader.Uploader, bool) {
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
			return up, false
		}
	}
	return uploader.NewLocalUploader(viper.GetString("UPLOAD_DIR"), viper.GetString("BASE_URL")), true
}
