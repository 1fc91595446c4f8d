package handlers

import (
	"log"
	"os"
	"path/filepath"

	"catalogo/pkg/uploader"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadHandler forwards multipart image uploads to the media host and
// returns the hosted URL. Upstream failures surface as an error payload,
// never as a crash.
type UploadHandler struct {
	uploader uploader.Uploader
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(up uploader.Uploader) *UploadHandler {
	return &UploadHandler{
		uploader: up,
	}
}

// RegisterRoutes registers the upload route with the Fiber app.
func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload", h.HandleUpload)
}

// HandleUpload accepts one multipart file, stages it in a temp file and
// pushes it through the uploader.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	if h.uploader == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Image uploads are not configured",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	tempPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, tempPath); err != nil {
		log.Printf("Error staging upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save uploaded file",
		})
	}
	defer os.Remove(tempPath)

	imageURL, err := h.uploader.Upload(c.Context(), tempPath)
	if err != nil {
		log.Printf("Error uploading image: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload image",
		})
	}

	return c.JSON(fiber.Map{
		"image_url": imageURL,
	})
}
