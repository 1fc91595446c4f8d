package handlers

import (
	"errors"
	"fmt"
	"log"

	"catalogo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	input, ok := h.parseInput(c)
	if !ok {
		return nil
	}

	category, err := h.service.CreateCategory(*input)
	if err != nil {
		if errors.Is(err, services.ErrCategoryExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fmt.Sprintf("Category '%s' already exists", input.Name),
			})
		}
		log.Printf("Error creating category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create category",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleGetCategories retrieves a page of categories.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	categories, err := h.service.GetCategories(skip, limit)
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(categories)
}

// HandleGetCategory retrieves a single category by its ID.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	id, ok := h.parseID(c)
	if !ok {
		return nil
	}

	category, err := h.service.GetCategory(id)
	if err != nil {
		log.Printf("Error getting category %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve category",
			"error":   err.Error(),
		})
	}
	if category == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Category not found",
		})
	}
	return c.JSON(category)
}

// HandleUpdateCategory replaces all fields of an existing category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, ok := h.parseID(c)
	if !ok {
		return nil
	}
	input, ok := h.parseInput(c)
	if !ok {
		return nil
	}

	category, err := h.service.UpdateCategory(id, *input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Category not found",
			})
		case errors.Is(err, services.ErrCategoryExists):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fmt.Sprintf("Category '%s' already exists", input.Name),
			})
		default:
			log.Printf("Error updating category %d: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not update category",
				"error":   err.Error(),
			})
		}
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes a category with no remaining products.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, ok := h.parseID(c)
	if !ok {
		return nil
	}

	deleted, err := h.service.DeleteCategory(id)
	if err != nil {
		if errors.Is(err, services.ErrCategoryHasProducts) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cannot delete a category that still has products",
			})
		}
		log.Printf("Error deleting category %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete category",
			"error":   err.Error(),
		})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Category not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseID reads the :id path parameter. On failure it writes the error
// response and reports ok=false.
func (h *CategoryHandler) parseID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category id",
		})
		return 0, false
	}
	return uint(id), true
}

// parseInput parses and validates the request body. On failure it writes the
// error response and reports ok=false.
func (h *CategoryHandler) parseInput(c *fiber.Ctx) (*services.CategoryInput, bool) {
	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return nil, false
	}

	if err := h.validate.Struct(input); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
		return nil, false
	}
	return &input, true
}
