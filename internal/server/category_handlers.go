package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCategories returns all categories.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryService.ListCategories(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"categories": categories,
		"total":      len(categories),
	})
}

// GetCategory returns a single category by ID.
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, err := s.categoryService.GetCategory(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(category)
}

type categoryBody struct {
	Name string `json:"name"`
}

// CreateCategory adds a new category (admin only).
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var body categoryBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.CreateCategory(c.Context(), body.Name)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory renames a category (admin only).
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var body categoryBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.UpdateCategory(c.Context(), id, body.Name)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory removes a category (admin only). Categories in use by
// posts cannot be deleted.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.categoryService.DeleteCategory(c.Context(), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
