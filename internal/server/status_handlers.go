package server

import (
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetStatuses returns the read-only publication status reference rows.
// Clients resolve status ids from this endpoint instead of hardcoding
// them.
func (s *Server) GetStatuses(c *fiber.Ctx) error {
	var statuses []models.Status
	err := cache.Aside(c.Context(), cache.StatusesKey, &statuses, cache.StatusesTTL, func() error {
		return s.db.WithContext(c.Context()).Order("id ASC").Find(&statuses).Error
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"statuses": statuses})
}

// GetStatus returns a single status row by ID.
func (s *Server) GetStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var status models.Status
	if err := s.db.WithContext(c.Context()).First(&status, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return mapServiceError(c, models.NewNotFoundError("Status", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(status)
}
