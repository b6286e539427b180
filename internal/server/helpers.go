package server

import (
	"errors"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was
// already committed by a helper. Handlers must return nil (not this
// error) so Fiber's ErrorHandler does not overwrite the response.
var errResponseWritten = errors.New("response already written")

// pageQuery holds parsed page/limit query parameters.
type pageQuery struct {
	Page  int
	Limit int
}

const (
	defaultPage  = 1
	defaultLimit = 6
	maxLimit     = 100
)

// parsePageQuery extracts page and limit query parameters. Absent or
// malformed values fall back to the defaults instead of erroring.
func parsePageQuery(c *fiber.Ctx) pageQuery {
	page := c.QueryInt("page", defaultPage)
	if page < 1 {
		page = defaultPage
	}
	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return pageQuery{Page: page, Limit: limit}
}

// parseID extracts a route parameter by name as a positive uint. On
// failure it writes a 400 JSON response and returns errResponseWritten;
// callers should check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// sessionUserID returns the authenticated user id set by AuthRequired.
func sessionUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}

// isAdmin checks whether the given user has admin privileges.
func (s *Server) isAdmin(c *fiber.Ctx, userID uint) bool {
	var user models.User
	if err := s.db.WithContext(c.Context()).Select("role").First(&user, userID).Error; err != nil {
		return false
	}
	return user.IsAdmin()
}

// mapServiceError writes the HTTP response for a service-layer error.
// This is the single place error codes become HTTP statuses.
func mapServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case models.CodeValidation:
		status = fiber.StatusBadRequest
	case models.CodeNotFound:
		status = fiber.StatusNotFound
	case models.CodeConflict:
		status = fiber.StatusConflict
	case models.CodeUnauthorized:
		status = fiber.StatusUnauthorized
	case models.CodeForbidden:
		status = fiber.StatusForbidden
	}
	return models.RespondWithError(c, status, appErr)
}
