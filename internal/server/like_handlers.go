package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleLike flips the caller's like on a post and returns the
// resulting state with the authoritative counter.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	var body struct {
		PostID uint `json:"post_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}

	result, err := s.postService.ToggleLike(c.Context(), userID, body.PostID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(result)
}

// CheckLike reports whether the caller currently likes the post.
func (s *Server) CheckLike(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	liked, err := s.postService.CheckLike(c.Context(), userID, postID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"isLiked": liked})
}

// GetUserLikes returns the posts the caller has liked, newest first.
func (s *Server) GetUserLikes(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	q := parsePageQuery(c)
	page, err := s.postService.ListUserLikes(c.Context(), userID, q.Page, q.Limit)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(page)
}
