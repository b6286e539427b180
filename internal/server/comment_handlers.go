package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetComments returns a page of comments for a post, newest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	q := parsePageQuery(c)
	page, err := s.commentService.ListComments(c.Context(), postID, q.Page, q.Limit)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(page)
}

type commentBody struct {
	PostID      uint   `json:"post_id"`
	CommentText string `json:"comment_text"`
}

// CreateComment adds a comment to a post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	var body commentBody
	if err := c.BodyParser(&body); err != nil || body.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id and comment_text are required"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), userID, body.PostID, body.CommentText)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment edits a comment. Authors only.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var body struct {
		CommentText string `json:"comment_text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), userID, id, body.CommentText)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment removes a comment. The author or an admin may delete.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), userID, id); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
