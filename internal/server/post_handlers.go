package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postListQuery is the typed shape of the listing query string. Parsing
// happens once here; everything past this point works with the struct.
type postListQuery struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	Category string `query:"category"`
	Keyword  string `query:"keyword"`
	Status   string `query:"status"`
}

// GetPosts handles the filtered, paginated post listing.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	var q postListQuery
	if err := c.QueryParser(&q); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid query parameters"))
	}

	// Drafts stay hidden unless the caller is an authenticated admin.
	allowDrafts := false
	if userID, ok := sessionUserID(c); ok {
		allowDrafts = s.isAdmin(c, userID)
	}

	page, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Page:        q.Page,
		Limit:       q.Limit,
		Category:    q.Category,
		Keyword:     q.Keyword,
		Status:      q.Status,
		AllowDrafts: allowDrafts,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(page)
}

// GetPost handles fetching a single post by ID
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(post)
}

// postBody is the shared JSON body for post create and update.
type postBody struct {
	Title       string `json:"title" form:"title"`
	CategoryID  uint   `json:"category_id" form:"category_id"`
	Description string `json:"description" form:"description"`
	Content     string `json:"content" form:"content"`
	StatusID    uint   `json:"status_id" form:"status_id"`
}

// storeImage saves an uploaded image file if one is attached and returns
// its public URL, or "" when the request has no file.
func (s *Server) storeImage(c *fiber.Ctx) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return s.images.Put(c.Context(), f, fh.Header.Get("Content-Type"))
}

// CreatePost handles creating a new post. Accepts JSON or multipart
// form data; the latter may carry an image file.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	var body postBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	image, err := s.storeImage(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		Title:       body.Title,
		Image:       image,
		CategoryID:  body.CategoryID,
		Description: body.Description,
		Content:     body.Content,
		StatusID:    body.StatusID,
		UserID:      userID,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles editing a post. Only the author or an admin may
// edit. Concurrent edits are last-write-wins.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	existing, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	if existing.UserID != userID && !s.isAdmin(c, userID) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only edit your own posts"))
	}

	var body postBody
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	image, err := s.storeImage(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	post, err := s.postService.UpdatePost(c.Context(), id, service.UpdatePostInput{
		Title:       body.Title,
		Image:       image,
		CategoryID:  body.CategoryID,
		Description: body.Description,
		Content:     body.Content,
		StatusID:    body.StatusID,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles deleting a post. Only the author or an admin may
// delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID, ok := sessionUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	existing, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	if existing.UserID != userID && !s.isAdmin(c, userID) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete your own posts"))
	}

	if err := s.postService.DeletePost(c.Context(), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}
