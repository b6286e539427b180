// Package service contains business logic between handlers and repositories.
package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

const (
	// DefaultPage and DefaultLimit are the listing defaults applied when
	// the request omits or mangles the paging parameters.
	DefaultPage  = 1
	DefaultLimit = 6
	MaxLimit     = 100

	// StatusFilterAll disables the status constraint entirely. Only
	// admins may request it.
	StatusFilterAll = "all"
)

// ListPostsInput is the typed request for a post listing. Category and
// Status arrive as raw query strings and are resolved here; AllowDrafts
// reflects the caller's admin standing, decided by the handler from the
// session.
type ListPostsInput struct {
	Page        int
	Limit       int
	Category    string
	Keyword     string
	Status      string
	AllowDrafts bool
}

// CreatePostInput carries a validated post creation request.
type CreatePostInput struct {
	Title       string
	Image       string
	CategoryID  uint
	Description string
	Content     string
	StatusID    uint
	UserID      uint
}

// UpdatePostInput carries a post edit. Zero-valued fields keep the
// stored value; last write wins on concurrent edits.
type UpdatePostInput struct {
	Title       string
	Image       string
	CategoryID  uint
	Description string
	Content     string
	StatusID    uint
}

// LikeResult is the outcome of a like toggle: the caller's resulting
// membership and the authoritative counter.
type LikeResult struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likes_count"`
}

// PostService handles post business logic
type PostService struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
}

// NewPostService creates a new post service
func NewPostService(posts repository.PostRepository, categories repository.CategoryRepository) *PostService {
	return &PostService{posts: posts, categories: categories}
}

// resolveCategory turns the raw category parameter into an id
// constraint. All-digit input is treated as an id; anything else is an
// exact, case-sensitive name lookup. An unknown name or id drops the
// constraint silently rather than failing the listing.
func (s *PostService) resolveCategory(ctx context.Context, raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
		if _, err := s.categories.GetByID(ctx, uint(id)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, nil
			}
			return 0, models.NewInternalError(err)
		}
		return uint(id), nil
	}

	category, err := s.categories.GetByName(ctx, raw)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, models.NewInternalError(err)
	}
	return category.ID, nil
}

// resolveStatus maps the raw status parameter onto a status id
// constraint. The public default is published-only; drafts and the
// unrestricted "all" view require AllowDrafts.
func resolveStatus(raw string, allowDrafts bool) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if allowDrafts {
			return 0, nil
		}
		return models.StatusPublished, nil
	}
	if raw == StatusFilterAll {
		if !allowDrafts {
			return 0, models.NewForbiddenError("Draft posts are not publicly visible")
		}
		return 0, nil
	}

	id, ok := models.StatusIDByLabel(raw)
	if !ok {
		return 0, models.NewValidationError("Unknown status filter: " + raw)
	}
	if id != models.StatusPublished && !allowDrafts {
		return 0, models.NewForbiddenError("Draft posts are not publicly visible")
	}
	return id, nil
}

// ListPosts resolves the raw listing parameters into a repository
// filter, runs the page query and assembles the envelope.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*models.PostPage, error) {
	page := in.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := in.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	categoryID, err := s.resolveCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	statusID, err := resolveStatus(in.Status, in.AllowDrafts)
	if err != nil {
		return nil, err
	}

	observability.PostListingRequests.WithLabelValues(
		observability.BoolLabel(categoryID != 0),
		observability.BoolLabel(in.Keyword != ""),
		observability.BoolLabel(statusID != 0),
	).Inc()

	filter := repository.PostFilter{
		CategoryID: categoryID,
		Keyword:    strings.TrimSpace(in.Keyword),
		StatusID:   statusID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	posts, total, err := s.posts.ListPage(ctx, filter)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return models.NewPostPage(posts, total, page, limit), nil
}

// GetPost returns a single post by id.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// CreatePost validates and persists a new post.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if in.CategoryID == 0 {
		return nil, models.NewValidationError("Category is required")
	}
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewValidationError("Category does not exist")
		}
		return nil, models.NewInternalError(err)
	}

	statusID := in.StatusID
	if statusID == 0 {
		statusID = models.StatusDraft
	}
	if models.StatusLabel(statusID) == "" {
		return nil, models.NewValidationError("Unknown status")
	}

	post := &models.Post{
		Title:       in.Title,
		Image:       in.Image,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		Content:     in.Content,
		StatusID:    statusID,
		UserID:      in.UserID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetPost(ctx, post.ID)
}

// UpdatePost applies a partial edit to an existing post.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in UpdatePostInput) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}

	if in.Title != "" {
		post.Title = in.Title
	}
	if in.Image != "" {
		post.Image = in.Image
	}
	if in.Description != "" {
		post.Description = in.Description
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if in.CategoryID != 0 {
		if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewValidationError("Category does not exist")
			}
			return nil, models.NewInternalError(err)
		}
		post.CategoryID = in.CategoryID
	}
	if in.StatusID != 0 {
		if models.StatusLabel(in.StatusID) == "" {
			return nil, models.NewValidationError("Unknown status")
		}
		post.StatusID = in.StatusID
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetPost(ctx, id)
}

// DeletePost removes a post together with its likes and comments.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if _, err := s.posts.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", id)
		}
		return models.NewInternalError(err)
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ToggleLike flips the caller's like on the post. Toggling twice
// restores the starting state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*LikeResult, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}

	liked, count, err := s.posts.ToggleLike(ctx, userID, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.LikeToggles.WithLabelValues(likeToggleResult(liked)).Inc()
	return &LikeResult{IsLiked: liked, LikesCount: count}, nil
}

func likeToggleResult(liked bool) string {
	if liked {
		return "liked"
	}
	return "unliked"
}

// CheckLike reports whether the user currently likes the post.
func (s *PostService) CheckLike(ctx context.Context, userID, postID uint) (bool, error) {
	liked, err := s.posts.IsLiked(ctx, userID, postID)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return liked, nil
}

// ListUserLikes returns the posts the user has liked, newest first.
func (s *PostService) ListUserLikes(ctx context.Context, userID uint, page, limit int) (*models.LikePage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	likes, total, err := s.posts.ListLikesByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if likes == nil {
		likes = []*models.Like{}
	}
	return &models.LikePage{
		Likes:       likes,
		TotalLikes:  total,
		TotalPages:  models.TotalPages(total, limit),
		CurrentPage: page,
		Limit:       limit,
	}, nil
}
