package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// CommentService handles comment business logic
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	users    repository.UserRepository
}

// NewCommentService creates a new comment service
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, users repository.UserRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts, users: users}
}

// CreateComment adds a comment to an existing post.
func (s *CommentService) CreateComment(ctx context.Context, userID, postID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}

	comment := &models.Comment{
		PostID:      postID,
		UserID:      userID,
		CommentText: text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// ListComments returns a page of comments for a post, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint, page, limit int) (*models.CommentPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}

	comments, total, err := s.comments.ListByPost(ctx, postID, limit, (page-1)*limit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return &models.CommentPage{
		Comments:      comments,
		TotalComments: total,
		TotalPages:    models.TotalPages(total, limit),
		CurrentPage:   page,
		Limit:         limit,
	}, nil
}

// UpdateComment edits a comment. Only the author may edit.
func (s *CommentService) UpdateComment(ctx context.Context, userID, commentID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		return nil, models.NewInternalError(err)
	}
	if comment.UserID != userID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	comment.CommentText = text
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// DeleteComment removes a comment. The author or an admin may delete.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", commentID)
		}
		return models.NewInternalError(err)
	}

	if comment.UserID != userID {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil || !user.IsAdmin() {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
