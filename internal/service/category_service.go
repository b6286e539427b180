package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// CategoryService handles category business logic
type CategoryService struct {
	categories repository.CategoryRepository
	posts      repository.PostRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categories repository.CategoryRepository, posts repository.PostRepository) *CategoryService {
	return &CategoryService{categories: categories, posts: posts}
}

// ListCategories returns all categories ordered by name.
func (s *CategoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return categories, nil
}

// GetCategory returns a single category by id.
func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return category, nil
}

// CreateCategory adds a new category. Names are unique.
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Category name is required")
	}

	category := &models.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}
	return category, nil
}

// UpdateCategory renames a category.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Category name is required")
	}

	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}
	return category, nil
}

// DeleteCategory removes a category. Categories still referenced by
// posts cannot be deleted.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	count, err := s.posts.CountByCategory(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if count > 0 {
		return models.NewConflictError("Cannot delete category that is being used by posts")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
