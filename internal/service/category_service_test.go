package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCategoryService_CreateCategory(t *testing.T) {
	t.Run("blank name", func(t *testing.T) {
		svc := NewCategoryService(&stubCategoryRepo{}, &stubPostRepo{})
		_, err := svc.CreateCategory(context.Background(), "   ")
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("duplicate name surfaces the conflict", func(t *testing.T) {
		categories := &stubCategoryRepo{
			createFn: func(_ context.Context, category *models.Category) error {
				return models.NewConflictError("Category already exists")
			},
		}
		svc := NewCategoryService(categories, &stubPostRepo{})
		_, err := svc.CreateCategory(context.Background(), "Tech")
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})

	t.Run("success trims the name", func(t *testing.T) {
		categories := &stubCategoryRepo{
			createFn: func(_ context.Context, category *models.Category) error {
				category.ID = 1
				return nil
			},
		}
		svc := NewCategoryService(categories, &stubPostRepo{})
		category, err := svc.CreateCategory(context.Background(), "  Travel  ")
		require.NoError(t, err)
		assert.Equal(t, "Travel", category.Name)
	})
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	categories := &stubCategoryRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
			if id == 1 {
				return &models.Category{ID: 1, Name: "Tech"}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		deleteFn: func(_ context.Context, id uint) error { return nil },
	}

	t.Run("blocked while posts reference it", func(t *testing.T) {
		posts := &stubPostRepo{
			countByCategoryFn: func(_ context.Context, categoryID uint) (int64, error) {
				return 3, nil
			},
		}
		svc := NewCategoryService(categories, posts)

		err := svc.DeleteCategory(context.Background(), 1)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeConflict, appErr.Code)
		assert.Equal(t, "Cannot delete category that is being used by posts", appErr.Message)
	})

	t.Run("allowed when unused", func(t *testing.T) {
		posts := &stubPostRepo{
			countByCategoryFn: func(_ context.Context, categoryID uint) (int64, error) {
				return 0, nil
			},
		}
		svc := NewCategoryService(categories, posts)
		assert.NoError(t, svc.DeleteCategory(context.Background(), 1))
	})

	t.Run("missing category", func(t *testing.T) {
		svc := NewCategoryService(categories, &stubPostRepo{})
		err := svc.DeleteCategory(context.Background(), 9)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}
