package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubPostRepo implements repository.PostRepository with overridable
// function fields.
type stubPostRepo struct {
	createFn          func(ctx context.Context, post *models.Post) error
	getByIDFn         func(ctx context.Context, id uint) (*models.Post, error)
	listPageFn        func(ctx context.Context, f repository.PostFilter) ([]*models.Post, int64, error)
	updateFn          func(ctx context.Context, post *models.Post) error
	deleteFn          func(ctx context.Context, id uint) error
	countByCategoryFn func(ctx context.Context, categoryID uint) (int64, error)
	isLikedFn         func(ctx context.Context, userID, postID uint) (bool, error)
	toggleLikeFn      func(ctx context.Context, userID, postID uint) (bool, int, error)
	listLikesFn       func(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, int64, error)
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubPostRepo) ListPage(ctx context.Context, f repository.PostFilter) ([]*models.Post, int64, error) {
	return s.listPageFn(ctx, f)
}

func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}

func (s *stubPostRepo) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *stubPostRepo) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	return s.countByCategoryFn(ctx, categoryID)
}

func (s *stubPostRepo) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}

func (s *stubPostRepo) ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}

func (s *stubPostRepo) ListLikesByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, int64, error) {
	return s.listLikesFn(ctx, userID, limit, offset)
}

// stubCategoryRepo implements repository.CategoryRepository.
type stubCategoryRepo struct {
	createFn    func(ctx context.Context, category *models.Category) error
	getByIDFn   func(ctx context.Context, id uint) (*models.Category, error)
	getByNameFn func(ctx context.Context, name string) (*models.Category, error)
	listFn      func(ctx context.Context) ([]*models.Category, error)
	updateFn    func(ctx context.Context, category *models.Category) error
	deleteFn    func(ctx context.Context, id uint) error
}

func (s *stubCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}

func (s *stubCategoryRepo) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubCategoryRepo) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return s.getByNameFn(ctx, name)
}

func (s *stubCategoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	return s.listFn(ctx)
}

func (s *stubCategoryRepo) Update(ctx context.Context, category *models.Category) error {
	return s.updateFn(ctx, category)
}

func (s *stubCategoryRepo) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func makePosts(n int) []*models.Post {
	posts := make([]*models.Post, n)
	for i := range posts {
		posts[i] = &models.Post{ID: uint(i + 1), Title: "Post"}
	}
	return posts
}

func TestPostService_ListPosts_Defaults(t *testing.T) {
	var captured repository.PostFilter
	posts := &stubPostRepo{
		listPageFn: func(_ context.Context, f repository.PostFilter) ([]*models.Post, int64, error) {
			captured = f
			return makePosts(6), 8, nil
		},
	}
	svc := NewPostService(posts, &stubCategoryRepo{})

	page, err := svc.ListPosts(context.Background(), ListPostsInput{})
	require.NoError(t, err)

	assert.Equal(t, DefaultLimit, captured.Limit)
	assert.Equal(t, 0, captured.Offset)
	assert.Equal(t, models.StatusPublished, captured.StatusID)

	assert.Equal(t, int64(8), page.TotalPosts)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	require.NotNil(t, page.NextPage)
	assert.Equal(t, 2, *page.NextPage)
}

func TestPostService_ListPosts_LastPage(t *testing.T) {
	posts := &stubPostRepo{
		listPageFn: func(_ context.Context, f repository.PostFilter) ([]*models.Post, int64, error) {
			assert.Equal(t, 6, f.Offset)
			return makePosts(2), 8, nil
		},
	}
	svc := NewPostService(posts, &stubCategoryRepo{})

	page, err := svc.ListPosts(context.Background(), ListPostsInput{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Nil(t, page.NextPage)
}

func TestPostService_ListPosts_EmptyResult(t *testing.T) {
	posts := &stubPostRepo{
		listPageFn: func(_ context.Context, f repository.PostFilter) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
	}
	svc := NewPostService(posts, &stubCategoryRepo{})

	page, err := svc.ListPosts(context.Background(), ListPostsInput{})
	require.NoError(t, err)
	assert.NotNil(t, page.Posts)
	assert.Empty(t, page.Posts)
	assert.Equal(t, 0, page.TotalPages)
	assert.Nil(t, page.NextPage)
}

func TestPostService_ListPosts_CategoryResolution(t *testing.T) {
	tech := &models.Category{ID: 3, Name: "Tech"}
	categories := &stubCategoryRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
			if id == 3 {
				return tech, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		getByNameFn: func(_ context.Context, name string) (*models.Category, error) {
			if name == "Tech" {
				return tech, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}

	tests := []struct {
		name       string
		category   string
		expectedID uint
	}{
		{"numeric id", "3", 3},
		{"name lookup", "Tech", 3},
		{"unknown name drops the constraint", "Nope", 0},
		{"unknown id drops the constraint", "42", 0},
		{"blank", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured repository.PostFilter
			posts := &stubPostRepo{
				listPageFn: func(_ context.Context, f repository.PostFilter) ([]*models.Post, int64, error) {
					captured = f
					return nil, 0, nil
				},
			}
			svc := NewPostService(posts, categories)

			_, err := svc.ListPosts(context.Background(), ListPostsInput{Category: tt.category})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, captured.CategoryID)
		})
	}
}

func TestPostService_ListPosts_StatusVisibility(t *testing.T) {
	tests := []struct {
		name         string
		status       string
		allowDrafts  bool
		expectedID   uint
		expectedCode string
	}{
		{"public default is published", "", false, models.StatusPublished, ""},
		{"admin default is unconstrained", "", true, 0, ""},
		{"public draft request is forbidden", "draft", false, 0, models.CodeForbidden},
		{"public all request is forbidden", "all", false, 0, models.CodeForbidden},
		{"admin draft request", "draft", true, models.StatusDraft, ""},
		{"admin all request", "all", true, 0, ""},
		{"unknown label", "archived", true, 0, models.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured repository.PostFilter
			posts := &stubPostRepo{
				listPageFn: func(_ context.Context, f repository.PostFilter) ([]*models.Post, int64, error) {
					captured = f
					return nil, 0, nil
				},
			}
			svc := NewPostService(posts, &stubCategoryRepo{})

			_, err := svc.ListPosts(context.Background(), ListPostsInput{
				Status:      tt.status,
				AllowDrafts: tt.allowDrafts,
			})

			if tt.expectedCode != "" {
				var appErr *models.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.expectedCode, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, captured.StatusID)
		})
	}
}

func TestPostService_ToggleLike(t *testing.T) {
	post := &models.Post{ID: 5}
	liked := true
	posts := &stubPostRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			if id == 5 {
				return post, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		toggleLikeFn: func(_ context.Context, userID, postID uint) (bool, int, error) {
			liked = !liked
			count := 1
			if !liked {
				count = 0
			}
			return liked, count, nil
		},
	}
	svc := NewPostService(posts, &stubCategoryRepo{})
	ctx := context.Background()

	// Toggling twice restores the starting state.
	first, err := svc.ToggleLike(ctx, 2, 5)
	require.NoError(t, err)
	assert.False(t, first.IsLiked)
	assert.Equal(t, 0, first.LikesCount)

	second, err := svc.ToggleLike(ctx, 2, 5)
	require.NoError(t, err)
	assert.True(t, second.IsLiked)
	assert.Equal(t, 1, second.LikesCount)

	_, err = svc.ToggleLike(ctx, 2, 99)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	categories := &stubCategoryRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
			if id == 1 {
				return &models.Category{ID: 1}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewPostService(&stubPostRepo{}, categories)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{"missing title", CreatePostInput{Content: "c", CategoryID: 1}},
		{"missing content", CreatePostInput{Title: "t", CategoryID: 1}},
		{"missing category", CreatePostInput{Title: "t", Content: "c"}},
		{"unknown category", CreatePostInput{Title: "t", Content: "c", CategoryID: 9}},
		{"unknown status", CreatePostInput{Title: "t", Content: "c", CategoryID: 1, StatusID: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, tt.input)
			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, models.CodeValidation, appErr.Code)
		})
	}
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	posts := &stubPostRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewPostService(posts, &stubCategoryRepo{})

	_, err := svc.GetPost(context.Background(), 42)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
