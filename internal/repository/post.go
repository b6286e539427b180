package repository

import (
	"context"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostFilter is the fully resolved predicate for a listing query. Zero
// values mean "no constraint"; category names and status labels are
// resolved to ids by the service layer before reaching here.
type PostFilter struct {
	CategoryID uint
	Keyword    string
	StatusID   uint
	Limit      int
	Offset     int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListPage(ctx context.Context, f PostFilter) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error)
	ListLikesByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.withCategoryName(r.db.WithContext(ctx)).
			Preload("User").
			First(&post, "posts.id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// applyFilter appends the WHERE clauses for every constraint present in f.
// The count query and the page query share this predicate.
func applyFilter(db *gorm.DB, f PostFilter) *gorm.DB {
	if f.CategoryID != 0 {
		db = db.Where("posts.category_id = ?", f.CategoryID)
	}
	if f.Keyword != "" {
		// Case-insensitive substring match across title, description and
		// content. LOWER/LIKE instead of ILIKE so the sqlite dev driver
		// behaves identically.
		like := "%" + f.Keyword + "%"
		db = db.Where(
			"LOWER(posts.title) LIKE LOWER(?) OR LOWER(posts.description) LIKE LOWER(?) OR LOWER(posts.content) LIKE LOWER(?)",
			like, like, like,
		)
	}
	if f.StatusID != 0 {
		db = db.Where("posts.status_id = ?", f.StatusID)
	}
	return db
}

// withCategoryName joins the category display name into the row.
func (r *postRepository) withCategoryName(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Post{}).
		Select("posts.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = posts.category_id")
}

// ListPage runs the count query and the page query under the same
// predicate. Rows are ordered by ascending id: stable insertion-order
// pagination, not relevance. Offset pagination can shift page membership
// under concurrent inserts; that is an accepted property of this domain.
func (r *postRepository) ListPage(ctx context.Context, f PostFilter) ([]*models.Post, int64, error) {
	var total int64
	countQuery := applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), f)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	pageQuery := applyFilter(r.withCategoryName(r.db.WithContext(ctx)), f).
		Preload("User").
		Order("posts.id ASC").
		Limit(f.Limit).
		Offset(f.Offset)
	if err := pageQuery.Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// Update writes the edited columns. likes_count is owned by
// ToggleLike's atomic update; an edit carrying a stale in-memory
// counter must not write it back.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("likes_count").Save(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ToggleLike flips the (post, user) like membership and maintains the
// denormalized posts.likes_count in the same transaction, with atomic
// increments instead of a read-modify-write. Two concurrent toggles by
// different users cannot lose an update. Returns the resulting liked
// state and the authoritative counter.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error) {
	var liked bool
	var count int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// INSERT ... ON CONFLICT DO NOTHING is atomic; RowsAffected tells
		// us whether this toggle was a like or an unlike.
		res := tx.Exec(
			`INSERT INTO likes (post_id, user_id, created_at)
			 VALUES (?, ?, ?)
			 ON CONFLICT (post_id, user_id) DO NOTHING`,
			postID, userID, time.Now().UTC(),
		)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 1 {
			liked = true
			return tx.Raw(
				`UPDATE posts SET likes_count = likes_count + 1 WHERE id = ? RETURNING likes_count`,
				postID,
			).Scan(&count).Error
		}

		if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Raw(
			`UPDATE posts
			 SET likes_count = CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END
			 WHERE id = ? RETURNING likes_count`,
			postID,
		).Scan(&count).Error
	})
	if err != nil {
		return false, 0, err
	}

	cache.InvalidatePost(ctx, postID)
	return liked, count, nil
}

func (r *postRepository) ListLikesByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Like, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var likes []*models.Like
	err := r.db.WithContext(ctx).
		Preload("Post").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&likes).Error
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}
