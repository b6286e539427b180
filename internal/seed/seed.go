// Package seed populates the database with realistic development data.
package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is assigned to every seeded user.
const DefaultPassword = "password123"

var categoryNames = []string{
	"Technology", "Travel", "Food", "Lifestyle", "Programming",
	"Music", "Photography", "Science",
}

// Seeder populates the database with fake data.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a seeder over the given connection.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes all seedable rows. Status reference rows are kept.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Like{}, &models.Comment{}, &models.Post{},
		&models.Category{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}
	}
	return nil
}

// SeedAdmin creates the admin account if it does not exist.
func (s *Seeder) SeedAdmin(email string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Username: "admin",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := s.db.Where(models.User{Email: email}).FirstOrCreate(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

// SeedUsers creates n users with faked identities.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username:   fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:      fmt.Sprintf("user%d@%s", i, gofakeit.DomainName()),
			Password:   string(hashed),
			Role:       models.RoleUser,
			ProfilePic: gofakeit.ImageURL(200, 200),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedCategories creates the fixed category set.
func (s *Seeder) SeedCategories() ([]*models.Category, error) {
	categories := make([]*models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		category := &models.Category{Name: name}
		if err := s.db.Where(models.Category{Name: name}).FirstOrCreate(category).Error; err != nil {
			return nil, fmt.Errorf("failed to seed category: %w", err)
		}
		categories = append(categories, category)
	}
	log.Printf("Seeded %d categories", len(categories))
	return categories, nil
}

// SeedPosts creates n posts spread over the given users and categories.
// Roughly one post in five stays a draft.
func (s *Seeder) SeedPosts(users []*models.User, categories []*models.Category, n int) ([]*models.Post, error) {
	if len(users) == 0 || len(categories) == 0 {
		return nil, fmt.Errorf("users and categories must be seeded first")
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		statusID := models.StatusPublished
		if gofakeit.Number(1, 5) == 1 {
			statusID = models.StatusDraft
		}

		post := &models.Post{
			Title:       gofakeit.Sentence(5),
			Image:       gofakeit.ImageURL(800, 400),
			CategoryID:  categories[gofakeit.Number(0, len(categories)-1)].ID,
			Description: gofakeit.Sentence(12),
			Content:     gofakeit.Paragraph(3, 5, 20, "\n\n"),
			StatusID:    statusID,
			UserID:      users[gofakeit.Number(0, len(users)-1)].ID,
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("failed to seed post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))
	return posts, nil
}

// SeedEngagement adds comments and likes across the seeded posts. Likes
// go through raw inserts plus a counter update so likes_count matches
// the like rows.
func (s *Seeder) SeedEngagement(users []*models.User, posts []*models.Post) error {
	commentCount := 0
	likeCount := 0

	for _, post := range posts {
		for i := 0; i < gofakeit.Number(0, 6); i++ {
			comment := &models.Comment{
				PostID:      post.ID,
				UserID:      users[gofakeit.Number(0, len(users)-1)].ID,
				CommentText: gofakeit.Sentence(gofakeit.Number(5, 20)),
			}
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("failed to seed comment: %w", err)
			}
			commentCount++
		}

		likers := gofakeit.Number(0, len(users)/2)
		for i := 0; i < likers; i++ {
			res := s.db.Exec(
				`INSERT INTO likes (post_id, user_id, created_at)
				 VALUES (?, ?, CURRENT_TIMESTAMP)
				 ON CONFLICT (post_id, user_id) DO NOTHING`,
				post.ID, users[i].ID,
			)
			if res.Error != nil {
				return fmt.Errorf("failed to seed like: %w", res.Error)
			}
			if res.RowsAffected == 1 {
				if err := s.db.Exec(
					`UPDATE posts SET likes_count = likes_count + 1 WHERE id = ?`,
					post.ID,
				).Error; err != nil {
					return err
				}
				likeCount++
			}
		}
	}

	log.Printf("Seeded %d comments and %d likes", commentCount, likeCount)
	return nil
}
