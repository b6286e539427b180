package models

import "time"

// Post represents a blog article.
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Image       string `json:"image"`
	CategoryID  uint   `gorm:"not null;index" json:"category_id"`
	Description string `json:"description"`
	Content     string `gorm:"type:text;not null" json:"content"`
	StatusID    uint   `gorm:"not null;index;default:1" json:"status_id"`
	// LikesCount is the denormalized like counter, maintained atomically
	// alongside the like rows (see PostRepository.ToggleLike).
	LikesCount int  `gorm:"not null;default:0" json:"likes_count"`
	UserID     uint `gorm:"index" json:"user_id"`
	User       User `gorm:"foreignKey:UserID" json:"author"`
	// CategoryName is not persisted; joined from categories at query time.
	CategoryName string    `gorm:"->" json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
