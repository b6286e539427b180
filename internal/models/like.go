package models

import "time"

// Like records a per-user engagement on a post. The (post_id, user_id)
// pair is unique; existence means "liked".
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_user" json:"user_id"`
	Post      *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
	CreatedAt time.Time `json:"liked_at"`
}
