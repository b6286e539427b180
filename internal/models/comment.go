package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is an append-only reader comment on a post, editable or
// deletable only by its author (or an admin).
type Comment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PostID      uint           `gorm:"not null;index" json:"post_id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"user"`
	CommentText string         `gorm:"type:text;not null" json:"comment_text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
