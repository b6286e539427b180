// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Role gates the admin surface (article/category management).
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Username   string         `gorm:"uniqueIndex;not null" json:"username"`
	Name       string         `json:"name"`
	Email      string         `gorm:"uniqueIndex;not null" json:"-"`
	Password   string         `gorm:"not null" json:"-"`
	Role       string         `gorm:"not null;default:user" json:"role"`
	ProfilePic string         `json:"profile_pic"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdmin reports whether the user carries the elevated role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
