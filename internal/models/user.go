// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account.
// Password holds the bcrypt hash, never the plaintext value.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"unique;not null" json:"username"`
	Password    string         `gorm:"not null" json:"-"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	IsStaff     bool           `gorm:"default:false" json:"is_staff"`
	LastLogin   *time.Time     `json:"last_login"`
	LastRequest *time.Time     `json:"last_request"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Posts       []Post         `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// UserActivity is the staff-only view of a user's last login and last request.
type UserActivity struct {
	ID          uint       `json:"id"`
	LastLogin   *time.Time `json:"last_login"`
	LastRequest *time.Time `json:"last_request"`
}
