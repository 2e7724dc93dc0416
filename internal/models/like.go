package models

import "time"

// Like records that a user liked a post.
// The (UserID, PostID) pair is unique; likes are hard-deleted so the
// index can never collide with a tombstone row.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

// LikeDayCount is one bucket of the per-user like analytics: the number of
// likes a user made on a given calendar day (UTC).
type LikeDayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}
