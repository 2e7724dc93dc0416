package repository

import (
	"context"
	"time"

	"chirp/internal/cache"
	"chirp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines persistence operations on the (user, post) like relation.
type LikeRepository interface {
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Set(ctx context.Context, userID, postID uint) error
	Unset(ctx context.Context, userID, postID uint) error
	ListByUserBetween(ctx context.Context, userID uint, from, to *time.Time) ([]models.Like, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Set inserts the like row if it does not exist yet. ON CONFLICT DO NOTHING
// makes the write atomic under concurrent toggles for the same pair; the
// unique index on (user_id, post_id) guarantees at most one row.
func (r *likeRepository) Set(ctx context.Context, userID, postID uint) error {
	like := models.Like{UserID: userID, PostID: postID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).
		Create(&like).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

// Unset removes the like row if present. Removing an absent like is a no-op,
// not an error.
func (r *likeRepository) Unset(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

func (r *likeRepository) ListByUserBetween(ctx context.Context, userID uint, from, to *time.Time) ([]models.Like, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}

	var likes []models.Like
	if err := query.Order("created_at DESC").Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}
