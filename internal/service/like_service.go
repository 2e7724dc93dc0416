package service

import (
	"context"
	"sort"
	"time"

	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, postRepo: postRepo}
}

// requirePost turns a missing post into NotFound for every like operation.
func (s *LikeService) requirePost(ctx context.Context, postID uint) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}

// GetLikeState reports whether the user currently likes the post.
func (s *LikeService) GetLikeState(ctx context.Context, userID, postID uint) (bool, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return false, err
	}
	return s.likeRepo.IsLiked(ctx, userID, postID)
}

// SetLiked marks the post as liked by the user. Liking an already-liked post
// succeeds without changing anything.
func (s *LikeService) SetLiked(ctx context.Context, userID, postID uint) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	if err := s.likeRepo.Set(ctx, userID, postID); err != nil {
		return err
	}
	middleware.LikeToggles.WithLabelValues("set").Inc()
	return nil
}

// UnsetLiked removes the user's like from the post. Removing an absent like
// succeeds without changing anything.
func (s *LikeService) UnsetLiked(ctx context.Context, userID, postID uint) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	if err := s.likeRepo.Unset(ctx, userID, postID); err != nil {
		return err
	}
	middleware.LikeToggles.WithLabelValues("unset").Inc()
	return nil
}

// AggregateLikesByDay counts the user's likes per UTC calendar day, most
// recent day first. Both range bounds are optional and inclusive, and are
// applied exactly as given; callers accepting date-only input widen it to
// a full day before calling.
func (s *LikeService) AggregateLikesByDay(ctx context.Context, userID uint, from, to *time.Time) ([]models.LikeDayCount, error) {
	span, ctx := observability.NewSpan(ctx, "likes.aggregate_by_day")
	defer span.End()
	span.AddAttributes(attribute.Int("user.id", int(userID)))

	likes, err := s.likeRepo.ListByUserBetween(ctx, userID, from, to)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	counts := make(map[time.Time]int64)
	for _, like := range likes {
		counts[truncateToDay(like.CreatedAt)]++
	}

	result := make([]models.LikeDayCount, 0, len(counts))
	for day, count := range counts {
		result = append(result, models.LikeDayCount{Day: day, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Day.After(result[j].Day)
	})

	return result, nil
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
