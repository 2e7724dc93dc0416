package service

import (
	"context"
	"strings"

	"chirp/internal/models"
	"chirp/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
}

type UpdatePostInput struct {
	PostID        uint
	Text          string
	CurrentUserID uint
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

const maxPostLen = 10000

func validatePostText(text string) error {
	if strings.TrimSpace(text) == "" {
		return models.NewValidationError("Post text cannot be empty")
	}
	if len(text) > maxPostLen {
		return models.NewValidationError("Post text too long (max 10000 characters)")
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, authorID uint, text string) (*models.Post, error) {
	if err := validatePostText(text); err != nil {
		return nil, err
	}

	post := &models.Post{Text: text, AuthorID: authorID}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Re-read so the response carries the author and like details.
	return s.postRepo.GetByID(ctx, post.ID, authorID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset, currentUserID)
}

func (s *PostService) ListUserPosts(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.GetByAuthorID(ctx, authorID, limit, offset, currentUserID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := validatePostText(in.Text); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, in.CurrentUserID)
	if err != nil {
		return nil, err
	}

	post.Text = in.Text
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	// Missing posts surface as NotFound before the delete runs.
	if _, err := s.postRepo.GetByID(ctx, id, 0); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}
