package service

import (
	"context"
	"testing"
	"time"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Function-field stubs so each test overrides only what it needs.

type userRepoStub struct {
	getByIDFn          func(ctx context.Context, id uint) (*models.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*models.User, error)
	createFn           func(ctx context.Context, user *models.User) error
	updateFn           func(ctx context.Context, user *models.User) error
	deleteFn           func(ctx context.Context, id uint) error
	listFn             func(ctx context.Context, limit, offset int) ([]models.User, error)
	activityFn         func(ctx context.Context, id uint) (*models.UserActivity, error)
	setLastLoginFn     func(ctx context.Context, id uint, at time.Time) error
	touchLastRequestFn func(ctx context.Context, id uint, at time.Time) error
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		activityFn:      func(context.Context, uint) (*models.UserActivity, error) { return &models.UserActivity{}, nil },
		setLastLoginFn:  func(context.Context, uint, time.Time) error { return nil },
		touchLastRequestFn: func(context.Context, uint, time.Time) error {
			return nil
		},
	}
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Activity(ctx context.Context, id uint) (*models.UserActivity, error) {
	return s.activityFn(ctx, id)
}
func (s *userRepoStub) SetLastLogin(ctx context.Context, id uint, at time.Time) error {
	return s.setLastLoginFn(ctx, id, at)
}
func (s *userRepoStub) TouchLastRequest(ctx context.Context, id uint, at time.Time) error {
	return s.touchLastRequestFn(ctx, id, at)
}

type postRepoStub struct {
	createFn        func(ctx context.Context, post *models.Post) error
	getByIDFn       func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	getByAuthorIDFn func(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	listFn          func(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error)
	updateFn        func(ctx context.Context, post *models.Post) error
	deleteFn        func(ctx context.Context, id uint) error
	existsFn        func(ctx context.Context, id uint) (bool, error)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		getByAuthorIDFn: func(context.Context, uint, int, int, uint) ([]*models.Post, error) { return nil, nil },
		listFn:          func(context.Context, int, int, uint) ([]*models.Post, error) { return nil, nil },
		updateFn:        func(context.Context, *models.Post) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		existsFn:        func(context.Context, uint) (bool, error) { return true, nil },
	}
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByAuthorIDFn(ctx, authorID, limit, offset, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

type likeRepoStub struct {
	isLikedFn           func(ctx context.Context, userID, postID uint) (bool, error)
	setFn               func(ctx context.Context, userID, postID uint) error
	unsetFn             func(ctx context.Context, userID, postID uint) error
	listByUserBetweenFn func(ctx context.Context, userID uint, from, to *time.Time) ([]models.Like, error)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		isLikedFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		setFn:     func(context.Context, uint, uint) error { return nil },
		unsetFn:   func(context.Context, uint, uint) error { return nil },
		listByUserBetweenFn: func(context.Context, uint, *time.Time, *time.Time) ([]models.Like, error) {
			return nil, nil
		},
	}
}

func (s *likeRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *likeRepoStub) Set(ctx context.Context, userID, postID uint) error {
	return s.setFn(ctx, userID, postID)
}
func (s *likeRepoStub) Unset(ctx context.Context, userID, postID uint) error {
	return s.unsetFn(ctx, userID, postID)
}
func (s *likeRepoStub) ListByUserBetween(ctx context.Context, userID uint, from, to *time.Time) ([]models.Like, error) {
	return s.listByUserBetweenFn(ctx, userID, from, to)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
