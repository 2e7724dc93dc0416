package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"chirp/internal/cache"
	"chirp/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	require.Error(t, err)

	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "bob")

	got, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bob", got.Username)

	// missing user is (nil, nil), not an error
	got, err = repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "carol", Password: "x"}))

	err := repo.Create(ctx, &models.User{Username: "carol", Password: "y"})
	require.Error(t, err)

	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "dave")
	user.FirstName = "Dave"
	user.Email = "dave@chirp.dev"

	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dave", got.FirstName)
	assert.Equal(t, "dave@chirp.dev", got.Email)
}

func TestUserRepository_Update_KeepsPasswordAfterCachedRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	user := createTestUser(t, db, "frank")
	require.NotEmpty(t, user.Password)

	// first read fills the cache; the cached JSON carries no password
	_, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)

	cached, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, cached.Password, "cache hit strips the hash")

	cached.FirstName = "Frank"
	require.NoError(t, repo.Update(ctx, cached))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "Frank", stored.FirstName)
	assert.Equal(t, user.Password, stored.Password,
		"profile updates must leave the stored hash alone")
}

func TestUserRepository_Delete_Cascades(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	post := createTestPost(t, db, author.ID, "soon gone")

	// fan likes the author's post; author likes nothing
	require.NoError(t, db.Create(&models.Like{UserID: fan.ID, PostID: post.ID}).Error)

	require.NoError(t, users.Delete(ctx, author.ID))

	_, err := users.GetByID(ctx, author.ID)
	require.Error(t, err)

	var postCount, likeCount int64
	require.NoError(t, db.Model(&models.Post{}).Where("author_id = ?", author.ID).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount).Error)
	assert.Zero(t, postCount)
	assert.Zero(t, likeCount, "likes on the deleted author's posts must go away too")

	// the liking user survives
	got, err := users.GetByID(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, "fan", got.Username)
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	err := repo.Delete(context.Background(), 12345)
	require.Error(t, err)

	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, name := range []string{"u1", "u2", "u3"} {
		createTestUser(t, db, name)
	}

	users, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_ActivityTimestamps(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "erin")

	activity, err := repo.Activity(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, activity.LastLogin)
	assert.Nil(t, activity.LastRequest)

	login := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	request := login.Add(5 * time.Minute)
	require.NoError(t, repo.SetLastLogin(ctx, user.ID, login))
	require.NoError(t, repo.TouchLastRequest(ctx, user.ID, request))

	activity, err = repo.Activity(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, activity.LastLogin)
	require.NotNil(t, activity.LastRequest)
	assert.True(t, activity.LastLogin.Equal(login))
	assert.True(t, activity.LastRequest.Equal(request))
}

func TestUserRepository_GetByUsername_DriverError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.GetByUsername(context.Background(), "alice")
	require.Error(t, err)

	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeInternal, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"postgres duplicate key", errors.New(`duplicate key value violates unique constraint "uni_users_username" (SQLSTATE 23505)`), true},
		{"sqlite unique", errors.New("UNIQUE constraint failed: users.username"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueConstraintError(tt.err))
		})
	}
}
