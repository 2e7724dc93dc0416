// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control how much demo data a seed run produces.
type Options struct {
	Users        int
	PostsPerUser int
	// MaxDays bounds how far back in time generated posts and likes spread.
	MaxDays int
	// LikeRatio is the chance (0..1) that a given user likes a given post.
	LikeRatio float64
}

// DefaultOptions produce a small but analytics-friendly data set.
func DefaultOptions() Options {
	return Options{
		Users:        10,
		PostsPerUser: 5,
		MaxDays:      90,
		LikeRatio:    0.3,
	}
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// timeInPast picks a random moment within the configured MaxDays window.
func (f *Factory) timeInPast() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().UTC().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample user. The password for every
// generated account is "password123".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Password:  string(hash),
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a post authored by user, created at a random moment in
// the past so listings and analytics have realistic spread.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Text:      gofakeit.Paragraph(1, 3, 8, "\n"),
		AuthorID:  user.ID,
		CreatedAt: f.timeInPast(),
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateLike persists a like placed at the given moment.
func (f *Factory) CreateLike(userID, postID uint, at time.Time) error {
	return f.db.Create(&models.Like{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: at,
	}).Error
}

// Demo populates the database with users, posts, and likes spread across
// days, so the per-day analytics endpoint has something to aggregate.
func Demo(db *gorm.DB, opts Options) error {
	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, opts.Users*opts.PostsPerUser)
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := f.CreatePost(user)
			if err != nil {
				return fmt.Errorf("seed post: %w", err)
			}
			posts = append(posts, post)
		}
	}

	likes := 0
	for _, user := range users {
		for _, post := range posts {
			if post.AuthorID == user.ID {
				continue
			}
			if f.rng.Float64() >= opts.LikeRatio {
				continue
			}
			// likes land on or after the post's creation day
			at := post.CreatedAt.Add(time.Duration(f.rng.Intn(72)) * time.Hour)
			if err := f.CreateLike(user.ID, post.ID, at); err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
			likes++
		}
	}

	log.Printf("seeded %d users, %d posts, %d likes", len(users), len(posts), likes)
	return nil
}
