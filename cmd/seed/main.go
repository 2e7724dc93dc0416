// Command seed populates the database with demo users, posts, and likes.
package main

import (
	"flag"
	"log"

	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	postsPerUser := flag.Int("posts", 5, "posts per user")
	maxDays := flag.Int("days", 90, "how many days back to spread content")
	likeRatio := flag.Float64("like-ratio", 0.3, "chance a user likes any given post")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Demo(db, seed.Options{
		Users:        *users,
		PostsPerUser: *postsPerUser,
		MaxDays:      *maxDays,
		LikeRatio:    *likeRatio,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
