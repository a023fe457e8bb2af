// Command main fills the configured database with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"zephyr/internal/config"
	"zephyr/internal/database"
	"zephyr/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numComments := flag.Int("comments", 400, "Number of comments to create")
	numFriendships := flag.Int("friends", 100, "Number of friendships to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fixture := flag.String("fixture", "", "Load a YAML fixture instead of generating data")
	seedValue := flag.Int64("seed", 0, "Random seed for reproducible data (0 picks one)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	s := seed.NewSeeder(db, *seedValue)

	if *fixture != "" {
		fx, err := seed.LoadFixtureFile(*fixture)
		if err != nil {
			log.Fatalf("Invalid fixture: %v", err)
		}
		if *shouldClean {
			if err := s.ClearAll(ctx); err != nil {
				log.Fatalf("Cleanup failed: %v", err)
			}
		}
		summary, err := seed.ApplyFixture(ctx, db, fx)
		if err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
		log.Printf("Fixture applied: %d users, %d posts, %d comments, %d friendships",
			summary.Users, summary.Posts, summary.Comments, summary.Friendships)
		return
	}

	log.Printf("Target: %d users, %d posts, %d comments, %d friendships, clean=%v",
		*numUsers, *numPosts, *numComments, *numFriendships, *shouldClean)

	if _, err := s.Run(ctx, seed.Options{
		Users:       *numUsers,
		Posts:       *numPosts,
		Comments:    *numComments,
		Friendships: *numFriendships,
		Clean:       *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
