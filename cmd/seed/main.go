// Command main runs the database seeder for inkwell.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 60, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	adminEmail := flag.String("admin", "admin@inkwell.dev", "Admin account email")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if _, err := s.SeedAdmin(*adminEmail); err != nil {
		log.Fatalf("Admin seeding failed: %v", err)
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	categories, err := s.SeedCategories()
	if err != nil {
		log.Fatalf("Category seeding failed: %v", err)
	}
	posts, err := s.SeedPosts(users, categories, *numPosts)
	if err != nil {
		log.Fatalf("Post seeding failed: %v", err)
	}
	if err := s.SeedEngagement(users, posts); err != nil {
		log.Fatalf("Engagement seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Printf("All test users have the password: %s", seed.DefaultPassword)
}
