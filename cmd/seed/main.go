// Command seed fills a development database with demo users and posts.
package main

import (
	"flag"
	"log"

	"recurate/internal/config"
	"recurate/internal/database"
	"recurate/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of demo users")
	posts := flag.Int("posts", 5, "posts per user")
	days := flag.Int("days", 90, "spread post timestamps over the past N days")
	pass := flag.String("password", "recurate-demo", "shared password for demo accounts")
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

	factory := seed.NewFactory(db, seed.Options{
		Users:        *users,
		PostsPerUser: *posts,
		MaxDays:      *days,
		Password:     *pass,
	})
	if err := factory.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d users with %d posts each", *users, *posts)
}
