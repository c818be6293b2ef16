// Command main runs the database seeder for Sanxing.
package main

import (
	"flag"
	"log"

	"sanxing/internal/config"
	"sanxing/internal/database"
	"sanxing/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of demo users to create")
	answersPerUser := flag.Int("answers", 20, "Number of answers per demo user")
	demo := flag.Bool("demo", false, "Also generate demo users and answers")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// The built-in corpus is always seeded; it is idempotent.
	if err := seed.Questions(db); err != nil {
		log.Fatalf("Question seeding failed: %v", err)
	}

	if *demo {
		if err := seed.NewFactory(db).SeedDemo(*numUsers, *answersPerUser); err != nil {
			log.Fatalf("Demo seeding failed: %v", err)
		}
	}

	log.Println("Seeding complete.")
}
