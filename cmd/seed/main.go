// Command seed fills the Barrique database with fake users, journeys and recipes.
package main

import (
	"flag"
	"log"

	"barrique/internal/config"
	"barrique/internal/database"
	"barrique/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 5, "Number of users to create")
	journeys := flag.Int("journeys", 2, "Journeys per user")
	expenditures := flag.Int("expenditures", 8, "Expenditures per journey")
	recipes := flag.Int("recipes", 3, "Recipes per user")
	password := flag.String("password", seed.DefaultPassword, "Password for every seeded user")
	shouldClean := flag.Bool("clean", false, "Delete all existing rows before seeding")
	dryRun := flag.Bool("dry-run", false, "Build rows without writing them")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store a placeholder hash (users cannot log in)")
	preset := flag.String("preset", "", "Apply a named preset: minimal, demo or load (ignores count flags)")
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

	opts := seed.Options{
		NumUsers:               *numUsers,
		JourneysPerUser:        *journeys,
		ExpendituresPerJourney: *expenditures,
		RecipesPerUser:         *recipes,
	}
	if *preset != "" {
		p, ok := seed.Presets[*preset]
		if !ok {
			log.Fatalf("Unknown preset %q", *preset)
		}
		log.Printf("Applying preset: %s", *preset)
		opts = p
	}
	opts.Password = *password
	opts.ShouldClean = *shouldClean
	opts.Factory.DryRun = *dryRun
	opts.Factory.SkipBcrypt = opts.Factory.SkipBcrypt || *skipBcrypt
	opts.Factory.BcryptCost = cfg.BcryptCost

	summary, err := seed.Seed(db, opts)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done: %s", summary)
	if !opts.Factory.SkipBcrypt && !opts.Factory.DryRun {
		log.Printf("All seeded users have the password: %s", opts.Password)
	}
}
