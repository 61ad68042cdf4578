// Package main provides account management utilities for Barrique operators.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"barrique/internal/config"
	"barrique/internal/database"
	"barrique/internal/models"
	"barrique/internal/repository"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin list-users [limit]        - List accounts")
		fmt.Println("  go run ./cmd/admin show-user <username>      - Show an account and what it owns")
		fmt.Println("  go run ./cmd/admin delete-user <username>    - Delete an account and all its data")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	users := repository.NewUserRepository(db, nil)
	ctx := context.Background()

	command := os.Args[1]

	switch command {
	case "list-users":
		limit := 100
		if len(os.Args) >= 3 {
			if _, err := fmt.Sscanf(os.Args[2], "%d", &limit); err != nil || limit <= 0 {
				fmt.Printf("Invalid limit: %s\n", os.Args[2])
				os.Exit(1)
			}
		}
		listUsers(ctx, users, limit)

	case "show-user":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin show-user <username>")
			os.Exit(1)
		}
		showUser(ctx, db, users, os.Args[2])

	case "delete-user":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin delete-user <username>")
			os.Exit(1)
		}
		deleteUser(ctx, users, os.Args[2])

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func listUsers(ctx context.Context, users repository.UserRepository, limit int) {
	list, err := users.List(ctx, limit, 0)
	if err != nil {
		log.Fatalf("Failed to fetch users: %v", err)
	}

	if len(list) == 0 {
		fmt.Println("No users found")
		return
	}

	fmt.Println("─────────────────────────────────────")
	for _, u := range list {
		fmt.Printf("ID: %d | Username: %s | Created: %s\n", u.ID, u.Username, u.CreatedAt.Format("2006-01-02"))
	}
	fmt.Println("─────────────────────────────────────")
}

func showUser(ctx context.Context, db *gorm.DB, users repository.UserRepository, username string) {
	user, err := users.GetByUsername(ctx, username)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if user == nil {
		fmt.Printf("User %s not found\n", username)
		os.Exit(1)
	}

	var journeys, recipes int64
	if err := db.WithContext(ctx).Model(&models.Journey{}).Where("owner_user_id = ?", user.ID).Count(&journeys).Error; err != nil {
		log.Fatalf("Failed to count journeys: %v", err)
	}
	if err := db.WithContext(ctx).Model(&models.Recipe{}).Where("owner_user_id = ?", user.ID).Count(&recipes).Error; err != nil {
		log.Fatalf("Failed to count recipes: %v", err)
	}

	fmt.Printf("ID: %d\nUsername: %s\nCreated: %s\nJourneys: %d\nRecipes: %d\n",
		user.ID, user.Username, user.CreatedAt.Format("2006-01-02 15:04"), journeys, recipes)
}

func deleteUser(ctx context.Context, users repository.UserRepository, username string) {
	if err := users.DeleteByUsername(ctx, username); err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			fmt.Printf("User %s not found\n", username)
			os.Exit(1)
		}
		log.Fatalf("Failed to delete user: %v", err)
	}
	fmt.Printf("Deleted %s and everything they owned\n", username)
}
