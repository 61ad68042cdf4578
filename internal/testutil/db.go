// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"barrique/internal/database"
	"barrique/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB returns a migrated, private in-memory database with foreign keys on.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := database.GormConfig()
	cfg.Logger = logger.Discard

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "$2a$04$placeholderplaceholderplaceholderplaceholderplace"}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

// CreateJourney inserts a journey owned by ownerID.
func CreateJourney(t *testing.T, db *gorm.DB, ownerID uint, name string) *models.Journey {
	t.Helper()
	journey := &models.Journey{
		OwnerUserID:         ownerID,
		Name:                name,
		HomeCurrency:        "USD",
		DestinationCurrency: "EUR",
		Budget:              1000,
	}
	require.NoError(t, db.Create(journey).Error)
	return journey
}

// CreateRecipe inserts a recipe owned by ownerID with one of each component.
func CreateRecipe(t *testing.T, db *gorm.DB, ownerID uint, title string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		OwnerUserID:       ownerID,
		Title:             title,
		Servings:          2,
		Ingredients:       []models.Ingredient{{Title: "Flour", Amount: 200, Unit: "g"}},
		NutritionalValues: []models.NutritionalValue{{Title: "Protein", Amount: 12}},
		Steps:             []models.RecipeStep{{Description: "Mix", StepNumber: 1}},
		Tools:             []models.Tool{{Title: "Bowl", Amount: 1}},
		Tags:              []models.Tag{{TagType: models.TagEasy}},
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
