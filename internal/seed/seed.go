// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"barrique/internal/models"

	"gorm.io/gorm"
)

// DefaultPassword is given to every seeded user unless Options.Password is set.
const DefaultPassword = "password123"

// Options configuration for the seeder
type Options struct {
	NumUsers               int
	JourneysPerUser        int
	ExpendituresPerJourney int
	RecipesPerUser         int
	Password               string
	ShouldClean            bool
	Factory                SeedOptions
}

// Presets are named Options bundles for the seed command.
var Presets = map[string]Options{
	"minimal": {NumUsers: 2, JourneysPerUser: 1, ExpendituresPerJourney: 3, RecipesPerUser: 1},
	"demo":    {NumUsers: 5, JourneysPerUser: 2, ExpendituresPerJourney: 8, RecipesPerUser: 4},
	"load":    {NumUsers: 50, JourneysPerUser: 5, ExpendituresPerJourney: 40, RecipesPerUser: 10, Factory: SeedOptions{SkipBcrypt: true}},
}

// Summary counts what a Seed run created.
type Summary struct {
	Users        int
	Journeys     int
	Expenditures int
	Recipes      int
	Components   int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d users, %d journeys, %d expenditures, %d recipes, %d recipe components",
		s.Users, s.Journeys, s.Expenditures, s.Recipes, s.Components)
}

var (
	expenditureNames = []string{
		"Hotel", "Hostel", "Train ticket", "Bus pass", "Taxi", "Museum entry", "Dinner",
		"Lunch", "Coffee", "Groceries", "Souvenirs", "Flight", "Car rental", "Fuel",
		"Guided tour", "SIM card", "Laundry", "Concert", "Ferry", "Street food",
	}

	ingredientNames = []string{
		"Flour", "Sugar", "Butter", "Eggs", "Milk", "Olive oil", "Garlic", "Onion",
		"Tomato", "Basil", "Rice", "Chicken breast", "Salmon", "Lentils", "Chickpeas",
		"Spinach", "Carrot", "Potato", "Parmesan", "Lemon", "Ginger", "Soy sauce",
	}

	ingredientUnits = []string{"g", "kg", "ml", "l", "tbsp", "tsp", "pcs"}

	nutrientNames = []string{"Calories", "Protein", "Fat", "Carbohydrates", "Fibre", "Sugar", "Salt"}

	toolNames = []string{
		"Chef's knife", "Cutting board", "Saucepan", "Frying pan", "Mixing bowl",
		"Whisk", "Oven tray", "Blender", "Grater", "Measuring cup",
	}

	stepVerbs = []string{"Chop", "Stir", "Whisk", "Bake", "Simmer", "Season", "Fold", "Roast", "Blend", "Serve"}
)

// Seed populates the database according to opts.
func Seed(db *gorm.DB, opts Options) (Summary, error) {
	var summary Summary

	if opts.ShouldClean && !opts.Factory.DryRun {
		log.Println("Cleaning existing data...")
		if err := ClearAll(db); err != nil {
			return summary, fmt.Errorf("failed to clean data: %w", err)
		}
	}
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}

	f := NewFactory(db, opts.Factory)

	log.Printf("Seeding %d users...", opts.NumUsers)
	for i := 1; i <= opts.NumUsers; i++ {
		user, err := f.CreateUser(i, opts.Password)
		if err != nil {
			return summary, fmt.Errorf("failed to create user %d: %w", i, err)
		}
		summary.Users++

		for j := 0; j < opts.JourneysPerUser; j++ {
			journey, err := f.CreateJourney(user, opts.ExpendituresPerJourney)
			if err != nil {
				return summary, fmt.Errorf("failed to create journey for %s: %w", user.Username, err)
			}
			summary.Journeys++
			summary.Expenditures += len(journey.Expenditures)
		}

		for j := 0; j < opts.RecipesPerUser; j++ {
			recipe, err := f.CreateRecipe(user)
			if err != nil {
				return summary, fmt.Errorf("failed to create recipe for %s: %w", user.Username, err)
			}
			summary.Recipes++
			summary.Components += len(recipe.Ingredients) + len(recipe.NutritionalValues) +
				len(recipe.Steps) + len(recipe.Tools) + len(recipe.Tags)
		}
	}

	log.Printf("Seeding complete: %s", summary)
	return summary, nil
}

// ClearAll deletes every row, children before parents.
func ClearAll(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.Tag{}, &models.Tool{}, &models.RecipeStep{}, &models.NutritionalValue{},
			&models.Ingredient{}, &models.Recipe{}, &models.Expenditure{}, &models.Journey{}, &models.User{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
