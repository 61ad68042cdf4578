package validation

import (
	"strings"
	"testing"
	"time"

	"barrique/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Short but present", "pw123", false},
		{"Exactly Max Length", strings.Repeat("a", 72), false},
		{"Too Long", strings.Repeat("a", 73), true},
		{"Empty", "", true},
		{"Whitespace", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "bob", false},
		{"Underscore inside", "test_user123", false},
		{"Too Short", "tu", true},
		{"Dotted", "bob.smith", false},
		{"Longest allowed", strings.Repeat("a", 50), false},
		{"Too Long", strings.Repeat("a", 51), true},
		{"Trailing dot", "bob.", true},
		{"Spaces", "bob smith", true},
		{"Leading hyphen", "-bob", true},
		{"Trailing underscore", "bob_", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateJourney(t *testing.T) {
	t.Parallel()
	start := models.NewDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	end := models.NewDate(time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name    string
		journey models.Journey
		wantErr bool
	}{
		{"Valid", models.Journey{Name: "Paris", HomeCurrency: "USD", DestinationCurrency: "EUR", Budget: 1000, StartDate: start, EndDate: end}, false},
		{"No dates", models.Journey{Name: "Paris"}, false},
		{"Missing name", models.Journey{HomeCurrency: "USD"}, true},
		{"Lowercase currency", models.Journey{Name: "Paris", HomeCurrency: "usd"}, true},
		{"Negative budget", models.Journey{Name: "Paris", Budget: -1}, true},
		{"End before start", models.Journey{Name: "Paris", StartDate: end, EndDate: start}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJourney(&tt.journey)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRecipe(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateRecipe(&models.Recipe{Title: "Pancakes"}))
	assert.Error(t, ValidateRecipe(&models.Recipe{}))
	assert.Error(t, ValidateRecipe(&models.Recipe{Title: "Pancakes", Servings: -2}))
	assert.Error(t, ValidateRecipe(&models.Recipe{
		Title:       "Pancakes",
		Ingredients: []models.Ingredient{{Title: ""}},
	}))
	assert.Error(t, ValidateExpenditure(&models.Expenditure{}))
}
