package validation

import (
	"fmt"
	"regexp"
	"strings"

	"barrique/internal/models"
)

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateCurrency accepts empty values or ISO 4217 style three-letter codes.
func ValidateCurrency(field, code string) error {
	if code == "" {
		return nil
	}
	if !currencyRegex.MatchString(code) {
		return fmt.Errorf("%s must be a three-letter currency code", field)
	}
	return nil
}

// ValidateJourney checks the user-editable fields of a journey.
func ValidateJourney(j *models.Journey) error {
	if strings.TrimSpace(j.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if err := ValidateCurrency("homeCurr", j.HomeCurrency); err != nil {
		return err
	}
	if err := ValidateCurrency("vacCurr", j.DestinationCurrency); err != nil {
		return err
	}
	if j.Budget < 0 {
		return fmt.Errorf("budget must not be negative")
	}
	if !j.StartDate.IsZero() && !j.EndDate.IsZero() && j.EndDate.Before(j.StartDate.Time) {
		return fmt.Errorf("endDate must not be before startDate")
	}
	return nil
}

// ValidateExpenditure checks the user-editable fields of an expenditure.
func ValidateExpenditure(e *models.Expenditure) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// ValidateRecipe checks a recipe and its nested components.
func ValidateRecipe(r *models.Recipe) error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if r.Servings < 0 || r.PortionSize < 0 {
		return fmt.Errorf("servings and portionSize must not be negative")
	}
	return r.ValidateComponents()
}
