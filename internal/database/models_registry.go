package database

import "barrique/internal/models"

// PersistentModels returns every schema-managed GORM model, parents before children.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Journey{},
		&models.Expenditure{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.NutritionalValue{},
		&models.RecipeStep{},
		&models.Tool{},
		&models.Tag{},
	}
}
