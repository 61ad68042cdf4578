package repository

import (
	"context"

	"barrique/internal/middleware"
	"barrique/internal/models"
	"barrique/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeRepository defines persistence operations for recipes. Reads always
// load every component collection.
type RecipeRepository interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Recipe, error)
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id uint) error
}

type recipeRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewRecipeRepository returns a new RecipeRepository implementation.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{
		db:  db,
		log: observability.NewRepoLogger("recipes", middleware.Logger),
	}
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func withComponents(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", byID).
		Preload("NutritionalValues", byID).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC, id ASC")
		}).
		Preload("Tools", byID).
		Preload("Tags", byID)
}

// recipeChildren lists one value per component table.
func recipeChildren() []interface{} {
	return []interface{}{
		&models.Ingredient{},
		&models.NutritionalValue{},
		&models.RecipeStep{},
		&models.Tool{},
		&models.Tag{},
	}
}

// deleteRecipeChildren removes every component whose recipe_id matches recipeIDs,
// which may be a single id or a subquery.
func deleteRecipeChildren(tx *gorm.DB, recipeIDs interface{}) error {
	for _, child := range recipeChildren() {
		if err := tx.Where("recipe_id IN (?)", recipeIDs).Delete(child).Error; err != nil {
			return err
		}
	}
	return nil
}

// insertRecipeChildren creates the recipe's component rows. Components must
// already be bound to the recipe.
func insertRecipeChildren(tx *gorm.DB, recipe *models.Recipe) error {
	batches := []interface{}{}
	if len(recipe.Ingredients) > 0 {
		batches = append(batches, &recipe.Ingredients)
	}
	if len(recipe.NutritionalValues) > 0 {
		batches = append(batches, &recipe.NutritionalValues)
	}
	if len(recipe.Steps) > 0 {
		batches = append(batches, &recipe.Steps)
	}
	if len(recipe.Tools) > 0 {
		batches = append(batches, &recipe.Tools)
	}
	if len(recipe.Tags) > 0 {
		batches = append(batches, &recipe.Tags)
	}
	for _, batch := range batches {
		if err := tx.Create(batch).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *recipeRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	if err := withComponents(r.db.WithContext(ctx)).
		Where("owner_user_id = ?", ownerID).
		Order("id ASC").
		Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := withComponents(r.db.WithContext(ctx)).First(&recipe, id).Error; err != nil {
		return nil, lookupError(err, "Recipe", id)
	}
	return &recipe, nil
}

// Create inserts the recipe and all of its components in one transaction.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		recipe.BindComponents(recipe.ID)
		return insertRecipeChildren(tx, recipe)
	})
	if err != nil {
		r.log.LogError(ctx, "create", err)
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, recipe.ID, "owner_user_id", recipe.OwnerUserID)
	return nil
}

// Update overwrites the recipe's fields and replaces every component
// collection with the one carried by recipe.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}
		if err := deleteRecipeChildren(tx, recipe.ID); err != nil {
			return err
		}
		recipe.BindComponents(recipe.ID)
		return insertRecipeChildren(tx, recipe)
	})
	if err != nil {
		r.log.LogError(ctx, "update", err)
		return models.NewInternalError(err)
	}
	r.log.LogUpdate(ctx, recipe.ID)
	return nil
}

// Delete removes the recipe and every component.
func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteRecipeChildren(tx, id); err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
	if err != nil {
		r.log.LogError(ctx, "delete", err)
		return models.NewInternalError(err)
	}
	r.log.LogDelete(ctx, id)
	return nil
}
