package service

import (
	"context"

	"barrique/internal/models"
	"barrique/internal/repository"
	"barrique/internal/validation"
)

type RecipeService struct {
	recipes repository.RecipeRepository
	authz   *Authorizer
}

func NewRecipeService(recipes repository.RecipeRepository, authz *Authorizer) *RecipeService {
	return &RecipeService{recipes: recipes, authz: authz}
}

func (s *RecipeService) ListForOwner(ctx context.Context, ownerID uint) ([]models.Recipe, error) {
	return s.recipes.ListByOwner(ctx, ownerID)
}

func (s *RecipeService) Get(ctx context.Context, callerID, id uint) (*models.Recipe, error) {
	return s.authz.Recipe(ctx, callerID, id)
}

// Create stores the recipe and every nested component, owned by callerID.
func (s *RecipeService) Create(ctx context.Context, callerID uint, data *models.Recipe) (*models.Recipe, error) {
	if err := validation.ValidateRecipe(data); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	recipe := &models.Recipe{OwnerUserID: callerID}
	copyRecipeFields(recipe, data)
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Update overwrites every field and replaces each component collection with
// the one in data. Ids of the replaced components stop resolving.
func (s *RecipeService) Update(ctx context.Context, callerID, id uint, data *models.Recipe) (*models.Recipe, error) {
	recipe, err := s.authz.Recipe(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateRecipe(data); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	copyRecipeFields(recipe, data)
	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete removes the recipe and all of its components.
func (s *RecipeService) Delete(ctx context.Context, callerID, id uint) error {
	if _, err := s.authz.Recipe(ctx, callerID, id); err != nil {
		return err
	}
	return s.recipes.Delete(ctx, id)
}

func copyRecipeFields(dst, src *models.Recipe) {
	dst.Title = src.Title
	dst.Description = src.Description
	dst.ImageURL = src.ImageURL
	dst.Favorite = src.Favorite
	dst.Time = src.Time
	dst.SourceURL = src.SourceURL
	dst.Servings = src.Servings
	dst.PortionSize = src.PortionSize
	dst.Ingredients = src.Ingredients
	dst.NutritionalValues = src.NutritionalValues
	dst.Steps = src.Steps
	dst.Tools = src.Tools
	dst.Tags = src.Tags
}
