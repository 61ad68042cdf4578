package service

import (
	"context"

	"barrique/internal/models"
	"barrique/internal/repository"
)

// ComponentPtr is satisfied by pointers to the recipe component models.
type ComponentPtr[T any] interface {
	*T
	ComponentName() string
	PrimaryKey() uint
	ParentRecipeID() uint
	BindToRecipe(recipeID uint)
	CopyFieldsFrom(src *T)
	Validate() error
}

// ComponentService manages one kind of recipe component under its parent recipe.
type ComponentService[T any, P ComponentPtr[T]] struct {
	repo  repository.ComponentRepository[T]
	authz *Authorizer
}

// NewComponentService returns a ComponentService for T.
func NewComponentService[T any, P ComponentPtr[T]](repo repository.ComponentRepository[T], authz *Authorizer) *ComponentService[T, P] {
	return &ComponentService[T, P]{repo: repo, authz: authz}
}

// Name is the component kind, e.g. "Ingredient".
func (s *ComponentService[T, P]) Name() string {
	return P(new(T)).ComponentName()
}

// ListForOwner returns the components of every recipe ownerID has.
func (s *ComponentService[T, P]) ListForOwner(ctx context.Context, ownerID uint) ([]T, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *ComponentService[T, P]) ListForParent(ctx context.Context, callerID, recipeID uint) ([]T, error) {
	if _, err := s.authz.Recipe(ctx, callerID, recipeID); err != nil {
		return nil, err
	}
	return s.repo.ListByRecipe(ctx, recipeID)
}

func (s *ComponentService[T, P]) Get(ctx context.Context, callerID, recipeID, id uint) (*T, error) {
	return AuthorizeComponent[T, P](ctx, s.authz, s.repo, callerID, recipeID, id)
}

// Create attaches data to the recipe. Any client-supplied id is ignored.
func (s *ComponentService[T, P]) Create(ctx context.Context, callerID, recipeID uint, data *T) (*T, error) {
	if _, err := s.authz.Recipe(ctx, callerID, recipeID); err != nil {
		return nil, err
	}
	if err := P(data).Validate(); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	P(data).BindToRecipe(recipeID)
	if err := s.repo.Create(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Update overwrites every mutable field of the component.
func (s *ComponentService[T, P]) Update(ctx context.Context, callerID, recipeID, id uint, data *T) (*T, error) {
	existing, err := AuthorizeComponent[T, P](ctx, s.authz, s.repo, callerID, recipeID, id)
	if err != nil {
		return nil, err
	}
	if err := P(data).Validate(); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	P(existing).CopyFieldsFrom(data)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ComponentService[T, P]) Delete(ctx context.Context, callerID, recipeID, id uint) error {
	if _, err := AuthorizeComponent[T, P](ctx, s.authz, s.repo, callerID, recipeID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// The concrete component services.
type (
	IngredientService       = ComponentService[models.Ingredient, *models.Ingredient]
	NutritionalValueService = ComponentService[models.NutritionalValue, *models.NutritionalValue]
	RecipeStepService       = ComponentService[models.RecipeStep, *models.RecipeStep]
	ToolService             = ComponentService[models.Tool, *models.Tool]
	TagService              = ComponentService[models.Tag, *models.Tag]
)
