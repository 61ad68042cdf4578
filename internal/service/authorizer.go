// Package service holds the business logic between HTTP handlers and repositories.
package service

import (
	"context"

	"barrique/internal/models"
	"barrique/internal/observability"
	"barrique/internal/repository"
)

// Authorizer resolves a resource and checks that its owner chain ends at the
// caller. A missing resource is NotFound; a foreign one is Forbidden.
type Authorizer struct {
	journeys     repository.JourneyRepository
	expenditures repository.ExpenditureRepository
	recipes      repository.RecipeRepository
}

// NewAuthorizer returns an Authorizer backed by the given repositories.
func NewAuthorizer(
	journeys repository.JourneyRepository,
	expenditures repository.ExpenditureRepository,
	recipes repository.RecipeRepository,
) *Authorizer {
	return &Authorizer{
		journeys:     journeys,
		expenditures: expenditures,
		recipes:      recipes,
	}
}

func deny(resource string) error {
	observability.RecordOwnershipDenial(resource)
	return models.NewForbiddenError("You do not have access to this " + resource)
}

// Journey returns the journey if callerID owns it.
func (a *Authorizer) Journey(ctx context.Context, callerID, journeyID uint) (*models.Journey, error) {
	journey, err := a.journeys.GetByID(ctx, journeyID)
	if err != nil {
		return nil, err
	}
	if journey.OwnerUserID != callerID {
		return nil, deny("journey")
	}
	return journey, nil
}

// Expenditure returns the expenditure if it belongs to journeyID and callerID owns that journey.
func (a *Authorizer) Expenditure(ctx context.Context, callerID, journeyID, expenditureID uint) (*models.Expenditure, error) {
	if _, err := a.Journey(ctx, callerID, journeyID); err != nil {
		return nil, err
	}
	expenditure, err := a.expenditures.GetByID(ctx, expenditureID)
	if err != nil {
		return nil, err
	}
	if expenditure.JourneyID != journeyID {
		return nil, models.NewNotFoundError("Expenditure", expenditureID)
	}
	return expenditure, nil
}

// Recipe returns the recipe, components included, if callerID owns it.
func (a *Authorizer) Recipe(ctx context.Context, callerID, recipeID uint) (*models.Recipe, error) {
	recipe, err := a.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.OwnerUserID != callerID {
		return nil, deny("recipe")
	}
	return recipe, nil
}

// AuthorizeComponent checks the parent recipe, loads the component, and
// requires that it belongs to that recipe.
func AuthorizeComponent[T any, P ComponentPtr[T]](
	ctx context.Context,
	a *Authorizer,
	repo repository.ComponentRepository[T],
	callerID, recipeID, id uint,
) (*T, error) {
	if _, err := a.Recipe(ctx, callerID, recipeID); err != nil {
		return nil, err
	}
	item, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if P(item).ParentRecipeID() != recipeID {
		return nil, models.NewNotFoundError(P(item).ComponentName(), id)
	}
	return item, nil
}
