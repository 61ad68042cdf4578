package server

import (
	"barrique/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyRecipes handles GET /api/user/recipe
// @Summary List my recipes
// @Tags recipes
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Recipe
// @Router /user/recipe [get]
func (s *Server) GetMyRecipes(c *fiber.Ctx) error {
	recipes, err := s.recipeService.ListForOwner(c.UserContext(), callerID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(recipes)
}

// GetRecipe handles GET /api/recipe/:id
// @Summary Get recipe
// @Tags recipes
// @Security BearerAuth
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.Recipe
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipe/{id} [get]
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	recipe, err := s.recipeService.Get(c.UserContext(), callerID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(recipe)
}

// CreateRecipe handles POST /api/recipe
// @Summary Create recipe
// @Description Nested components are stored with the recipe.
// @Tags recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param recipe body models.Recipe true "Recipe"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} models.ErrorResponse
// @Router /recipe [post]
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	var req models.Recipe
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	recipe, err := s.recipeService.Create(c.UserContext(), callerID(c), &req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(recipe)
}

// UpdateRecipe handles PUT /api/recipe/:id
// @Summary Replace recipe
// @Description Every component collection is replaced by the one in the body.
// @Tags recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body models.Recipe true "Recipe"
// @Success 200 {object} models.Recipe
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipe/{id} [put]
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req models.Recipe
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	recipe, err := s.recipeService.Update(c.UserContext(), callerID(c), id, &req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(recipe)
}

// DeleteRecipe handles DELETE /api/recipe/:id
// @Summary Delete recipe
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipe/{id} [delete]
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.Delete(c.UserContext(), callerID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Recipe deleted successfully."})
}

// GetTagTypes handles GET /api/tags/types
// @Summary Tag catalogue
// @Description The closed set of tag types, grouped by category.
// @Tags recipes
// @Produce json
// @Success 200 {object} object{groups=[]models.TagGroup,types=[]string}
// @Router /tags/types [get]
func (s *Server) GetTagTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"groups": models.TagGroups(),
		"types":  models.AllTagTypes(),
	})
}
