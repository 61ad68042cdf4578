package server

import (
	"barrique/internal/middleware"
	"barrique/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/user
// @Summary List users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.User
// @Router /user [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 50)
	users, err := s.userService.ListUsers(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/user/:id
// @Summary Get user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /user/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/user/:username
// @Summary Delete own account
// @Description Deletes the caller's account with every journey and recipe it owns.
// @Tags users
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /user/{username} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)
	caller := &models.User{ID: callerID(c), Username: username}

	if err := s.userService.DeleteSelf(c.UserContext(), caller, c.Params("username")); err != nil {
		return models.RespondWithAppError(c, err)
	}
	if token, ok := middleware.BearerToken(c); ok {
		if err := s.authService.Logout(c.UserContext(), token); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "revoke token of deleted account", "error", err)
		}
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
