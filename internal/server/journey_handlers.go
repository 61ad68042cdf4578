package server

import (
	"barrique/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyJourneys handles GET /api/user/journey
// @Summary List my journeys
// @Tags journeys
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Journey
// @Router /user/journey [get]
func (s *Server) GetMyJourneys(c *fiber.Ctx) error {
	journeys, err := s.journeyService.ListForOwner(c.UserContext(), callerID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(journeys)
}

// GetJourney handles GET /api/journey/:id
// @Summary Get journey
// @Tags journeys
// @Security BearerAuth
// @Produce json
// @Param id path int true "Journey ID"
// @Success 200 {object} models.Journey
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /journey/{id} [get]
func (s *Server) GetJourney(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	journey, err := s.journeyService.Get(c.UserContext(), callerID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(journey)
}

// CreateJourney handles POST /api/journey
// @Summary Create journey
// @Description The caller becomes the owner regardless of the body.
// @Tags journeys
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param journey body models.Journey true "Journey"
// @Success 200 {object} models.Journey
// @Failure 400 {object} models.ErrorResponse
// @Router /journey [post]
func (s *Server) CreateJourney(c *fiber.Ctx) error {
	var req models.Journey
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	journey, err := s.journeyService.Create(c.UserContext(), callerID(c), &req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(journey)
}

// UpdateJourney handles PUT /api/journey/:id
// @Summary Update journey
// @Tags journeys
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Journey ID"
// @Param journey body models.Journey true "Journey"
// @Success 200 {object} models.Journey
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /journey/{id} [put]
func (s *Server) UpdateJourney(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req models.Journey
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	journey, err := s.journeyService.Update(c.UserContext(), callerID(c), id, &req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(journey)
}

// DeleteJourney handles DELETE /api/journey/:id
// @Summary Delete journey
// @Description Removes the journey and its expenditures.
// @Tags journeys
// @Security BearerAuth
// @Param id path int true "Journey ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /journey/{id} [delete]
func (s *Server) DeleteJourney(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.journeyService.Delete(c.UserContext(), callerID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Journey deleted successfully."})
}
