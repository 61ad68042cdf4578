package server

import (
	"barrique/internal/models"

	"github.com/gofiber/fiber/v2"
)

// journeyAndExpenditureIDs parses both path ids, writing a 400 on failure.
func journeyAndExpenditureIDs(c *fiber.Ctx) (uint, uint, error) {
	journeyID, err := parseID(c, "journeyId")
	if err != nil {
		return 0, 0, err
	}
	expenditureID, err := parseID(c, "expenditureId")
	if err != nil {
		return 0, 0, err
	}
	return journeyID, expenditureID, nil
}

// GetMyExpenditures handles GET /api/users/expenditures
// @Summary List my expenditures
// @Description Every expenditure across the caller's journeys.
// @Tags expenditures
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Expenditure
// @Router /users/expenditures [get]
func (s *Server) GetMyExpenditures(c *fiber.Ctx) error {
	list, err := s.expenditureService.ListForOwner(c.UserContext(), callerID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(list)
}

// GetExpenditures handles GET /api/journey/:journeyId/expenditure
// @Summary List journey expenditures
// @Tags expenditures
// @Security BearerAuth
// @Produce json
// @Param journeyId path int true "Journey ID"
// @Success 200 {array} models.Expenditure
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /journey/{journeyId}/expenditure [get]
func (s *Server) GetExpenditures(c *fiber.Ctx) error {
	journeyID, err := parseID(c, "journeyId")
	if err != nil {
		return nil
	}

	list, err := s.expenditureService.ListForParent(c.UserContext(), callerID(c), journeyID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(list)
}

// GetExpenditure handles GET /api/journey/:journeyId/expenditure/:expenditureId
// @Summary Get expenditure
// @Tags expenditures
// @Security BearerAuth
// @Produce json
// @Param journeyId path int true "Journey ID"
// @Param expenditureId path int true "Expenditure ID"
// @Success 200 {object} models.Expenditure
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /journey/{journeyId}/expenditure/{expenditureId} [get]
func (s *Server) GetExpenditure(c *fiber.Ctx) error {
	journeyID, id, err := journeyAndExpenditureIDs(c)
	if err != nil {
		return nil
	}

	exp, err := s.expenditureService.Get(c.UserContext(), callerID(c), journeyID, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(exp)
}

// CreateExpenditure handles POST /api/journey/:journeyId/expenditure
// @Summary Record expenditure
// @Description The date defaults to today when omitted.
// @Tags expenditures
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param journeyId path int true "Journey ID"
// @Param expenditure body models.Expenditure true "Expenditure"
// @Success 201 {object} models.Expenditure
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /journey/{journeyId}/expenditure [post]
func (s *Server) CreateExpenditure(c *fiber.Ctx) error {
	journeyID, err := parseID(c, "journeyId")
	if err != nil {
		return nil
	}
	var req models.Expenditure
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	exp, err := s.expenditureService.Create(c.UserContext(), callerID(c), journeyID, &req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exp)
}

// UpdateExpenditure handles PUT /api/journey/:journeyId/expenditure/:expenditureId
// @Summary Update expenditure
// @Tags expenditures
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param journeyId path int true "Journey ID"
// @Param expenditureId path int true "Expenditure ID"
// @Param expenditure body models.Expenditure true "Expenditure"
// @Success 200 {object} models.Expenditure
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /journey/{journeyId}/expenditure/{expenditureId} [put]
func (s *Server) UpdateExpenditure(c *fiber.Ctx) error {
	journeyID, id, err := journeyAndExpenditureIDs(c)
	if err != nil {
		return nil
	}
	var req models.Expenditure
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	exp, err := s.expenditureService.Update(c.UserContext(), callerID(c), journeyID, id, &req)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(exp)
}

// DeleteExpenditure handles DELETE /api/journey/:journeyId/expenditure/:expenditureId
// @Summary Delete expenditure
// @Tags expenditures
// @Security BearerAuth
// @Param journeyId path int true "Journey ID"
// @Param expenditureId path int true "Expenditure ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /journey/{journeyId}/expenditure/{expenditureId} [delete]
func (s *Server) DeleteExpenditure(c *fiber.Ctx) error {
	journeyID, id, err := journeyAndExpenditureIDs(c)
	if err != nil {
		return nil
	}

	if err := s.expenditureService.Delete(c.UserContext(), callerID(c), journeyID, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
