package service

import (
	"context"

	"barrique/internal/models"
	"barrique/internal/repository"
	"barrique/internal/validation"
)

type JourneyService struct {
	journeys repository.JourneyRepository
	authz    *Authorizer
}

func NewJourneyService(journeys repository.JourneyRepository, authz *Authorizer) *JourneyService {
	return &JourneyService{journeys: journeys, authz: authz}
}

func (s *JourneyService) ListForOwner(ctx context.Context, ownerID uint) ([]models.Journey, error) {
	return s.journeys.ListByOwner(ctx, ownerID)
}

func (s *JourneyService) Get(ctx context.Context, callerID, id uint) (*models.Journey, error) {
	return s.authz.Journey(ctx, callerID, id)
}

// Create stores data as a new journey owned by callerID.
func (s *JourneyService) Create(ctx context.Context, callerID uint, data *models.Journey) (*models.Journey, error) {
	if err := validation.ValidateJourney(data); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	journey := &models.Journey{OwnerUserID: callerID}
	copyJourneyFields(journey, data)
	if err := s.journeys.Create(ctx, journey); err != nil {
		return nil, err
	}
	return journey, nil
}

// Update overwrites every mutable field. Owner and id never change.
func (s *JourneyService) Update(ctx context.Context, callerID, id uint, data *models.Journey) (*models.Journey, error) {
	journey, err := s.authz.Journey(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateJourney(data); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	copyJourneyFields(journey, data)
	if err := s.journeys.Update(ctx, journey); err != nil {
		return nil, err
	}
	return journey, nil
}

// Delete removes the journey together with its expenditures.
func (s *JourneyService) Delete(ctx context.Context, callerID, id uint) error {
	if _, err := s.authz.Journey(ctx, callerID, id); err != nil {
		return err
	}
	return s.journeys.Delete(ctx, id)
}

func copyJourneyFields(dst, src *models.Journey) {
	dst.Name = src.Name
	dst.HomeCurrency = src.HomeCurrency
	dst.DestinationCurrency = src.DestinationCurrency
	dst.Budget = src.Budget
	dst.StartDate = src.StartDate
	dst.EndDate = src.EndDate
}
