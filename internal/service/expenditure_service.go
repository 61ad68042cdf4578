package service

import (
	"context"

	"barrique/internal/models"
	"barrique/internal/repository"
	"barrique/internal/validation"
)

type ExpenditureService struct {
	expenditures repository.ExpenditureRepository
	authz        *Authorizer
	today        func() models.Date
}

func NewExpenditureService(expenditures repository.ExpenditureRepository, authz *Authorizer) *ExpenditureService {
	return &ExpenditureService{expenditures: expenditures, authz: authz, today: models.Today}
}

// ListForOwner returns every expenditure across the owner's journeys.
func (s *ExpenditureService) ListForOwner(ctx context.Context, ownerID uint) ([]models.Expenditure, error) {
	return s.expenditures.ListByOwner(ctx, ownerID)
}

func (s *ExpenditureService) ListForParent(ctx context.Context, callerID, journeyID uint) ([]models.Expenditure, error) {
	if _, err := s.authz.Journey(ctx, callerID, journeyID); err != nil {
		return nil, err
	}
	return s.expenditures.ListByJourney(ctx, journeyID)
}

func (s *ExpenditureService) Get(ctx context.Context, callerID, journeyID, id uint) (*models.Expenditure, error) {
	return s.authz.Expenditure(ctx, callerID, journeyID, id)
}

// Create records a spend against the journey. A missing date means today.
func (s *ExpenditureService) Create(ctx context.Context, callerID, journeyID uint, data *models.Expenditure) (*models.Expenditure, error) {
	if _, err := s.authz.Journey(ctx, callerID, journeyID); err != nil {
		return nil, err
	}
	if err := validation.ValidateExpenditure(data); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	expenditure := &models.Expenditure{JourneyID: journeyID}
	s.copyFields(expenditure, data)
	if err := s.expenditures.Create(ctx, expenditure); err != nil {
		return nil, err
	}
	return expenditure, nil
}

func (s *ExpenditureService) Update(ctx context.Context, callerID, journeyID, id uint, data *models.Expenditure) (*models.Expenditure, error) {
	expenditure, err := s.authz.Expenditure(ctx, callerID, journeyID, id)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateExpenditure(data); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	s.copyFields(expenditure, data)
	if err := s.expenditures.Update(ctx, expenditure); err != nil {
		return nil, err
	}
	return expenditure, nil
}

func (s *ExpenditureService) Delete(ctx context.Context, callerID, journeyID, id uint) error {
	if _, err := s.authz.Expenditure(ctx, callerID, journeyID, id); err != nil {
		return err
	}
	return s.expenditures.Delete(ctx, id)
}

// copyFields overwrites every mutable field. A missing date becomes today.
func (s *ExpenditureService) copyFields(dst, src *models.Expenditure) {
	dst.Name = src.Name
	dst.Amount = src.Amount
	dst.Date = src.Date
	if dst.Date.IsZero() {
		dst.Date = s.today()
	}
}
