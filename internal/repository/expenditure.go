package repository

import (
	"context"

	"barrique/internal/middleware"
	"barrique/internal/models"
	"barrique/internal/observability"

	"gorm.io/gorm"
)

// ExpenditureRepository defines persistence operations for expenditures.
type ExpenditureRepository interface {
	ListByJourney(ctx context.Context, journeyID uint) ([]models.Expenditure, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Expenditure, error)
	GetByID(ctx context.Context, id uint) (*models.Expenditure, error)
	Create(ctx context.Context, expenditure *models.Expenditure) error
	Update(ctx context.Context, expenditure *models.Expenditure) error
	Delete(ctx context.Context, id uint) error
}

type expenditureRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewExpenditureRepository returns a new ExpenditureRepository implementation.
func NewExpenditureRepository(db *gorm.DB) ExpenditureRepository {
	return &expenditureRepository{
		db:  db,
		log: observability.NewRepoLogger("expenditures", middleware.Logger),
	}
}

func (r *expenditureRepository) ListByJourney(ctx context.Context, journeyID uint) ([]models.Expenditure, error) {
	expenditures := []models.Expenditure{}
	if err := r.db.WithContext(ctx).
		Where("journey_id = ?", journeyID).
		Order("id ASC").
		Find(&expenditures).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return expenditures, nil
}

// ListByOwner returns every expenditure across the owner's journeys.
func (r *expenditureRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Expenditure, error) {
	expenditures := []models.Expenditure{}
	if err := r.db.WithContext(ctx).
		Joins("JOIN journeys ON journeys.id = expenditures.journey_id").
		Where("journeys.owner_user_id = ?", ownerID).
		Order("expenditures.id ASC").
		Find(&expenditures).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return expenditures, nil
}

func (r *expenditureRepository) GetByID(ctx context.Context, id uint) (*models.Expenditure, error) {
	var expenditure models.Expenditure
	if err := r.db.WithContext(ctx).First(&expenditure, id).Error; err != nil {
		return nil, lookupError(err, "Expenditure", id)
	}
	return &expenditure, nil
}

func (r *expenditureRepository) Create(ctx context.Context, expenditure *models.Expenditure) error {
	if err := r.db.WithContext(ctx).Create(expenditure).Error; err != nil {
		r.log.LogError(ctx, "create", err)
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, expenditure.ID, "journey_id", expenditure.JourneyID)
	return nil
}

func (r *expenditureRepository) Update(ctx context.Context, expenditure *models.Expenditure) error {
	if err := r.db.WithContext(ctx).Save(expenditure).Error; err != nil {
		r.log.LogError(ctx, "update", err)
		return models.NewInternalError(err)
	}
	r.log.LogUpdate(ctx, expenditure.ID)
	return nil
}

func (r *expenditureRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Expenditure{}, id).Error; err != nil {
		r.log.LogError(ctx, "delete", err)
		return models.NewInternalError(err)
	}
	r.log.LogDelete(ctx, id)
	return nil
}
