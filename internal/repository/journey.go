package repository

import (
	"context"

	"barrique/internal/middleware"
	"barrique/internal/models"
	"barrique/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JourneyRepository defines persistence operations for journeys.
type JourneyRepository interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Journey, error)
	GetByID(ctx context.Context, id uint) (*models.Journey, error)
	Create(ctx context.Context, journey *models.Journey) error
	Update(ctx context.Context, journey *models.Journey) error
	Delete(ctx context.Context, id uint) error
}

type journeyRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewJourneyRepository returns a new JourneyRepository implementation.
func NewJourneyRepository(db *gorm.DB) JourneyRepository {
	return &journeyRepository{
		db:  db,
		log: observability.NewRepoLogger("journeys", middleware.Logger),
	}
}

func (r *journeyRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Journey, error) {
	journeys := []models.Journey{}
	if err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("id ASC").
		Find(&journeys).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return journeys, nil
}

func (r *journeyRepository) GetByID(ctx context.Context, id uint) (*models.Journey, error) {
	var journey models.Journey
	if err := r.db.WithContext(ctx).First(&journey, id).Error; err != nil {
		return nil, lookupError(err, "Journey", id)
	}
	return &journey, nil
}

func (r *journeyRepository) Create(ctx context.Context, journey *models.Journey) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(journey).Error; err != nil {
		r.log.LogError(ctx, "create", err)
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, journey.ID, "owner_user_id", journey.OwnerUserID)
	return nil
}

func (r *journeyRepository) Update(ctx context.Context, journey *models.Journey) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(journey).Error; err != nil {
		r.log.LogError(ctx, "update", err)
		return models.NewInternalError(err)
	}
	r.log.LogUpdate(ctx, journey.ID)
	return nil
}

// Delete removes the journey and its expenditures.
func (r *journeyRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("journey_id = ?", id).Delete(&models.Expenditure{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Journey{}, id).Error
	})
	if err != nil {
		r.log.LogError(ctx, "delete", err)
		return models.NewInternalError(err)
	}
	r.log.LogDelete(ctx, id)
	return nil
}
