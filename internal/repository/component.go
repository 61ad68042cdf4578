package repository

import (
	"context"
	"strings"

	"barrique/internal/middleware"
	"barrique/internal/models"
	"barrique/internal/observability"

	"gorm.io/gorm"
)

// ComponentRepository persists one kind of recipe component.
type ComponentRepository[T any] interface {
	ListByRecipe(ctx context.Context, recipeID uint) ([]T, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, component *T) error
	Update(ctx context.Context, component *T) error
	Delete(ctx context.Context, id uint) error
}

type componentRepository[T any] struct {
	db       *gorm.DB
	resource string
	log      *observability.RepoLogger
}

// NewComponentRepository returns a ComponentRepository for T. resource names
// the component in errors and logs, e.g. "Ingredient".
func NewComponentRepository[T any](db *gorm.DB, resource string) ComponentRepository[T] {
	return &componentRepository[T]{
		db:       db,
		resource: resource,
		log:      observability.NewRepoLogger(strings.ToLower(resource), middleware.Logger),
	}
}

func (r *componentRepository[T]) ListByRecipe(ctx context.Context, recipeID uint) ([]T, error) {
	items := []T{}
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

// ListByOwner returns the components of every recipe the owner has.
func (r *componentRepository[T]) ListByOwner(ctx context.Context, ownerID uint) ([]T, error) {
	items := []T{}
	recipeIDs := r.db.WithContext(ctx).Model(&models.Recipe{}).Select("id").Where("owner_user_id = ?", ownerID)
	if err := r.db.WithContext(ctx).
		Where("recipe_id IN (?)", recipeIDs).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *componentRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, lookupError(err, r.resource, id)
	}
	return &item, nil
}

func (r *componentRepository[T]) Create(ctx context.Context, component *T) error {
	if err := r.db.WithContext(ctx).Create(component).Error; err != nil {
		r.log.LogError(ctx, "create", err)
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, primaryKeyOf(component))
	return nil
}

func (r *componentRepository[T]) Update(ctx context.Context, component *T) error {
	if err := r.db.WithContext(ctx).Save(component).Error; err != nil {
		r.log.LogError(ctx, "update", err)
		return models.NewInternalError(err)
	}
	r.log.LogUpdate(ctx, primaryKeyOf(component))
	return nil
}

func (r *componentRepository[T]) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(new(T), id).Error; err != nil {
		r.log.LogError(ctx, "delete", err)
		return models.NewInternalError(err)
	}
	r.log.LogDelete(ctx, id)
	return nil
}

func primaryKeyOf(v any) uint {
	if pk, ok := v.(interface{ PrimaryKey() uint }); ok {
		return pk.PrimaryKey()
	}
	return 0
}
