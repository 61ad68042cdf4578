package repository

import (
	"context"
	"errors"

	"barrique/internal/cache"
	"barrique/internal/middleware"
	"barrique/internal/models"
	"barrique/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ResolveID(ctx context.Context, username string) (uint, error)
	Create(ctx context.Context, user *models.User) error
	DeleteByUsername(ctx context.Context, username string) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

type userRepository struct {
	db  *gorm.DB
	rdb *redis.Client
	log *observability.RepoLogger
}

// NewUserRepository returns a new UserRepository implementation. rdb may be
// nil, in which case ResolveID always queries the database.
func NewUserRepository(db *gorm.DB, rdb *redis.Client) UserRepository {
	return &userRepository{
		db:  db,
		rdb: rdb,
		log: observability.NewRepoLogger("users", middleware.Logger),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, lookupError(err, "User", id)
	}
	return &user, nil
}

// GetByUsername returns nil, nil when no such user exists.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// ResolveID maps a username to its id, served from Redis when possible.
func (r *userRepository) ResolveID(ctx context.Context, username string) (uint, error) {
	var id uint
	err := cache.Aside(ctx, r.rdb, cache.UserIDKey(username), &id, cache.UserIDTTL, func() error {
		var user models.User
		if err := r.db.WithContext(ctx).Select("id").Where("username = ?", username).First(&user).Error; err != nil {
			return lookupError(err, "User", username)
		}
		id = user.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username is already taken")
		}
		r.log.LogError(ctx, "create", err)
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, user.ID)
	return nil
}

// DeleteByUsername removes the user and everything they own.
func (r *userRepository) DeleteByUsername(ctx context.Context, username string) error {
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
			return lookupError(err, "User", username)
		}

		recipeIDs := tx.Model(&models.Recipe{}).Select("id").Where("owner_user_id = ?", user.ID)
		if err := deleteRecipeChildren(tx, recipeIDs); err != nil {
			return err
		}
		if err := tx.Where("owner_user_id = ?", user.ID).Delete(&models.Recipe{}).Error; err != nil {
			return err
		}

		journeyIDs := tx.Model(&models.Journey{}).Select("id").Where("owner_user_id = ?", user.ID)
		if err := tx.Where("journey_id IN (?)", journeyIDs).Delete(&models.Expenditure{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_user_id = ?", user.ID).Delete(&models.Journey{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, user.ID).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		r.log.LogError(ctx, "delete", err)
		return models.NewInternalError(err)
	}

	_ = cache.Invalidate(ctx, r.rdb, cache.UserIDKey(user.Username))
	r.log.LogDelete(ctx, user.ID)
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
