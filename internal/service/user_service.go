package service

import (
	"context"

	"barrique/internal/models"
	"barrique/internal/observability"
	"barrique/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// DeleteSelf deletes the account named username, which must be the caller's.
func (s *UserService) DeleteSelf(ctx context.Context, caller *models.User, username string) error {
	if caller == nil || caller.Username != username {
		observability.RecordOwnershipDenial("user")
		return models.NewForbiddenError("You can only delete your own account")
	}
	return s.userRepo.DeleteByUsername(ctx, username)
}
