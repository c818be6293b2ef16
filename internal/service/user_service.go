package service

import (
	"context"
	"strings"

	"sanxing/internal/models"
	"sanxing/internal/repository"
	"sanxing/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UpdateSettingsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserService handles profile reads and settings updates.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateSettings applies a partial settings change. Empty fields are left
// untouched; a new password is re-hashed before storage.
func (s *UserService) UpdateSettings(ctx context.Context, userID uint, in UpdateSettingsInput) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = strings.TrimSpace(in.Username)
	}
	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
