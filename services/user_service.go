package services

import (
	"context"

	"dispatch-tracker/models"
	"dispatch-tracker/repositories"
)

type UserService struct {
	repo *repositories.UserRepository
}

func NewUserService(repo *repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Create user
func (s *UserService) CreateUser(ctx context.Context, user *models.User) error {
	return s.repo.Create(ctx, user)
}

// Get user by ID
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Get all users
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}

// UpdateRole may not leave the system without a super_admin.
func (s *UserService) UpdateRole(ctx context.Context, id uint, role models.Role) (*models.User, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Role == models.RoleSuperAdmin && role != models.RoleSuperAdmin {
		count, err := s.repo.CountByRole(ctx, models.RoleSuperAdmin)
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			return nil, ErrLastSuperAdmin
		}
	}
	return s.repo.UpdateRole(ctx, id, role)
}
