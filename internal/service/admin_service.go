package service

import (
	"context"

	"recurate/internal/models"
	"recurate/internal/repository"
)

type AdminService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// Dashboard is the admin overview: every registered account plus aggregate
// counts.
type Dashboard struct {
	Users     []models.User
	UserCount int
	PostCount int64
}

func NewAdminService(userRepo repository.UserRepository, postRepo repository.PostRepository) *AdminService {
	return &AdminService{userRepo: userRepo, postRepo: postRepo}
}

func (s *AdminService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	postCount, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Users:     users,
		UserCount: len(users),
		PostCount: postCount,
	}, nil
}

// SetAdmin grants or revokes the admin role. Revoking the last admin is
// refused so the dashboard always has at least one keyholder.
func (s *AdminService) SetAdmin(ctx context.Context, targetID uint, admin bool) error {
	if !admin {
		count, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return err
		}
		target, err := s.userRepo.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if target.IsAdmin && count <= 1 {
			return models.NewValidationError("cannot demote the last admin")
		}
	}
	return s.userRepo.SetAdmin(ctx, targetID, admin)
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}
