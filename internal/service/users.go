package service

import (
	"context"
	"fmt"

	"github.com/rwangliu/library-lending-server/internal/apperrors"
	"github.com/rwangliu/library-lending-server/internal/models"
)

// User management methods (admin surface)

func (s *DefaultService) ListUsers(ctx context.Context, filter models.ListFilter) ([]models.User, models.Pagination, error) {
	filter.Normalize()

	users, total, err := s.repo.ListUsers(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("error listing users: %w", err)
	}

	return users, models.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *DefaultService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, apperrors.New(apperrors.KindUserNotFound, "User not found")
	}
	return user, nil
}

func (s *DefaultService) UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, apperrors.New(apperrors.KindUserNotFound, "User not found")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return user, nil
}

func (s *DefaultService) DeactivateUser(ctx context.Context, userID string) error {
	found, err := s.repo.DeactivateUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("error deactivating user: %w", err)
	}
	if !found {
		return apperrors.New(apperrors.KindUserNotFound, "User not found")
	}
	return nil
}
