package service

import (
	"context"

	"zephyr/internal/models"
	"zephyr/internal/observability"
	"zephyr/internal/repository"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	return s.users.List(ctx, skip, limit)
}

// GetUser returns the user with their friends embedded.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.UserWithFriends, error) {
	return s.users.GetWithFriends(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, in models.UserCreate) (user *models.User, err error) {
	ctx, span := startSpan(ctx, "UserService.CreateUser", 0)
	defer func() { observability.EndSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	user = in.ToUser()
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, in models.UserUpdate) (user *models.User, err error) {
	ctx, span := startSpan(ctx, "UserService.UpdateUser", id)
	defer func() { observability.EndSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.users.Update(ctx, id, in)
}

// DeleteUser removes user id on behalf of actingID, who must be that user or
// an admin.
func (s *UserService) DeleteUser(ctx context.Context, id, actingID uint) (err error) {
	ctx, span := startSpan(ctx, "UserService.DeleteUser", id)
	defer func() { observability.EndSpan(span, err) }()

	if actingID == 0 {
		return models.NewValidationError("current_user_id is required")
	}
	return s.users.Delete(ctx, id, actingID, canDeleteUser)
}

func canDeleteUser(target, acting *models.User) error {
	if acting.ID == target.ID || acting.IsAdmin {
		return nil
	}
	return models.NewForbiddenError("Not authorized to delete this user")
}
