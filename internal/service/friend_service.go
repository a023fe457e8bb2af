package service

import (
	"context"

	"zephyr/internal/models"
	"zephyr/internal/observability"
	"zephyr/internal/repository"
)

type FriendService struct {
	friends repository.FriendRepository
}

func NewFriendService(friends repository.FriendRepository) *FriendService {
	return &FriendService{friends: friends}
}

func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friends.ListFriends(ctx, userID)
}

// AddFriend links both users in both directions.
func (s *FriendService) AddFriend(ctx context.Context, in models.FriendRequest) (err error) {
	ctx, span := startSpan(ctx, "FriendService.AddFriend", in.UserID)
	defer func() { observability.EndSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return err
	}
	return s.friends.Add(ctx, in.UserID, in.FriendID)
}

// RemoveFriend unlinks both users in both directions.
func (s *FriendService) RemoveFriend(ctx context.Context, in models.FriendRequest) (err error) {
	ctx, span := startSpan(ctx, "FriendService.RemoveFriend", in.UserID)
	defer func() { observability.EndSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return err
	}
	return s.friends.Remove(ctx, in.UserID, in.FriendID)
}
