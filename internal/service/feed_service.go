package service

import (
	"context"

	"zephyr/internal/models"
	"zephyr/internal/observability"
	"zephyr/internal/repository"
)

type FeedService struct {
	posts repository.PostRepository
}

func NewFeedService(posts repository.PostRepository) *FeedService {
	return &FeedService{posts: posts}
}

// UserFeed returns posts by userID and their friends, newest first.
func (s *FeedService) UserFeed(ctx context.Context, userID uint, skip, limit int) (feed *models.FeedResponse, err error) {
	ctx, span := startSpan(ctx, "FeedService.UserFeed", userID)
	defer func() { observability.EndSpan(span, err) }()

	posts, err := s.posts.Feed(ctx, userID, skip, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return &models.FeedResponse{Posts: orEmpty(posts), Count: len(posts)}, nil
}

// PublicFeed returns every post, newest first.
func (s *FeedService) PublicFeed(ctx context.Context, skip, limit int) (feed *models.FeedResponse, err error) {
	ctx, span := startSpan(ctx, "FeedService.PublicFeed", 0)
	defer func() { observability.EndSpan(span, err) }()

	posts, err := s.posts.List(ctx, skip, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return &models.FeedResponse{Posts: orEmpty(posts), Count: len(posts)}, nil
}
