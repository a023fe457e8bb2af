package service

import (
	"context"

	"zephyr/internal/models"
	"zephyr/internal/observability"
	"zephyr/internal/repository"
)

// Combined search categories.
const (
	SearchTypeUsers = "users"
	SearchTypePosts = "posts"
	SearchTypeAll   = "all"
)

type SearchService struct {
	users repository.UserRepository
	posts repository.PostRepository
}

func NewSearchService(users repository.UserRepository, posts repository.PostRepository) *SearchService {
	return &SearchService{users: users, posts: posts}
}

func (s *SearchService) SearchUsers(ctx context.Context, q string, limit int) (res *models.UserSearchResponse, err error) {
	ctx, span := startSpan(ctx, "SearchService.SearchUsers", 0)
	defer func() { observability.EndSpan(span, err) }()

	if err := validateQuery(q); err != nil {
		return nil, err
	}
	users, err := s.users.Search(ctx, q, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return &models.UserSearchResponse{Results: orEmpty(users), Count: len(users)}, nil
}

func (s *SearchService) SearchPosts(ctx context.Context, q string, limit int) (res *models.PostSearchResponse, err error) {
	ctx, span := startSpan(ctx, "SearchService.SearchPosts", 0)
	defer func() { observability.EndSpan(span, err) }()

	if err := validateQuery(q); err != nil {
		return nil, err
	}
	posts, err := s.posts.Search(ctx, q, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	return &models.PostSearchResponse{Results: orEmpty(posts), Count: len(posts)}, nil
}

// Search runs the categories selected by searchType ("" means all).
func (s *SearchService) Search(ctx context.Context, q, searchType string, limit int) (res *models.SearchResults, err error) {
	ctx, span := startSpan(ctx, "SearchService.Search", 0)
	defer func() { observability.EndSpan(span, err) }()

	if searchType == "" {
		searchType = SearchTypeAll
	}
	if searchType != SearchTypeUsers && searchType != SearchTypePosts && searchType != SearchTypeAll {
		return nil, models.NewValidationError("type must be one of users, posts, all")
	}
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	limit = ClampLimit(limit)
	res = &models.SearchResults{}
	if searchType == SearchTypeUsers || searchType == SearchTypeAll {
		users, err := s.users.Search(ctx, q, limit)
		if err != nil {
			return nil, err
		}
		users = orEmpty(users)
		res.Users = &users
	}
	if searchType == SearchTypePosts || searchType == SearchTypeAll {
		posts, err := s.posts.Search(ctx, q, limit)
		if err != nil {
			return nil, err
		}
		posts = orEmpty(posts)
		res.Posts = &posts
	}
	return res, nil
}

// validateQuery requires at least one character. The query is not trimmed.
func validateQuery(q string) error {
	if q == "" {
		return models.NewValidationError("q is required")
	}
	return nil
}
