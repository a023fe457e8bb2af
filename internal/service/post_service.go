package service

import (
	"context"

	"zephyr/internal/models"
	"zephyr/internal/observability"
	"zephyr/internal/repository"
)

type PostService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

func (s *PostService) ListPosts(ctx context.Context, skip, limit int) ([]models.Post, error) {
	return s.posts.List(ctx, skip, limit)
}

func (s *PostService) ListUserPosts(ctx context.Context, userID uint, skip, limit int) ([]models.Post, error) {
	return s.posts.ListByUser(ctx, userID, skip, limit)
}

// GetPost returns the post with its author and comments, oldest comment first.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.PostWithComments, error) {
	return s.posts.GetWithComments(ctx, id)
}

func (s *PostService) CreatePost(ctx context.Context, in models.PostCreate) (post *models.Post, err error) {
	ctx, span := startSpan(ctx, "PostService.CreatePost", in.UserID)
	defer func() { observability.EndSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	post = &models.Post{
		Content:  in.Content,
		ImageURL: in.ImageURL,
		UserID:   in.UserID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, id uint, in models.PostUpdate) (post *models.Post, err error) {
	ctx, span := startSpan(ctx, "PostService.UpdatePost", id)
	defer func() { observability.EndSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.posts.Update(ctx, id, in)
}

// DeletePost removes post id and its comments on behalf of actingID, who must
// own the post or be an admin.
func (s *PostService) DeletePost(ctx context.Context, id, actingID uint) (err error) {
	ctx, span := startSpan(ctx, "PostService.DeletePost", id)
	defer func() { observability.EndSpan(span, err) }()

	if actingID == 0 {
		return models.NewValidationError("user_id is required")
	}
	return s.posts.Delete(ctx, id, actingID, canDeletePost)
}

func canDeletePost(post *models.Post, acting *models.User) error {
	if post.UserID == acting.ID || acting.IsAdmin {
		return nil
	}
	return models.NewForbiddenError("Not authorized to delete this post")
}
