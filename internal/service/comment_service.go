package service

import (
	"context"

	"zephyr/internal/models"
	"zephyr/internal/observability"
	"zephyr/internal/repository"
)

type CommentService struct {
	comments repository.CommentRepository
}

func NewCommentService(comments repository.CommentRepository) *CommentService {
	return &CommentService{comments: comments}
}

func (s *CommentService) ListPostComments(ctx context.Context, postID uint, skip, limit int) ([]models.Comment, error) {
	return s.comments.ListByPost(ctx, postID, skip, limit)
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

func (s *CommentService) CreateComment(ctx context.Context, in models.CommentCreate) (comment *models.Comment, err error) {
	ctx, span := startSpan(ctx, "CommentService.CreateComment", in.PostID)
	defer func() { observability.EndSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return nil, err
	}
	comment = &models.Comment{
		Content: in.Content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Any caller may delete any comment.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "CommentService.DeleteComment", id)
	defer func() { observability.EndSpan(span, err) }()

	return s.comments.Delete(ctx, id)
}
