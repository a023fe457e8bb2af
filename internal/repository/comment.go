package repository

import (
	"context"
	"errors"

	"zephyr/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByPost(ctx context.Context, postID uint, skip, limit int) ([]models.Comment, error)
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// oldestFirst orders comments by creation time with their authors loaded.
func oldestFirst(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Order("comments.created_at ASC").Order("comments.id ASC")
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, skip, limit int) ([]models.Comment, error) {
	db := r.db.WithContext(ctx)
	if err := requireExists(db, &models.Post{}, "Post", postID); err != nil {
		return nil, err
	}

	comments := []models.Comment{}
	err := window(oldestFirst(db).Where("comments.post_id = ?", postID), skip, limit).Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// Create inserts comment after checking its author, then its post, exist.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := findUser(tx, comment.UserID)
		if err != nil {
			return err
		}
		if err := requireExists(tx, &models.Post{}, "Post", comment.PostID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
			return err
		}
		comment.Author = *author
		return nil
	})
	return translateError(err, "Comment already exists")
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}
