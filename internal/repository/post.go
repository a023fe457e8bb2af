package repository

import (
	"context"
	"errors"

	"zephyr/internal/cache"
	"zephyr/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostDeletePolicy decides whether acting may delete post.
type PostDeletePolicy func(post *models.Post, acting *models.User) error

// PostRepository defines the interface for post data operations
type PostRepository interface {
	List(ctx context.Context, skip, limit int) ([]models.Post, error)
	ListByUser(ctx context.Context, userID uint, skip, limit int) ([]models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetWithComments(ctx context.Context, id uint) (*models.PostWithComments, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id uint, in models.PostUpdate) (*models.Post, error)
	Delete(ctx context.Context, id, actingID uint, allow PostDeletePolicy) error
	Feed(ctx context.Context, userID uint, skip, limit int) ([]models.Post, error)
	Search(ctx context.Context, query string, limit int) ([]models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// newestFirst orders posts by creation time with id as the tiebreaker.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Order("posts.created_at DESC").Order("posts.id DESC")
}

func (r *postRepository) List(ctx context.Context, skip, limit int) ([]models.Post, error) {
	posts := []models.Post{}
	if err := window(newestFirst(r.db.WithContext(ctx)), skip, limit).Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, skip, limit int) ([]models.Post, error) {
	db := r.db.WithContext(ctx)
	if err := requireExists(db, &models.User{}, "User", userID); err != nil {
		return nil, err
	}

	posts := []models.Post{}
	err := window(newestFirst(db).Where("posts.user_id = ?", userID), skip, limit).Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		found, err := findPost(r.db.WithContext(ctx).Preload("Author"), id)
		if err != nil {
			return err
		}
		post = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetWithComments(ctx context.Context, id uint) (*models.PostWithComments, error) {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments := []models.Comment{}
	if err := oldestFirst(r.db.WithContext(ctx)).Where("post_id = ?", id).Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.PostWithComments{Post: *post, Comments: comments}, nil
}

// Create inserts post once its author is known to exist and loads the author.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := findUser(tx, post.UserID)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		post.Author = *author
		return nil
	})
	return translateError(err, "Post already exists")
}

// Update applies the present fields of in and refreshes updated_at.
func (r *postRepository) Update(ctx context.Context, id uint, in models.PostUpdate) (*models.Post, error) {
	var post *models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findPost(tx, id)
		if err != nil {
			return err
		}
		in.ApplyTo(found)
		if err := tx.Omit(clause.Associations).Save(found).Error; err != nil {
			return err
		}
		author, err := findUser(tx, found.UserID)
		if err != nil {
			return err
		}
		found.Author = *author
		post = found
		return nil
	})
	if err != nil {
		return nil, translateError(err, "Post already exists")
	}

	cache.InvalidatePost(ctx, id)
	return post, nil
}

// Delete removes post id and its comments once allow accepts the acting user.
func (r *postRepository) Delete(ctx context.Context, id, actingID uint, allow PostDeletePolicy) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := findPost(tx, id)
		if err != nil {
			return err
		}
		acting, err := findUser(tx, actingID)
		if err != nil {
			return err
		}
		if allow != nil {
			if err := allow(post, acting); err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return translateError(err, "Post already exists")
	}

	cache.InvalidatePost(ctx, id)
	return nil
}

// Feed returns posts written by userID or by any of their friends.
func (r *postRepository) Feed(ctx context.Context, userID uint, skip, limit int) ([]models.Post, error) {
	db := r.db.WithContext(ctx)
	if err := requireExists(db, &models.User{}, "User", userID); err != nil {
		return nil, err
	}

	friendIDs := db.Model(&models.Friendship{}).Select("friend_id").Where("user_id = ?", userID)
	posts := []models.Post{}
	err := window(newestFirst(db).
		Where("posts.user_id = ? OR posts.user_id IN (?)", userID, friendIDs), skip, limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Search matches query case-insensitively against post content, newest first.
func (r *postRepository) Search(ctx context.Context, query string, limit int) ([]models.Post, error) {
	posts := []models.Post{}
	err := window(newestFirst(r.db.WithContext(ctx)).
		Where(likeClause("posts.content"), escapeLike(query)), 0, limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func findPost(db *gorm.DB, id uint) (*models.Post, error) {
	var post models.Post
	if err := db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}
