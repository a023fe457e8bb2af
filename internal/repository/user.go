package repository

import (
	"context"

	"zephyr/internal/cache"
	"zephyr/internal/models"

	"gorm.io/gorm"
)

const duplicateUserMsg = "Username or email already exists"

// UserDeletePolicy decides whether acting may delete target.
type UserDeletePolicy func(target, acting *models.User) error

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetWithFriends(ctx context.Context, id uint) (*models.UserWithFriends, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uint, in models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id, actingID uint, allow UserDeletePolicy) error
	Search(ctx context.Context, query string, limit int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	users := []models.User{}
	if err := window(r.db.WithContext(ctx).Order("id ASC"), skip, limit).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, func() error {
		found, err := findUser(r.db.WithContext(ctx), id)
		if err != nil {
			return err
		}
		user = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetWithFriends(ctx context.Context, id uint) (*models.UserWithFriends, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	friends := []models.User{}
	if err := friendsQuery(r.db.WithContext(ctx), id).Find(&friends).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.UserWithFriends{User: *user, Friends: friends}, nil
}

// Create inserts user after checking username, then email, for duplicates.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, "username", user.Username, 0, "Username already exists"); err != nil {
			return err
		}
		if err := ensureUnique(tx, "email", user.Email, 0, "Email already exists"); err != nil {
			return err
		}
		return tx.Create(user).Error
	})
	return translateError(err, duplicateUserMsg)
}

// Update applies the present fields of in to user id.
func (r *userRepository) Update(ctx context.Context, id uint, in models.UserUpdate) (*models.User, error) {
	var user *models.User
	var postIDs []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findUser(tx, id)
		if err != nil {
			return err
		}
		if in.Username != nil && *in.Username != found.Username {
			if err := ensureUnique(tx, "username", *in.Username, id, "Username already exists"); err != nil {
				return err
			}
		}
		if in.Email != nil && *in.Email != found.Email {
			if err := ensureUnique(tx, "email", *in.Email, id, "Email already exists"); err != nil {
				return err
			}
		}

		in.ApplyTo(found)
		if err := tx.Save(found).Error; err != nil {
			return err
		}
		user = found
		// Cached posts embed the author profile.
		return tx.Model(&models.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error
	})
	if err != nil {
		return nil, translateError(err, duplicateUserMsg)
	}

	cache.InvalidateUser(ctx, id)
	cache.InvalidatePosts(ctx, postIDs)
	return user, nil
}

// Delete removes user id with their posts, comments, comments on their posts
// and friend edges once allow accepts the acting user.
func (r *userRepository) Delete(ctx context.Context, id, actingID uint, allow UserDeletePolicy) error {
	var postIDs []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := findUser(tx, id)
		if err != nil {
			return err
		}
		acting := target
		if actingID != id {
			if acting, err = findUser(tx, actingID); err != nil {
				return err
			}
		}
		if allow != nil {
			if err := allow(target, acting); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR friend_id = ?", id, id).Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return translateError(err, duplicateUserMsg)
	}

	cache.InvalidateUser(ctx, id)
	cache.InvalidatePosts(ctx, postIDs)
	return nil
}

// Search matches query case-insensitively against username, full name and bio.
func (r *userRepository) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	pattern := escapeLike(query)
	users := []models.User{}
	err := window(r.db.WithContext(ctx).
		Where(likeClause("username"), pattern).
		Or(likeClause("full_name"), pattern).
		Or(likeClause("bio"), pattern).
		Order("id ASC"), 0, limit).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// ensureUnique returns Conflict when another user (not excludeID) already
// holds value in column. The comparison follows the column collation, which
// on MySQL is case-insensitive while this check passes the value verbatim;
// the unique index is the final guard and its violation is translated to
// Conflict at commit.
func ensureUnique(tx *gorm.DB, column, value string, excludeID uint, msg string) error {
	q := tx.Model(&models.User{}).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return models.NewConflictError(msg)
	}
	return nil
}
