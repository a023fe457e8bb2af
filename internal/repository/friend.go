package repository

import (
	"context"

	"zephyr/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRepository defines the interface for friend data operations
type FriendRepository interface {
	ListFriends(ctx context.Context, userID uint) ([]models.User, error)
	AreFriends(ctx context.Context, userID, friendID uint) (bool, error)
	Add(ctx context.Context, userID, friendID uint) error
	Remove(ctx context.Context, userID, friendID uint) error
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	db := r.db.WithContext(ctx)
	if err := requireExists(db, &models.User{}, "User", userID); err != nil {
		return nil, err
	}

	friends := []models.User{}
	if err := friendsQuery(db, userID).Find(&friends).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return friends, nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userID, friendID uint) (bool, error) {
	linked, err := edgeExists(r.db.WithContext(ctx), userID, friendID)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return linked, nil
}

// Add stores both directed edges between userID and friendID.
func (r *friendRepository) Add(ctx context.Context, userID, friendID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePair(tx, userID, friendID); err != nil {
			return err
		}
		linked, err := edgeExists(tx, userID, friendID)
		if err != nil {
			return err
		}
		if linked {
			return models.NewConflictError("Users are already friends")
		}
		edges := []models.Friendship{
			{UserID: userID, FriendID: friendID},
			{UserID: friendID, FriendID: userID},
		}
		return tx.Omit(clause.Associations).Create(&edges).Error
	})
	return translateError(err, "Users are already friends")
}

// Remove deletes both directed edges between userID and friendID.
func (r *friendRepository) Remove(ctx context.Context, userID, friendID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePair(tx, userID, friendID); err != nil {
			return err
		}
		linked, err := edgeExists(tx, userID, friendID)
		if err != nil {
			return err
		}
		if !linked {
			return models.NewConflictError("Users are not friends")
		}
		return tx.
			Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
				userID, friendID, friendID, userID).
			Delete(&models.Friendship{}).Error
	})
	return translateError(err, "Users are not friends")
}

func requirePair(tx *gorm.DB, userID, friendID uint) error {
	if err := requireExists(tx, &models.User{}, "User", userID); err != nil {
		return err
	}
	return requireExists(tx, &models.User{}, "User", friendID)
}

// edgeExists reports whether either direction of the pair is stored.
func edgeExists(db *gorm.DB, userID, friendID uint) (bool, error) {
	var n int64
	err := db.Model(&models.Friendship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, friendID, friendID, userID).
		Count(&n).Error
	return n > 0, err
}
