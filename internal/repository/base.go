package repository

import (
	"errors"
	"strings"

	"zephyr/internal/models"

	"gorm.io/gorm"
)

// likeEscapeChar is the ESCAPE character declared by search queries.
const likeEscapeChar = "!"

// escapeLike escapes LIKE metacharacters so s matches literally and wraps it
// for a substring match.
func escapeLike(s string) string {
	r := strings.NewReplacer(likeEscapeChar, "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(s) + "%"
}

// likeClause returns a case-insensitive LIKE condition on column.
func likeClause(column string) string {
	return "LOWER(" + column + ") LIKE LOWER(?) ESCAPE '" + likeEscapeChar + "'"
}

// window applies offset/limit to a query. A non-positive limit means no limit.
func window(db *gorm.DB, skip, limit int) *gorm.DB {
	if skip > 0 {
		db = db.Offset(skip)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	return db
}

// requireExists returns NotFound unless a row of model with id exists.
func requireExists(db *gorm.DB, model interface{}, resource string, id uint) error {
	var n int64
	if err := db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return models.NewInternalError(err)
	}
	if n == 0 {
		return models.NewNotFoundError(resource, id)
	}
	return nil
}

// findUser loads a user row or returns NotFound.
func findUser(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// friendsQuery selects the users that userID has a friend edge to, in id order.
func friendsQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&models.User{}).
		Joins("JOIN friends ON friends.friend_id = users.id").
		Where("friends.user_id = ?", userID).
		Order("users.id ASC")
}
