// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"

	"zephyr/internal/database"
	"zephyr/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB returns an isolated in-memory SQLite database with the full schema
// and foreign keys enforced. It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

// CreateUser inserts a user with unique username and email derived from name.
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	picture := models.DefaultProfilePicture
	u := &models.User{
		Username:       name,
		Email:          name + "@example.com",
		FullName:       name + " Tester",
		ProfilePicture: &picture,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateAdmin inserts a user with is_admin set.
func CreateAdmin(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	u := CreateUser(t, db, name)
	require.NoError(t, db.Model(u).Update("is_admin", true).Error)
	u.IsAdmin = true
	return u
}

// CreatePost inserts a post by userID.
func CreatePost(t *testing.T, db *gorm.DB, userID uint, content string) *models.Post {
	t.Helper()

	p := &models.Post{UserID: userID, Content: content}
	require.NoError(t, db.Omit("Author").Create(p).Error)
	return p
}

// CreateComment inserts a comment by userID on postID.
func CreateComment(t *testing.T, db *gorm.DB, userID, postID uint, content string) *models.Comment {
	t.Helper()

	c := &models.Comment{UserID: userID, PostID: postID, Content: content}
	require.NoError(t, db.Omit("Author", "Post").Create(c).Error)
	return c
}

// Befriend inserts both directed friend edges between a and b.
func Befriend(t *testing.T, db *gorm.DB, a, b uint) {
	t.Helper()

	require.NoError(t, db.Omit("User", "Friend").Create(&[]models.Friendship{
		{UserID: a, FriendID: b},
		{UserID: b, FriendID: a},
	}).Error)
}
