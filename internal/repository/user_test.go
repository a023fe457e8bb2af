package repository

import (
	"context"
	"testing"

	"zephyr/internal/models"
	"zephyr/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.HasCode(err, code), "expected %s, got %v", code, err)
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "alice", Email: "alice@example.com", FullName: "Alice"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = repo.GetByID(ctx, 999)
	assertCode(t, err, models.CodeNotFound)
}

func TestUserRepository_CreateConflicts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	testutil.CreateUser(t, db, "taken")

	t.Run("username checked first", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Username: "taken", Email: "taken@example.com", FullName: "X"})
		assertCode(t, err, models.CodeConflict)
		assert.Contains(t, err.Error(), "Username already exists")
	})

	t.Run("email", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Username: "fresh", Email: "taken@example.com", FullName: "X"})
		assertCode(t, err, models.CodeConflict)
		assert.Contains(t, err.Error(), "Email already exists")
	})

	var n int64
	db.Model(&models.User{}).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestUserRepository_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	for _, name := range []string{"u1", "u2", "u3"} {
		testutil.CreateUser(t, db, name)
	}

	users, err := repo.List(context.Background(), 1, 100)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u2", users[0].Username)

	users, err = repo.List(context.Background(), 10, 100)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	testutil.CreateUser(t, db, "bob")

	updated, err := repo.Update(ctx, alice.ID, models.UserUpdate{Bio: strPtr("hi"), Username: strPtr("alice")})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "hi", *updated.Bio)

	_, err = repo.Update(ctx, alice.ID, models.UserUpdate{Username: strPtr("bob")})
	assertCode(t, err, models.CodeConflict)

	_, err = repo.Update(ctx, alice.ID, models.UserUpdate{Email: strPtr("bob@example.com")})
	assertCode(t, err, models.CodeConflict)

	_, err = repo.Update(ctx, 404, models.UserUpdate{Bio: strPtr("x")})
	assertCode(t, err, models.CodeNotFound)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	alicePost := testutil.CreatePost(t, db, alice.ID, "mine")
	bobPost := testutil.CreatePost(t, db, bob.ID, "bob's")
	testutil.CreateComment(t, db, bob.ID, alicePost.ID, "on alice's post")
	testutil.CreateComment(t, db, alice.ID, bobPost.ID, "alice on bob's post")
	keep := testutil.CreateComment(t, db, bob.ID, bobPost.ID, "bob on bob's post")
	testutil.Befriend(t, db, alice.ID, bob.ID)

	require.NoError(t, repo.Delete(ctx, alice.ID, alice.ID, nil))

	var users, posts, friends int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Friendship{}).Count(&friends)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), posts)
	assert.Zero(t, friends)

	var comments []models.Comment
	require.NoError(t, db.Find(&comments).Error)
	require.Len(t, comments, 1)
	assert.Equal(t, keep.ID, comments[0].ID)
}

func TestUserRepository_DeletePolicy(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	deny := func(target, acting *models.User) error {
		assert.Equal(t, alice.ID, target.ID)
		assert.Equal(t, bob.ID, acting.ID)
		return models.NewForbiddenError("Not authorized to delete this user")
	}
	assertCode(t, repo.Delete(ctx, alice.ID, bob.ID, deny), models.CodeForbidden)

	assertCode(t, repo.Delete(ctx, 404, bob.ID, nil), models.CodeNotFound)
	err := repo.Delete(ctx, alice.ID, 405, nil)
	assertCode(t, err, models.CodeNotFound)
	assert.Contains(t, err.Error(), "405")

	_, err = repo.GetByID(ctx, alice.ID)
	assert.NoError(t, err)
}

func TestUserRepository_GetWithFriends(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	testutil.CreateUser(t, db, "carol")
	testutil.Befriend(t, db, alice.ID, bob.ID)

	got, err := repo.GetWithFriends(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	require.Len(t, got.Friends, 1)
	assert.Equal(t, "bob", got.Friends[0].Username)
}

func TestUserRepository_Search(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, "JohnDoe")
	jane := testutil.CreateUser(t, db, "jane")
	require.NoError(t, db.Model(jane).Update("bio", "Loves 100% JOHN cash").Error)
	testutil.CreateUser(t, db, "under_score")

	users, err := repo.Search(ctx, "john", 20)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.Search(ctx, "100%", 20)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "jane", users[0].Username)

	users, err = repo.Search(ctx, "d_r", 20)
	require.NoError(t, err)
	assert.Empty(t, users)

	users, err = repo.Search(ctx, "o", 1)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
