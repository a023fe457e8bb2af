package repository

import (
	"context"
	"testing"

	"zephyr/internal/models"
	"zephyr/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	countEdges := func() int64 {
		var n int64
		db.Model(&models.Friendship{}).Count(&n)
		return n
	}

	t.Run("Add stores both directions", func(t *testing.T) {
		require.NoError(t, repo.Add(ctx, alice.ID, bob.ID))
		assert.Equal(t, int64(2), countEdges())

		for _, pair := range [][2]uint{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
			friends, err := repo.ListFriends(ctx, pair[0])
			require.NoError(t, err)
			require.Len(t, friends, 1)
			assert.Equal(t, pair[1], friends[0].ID)
		}
	})

	t.Run("Add twice conflicts", func(t *testing.T) {
		err := repo.Add(ctx, bob.ID, alice.ID)
		assertCode(t, err, models.CodeConflict)
		assert.Contains(t, err.Error(), "Users are already friends")
		assert.Equal(t, int64(2), countEdges())
	})

	t.Run("Missing users", func(t *testing.T) {
		assertCode(t, repo.Add(ctx, 999, bob.ID), models.CodeNotFound)
		assertCode(t, repo.Add(ctx, alice.ID, 999), models.CodeNotFound)
		assertCode(t, repo.Remove(ctx, alice.ID, 999), models.CodeNotFound)
		_, err := repo.ListFriends(ctx, 999)
		assertCode(t, err, models.CodeNotFound)
	})

	t.Run("Remove deletes both directions", func(t *testing.T) {
		linked, err := repo.AreFriends(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, linked)

		require.NoError(t, repo.Remove(ctx, bob.ID, alice.ID))
		assert.Zero(t, countEdges())

		err = repo.Remove(ctx, alice.ID, bob.ID)
		assertCode(t, err, models.CodeConflict)
		assert.Contains(t, err.Error(), "Users are not friends")
	})

	t.Run("Self edge rejected by store", func(t *testing.T) {
		err := db.Create(&models.Friendship{UserID: alice.ID, FriendID: alice.ID}).Error
		assert.Error(t, err)
	})
}
