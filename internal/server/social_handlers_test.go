package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"zephyr/internal/models"
	"zephyr/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentHandlers(t *testing.T) {
	_, app, db := newTestServer(t)

	alice := testutil.CreateUser(t, db, "alice")
	post := testutil.CreatePost(t, db, alice.ID, "hello")

	resp, raw := doJSON(t, app, http.MethodPost, "/api/comments", map[string]any{
		"content": "first!", "user_id": alice.ID, "post_id": post.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created models.Comment
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "alice", created.Author.Username)

	resp, raw = doJSON(t, app, http.MethodPost, "/api/comments", map[string]any{
		"content": "lost", "user_id": alice.ID, "post_id": 9999,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Post with ID 9999 not found", decodeError(t, raw).Error)

	resp, raw = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/comments/post/%d", post.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var comments []models.Comment
	require.NoError(t, json.Unmarshal(raw, &comments))
	require.Len(t, comments, 1)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/comments/post/9999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	path := fmt.Sprintf("/api/comments/%d", created.ID)
	resp, _ = doJSON(t, app, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFriendHandlers(t *testing.T) {
	_, app, db := newTestServer(t)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	pair := map[string]any{"user_id": alice.ID, "friend_id": bob.ID}

	resp, raw := doJSON(t, app, http.MethodPost, "/api/friends", pair)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.JSONEq(t, `{"message": "Friend added successfully"}`, string(raw))

	resp, raw = doJSON(t, app, http.MethodPost, "/api/friends", pair)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Users are already friends", decodeError(t, raw).Error)

	resp, raw = doJSON(t, app, http.MethodPost, "/api/friends", map[string]any{"user_id": alice.ID, "friend_id": alice.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Users cannot befriend themselves", decodeError(t, raw).Error)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/friends", map[string]any{"user_id": alice.ID, "friend_id": 9999})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Symmetric: bob sees alice without a second request.
	resp, raw = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/friends/%d", bob.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var friends []models.User
	require.NoError(t, json.Unmarshal(raw, &friends))
	require.Len(t, friends, 1)
	assert.Equal(t, alice.ID, friends[0].ID)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/friends", map[string]any{"user_id": bob.ID, "friend_id": alice.ID})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodDelete, "/api/friends", pair)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Users are not friends", decodeError(t, raw).Error)

	resp, raw = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/friends/%d", alice.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestFeedHandlers(t *testing.T) {
	_, app, db := newTestServer(t)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")
	testutil.Befriend(t, db, alice.ID, bob.ID)

	own := testutil.CreatePost(t, db, alice.ID, "mine")
	friend := testutil.CreatePost(t, db, bob.ID, "friend's")
	testutil.CreatePost(t, db, carol.ID, "stranger's")

	resp, raw := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/feed/%d", alice.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var feed models.FeedResponse
	require.NoError(t, json.Unmarshal(raw, &feed))
	require.Equal(t, 2, feed.Count)
	assert.Equal(t, friend.ID, feed.Posts[0].ID)
	assert.Equal(t, own.ID, feed.Posts[1].ID)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/feed/public", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &feed))
	assert.Equal(t, 3, feed.Count)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/feed/9999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, models.CodeNotFound, decodeError(t, raw).Code)
}

func TestSearchHandlers(t *testing.T) {
	_, app, db := newTestServer(t)

	alice := testutil.CreateUser(t, db, "alice")
	testutil.CreateUser(t, db, "bob")
	testutil.CreatePost(t, db, alice.ID, "Gophers are GREAT")
	testutil.CreatePost(t, db, alice.ID, "100% sure")

	resp, raw := doJSON(t, app, http.MethodGet, "/api/search/users?q=ALI", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users models.UserSearchResponse
	require.NoError(t, json.Unmarshal(raw, &users))
	require.Equal(t, 1, users.Count)
	assert.Equal(t, "alice", users.Results[0].Username)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/search/posts?q=great", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var posts models.PostSearchResponse
	require.NoError(t, json.Unmarshal(raw, &posts))
	require.Equal(t, 1, posts.Count)
	assert.Equal(t, "alice", posts.Results[0].Author.Username)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/search/posts?q=0%25", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &posts))
	assert.Equal(t, 1, posts.Count)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/search?q=bob&type=users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var combined map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &combined))
	assert.Contains(t, combined, "users")
	assert.NotContains(t, combined, "posts")

	resp, raw = doJSON(t, app, http.MethodGet, "/api/search?q=zzz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"users": [], "posts": []}`, string(raw))

	resp, raw = doJSON(t, app, http.MethodGet, "/api/search?q=bob&type=groups", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "type must be one of users, posts, all", decodeError(t, raw).Error)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/search/users", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "q is required", decodeError(t, raw).Error)
}
