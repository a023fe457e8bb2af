package service

import (
	"context"
	"testing"

	"zephyr/internal/models"
	"zephyr/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost(t *testing.T) {
	svc := NewPostService(&postRepoStub{createFn: func(_ context.Context, p *models.Post) error {
		p.ID = 10
		p.Author = models.User{ID: p.UserID, Username: "alice"}
		return nil
	}})

	_, err := svc.CreatePost(context.Background(), models.PostCreate{Content: "  ", UserID: 1})
	assertCode(t, err, models.CodeValidation)

	img := "/uploads/post_images/x.png"
	post, err := svc.CreatePost(context.Background(), models.PostCreate{Content: "hi", UserID: 1, ImageURL: &img})
	require.NoError(t, err)
	assert.Equal(t, uint(10), post.ID)
	assert.Equal(t, "alice", post.Author.Username)
	assert.Equal(t, &img, post.ImageURL)
}

func TestPostService_DeletePost_Policy(t *testing.T) {
	var policy repository.PostDeletePolicy
	svc := NewPostService(&postRepoStub{deleteFn: func(_ context.Context, _, _ uint, allow repository.PostDeletePolicy) error {
		policy = allow
		return nil
	}})

	assertCode(t, svc.DeletePost(context.Background(), 5, 0), models.CodeValidation)
	require.NoError(t, svc.DeletePost(context.Background(), 5, 1))

	post := &models.Post{ID: 5, UserID: 1}
	assert.NoError(t, policy(post, &models.User{ID: 1}))
	assert.NoError(t, policy(post, &models.User{ID: 9, IsAdmin: true}))
	err := policy(post, &models.User{ID: 9})
	assertCode(t, err, models.CodeForbidden)
	assert.Contains(t, err.Error(), "Not authorized to delete this post")
}

func TestFeedService_ClampsLimit(t *testing.T) {
	var gotLimit int
	svc := NewFeedService(&postRepoStub{
		feedFn: func(_ context.Context, _ uint, _, limit int) ([]models.Post, error) {
			gotLimit = limit
			return nil, nil
		},
		listFn: func(_ context.Context, _, limit int) ([]models.Post, error) {
			gotLimit = limit
			return []models.Post{{ID: 1}}, nil
		},
	})

	feed, err := svc.UserFeed(context.Background(), 1, 0, 500)
	require.NoError(t, err)
	assert.Equal(t, MaxWindowLimit, gotLimit)
	assert.NotNil(t, feed.Posts)
	assert.Zero(t, feed.Count)

	feed, err = svc.PublicFeed(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, gotLimit)
	assert.Equal(t, 1, feed.Count)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 1, ClampLimit(-5))
	assert.Equal(t, 1, ClampLimit(0))
	assert.Equal(t, 42, ClampLimit(42))
	assert.Equal(t, 100, ClampLimit(101))
}
