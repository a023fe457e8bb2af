package service

import (
	"context"

	"zephyr/internal/models"
	"zephyr/internal/repository"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	listFn           func(context.Context, int, int) ([]models.User, error)
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getWithFriendsFn func(context.Context, uint) (*models.UserWithFriends, error)
	createFn         func(context.Context, *models.User) error
	updateFn         func(context.Context, uint, models.UserUpdate) (*models.User, error)
	deleteFn         func(context.Context, uint, uint, repository.UserDeletePolicy) error
	searchFn         func(context.Context, string, int) ([]models.User, error)
}

func (s *userRepoStub) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	return s.listFn(ctx, skip, limit)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetWithFriends(ctx context.Context, id uint) (*models.UserWithFriends, error) {
	return s.getWithFriendsFn(ctx, id)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, id uint, in models.UserUpdate) (*models.User, error) {
	return s.updateFn(ctx, id, in)
}
func (s *userRepoStub) Delete(ctx context.Context, id, actingID uint, allow repository.UserDeletePolicy) error {
	return s.deleteFn(ctx, id, actingID, allow)
}
func (s *userRepoStub) Search(ctx context.Context, q string, limit int) ([]models.User, error) {
	return s.searchFn(ctx, q, limit)
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	listFn            func(context.Context, int, int) ([]models.Post, error)
	listByUserFn      func(context.Context, uint, int, int) ([]models.Post, error)
	getByIDFn         func(context.Context, uint) (*models.Post, error)
	getWithCommentsFn func(context.Context, uint) (*models.PostWithComments, error)
	createFn          func(context.Context, *models.Post) error
	updateFn          func(context.Context, uint, models.PostUpdate) (*models.Post, error)
	deleteFn          func(context.Context, uint, uint, repository.PostDeletePolicy) error
	feedFn            func(context.Context, uint, int, int) ([]models.Post, error)
	searchFn          func(context.Context, string, int) ([]models.Post, error)
}

func (s *postRepoStub) List(ctx context.Context, skip, limit int) ([]models.Post, error) {
	return s.listFn(ctx, skip, limit)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, skip, limit int) ([]models.Post, error) {
	return s.listByUserFn(ctx, userID, skip, limit)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetWithComments(ctx context.Context, id uint) (*models.PostWithComments, error) {
	return s.getWithCommentsFn(ctx, id)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Update(ctx context.Context, id uint, in models.PostUpdate) (*models.Post, error) {
	return s.updateFn(ctx, id, in)
}
func (s *postRepoStub) Delete(ctx context.Context, id, actingID uint, allow repository.PostDeletePolicy) error {
	return s.deleteFn(ctx, id, actingID, allow)
}
func (s *postRepoStub) Feed(ctx context.Context, userID uint, skip, limit int) ([]models.Post, error) {
	return s.feedFn(ctx, userID, skip, limit)
}
func (s *postRepoStub) Search(ctx context.Context, q string, limit int) ([]models.Post, error) {
	return s.searchFn(ctx, q, limit)
}

// friendRepoStub is a stub for repository.FriendRepository.
type friendRepoStub struct {
	addFn    func(context.Context, uint, uint) error
	removeFn func(context.Context, uint, uint) error
}

func (s *friendRepoStub) ListFriends(context.Context, uint) ([]models.User, error) {
	return []models.User{}, nil
}
func (s *friendRepoStub) AreFriends(context.Context, uint, uint) (bool, error) {
	return false, nil
}
func (s *friendRepoStub) Add(ctx context.Context, userID, friendID uint) error {
	return s.addFn(ctx, userID, friendID)
}
func (s *friendRepoStub) Remove(ctx context.Context, userID, friendID uint) error {
	return s.removeFn(ctx, userID, friendID)
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn func(context.Context, *models.Comment) error
}

func (s *commentRepoStub) ListByPost(context.Context, uint, int, int) ([]models.Comment, error) {
	return []models.Comment{}, nil
}
func (s *commentRepoStub) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	return nil, models.NewNotFoundError("Comment", id)
}
func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) Delete(context.Context, uint) error {
	return nil
}
