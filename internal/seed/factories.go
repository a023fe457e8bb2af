// Package seed creates demo and fixture data for development databases.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"zephyr/internal/models"
	"zephyr/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Factory builds domain entities with fake content and persists them.
type Factory struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	// MaxDays spreads generated created_at values over this many past days.
	MaxDays int
	seq     int
}

// NewFactory returns a factory bound to db. A zero seed draws a random one.
func NewFactory(db *gorm.DB, seed int64) *Factory {
	return &Factory{db: db, faker: gofakeit.New(seed), MaxDays: 90}
}

// BuildUser returns an unsaved user with unique username and email.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	f.seq++
	username := truncate(strings.ToLower(f.faker.Username()), validation.MaxUsernameLength-6)
	username = fmt.Sprintf("%s_%d", username, f.seq)
	picture := models.DefaultProfilePicture
	bio := f.faker.Sentence(10)

	user := &models.User{
		Username:       username,
		Email:          fmt.Sprintf("%s@%s", username, f.faker.DomainName()),
		FullName:       truncate(f.faker.Name(), validation.MaxFullNameLength),
		Bio:            &bio,
		ProfilePicture: &picture,
		CreatedAt:      f.pastTime(),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser builds and persists a user.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if err := f.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", user.Username, err)
	}
	return user, nil
}

// BuildPost returns an unsaved post by author. Roughly a third carry an image.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Content: f.faker.Paragraph(1, 3, 12, "\n"),
		UserID:  author.ID,
	}
	if f.faker.Number(1, 3) == 1 {
		url := fmt.Sprintf("https://picsum.photos/seed/%s/800/800", f.faker.UUID())
		post.ImageURL = &url
	}
	post.CreatedAt = f.pastTime()
	post.UpdatedAt = post.CreatedAt
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePosts persists posts in batches.
func (f *Factory) CreatePosts(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(posts, 100).Error
}

// BuildComment returns an unsaved comment by author on post, dated after the post.
func (f *Factory) BuildComment(author *models.User, post *models.Post) *models.Comment {
	created := post.CreatedAt.Add(time.Duration(f.faker.Number(1, 72*60)) * time.Minute)
	if now := time.Now().UTC(); created.After(now) {
		created = now
	}
	return &models.Comment{
		Content:   f.faker.Sentence(f.faker.Number(3, 15)),
		UserID:    author.ID,
		PostID:    post.ID,
		CreatedAt: created,
	}
}

// CreateComments persists comments in batches.
func (f *Factory) CreateComments(ctx context.Context, comments []*models.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	return f.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(comments, 100).Error
}

// Befriend links a and b in both directions.
func (f *Factory) Befriend(ctx context.Context, a, b uint) error {
	return befriend(f.db.WithContext(ctx), a, b)
}

func befriend(db *gorm.DB, a, b uint) error {
	edges := []models.Friendship{{UserID: a, FriendID: b}, {UserID: b, FriendID: a}}
	return db.Omit(clause.Associations).Create(&edges).Error
}

func (f *Factory) pastTime() time.Time {
	maxDays := f.MaxDays
	if maxDays <= 0 {
		maxDays = 1
	}
	back := time.Duration(f.faker.Number(0, maxDays*24*60)) * time.Minute
	return time.Now().UTC().Add(-back)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
