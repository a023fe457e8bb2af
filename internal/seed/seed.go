package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"zephyr/internal/middleware"
	"zephyr/internal/models"

	"gorm.io/gorm"
)

// Options controls how much demo data Run generates.
type Options struct {
	Users       int
	Posts       int
	Comments    int
	Friendships int
	Clean       bool
}

// Summary counts the rows Run created.
type Summary struct {
	Users       int
	Posts       int
	Comments    int
	Friendships int
}

// Seeder fills a database with generated users, posts, comments and friendships.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder returns a seeder for db. A zero seed draws one from the clock.
func NewSeeder(db *gorm.DB, seed int64) *Seeder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Seeder{db: db, factory: NewFactory(db, seed), rng: rand.New(rand.NewSource(seed))}
}

// ClearAll deletes every row, children first so foreign keys hold on every driver.
func (s *Seeder) ClearAll(ctx context.Context) error {
	middleware.Logger.InfoContext(ctx, "Clearing existing data")
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Comment{}, &models.Friendship{}, &models.Post{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// Run generates data according to opts.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Clean {
		if err := s.ClearAll(ctx); err != nil {
			return nil, err
		}
	}

	summary := &Summary{}
	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u, err := s.factory.CreateUser(ctx)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	summary.Users = len(users)
	if len(users) == 0 {
		return summary, nil
	}

	posts := make([]*models.Post, 0, opts.Posts)
	for i := 0; i < opts.Posts; i++ {
		posts = append(posts, s.factory.BuildPost(users[s.rng.Intn(len(users))]))
	}
	if err := s.factory.CreatePosts(ctx, posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}
	summary.Posts = len(posts)

	if len(posts) > 0 {
		comments := make([]*models.Comment, 0, opts.Comments)
		for i := 0; i < opts.Comments; i++ {
			comments = append(comments, s.factory.BuildComment(users[s.rng.Intn(len(users))], posts[s.rng.Intn(len(posts))]))
		}
		if err := s.factory.CreateComments(ctx, comments); err != nil {
			return nil, fmt.Errorf("create comments: %w", err)
		}
		summary.Comments = len(comments)
	}

	pairs := s.friendPairs(users, opts.Friendships)
	for _, p := range pairs {
		if err := s.factory.Befriend(ctx, p[0], p[1]); err != nil {
			return nil, fmt.Errorf("befriend %d and %d: %w", p[0], p[1], err)
		}
	}
	summary.Friendships = len(pairs)

	middleware.Logger.InfoContext(ctx, "Seeding complete",
		slog.Int("users", summary.Users),
		slog.Int("posts", summary.Posts),
		slog.Int("comments", summary.Comments),
		slog.Int("friendships", summary.Friendships),
	)
	return summary, nil
}

// friendPairs picks up to want distinct unordered pairs of users.
func (s *Seeder) friendPairs(users []*models.User, want int) [][2]uint {
	maxPairs := len(users) * (len(users) - 1) / 2
	if want > maxPairs {
		want = maxPairs
	}

	seen := make(map[[2]uint]bool, want)
	pairs := make([][2]uint, 0, want)
	for len(pairs) < want {
		a := users[s.rng.Intn(len(users))].ID
		b := users[s.rng.Intn(len(users))].ID
		if a == b {
			continue
		}
		if a > b {
			a, b = b, a
		}
		key := [2]uint{a, b}
		if seen[key] {
			continue
		}
		seen[key] = true
		pairs = append(pairs, key)
	}
	return pairs
}
