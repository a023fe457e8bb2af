package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"zephyr/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixture is a hand-written data set addressed by username.
//
//	users:
//	  - username: alice
//	    email: alice@example.com
//	    full_name: Alice Liddell
//	    admin: true
//	posts:
//	  - author: alice
//	    content: Down the rabbit hole
//	    comments:
//	      - author: bob
//	        content: Mind the hatter
//	friendships:
//	  - [alice, bob]
type Fixture struct {
	Users       []FixtureUser `yaml:"users"`
	Posts       []FixturePost `yaml:"posts"`
	Friendships [][]string    `yaml:"friendships"`
}

type FixtureUser struct {
	Username string  `yaml:"username"`
	Email    string  `yaml:"email"`
	FullName string  `yaml:"full_name"`
	Bio      *string `yaml:"bio"`
	Admin    bool    `yaml:"admin"`
}

type FixturePost struct {
	Author   string           `yaml:"author"`
	Content  string           `yaml:"content"`
	ImageURL *string          `yaml:"image_url"`
	Comments []FixtureComment `yaml:"comments"`
}

type FixtureComment struct {
	Author  string `yaml:"author"`
	Content string `yaml:"content"`
}

// ParseFixture decodes YAML, rejecting unknown keys, and validates the result.
func ParseFixture(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fx Fixture
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// LoadFixtureFile reads and parses the fixture at path.
func LoadFixtureFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// Validate applies the API's input rules and checks every username reference.
func (fx *Fixture) Validate() error {
	known := make(map[string]bool, len(fx.Users))
	for i, u := range fx.Users {
		in := models.UserCreate{Username: u.Username, Email: u.Email, FullName: u.FullName, Bio: u.Bio}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("users[%d]: %w", i, err)
		}
		if known[u.Username] {
			return fmt.Errorf("users[%d]: duplicate username %q", i, u.Username)
		}
		known[u.Username] = true
	}

	for i, p := range fx.Posts {
		if !known[p.Author] {
			return fmt.Errorf("posts[%d]: unknown author %q", i, p.Author)
		}
		if p.Content == "" {
			return fmt.Errorf("posts[%d]: content is required", i)
		}
		for j, c := range p.Comments {
			if !known[c.Author] {
				return fmt.Errorf("posts[%d].comments[%d]: unknown author %q", i, j, c.Author)
			}
			if c.Content == "" {
				return fmt.Errorf("posts[%d].comments[%d]: content is required", i, j)
			}
		}
	}

	for i, pair := range fx.Friendships {
		if len(pair) != 2 {
			return fmt.Errorf("friendships[%d]: want two usernames, got %d", i, len(pair))
		}
		if !known[pair[0]] || !known[pair[1]] {
			return fmt.Errorf("friendships[%d]: unknown user in %v", i, pair)
		}
		if pair[0] == pair[1] {
			return fmt.Errorf("friendships[%d]: users cannot befriend themselves", i)
		}
	}
	return nil
}

// ApplyFixture inserts fx in one transaction.
func ApplyFixture(ctx context.Context, db *gorm.DB, fx *Fixture) (*Summary, error) {
	summary := &Summary{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make(map[string]uint, len(fx.Users))
		for _, fu := range fx.Users {
			user := models.UserCreate{Username: fu.Username, Email: fu.Email, FullName: fu.FullName, Bio: fu.Bio}.ToUser()
			user.IsAdmin = fu.Admin
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("create user %s: %w", fu.Username, err)
			}
			ids[fu.Username] = user.ID
			summary.Users++
		}

		for _, fp := range fx.Posts {
			post := &models.Post{Content: fp.Content, ImageURL: fp.ImageURL, UserID: ids[fp.Author]}
			if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
				return fmt.Errorf("create post by %s: %w", fp.Author, err)
			}
			summary.Posts++

			for _, fc := range fp.Comments {
				comment := &models.Comment{Content: fc.Content, UserID: ids[fc.Author], PostID: post.ID}
				if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
					return fmt.Errorf("create comment by %s: %w", fc.Author, err)
				}
				summary.Comments++
			}
		}

		seen := make(map[[2]uint]bool, len(fx.Friendships))
		for _, pair := range fx.Friendships {
			a, b := ids[pair[0]], ids[pair[1]]
			if a > b {
				a, b = b, a
			}
			if seen[[2]uint{a, b}] {
				continue
			}
			seen[[2]uint{a, b}] = true
			if err := befriend(tx, a, b); err != nil {
				return fmt.Errorf("befriend %s and %s: %w", pair[0], pair[1], err)
			}
			summary.Friendships++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
