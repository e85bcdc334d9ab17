// Package seed creates demo data for development databases.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"recurate/internal/models"
	"recurate/internal/password"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options tune how much demo data gets created.
type Options struct {
	Users        int
	PostsPerUser int
	// MaxDays spreads post timestamps over the past N days.
	MaxDays int
	// Password is shared by every seeded account so demos can log in.
	Password string
}

// Factory builds demo entities and persists them.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a Factory bound to the given database.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	if opts.Password == "" {
		opts.Password = "recurate-demo"
	}
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildUser constructs a user without persisting it.
func (f *Factory) BuildUser(passwordHash string) *models.User {
	user := &models.User{
		FullName: gofakeit.Name(),
		Email:    gofakeit.Email(),
		Phone:    gofakeit.Numerify("##########"),
		Password: passwordHash,
	}
	if f.rng.Intn(2) == 0 {
		user.ProfilePhoto = fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID())
	}
	return user
}

// BuildPost constructs a post for user without persisting it. Roughly a third
// of posts carry an image, none carry video (demo files are not generated).
func (f *Factory) BuildPost(user *models.User) *models.Post {
	post := &models.Post{
		Content: gofakeit.Paragraph(1, 3, 8, "\n"),
		UserID:  user.ID,
	}
	if f.rng.Intn(2) == 0 {
		post.Title = gofakeit.Sentence(4)
	}
	if f.rng.Intn(3) == 0 {
		post.ImagePath = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
	}

	daysBack := f.rng.Intn(f.opts.MaxDays)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(f.rng.Intn(24)) * time.Hour).
		Add(-time.Duration(f.rng.Intn(60)) * time.Minute)
	return post
}

// Run seeds the configured number of users and posts. Every account shares
// the demo password.
func (f *Factory) Run() error {
	hash, err := password.NewHasher(bcrypt.MinCost).Hash(f.opts.Password)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	for i := 0; i < f.opts.Users; i++ {
		user := f.BuildUser(hash)
		if err := f.db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}

		posts := make([]*models.Post, 0, f.opts.PostsPerUser)
		for j := 0; j < f.opts.PostsPerUser; j++ {
			posts = append(posts, f.BuildPost(user))
		}
		if len(posts) > 0 {
			if err := f.db.Create(posts).Error; err != nil {
				return fmt.Errorf("seed posts for user %d: %w", i, err)
			}
		}
	}
	return nil
}
