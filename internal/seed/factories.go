// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// Options tunes seeding behavior.
type Options struct {
	// SkipBcrypt stores a plaintext marker password instead of hashing.
	// Much faster for large meshes; dev only.
	SkipBcrypt bool
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// backdated returns a timestamp spread over the configured window so feeds
// don't look like they were created in one burst.
func (f *Factory) backdated() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		FullName:  gofakeit.Name(),
		Bio:       gofakeit.Sentence(10),
		Link:      gofakeit.URL(),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post without persisting it. Useful for batching.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Text:      gofakeit.Paragraph(1, 3, 5, "\n"),
		UserID:    user.ID,
		CreatedAt: f.backdated(),
	}

	// About a third of posts carry an image.
	if f.rng.Intn(3) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateFollow persists a follow edge plus its notification, mirroring what
// the follow toggle produces.
func (f *Factory) CreateFollow(followerID, followeeID uint) error {
	if followerID == followeeID {
		return nil
	}
	return f.db.Transaction(func(tx *gorm.DB) error {
		follow := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
		res := tx.Where(follow).FirstOrCreate(follow)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Create(&models.Notification{
			FromUserID: followerID,
			ToUserID:   followeeID,
			Type:       models.NotificationTypeFollow,
		}).Error
	})
}

// CreateLike persists a like row. Duplicate likes are silently skipped.
func (f *Factory) CreateLike(userID, postID uint) error {
	like := &models.Like{UserID: userID, PostID: postID}
	return f.db.Where(like).FirstOrCreate(like).Error
}

// CreateComment persists a generated comment on the given post.
func (f *Factory) CreateComment(userID, postID uint) (*models.Comment, error) {
	comment := &models.Comment{
		Text:      gofakeit.Sentence(gofakeit.Number(3, 15)),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: f.backdated(),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
