// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"log"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with a realistic social mesh.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll removes all seeded data. Order respects foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{
		&models.Notification{},
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Post{},
		&models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedSocialMesh creates users, posts, follow edges, likes and comments so
// every feed and notification surface has content.
func (s *Seeder) SeedSocialMesh(numUsers, numPosts int) ([]*models.User, error) {
	log.Printf("Seeding %d users and %d posts...", numUsers, numPosts)

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, err
	}

	// Each user follows a handful of others; edges also produce follow
	// notifications, same as the live toggle.
	for _, user := range users {
		follows := s.factory.rng.Intn(6) + 2
		for i := 0; i < follows; i++ {
			target := users[s.factory.rng.Intn(len(users))]
			if err := s.factory.CreateFollow(user.ID, target.ID); err != nil {
				return nil, err
			}
		}
	}

	// Scatter likes and comments over the mesh.
	for _, post := range posts {
		likes := s.factory.rng.Intn(5)
		for i := 0; i < likes; i++ {
			liker := users[s.factory.rng.Intn(len(users))]
			if err := s.factory.CreateLike(liker.ID, post.ID); err != nil {
				return nil, err
			}
		}
		if s.factory.rng.Intn(3) == 0 {
			commenter := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter.ID, post.ID); err != nil {
				return nil, err
			}
		}
	}

	log.Printf("Seeded %d users, %d posts", len(users), len(posts))
	return users, nil
}
