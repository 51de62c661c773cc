// Package bootstrap wires runtime dependencies (database, Redis, optional
// demo data) for commands that need a fully initialized environment.
package bootstrap

import (
	"fmt"
	"log"
	"strings"

	"chirp/internal/cache"
	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/models"
	"chirp/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates an empty development database with a small
	// social mesh so feeds aren't blank on first run.
	SeedDemoData bool
}

// InitRuntime connects to DB and Redis and optionally runs demo seeding.
// The Redis client may be nil when the server is unreachable; callers are
// expected to degrade rather than fail.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seedDemoData(cfg, db); err != nil {
			return nil, nil, fmt.Errorf("demo data seeding failed: %w", err)
		}
	}

	return db, r, nil
}

func seedDemoData(cfg *config.Config, db *gorm.DB) error {
	if !strings.EqualFold(cfg.Env, "development") {
		return nil
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	log.Println("Empty development database, seeding demo data...")
	s := seed.NewSeeder(db, seed.Options{})
	_, err := s.SeedSocialMesh(10, 40)
	return err
}
