package bootstrap

import (
	"fmt"

	"artfolio/internal/cache"
	"artfolio/internal/config"
	"artfolio/internal/database"
	"artfolio/internal/seed"
	"artfolio/internal/storage"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
}

// InitRuntime connects to the database and Redis, prepares the upload
// directory, and optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, *storage.LocalStore, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May result in nil client if unreachable; the app degrades to no cache.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("upload directory setup failed: %w", err)
	}

	if opts.SeedDemoData {
		if err := seed.Seed(db, seed.Options{NumUsers: 5, ArtworksPerUser: 3}); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, store, nil
}
