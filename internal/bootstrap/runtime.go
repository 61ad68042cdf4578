// Package bootstrap opens the runtime dependencies shared by the server and tooling commands.
package bootstrap

import (
	"fmt"
	"log/slog"

	"barrique/internal/cache"
	"barrique/internal/config"
	"barrique/internal/database"
	"barrique/internal/middleware"
	"barrique/internal/models"
	"barrique/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData fills an empty database with the "minimal" seed preset.
	SeedDemoData bool
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
// The returned Redis client is nil when Redis is unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData && !cfg.IsProduction() {
		if err := seedIfEmpty(db, cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

func seedIfEmpty(db *gorm.DB, cfg *config.Config) error {
	var users int64
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		middleware.Logger.Info("demo seed skipped, database already has users", slog.Int64("users", users))
		return nil
	}

	opts := seed.Presets["minimal"]
	opts.Factory.BcryptCost = cfg.BcryptCost
	summary, err := seed.Seed(db, opts)
	if err != nil {
		return err
	}
	middleware.Logger.Info("demo data seeded",
		slog.String("summary", summary.String()),
		slog.String("password", seed.DefaultPassword))
	return nil
}
