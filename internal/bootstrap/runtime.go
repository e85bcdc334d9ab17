// Package bootstrap wires up the runtime dependencies shared by the server
// and the command-line tools.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"recurate/internal/cache"
	"recurate/internal/config"
	"recurate/internal/database"
	"recurate/internal/models"
	"recurate/internal/observability"
	"recurate/internal/password"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SkipTracing leaves the tracer uninitialized, for short-lived tools.
	SkipTracing bool
}

var tracingShutdown func(context.Context) error

// ShutdownTracing flushes and stops the tracer provider, if one was started.
func ShutdownTracing(ctx context.Context) error {
	if tracingShutdown == nil {
		return nil
	}
	return tracingShutdown(ctx)
}

// InitRuntime connects to the database and Redis and ensures the bootstrap
// admin exists. Both stores are hard requirements; sessions cannot work
// without Redis.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	rdb, err := cache.Connect(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("redis connection failed: %w", err)
	}

	if !opts.SkipTracing && cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(observability.TracingConfig{
			ServiceName:    "recurate",
			ServiceVersion: "1.0.0",
			Environment:    cfg.Env,
			Enabled:        true,
			Exporter:       cfg.TracingExporter,
			OTLPEndpoint:   cfg.OTLPEndpoint,
			SamplerRatio:   cfg.TracingSampleRatio,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("tracing init failed: %w", err)
		}
		tracingShutdown = shutdown
	}

	if err := EnsureBootstrapAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("bootstrap admin: %w", err)
	}

	return db, rdb, nil
}

// EnsureBootstrapAdmin creates the configured admin account if no admin
// exists yet. No HTTP endpoint creates admins; this and cmd/admin are the
// only paths to the role. The count-then-create runs in one transaction so
// two racing processes cannot both seed.
func EnsureBootstrapAdmin(cfg *config.Config, db *gorm.DB) error {
	email := strings.TrimSpace(strings.ToLower(cfg.AdminEmail))
	if email == "" {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if cfg.AdminPassword == "" {
			return fmt.Errorf("ADMIN_PASSWORD must be set to seed the first admin")
		}

		name := strings.TrimSpace(cfg.AdminName)
		if name == "" {
			name = "Administrator"
		}

		hash, err := password.NewHasher(cfg.BcryptCost).Hash(cfg.AdminPassword)
		if err != nil {
			return err
		}

		admin := models.User{
			FullName: name,
			Email:    email,
			Phone:    "0000000000",
			Password: hash,
			IsAdmin:  true,
		}
		return tx.Create(&admin).Error
	})
}
