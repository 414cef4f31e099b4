// Package database provides the session store connection for sqlite and PostgreSQL.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/festy23/team_invite/internal/database/config"
	"github.com/festy23/team_invite/internal/database/migrate"
	"github.com/festy23/team_invite/internal/database/pool"
	"github.com/festy23/team_invite/pkg/retry"
)

// connectTimeout bounds the whole retry loop when opening a connection.
const connectTimeout = 2 * time.Minute

// Open connects to the database described by cfg, configures its pool and
// applies migrations.
func Open(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := connect(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	poolCfg := pool.DefaultPoolConfig()
	if cfg.IsInMemory() {
		poolCfg = pool.InMemoryPoolConfig()
	}
	if err := pool.SetupConnectionPool(db, poolCfg); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	version, err := migrate.Migrate(db, cfg.Driver)
	if err != nil {
		_ = Close(db)
		return nil, err
	}

	logger.Infow("session store ready",
		"driver", cfg.Driver,
		"in_memory", cfg.IsInMemory(),
		"schema_version", version,
	)
	return db, nil
}

func connect(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLiteDSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return db, nil

	case config.DriverPostgres:
		retryCfg, err := config.LoadRetryConfigFromEnv()
		if err != nil {
			return nil, err
		}
		retryCfg.OnRetry = func(attempt int, delay time.Duration, err error) {
			logger.Warnw("database connection failed, retrying",
				"attempt", attempt,
				"delay", delay,
				"error", config.SanitizeError(err, cfg),
			)
		}

		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		dsn := config.BuildDSN(cfg)
		db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gormCfg)
		})
		if err != nil {
			return nil, config.SanitizeError(err, cfg)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
