// Package migrate provides database migration management.
package migrate

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	dbConfig "github.com/festy23/team_invite/internal/database/config"
)

//go:embed migrations
var migrations embed.FS

// Source returns the embedded migrations for driver.
func Source(driver string) (fs.FS, error) {
	switch driver {
	case dbConfig.DriverPostgres, dbConfig.DriverSQLite:
		return fs.Sub(migrations, "migrations/"+driver)
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
}

// Migrate applies the embedded migrations for driver using golang-migrate.
// It returns the schema version after migrating.
func Migrate(db *gorm.DB, driver string) (uint, error) {
	if db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	src, err := Source(driver)
	if err != nil {
		return 0, err
	}
	sourceDriver, err := iofs.New(src, ".")
	if err != nil {
		return 0, fmt.Errorf("failed to open migrations source: %w", err)
	}

	var dbDriver database.Driver
	switch driver {
	case dbConfig.DriverPostgres:
		ctx := context.Background()
		conn, connErr := sqlDB.Conn(ctx)
		if connErr != nil {
			return 0, fmt.Errorf("failed to acquire migration connection: %w", connErr)
		}
		defer conn.Close()
		dbDriver, err = postgres.WithConnection(ctx, conn, &postgres.Config{})
	case dbConfig.DriverSQLite:
		dbDriver, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create %s migrate driver: %w", driver, err)
	}

	// m is not closed: that would close sqlDB, which the caller owns.
	m, err := migrate.NewWithInstance("iofs", sourceDriver, driver, dbDriver)
	if err != nil {
		return 0, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}

	return version, nil
}
