package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/fieldguard/internal/database"
)

// RunMigrations applies every pending migration for driver. Having nothing to apply is not an error.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	sourceURL, databaseURL, err := migrationURLs(driver, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// migrationURLs returns the migration source and the golang-migrate database URL.
// The MySQL driver expects a mysql:// scheme that database/sql DSNs do not carry.
func migrationURLs(driver, connectionString string) (sourceURL, databaseURL string, err error) {
	switch driver {
	case database.DriverPostgres:
		return "file://migrations/postgresql", connectionString, nil
	case database.DriverMySQL:
		if !strings.HasPrefix(connectionString, "mysql://") {
			connectionString = "mysql://" + connectionString
		}
		return "file://migrations/mysql", connectionString, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}
