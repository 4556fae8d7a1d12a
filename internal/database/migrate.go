package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/iliyamo/babcock-cleaning/internal/config"
	"github.com/iliyamo/babcock-cleaning/internal/database/migrations"
)

// Migrate applies the embedded BookingRequest migrations for driver and
// returns the resulting schema version.
func Migrate(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch driver {
	case config.DriverMySQL, "":
		dialect, dir = goose.DialectMySQL, "mysql"
	case config.DriverSQLite:
		dialect, dir = goose.DialectSQLite3, "sqlite"
	default:
		return 0, fmt.Errorf("unsupported driver %q", driver)
	}

	sub, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return 0, fmt.Errorf("open %s migrations: %w", dir, err)
	}
	provider, err := goose.NewProvider(dialect, db, sub)
	if err != nil {
		return 0, fmt.Errorf("create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}
	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return version, nil
}
