package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/babcock-cleaning/internal/config"
)

// Open connects to the configured store and verifies the connection.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	driver, dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// DSN returns the database/sql driver name and data source name for cfg.
func DSN(cfg config.DBConfig) (driver, dsn string, err error) {
	switch cfg.Driver {
	case config.DriverMySQL, "":
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Pass
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
		mc.DBName = cfg.Name
		// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
		mc.ParseTime = true
		mc.Loc = time.UTC
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return "mysql", mc.FormatDSN(), nil
	case config.DriverSQLite:
		if cfg.Path == "" {
			return "", "", fmt.Errorf("sqlite path is required")
		}
		return "sqlite", cfg.Path + "?_pragma=busy_timeout(5000)", nil
	default:
		return "", "", fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}
