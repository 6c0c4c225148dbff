package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"strings"

	"inventory/internal/config"
	"inventory/pkg/logger"
	"inventory/pkg/migrate"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Client wraps the shared GORM connection.
type Client struct {
	conn    *gorm.DB
	dialect string
}

// Open connects to the database selected by cfg.Driver. The memory driver
// has no database and is rejected here.
func Open(ctx context.Context, cfg config.DatabaseConfig, logg *logger.Logger) (*Client, error) {
	var (
		dialector gorm.Dialector
		dialect   string
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true,
		})
		dialect = migrate.DialectPostgres
	case config.DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(cfg.SQLitePath))
		dialect = migrate.DialectSQLite
	default:
		return nil, fmt.Errorf("driver %q has no database connection", cfg.Driver)
	}

	client, err := open(dialector, dialect)
	if err != nil {
		return nil, err
	}

	sqlDB, err := client.conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	if dialect == migrate.DialectSQLite {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		applyPoolSettings(sqlDB, cfg)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "driver", cfg.Driver), "database connection established")
	}
	return client, nil
}

// OpenSQLite opens a sqlite database from a raw DSN. Tests use it with
// shared in-memory databases.
func OpenSQLite(dsn string) (*Client, error) {
	client, err := open(sqlite.Open(dsn), migrate.DialectSQLite)
	if err != nil {
		return nil, err
	}
	sqlDB, err := client.conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return client, nil
}

func open(dialector gorm.Dialector, dialect string) (*Client, error) {
	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}
	return &Client{conn: conn, dialect: dialect}, nil
}

// SQLiteDSN enables foreign key enforcement on a sqlite path or DSN.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func applyPoolSettings(sqlDB *sql.DB, cfg config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

// DB returns the underlying GORM connection.
func (c *Client) DB() *gorm.DB {
	return c.conn
}

// Dialect returns the goose dialect of the connection.
func (c *Client) Dialect() string {
	return c.dialect
}

// Migrate applies pending schema migrations.
func (c *Client) Migrate(ctx context.Context, logg *logger.Logger) error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return fmt.Errorf("getting sql db handle: %w", err)
	}
	if logg == nil {
		return migrate.Up(ctx, sqlDB, c.dialect, nil)
	}
	return migrate.Up(ctx, sqlDB, c.dialect, logg)
}

// Ping verifies the datasource is reachable.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close shuts down the pooled connections.
func (c *Client) Close() error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
