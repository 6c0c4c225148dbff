package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sync"

	"github.com/pressly/goose/v3"
)

// Goose dialect names.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

//go:embed migrations
var migrations embed.FS

// goose keeps its configuration in package globals.
var mu sync.Mutex

// Dir returns the embedded migrations directory for dialect.
func Dir(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return path.Join("migrations", "postgres"), nil
	case DialectSQLite:
		return path.Join("migrations", "sqlite"), nil
	}
	return "", fmt.Errorf("unsupported dialect %q", dialect)
}

// Run executes a goose command (up, down, status, version, redo, reset, ...)
// against the embedded migrations for dialect.
func Run(ctx context.Context, db *sql.DB, dialect string, logger goose.Logger, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	dir, err := Dir(dialect)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if logger != nil {
		goose.SetLogger(logger)
	} else {
		goose.SetLogger(goose.NopLogger())
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, dialect string, logger goose.Logger) error {
	return Run(ctx, db, dialect, logger, "up")
}
