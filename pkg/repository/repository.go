package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound is returned when a requested record doesn't exist
var ErrNotFound = errors.New("not found")

// Config represents database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repositories contains all repository instances
type Repositories struct {
	Seen    *SeenRepository
	Setting *SettingRepository
	DB      *sqlx.DB
}

// NewRepositories creates all repositories with a shared database connection
func NewRepositories(ctx context.Context, cfg Config) (*Repositories, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:booruscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// optimize SQLite settings
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000", // 5 second timeout for locks
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repositories{
		Seen:    NewSeenRepository(db),
		Setting: NewSettingRepository(db),
		DB:      db,
	}, nil
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// Ping verifies the database connection
func (r *Repositories) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sqlx.DB) error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	return nil
}

// columnMigration adds a column missing from ledgers created by older versions
type columnMigration struct {
	table, column, ddl string
}

var columnMigrations = []columnMigration{
	{"seen_posts", "tags", "ALTER TABLE seen_posts ADD COLUMN tags TEXT NOT NULL DEFAULT ''"},
	{"seen_posts", "rating", "ALTER TABLE seen_posts ADD COLUMN rating TEXT NOT NULL DEFAULT ''"},
	{"seen_posts", "seen_at", "ALTER TABLE seen_posts ADD COLUMN seen_at DATETIME"},
	{"seen_posts", "updated_at", "ALTER TABLE seen_posts ADD COLUMN updated_at DATETIME"},
	{"settings", "updated_at", "ALTER TABLE settings ADD COLUMN updated_at DATETIME"},
}

// runMigrations brings the schema of an existing database up to date
func runMigrations(ctx context.Context, db *sqlx.DB) error {
	for _, m := range columnMigrations {
		var count int
		err := db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, m.table, m.column)
		if err != nil {
			return fmt.Errorf("check %s.%s column: %w", m.table, m.column, err)
		}
		if count > 0 {
			continue
		}
		if _, err := db.ExecContext(ctx, m.ddl); err != nil {
			return fmt.Errorf("add %s.%s column: %w", m.table, m.column, err)
		}
	}

	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_seen_posts_status ON seen_posts(status)`); err != nil {
		return fmt.Errorf("create status index: %w", err)
	}
	return nil
}

// withRetry runs a write operation, retrying only on SQLite lock errors
func withRetry(ctx context.Context, op string, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		if err := fn(); err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("%s: %w", op, err)}
		}
		return nil
	}, errCritical)
	if err == nil {
		return nil
	}
	var ce *criticalError
	if errors.As(err, &ce) {
		return ce.err
	}
	return fmt.Errorf("%s: %w", op, err)
}
