package database

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a lookup by id matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert collides with a unique name or number.
	ErrDuplicate = errors.New("already exists")
)

// Driver names accepted by Open.
const (
	DriverCgo    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPureGo = "sqlite"  // modernc.org/sqlite
)

//go:embed schema.sql
var schemaSQL string

// Open connects to the SQLite file at path with WAL, a busy timeout and
// foreign keys enabled. ":memory:" pins the pool to a single connection so
// every query sees the same database.
func Open(driver, path string) (*sqlx.DB, error) {
	var dsn string
	switch driver {
	case DriverCgo:
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
		if path == ":memory:" {
			dsn = "file::memory:?_foreign_keys=on"
		}
	case DriverPureGo:
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
		if path == ":memory:" {
			dsn = "file::memory:?_pragma=foreign_keys(1)"
		}
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return db, nil
}

// ApplySchema creates any missing tables. It is safe to run on every start.
func ApplySchema(db *sqlx.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

// likeArg wraps a search term for a case-insensitive substring LIKE.
func likeArg(q string) string {
	return "%" + q + "%"
}

// insertErr maps unique constraint failures from either driver to ErrDuplicate.
func insertErr(op, key string, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%s: %w", key, ErrDuplicate)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
