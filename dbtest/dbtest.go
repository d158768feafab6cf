// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"testing"

	"detergent/database"
	"detergent/loader"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// Open returns an in-memory database with the schema applied. It is closed when t ends.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()
	return OpenWith(t, database.DriverCgo)
}

// OpenWith is Open for a specific driver.
func OpenWith(t testing.TB, driver string) *sqlx.DB {
	t.Helper()
	db, err := database.Open(driver, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, loader.InitDatabase(db))
	return db
}
