package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/kashimitra/internal/db"
)

// NewTestDB opens a migrated in-memory database that is closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return open(t, ":memory:")
}

// TempDBPath returns a database path inside the test's temp dir. Open it
// with OpenTestDB as many times as needed to simulate restarts.
func TempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "kashimitra.db")
}

// OpenTestDB opens the file database at path and closes it with the test.
// Closing it earlier is harmless.
func OpenTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	return open(t, path)
}

func open(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test database %s: %v", path, err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}
