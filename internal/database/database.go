// Package database opens the local SQLite files kept under the aznet
// config directory. The operation store and the audit log each own a
// file; both go through Open so every database carries the same
// journaling and locking settings.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const appDir = "aznet"

// dsnOptions enables WAL so two aznet invocations can touch the same
// file, and waits out short-lived locks instead of failing with
// SQLITE_BUSY.
const dsnOptions = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

var pathOverride string

// SetPath overrides the default database path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override. Intended for testing.
func ResetPath() { pathOverride = "" }

// DefaultDir returns the directory holding aznet's local databases.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("database: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// DefaultPath returns the path of the main database file.
func DefaultPath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "aznet.db"), nil
}

// Open creates or opens a SQLite database at path. The parent directory
// is created when missing.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("database: failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("database: failed to open %s: %w", path, err)
	}
	return db, nil
}
