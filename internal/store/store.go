// Package store provides persistent storage for in-flight ARM operations.
//
// When a long-running operation is started with --no-wait, the CLI records
// it locally so that a later invocation can pick it up and poll the
// resource until it settles. The same record keeps the outcome once the
// operation finishes.
//
// Storage is backed by a SQLite database at ~/.config/aznet/operations.db
// (or the platform-equivalent path returned by os.UserConfigDir).
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"nathanbeddoewebdev/aznet/internal/database"
)

const dbFile = "operations.db"

// Operation status values.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusError   = "error"
)

// Operation actions.
const (
	ActionCreateOrUpdate = "create-or-update"
	ActionDelete         = "delete"
)

// pathOverride, when non-empty, replaces the default database path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the database path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override. Intended for testing.
func ResetPath() { pathOverride = "" }

// OperationRecord represents a persisted long-running operation.
type OperationRecord struct {
	// ID is the auto-increment primary key (assigned on insert).
	ID int64

	// ResourceID is the full ARM ID of the resource being acted upon.
	ResourceID string

	// ResourceName is the trailing resource name (for display).
	ResourceName string

	// Service is the owning service, e.g. "network", "dns", "resources".
	Service string

	// Command is the CLI command that started the operation,
	// e.g. "vpn-gateway update".
	Command string

	// Action distinguishes how completion is detected: a create-or-update
	// finishes when provisioning succeeds, a delete when the resource is
	// gone.
	Action string

	// Status is the current state: "running", "success", or "error".
	Status string

	// LastState is the most recent provisioning state seen while polling.
	LastState string

	// ErrorMessage contains a human-readable explanation when Status is "error".
	ErrorMessage string

	// CreatedAt is when the operation was first recorded.
	CreatedAt time.Time

	// UpdatedAt is the last time the record was modified.
	UpdatedAt time.Time
}

// OperationStore defines the persistence interface for operation records.
type OperationStore interface {
	// Save inserts or updates an operation record. On insert (ID == 0), an
	// ID is assigned to the record.
	Save(record *OperationRecord) error

	// Get retrieves a single operation record by ID.
	Get(id int64) (*OperationRecord, error)

	// ListPending returns all operation records with status "running",
	// ordered by creation time (newest first).
	ListPending() ([]OperationRecord, error)

	// ListRecent returns the most recent n operation records regardless of
	// status, ordered by creation time (newest first).
	ListRecent(n int) ([]OperationRecord, error)

	// DeleteOlderThan removes finished records older than d.
	// Returns the number of records removed.
	DeleteOlderThan(d time.Duration) (int64, error)

	// Close releases database resources.
	Close() error
}

// SQLiteStore implements OperationStore backed by a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// DefaultPath returns the default database path.
func DefaultPath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	dir, err := database.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFile), nil
}

// Open creates or opens the operation store at the default path.
func Open() (*SQLiteStore, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenAt(path)
}

// OpenAt creates or opens the operation store at the given path.
func OpenAt(path string) (*SQLiteStore, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// migrate creates the operations table if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS operations (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			resource_id   TEXT    NOT NULL,
			resource_name TEXT    NOT NULL DEFAULT '',
			service       TEXT    NOT NULL DEFAULT '',
			command       TEXT    NOT NULL DEFAULT '',
			action        TEXT    NOT NULL DEFAULT 'create-or-update',
			status        TEXT    NOT NULL DEFAULT 'running',
			last_state    TEXT    NOT NULL DEFAULT '',
			error_message TEXT    NOT NULL DEFAULT '',
			created_at    TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at    TEXT    NOT NULL DEFAULT (datetime('now'))
		);
		CREATE INDEX IF NOT EXISTS idx_operations_status ON operations(status);
	`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("store: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new record (ID == 0) or updates an existing one.
func (s *SQLiteStore) Save(r *OperationRecord) error {
	r.UpdatedAt = time.Now().UTC()

	if r.ID == 0 {
		// Insert
		if r.CreatedAt.IsZero() {
			r.CreatedAt = r.UpdatedAt
		}
		result, err := s.db.Exec(`
			INSERT INTO operations (resource_id, resource_name, service, command, action, status, last_state, error_message, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ResourceID, r.ResourceName, r.Service, r.Command, r.Action,
			r.Status, r.LastState, r.ErrorMessage,
			r.CreatedAt.Format(time.RFC3339Nano), r.UpdatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("store: insert failed: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("store: failed to get last insert ID: %w", err)
		}
		r.ID = id
		return nil
	}

	// Update
	result, err := s.db.Exec(`
		UPDATE operations SET resource_id=?, resource_name=?, service=?,
		       command=?, action=?, status=?, last_state=?, error_message=?,
		       updated_at=?
		WHERE id=?`,
		r.ResourceID, r.ResourceName, r.Service, r.Command, r.Action,
		r.Status, r.LastState, r.ErrorMessage,
		r.UpdatedAt.Format(time.RFC3339Nano), r.ID,
	)
	if err != nil {
		return fmt.Errorf("store: update failed: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("store: operation with ID %d not found", r.ID)
	}
	return nil
}

// Get retrieves a single operation record by ID.
func (s *SQLiteStore) Get(id int64) (*OperationRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, resource_id, resource_name, service, command, action,
		       status, last_state, error_message, created_at, updated_at
		FROM operations WHERE id = ?`, id)

	r, err := scanRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: query failed: %w", err)
	}
	return r, nil
}

// ListPending returns all operation records with status "running".
func (s *SQLiteStore) ListPending() ([]OperationRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, resource_id, resource_name, service, command, action,
		       status, last_state, error_message, created_at, updated_at
		FROM operations WHERE status = 'running' ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListRecent returns the most recent n operation records regardless of status.
func (s *SQLiteStore) ListRecent(n int) ([]OperationRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, resource_id, resource_name, service, command, action,
		       status, last_state, error_message, created_at, updated_at
		FROM operations ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("store: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// DeleteOlderThan removes finished records older than d.
func (s *SQLiteStore) DeleteOlderThan(d time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-d).Format(time.RFC3339Nano)
	result, err := s.db.Exec(`
		DELETE FROM operations WHERE status != 'running' AND updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("store: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanRow scans a single row into an OperationRecord.
func scanRow(row *sql.Row) (*OperationRecord, error) {
	var r OperationRecord
	var createdStr, updatedStr string
	err := row.Scan(
		&r.ID, &r.ResourceID, &r.ResourceName, &r.Service, &r.Command,
		&r.Action, &r.Status, &r.LastState, &r.ErrorMessage,
		&createdStr, &updatedStr,
	)
	if err != nil {
		return nil, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	r.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedStr)
	return &r, nil
}

// scanRows scans multiple rows into OperationRecords.
func scanRows(rows *sql.Rows) ([]OperationRecord, error) {
	var records []OperationRecord
	for rows.Next() {
		var r OperationRecord
		var createdStr, updatedStr string
		err := rows.Scan(
			&r.ID, &r.ResourceID, &r.ResourceName, &r.Service, &r.Command,
			&r.Action, &r.Status, &r.LastState, &r.ErrorMessage,
			&createdStr, &updatedStr,
		)
		if err != nil {
			return nil, fmt.Errorf("store: scan failed: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		r.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedStr)
		records = append(records, r)
	}
	return records, rows.Err()
}
