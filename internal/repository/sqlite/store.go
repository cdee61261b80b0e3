// Package sqlite is the embedded attendance store used for single-salon
// installs and tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store owns the SQLite connection shared by the repositories.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens the database at path and applies the schema.
// Use ":memory:" for a throwaway in-memory database.
func New(path string) (*Store, error) {
	dsn := path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	if strings.HasPrefix(path, ":memory:") {
		dsn = path + "?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS staff (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT '',
		salary_type TEXT NOT NULL CHECK (salary_type IN ('hourly', 'fixed')),
		hourly_rate TEXT NOT NULL DEFAULT '0',
		base_salary TEXT,
		bonus_percentage TEXT,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		staff_id TEXT NOT NULL,
		staff_name TEXT NOT NULL,
		date TEXT NOT NULL,
		punch_in TEXT,
		punch_out TEXT,
		work_hours REAL,
		status TEXT NOT NULL CHECK (status IN ('present', 'absent', 'leave', 'half-day')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (staff_name, date)
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_staff_date ON attendance(staff_name, date);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// newID returns a time-ordered identifier for new rows.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
