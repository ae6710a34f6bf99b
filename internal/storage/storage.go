// Package storage persists routines, finished sessions and weight history
// in SQLite: a local file through modernc.org/sqlite, or a Turso database
// through libsql.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite"
)

// Timestamps are stored as fixed-width UTC strings so that they sort
// lexically and keep nanoseconds.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Storage struct {
	DB     *sql.DB
	driver string
	log    logrus.FieldLogger
}

// Open connects to connStr and creates the schema if needed. file: and
// plain paths use the embedded SQLite driver; libsql://, https:// and
// http:// URLs go to a libsql server.
func Open(connStr string, log logrus.FieldLogger) (*Storage, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	driver, dsn, err := driverFor(connStr)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	if driver == "sqlite" {
		// A single writer avoids SQLITE_BUSY between pooled connections.
		db.SetMaxOpenConns(1)
	}

	if err := initializeDB(db, driver); err != nil {
		return nil, multierr.Append(&PersistenceError{Op: "initialize", Err: err}, db.Close())
	}

	log.WithField("driver", driver).Debug("database opened")
	return &Storage{DB: db, driver: driver, log: log}, nil
}

func driverFor(connStr string) (driver, dsn string, err error) {
	switch {
	case connStr == "":
		return "", "", errors.New("database connection string is empty")
	case strings.HasPrefix(connStr, "libsql://"),
		strings.HasPrefix(connStr, "https://"),
		strings.HasPrefix(connStr, "http://"),
		strings.HasPrefix(connStr, "wss://"),
		strings.HasPrefix(connStr, "ws://"):
		return "libsql", connStr, nil
	case strings.HasPrefix(connStr, "file:"):
		return "sqlite", connStr, nil
	case strings.Contains(connStr, "://"):
		return "", "", fmt.Errorf("unsupported database URL %q", connStr)
	default:
		return "sqlite", "file:" + connStr, nil
	}
}

func (s *Storage) Driver() string { return s.driver }

func (s *Storage) Close() error {
	if err := s.DB.Close(); err != nil {
		return &PersistenceError{Op: "close", Err: err}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS routines (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		notes TEXT,
		created_at TEXT NOT NULL,
		last_used_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS routine_slots (
		id TEXT PRIMARY KEY,
		routine_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		exercise TEXT NOT NULL, -- JSON snapshot of the exercise
		sets INTEGER NOT NULL,
		reps INTEGER NOT NULL,
		weight REAL,
		rest_seconds INTEGER NOT NULL,
		notes TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_routine_slots_routine ON routine_slots (routine_id, position)`,
	`CREATE TABLE IF NOT EXISTS completed_sessions (
		id TEXT PRIMARY KEY,
		routine_id TEXT NOT NULL,
		routine_name TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		notes TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_completed_sessions_start ON completed_sessions (start_time)`,
	`CREATE TABLE IF NOT EXISTS set_results (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		slot_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		exercise_name TEXT NOT NULL,
		weight REAL,
		reps INTEGER NOT NULL,
		set_number INTEGER NOT NULL,
		completed_at TEXT NOT NULL,
		warmup INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_set_results_session ON set_results (session_id, position)`,
	`CREATE TABLE IF NOT EXISTS exercise_weights (
		key TEXT PRIMARY KEY, -- exercise id, or the name for legacy rows
		exercise_id TEXT,
		exercise_name TEXT NOT NULL,
		weight REAL NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

func initializeDB(db *sql.DB, driver string) error {
	if driver == "sqlite" {
		if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			return err
		}
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

func timePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
