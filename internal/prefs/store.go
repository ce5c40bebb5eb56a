// Package prefs persists player preferences and records in SQLite.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// KeyHighestClimb holds the best height reached across sessions, in meters.
const KeyHighestClimb = "HighestClimb"

const defaultTimeout = 5 * time.Second

var ErrNotFound = errors.New("prefs: key not found")

// Store is a key/float preference table.
type Store struct {
	db      *sql.DB
	now     func() time.Time
	timeout time.Duration
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("prefs path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0755); err != nil {
		return nil, fmt.Errorf("create prefs directory: %w", err)
	}

	db, err := sql.Open("sqlite", cleanPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, now: time.Now, timeout: defaultTimeout}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value REAL NOT NULL,
		updated_at INTEGER NOT NULL
	);`)
	return err
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Float returns the value stored under key, or ErrNotFound.
func (s *Store) Float(ctx context.Context, key string) (float32, error) {
	var v float64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}
	return float32(v), nil
}

// FloatOr returns the value stored under key, or fallback when it is unset.
func (s *Store) FloatOr(ctx context.Context, key string, fallback float32) (float32, error) {
	v, err := s.Float(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	return v, err
}

// SetFloat stores value under key, replacing any previous value.
func (s *Store) SetFloat(ctx context.Context, key string, value float32) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, float64(value), s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// SetFloatIfHigher stores value only when it beats the stored one. It
// reports whether the row changed.
func (s *Store) SetFloatIfHigher(ctx context.Context, key string, value float32) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		 WHERE excluded.value > preferences.value`,
		key, float64(value), s.now().UnixMilli(),
	)
	if err != nil {
		return false, fmt.Errorf("set %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set %s: %w", key, err)
	}
	return n > 0, nil
}

// HighestClimb returns the stored record, 0 when none was set.
func (s *Store) HighestClimb(ctx context.Context) (float32, error) {
	return s.FloatOr(ctx, KeyHighestClimb, 0)
}

// RecordHighestClimb keeps height if it beats the stored record. It runs on
// the simulation goroutine, so it bounds its own deadline.
func (s *Store) RecordHighestClimb(height float32) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.SetFloatIfHigher(ctx, KeyHighestClimb, height)
}
