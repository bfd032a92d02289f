// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/replay"
	"github.com/vovakirdan/neon-runner/internal/runner"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run recordings.
type Store struct {
	db *sql.DB
}

// RunInfo describes a stored recording without its events.
type RunInfo struct {
	ID         int64
	EventCount int
	Duration   time.Duration // Wall-clock time covered by the recording
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			config_yaml TEXT NOT NULL,
			field_width REAL NOT NULL,
			field_height REAL NOT NULL,
			ground_height REAL NOT NULL,
			event_count INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS run_events (
			run_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			delta_ns INTEGER NOT NULL DEFAULT 0,
			field_width REAL NOT NULL DEFAULT 0,
			field_height REAL NOT NULL DEFAULT 0,
			ground_height REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun stores a recording and returns its ID.
func (s *Store) SaveRun(t replay.Trace) (int64, error) {
	cfgYAML, err := config.Marshal(t.Config)
	if err != nil {
		return 0, fmt.Errorf("storage: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO runs (config_yaml, field_width, field_height, ground_height, event_count, duration_ns)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		string(cfgYAML), t.Field.Width, t.Field.Height, t.Field.GroundHeight,
		len(t.Events), int64(t.Duration()),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO run_events (run_id, seq, kind, delta_ns, field_width, field_height, ground_height)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare event insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range t.Events {
		if _, err := stmt.Exec(id, i, string(e.Kind), int64(e.Delta),
			e.Field.Width, e.Field.Height, e.Field.GroundHeight); err != nil {
			return 0, fmt.Errorf("storage: cannot save event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// LoadRun reads a recording back. Returns ErrRunNotFound for unknown IDs.
func (s *Store) LoadRun(id int64) (replay.Trace, error) {
	var (
		t       replay.Trace
		cfgYAML string
	)
	err := s.db.QueryRow(
		`SELECT config_yaml, field_width, field_height, ground_height FROM runs WHERE id = ?`,
		id,
	).Scan(&cfgYAML, &t.Field.Width, &t.Field.Height, &t.Field.GroundHeight)
	if errors.Is(err, sql.ErrNoRows) {
		return replay.Trace{}, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return replay.Trace{}, fmt.Errorf("storage: cannot query run: %w", err)
	}

	t.Config, err = config.Parse([]byte(cfgYAML))
	if err != nil {
		return replay.Trace{}, fmt.Errorf("storage: run %d has an unreadable config: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT kind, delta_ns, field_width, field_height, ground_height
		 FROM run_events
		 WHERE run_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return replay.Trace{}, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind  string
			delta int64
			f     runner.Field
		)
		if err := rows.Scan(&kind, &delta, &f.Width, &f.Height, &f.GroundHeight); err != nil {
			return replay.Trace{}, fmt.Errorf("storage: cannot scan event: %w", err)
		}
		t.Events = append(t.Events, replay.Event{
			Kind:  replay.Kind(kind),
			Delta: time.Duration(delta),
			Field: f,
		})
	}

	if err := rows.Err(); err != nil {
		return replay.Trace{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return t, nil
}

// ListRuns returns up to limit recordings, newest first.
func (s *Store) ListRuns(limit int) ([]RunInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, event_count, duration_ns, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var (
			r         RunInfo
			duration  int64
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.EventCount, &duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(duration)
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a recording and its events.
func (s *Store) DeleteRun(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	result, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}

	if _, err := tx.Exec("DELETE FROM run_events WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete events: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string values from the driver.
func parseTimestamp(v any) time.Time {
	switch ts := v.(type) {
	case time.Time:
		return ts
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", ts); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
