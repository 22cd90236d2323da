// Package joblog persists a history of render jobs in SQLite so past renders
// can be inspected after the process exits.
package joblog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"clipforge/internal/config"
	"clipforge/internal/encode"
)

// Entry is one recorded render job.
type Entry struct {
	ID           string
	CreatedAt    time.Time
	Status       encode.Status
	Format       string
	Quality      int
	ClipCount    int
	OutputPath   string
	Width        int
	Height       int
	Duration     float64
	FileSize     int64
	Attempts     int
	Strategy     string
	Retryable    bool
	ErrorMessage string
}

// Store manages job history persistence backed by SQLite. A file lock guards
// the database against concurrent CLI invocations.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the job history database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "joblog.lock"))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquire joblog lock: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "joblog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the file lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		_ = s.lock.Unlock()
	}
	return err
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record inserts one completed job. The caller fills Entry from the encode
// Result; CreatedAt defaults to now when zero.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		return fmt.Errorf("record job: empty id")
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO render_jobs (
            id, created_at, status, format, quality, clip_count,
            output_path, width, height, duration_seconds, file_size_bytes,
            attempts, strategy, retryable, error_message
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		createdAt.Format(time.RFC3339Nano),
		string(entry.Status),
		entry.Format,
		entry.Quality,
		entry.ClipCount,
		entry.OutputPath,
		entry.Width,
		entry.Height,
		entry.Duration,
		entry.FileSize,
		entry.Attempts,
		entry.Strategy,
		entry.Retryable,
		entry.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// List returns the most recent jobs, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, created_at, status, format, quality, clip_count,
        output_path, width, height, duration_seconds, file_size_bytes,
        attempts, strategy, retryable, error_message
        FROM render_jobs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, 16)
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return entries, nil
}

// Get fetches a single job by identifier.
func (s *Store) Get(ctx context.Context, id string) (Entry, bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, status, format, quality, clip_count,
            output_path, width, height, duration_seconds, file_size_bytes,
            attempts, strategy, retryable, error_message
            FROM render_jobs WHERE id = ?`, id)
	if err != nil {
		return Entry{}, false, fmt.Errorf("query job: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return Entry{}, false, rows.Err()
	}
	entry, err := scanEntry(rows)
	if err != nil {
		return Entry{}, false, err
	}
	return entry, true, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry     Entry
		createdAt string
		status    string
	)
	if err := rows.Scan(
		&entry.ID,
		&createdAt,
		&status,
		&entry.Format,
		&entry.Quality,
		&entry.ClipCount,
		&entry.OutputPath,
		&entry.Width,
		&entry.Height,
		&entry.Duration,
		&entry.FileSize,
		&entry.Attempts,
		&entry.Strategy,
		&entry.Retryable,
		&entry.ErrorMessage,
	); err != nil {
		return Entry{}, fmt.Errorf("scan job: %w", err)
	}
	entry.Status = encode.Status(status)
	if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		entry.CreatedAt = parsed
	}
	return entry, nil
}
