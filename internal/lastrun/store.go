package lastrun

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"addaudio/internal/config"
)

// Run statuses persisted with the record.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusDeclined  = "declined"
)

// Record is the single last-run log entry, overwritten on every
// invocation. It exists for post-hoc debugging only; the pipeline never
// reads it back.
type Record struct {
	RunID                string
	CreatedAt            time.Time
	PrimaryPath          string
	SecondaryPath        string
	TargetPath           string
	PrimaryStreamsJSON   string
	SecondaryStreamsJSON string
	CommandLine          string
	Status               string
	ErrorMessage         string
}

// NewRecord seeds a record with a fresh run identifier and timestamp.
func NewRecord(primaryPath, secondaryPath, targetPath string) *Record {
	return &Record{
		RunID:         uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		PrimaryPath:   primaryPath,
		SecondaryPath: secondaryPath,
		TargetPath:    targetPath,
	}
}

// Store persists the last-run record backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the last-run database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.StateDir, "lastrun.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

const schema = `
CREATE TABLE IF NOT EXISTS last_run (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    run_id TEXT NOT NULL,
    created_at TEXT NOT NULL,
    primary_path TEXT NOT NULL,
    secondary_path TEXT NOT NULL,
    target_path TEXT NOT NULL,
    primary_streams_json TEXT,
    secondary_streams_json TEXT,
    command_line TEXT,
    status TEXT NOT NULL,
    error_message TEXT
)`

func (s *Store) applySchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Save overwrites the last-run record.
func (s *Store) Save(ctx context.Context, record *Record) error {
	if record == nil {
		return errors.New("record is nil")
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO last_run (
            id, run_id, created_at, primary_path, secondary_path, target_path,
            primary_streams_json, secondary_streams_json, command_line, status, error_message
        ) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            run_id = excluded.run_id,
            created_at = excluded.created_at,
            primary_path = excluded.primary_path,
            secondary_path = excluded.secondary_path,
            target_path = excluded.target_path,
            primary_streams_json = excluded.primary_streams_json,
            secondary_streams_json = excluded.secondary_streams_json,
            command_line = excluded.command_line,
            status = excluded.status,
            error_message = excluded.error_message`,
		record.RunID,
		record.CreatedAt.UTC().Format(time.RFC3339Nano),
		record.PrimaryPath,
		record.SecondaryPath,
		record.TargetPath,
		nullableString(record.PrimaryStreamsJSON),
		nullableString(record.SecondaryStreamsJSON),
		nullableString(record.CommandLine),
		record.Status,
		nullableString(record.ErrorMessage),
	)
	if err != nil {
		return fmt.Errorf("save last run: %w", err)
	}
	return nil
}

// Load fetches the last-run record, or nil when none has been persisted.
func (s *Store) Load(ctx context.Context) (*Record, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT run_id, created_at, primary_path, secondary_path, target_path,
            primary_streams_json, secondary_streams_json, command_line, status, error_message
        FROM last_run WHERE id = 1`,
	)

	var (
		record     Record
		createdRaw string
		primaryJS  sql.NullString
		secondryJS sql.NullString
		command    sql.NullString
		errMessage sql.NullString
	)
	err := row.Scan(
		&record.RunID,
		&createdRaw,
		&record.PrimaryPath,
		&record.SecondaryPath,
		&record.TargetPath,
		&primaryJS,
		&secondryJS,
		&command,
		&record.Status,
		&errMessage,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load last run: %w", err)
	}

	record.PrimaryStreamsJSON = primaryJS.String
	record.SecondaryStreamsJSON = secondryJS.String
	record.CommandLine = command.String
	record.ErrorMessage = errMessage.String
	if created, parseErr := time.Parse(time.RFC3339Nano, createdRaw); parseErr == nil {
		record.CreatedAt = created
	}
	return &record, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
