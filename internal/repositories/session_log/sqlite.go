package sessionlog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
	"github.com/KirkDiggler/lumina-api/internal/errors"
)

// SQLiteRepository implements Repository on a SQLite database. The
// autoincrement sequence column keeps insertion order.
type SQLiteRepository struct {
	db *sql.DB
}

// Ensure SQLiteRepository implements Repository
var _ Repository = (*SQLiteRepository)(nil)

// NewSQLite opens (and creates if needed) the database at dbPath
func NewSQLite(dbPath string) (*SQLiteRepository, error) {
	if dbPath == "" {
		return nil, errors.InvalidArgument("database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create database directory")
	}

	dsn := "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	// one writer keeps appends strictly ordered without SQLITE_BUSY retries
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *SQLiteRepository) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS session_log_entries (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		entry_id   TEXT NOT NULL UNIQUE,
		category   TEXT NOT NULL,
		message    TEXT NOT NULL,
		detail     TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_session_log_session ON session_log_entries(session_id, seq);
	`
	if _, err := r.db.Exec(query); err != nil {
		return errors.Wrap(err, "failed to create schema")
	}
	return nil
}

// Close releases the database handle
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ping verifies database connectivity
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Append adds an entry to the end of the session's log
func (r *SQLiteRepository) Append(ctx context.Context, input *AppendInput) (*AppendOutput, error) {
	if err := validateAppend(input); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin append")
	}
	defer func() { _ = tx.Rollback() }()

	entry := input.Entry
	_, err = tx.ExecContext(ctx, `
		INSERT INTO session_log_entries (session_id, entry_id, category, message, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		input.SessionID, entry.ID, string(entry.Category), entry.Message, entry.Detail,
		entry.Timestamp.UnixNano(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to insert log entry %s", entry.ID)
	}

	var length int64
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_log_entries WHERE session_id = ?`, input.SessionID,
	).Scan(&length)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count log entries")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit append")
	}

	return &AppendOutput{Length: length}, nil
}

// List returns every entry of the session's log in insertion order
func (r *SQLiteRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT entry_id, category, message, detail, created_at
		FROM session_log_entries WHERE session_id = ? ORDER BY seq`,
		input.SessionID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query log entries")
	}
	defer func() { _ = rows.Close() }()

	entries := []*transformation.LogEntry{}
	for rows.Next() {
		var (
			entry     transformation.LogEntry
			category  string
			createdAt int64
		)
		if err := rows.Scan(&entry.ID, &category, &entry.Message, &entry.Detail, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan log entry")
		}
		entry.Category = transformation.LogCategory(category)
		entry.Timestamp = time.Unix(0, createdAt).UTC()
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate log entries")
	}

	return &ListOutput{Entries: entries}, nil
}

// Clear removes the session's log
func (r *SQLiteRepository) Clear(ctx context.Context, input *ClearInput) (*ClearOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSessionID(input.SessionID); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM session_log_entries WHERE session_id = ?`, input.SessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete log entries")
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count deleted entries for %s", input.SessionID)
	}

	return &ClearOutput{EntriesDeleted: deleted}, nil
}
