// ABOUTME: SQLite transcript ledger using modernc.org/sqlite
// ABOUTME: Append-only message log with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one persisted transcript message.
type Entry struct {
	ID        string
	Role      string
	Content   string
	CreatedAt time.Time
}

// Ledger is an append-only local message log backed by SQLite.
type Ledger struct {
	db     *sql.DB
	logger *slog.Logger
}

// DefaultPath returns the conventional ledger location,
// $XDG_STATE_HOME/edassist/history.db.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "edassist", "history.db"), nil
}

// Open opens (or creates) the ledger at the given path. Parent directories
// are created if needed and the schema is created if it doesn't exist.
func Open(path string) (*Ledger, error) {
	logger := slog.Default().With("component", "store")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL keeps appends cheap while a /history read is in progress
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	l := &Ledger{db: db, logger: logger}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Debug("transcript ledger opened", "path", path)
	return l, nil
}

func (l *Ledger) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_messages_created_at
			ON messages(created_at);
	`
	if _, err := l.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Append records one message. Failures are the caller's to report; the
// ledger never blocks a chat turn.
func (l *Ledger) Append(ctx context.Context, role, content string) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO messages (id, role, content, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), role, content, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("appending message: %w", err)
	}
	return nil
}

// Recent returns up to limit messages, oldest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, role, content, created_at FROM (
			SELECT id, role, content, created_at
			FROM messages
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		) ORDER BY created_at ASC, id ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Role, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading messages: %w", err)
	}
	return entries, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}
