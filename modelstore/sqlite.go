// Package modelstore provides ModelRepository implementations backed by
// external stores.
package modelstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tsawler/twitsent"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS models (
	version    TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	created_at INTEGER NOT NULL
)`

// SQLite stores models in a SQLite database, one row per version.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at dsn, applies the
// recommended pragmas and creates the models table.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load implements twitsent.ModelRepository.
func (s *SQLite) Load(ctx context.Context, version string) (*twitsent.Model, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM models WHERE version = ?`, version).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, twitsent.ErrModelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query model %s: %w", version, err)
	}

	m := new(twitsent.Model)
	if err := m.UnmarshalBinary(payload); err != nil {
		return nil, fmt.Errorf("load model %s: %w", version, err)
	}
	return m, nil
}

// Save implements twitsent.ModelRepository. Saving an existing version
// replaces it.
func (s *SQLite) Save(ctx context.Context, version string, m *twitsent.Model) error {
	if err := twitsent.ValidateVersion(version); err != nil {
		return err
	}
	payload, err := m.MarshalBinary()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO models (version, payload, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(version) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
		version, payload, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save model %s: %w", version, err)
	}
	return nil
}

// Versions lists the stored versions, newest first.
func (s *SQLite) Versions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT version FROM models ORDER BY created_at DESC, version`)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// applyPragmas configures SQLite for single-writer use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. TWITSENT_SQLITE_PATH environment variable
// 2. $XDG_DATA_HOME/twitsent/models.db
// 3. ~/.local/share/twitsent/models.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("TWITSENT_SQLITE_PATH"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "twitsent", "models.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
