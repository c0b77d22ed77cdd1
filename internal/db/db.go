// Package db opens the estimator's SQLite database and owns its schema.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var pragmas = []struct {
	stmt, what string
}{
	{"PRAGMA journal_mode = WAL", "setting WAL mode"},
	{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
	{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
}

// DefaultPath returns ~/.estimator/estimator.db, or a relative
// estimator.db when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "estimator.db"
	}
	return filepath.Join(home, ".estimator", "estimator.db")
}

// ExpandPath resolves a leading "~/" against the home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// OpenDB opens the SQLite database at path, creating parent directories,
// applies connection pragmas and runs migrations.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		path = ExpandPath(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every connection to ":memory:" opens a separate empty database.
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
