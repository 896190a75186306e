// Package storage keeps chat history and profiles in a local SQLite file.
//
// All access goes through one connection guarded by one mutex, so store
// commands are fully serialized across the process. A slow statement blocks
// every other store command until it finishes.
package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
	"pkt.systems/pslog"
)

const schemaChatHistory = `
	CREATE TABLE IF NOT EXISTS chat_history (
		id TEXT PRIMARY KEY NOT NULL,
		description TEXT NOT NULL,
		messages TEXT NOT NULL
	)
`

const schemaProfiles = `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		preferences TEXT NOT NULL
	)
`

// Store implements a SQLite store for chat dialogs and profiles.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the database file at path. Tables are created by
// Init.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(err, "creating database directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "opening database")
	}

	return &Store{db: db}, nil
}

// Init creates the chat_history and profiles tables if they do not exist.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, schemaChatHistory); err != nil {
		return errors.Wrap(err, "creating chat_history table")
	}
	if _, err := s.db.ExecContext(ctx, schemaProfiles); err != nil {
		return errors.Wrap(err, "creating profiles table")
	}

	pslog.Ctx(ctx).Debug("store initialized")
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Close()
}

func (s *Store) exec(ctx context.Context, what string, query string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, what)
	}
	return nil
}
