// Package cachestore persists linkify classifications in SQLite so long-lived
// servers keep their resolution cache across restarts.
package cachestore

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/reportlink/internal/foundation"
	"git.home.luguber.info/inful/reportlink/internal/logfields"
)

// Store implements linkify.Cache and linkify.Invalidator on SQLite.
// Read/write errors degrade to cache misses; a broken cache file must never
// fail an annotate call.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite-backed classification store.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS resolutions (
		text TEXT PRIMARY KEY,
		linkable INTEGER NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		updated INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_resolutions_updated ON resolutions(updated);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get looks up the classification of the given matched text.
func (s *Store) Get(text string) (foundation.Option[string], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var linkable int
	var address string
	err := s.db.QueryRow(
		"SELECT linkable, address FROM resolutions WHERE text = ?", text,
	).Scan(&linkable, &address)
	if err == sql.ErrNoRows {
		return foundation.None[string](), false
	}
	if err != nil {
		slog.Warn("Cache store read failed, treating as miss", logfields.Ref(text), logfields.Error(err))
		return foundation.None[string](), false
	}
	if linkable == 0 {
		return foundation.None[string](), true
	}
	return foundation.Some(address), true
}

// Put stores a classification, replacing any previous one for the same text.
func (s *Store) Put(text string, result foundation.Option[string]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	linkable := 0
	address := ""
	result.Match(func(a string) {
		linkable = 1
		address = a
	}, func() {})

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO resolutions (text, linkable, address, updated) VALUES (?, ?, ?, ?)",
		text, linkable, address, time.Now().Unix(),
	)
	if err != nil {
		slog.Warn("Cache store write failed", logfields.Ref(text), logfields.Error(err))
	}
}

// Invalidate drops classifications whose matched text begins with pathPrefix.
// An empty prefix drops everything.
func (s *Store) Invalidate(pathPrefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if pathPrefix == "" {
		_, err = s.db.Exec("DELETE FROM resolutions")
	} else {
		_, err = s.db.Exec(
			"DELETE FROM resolutions WHERE text LIKE ? ESCAPE '\\'",
			escapeLike(pathPrefix)+"%",
		)
	}
	if err != nil {
		slog.Warn("Cache store invalidation failed", logfields.Path(pathPrefix), logfields.Error(err))
	}
}

// Prune deletes classifications last updated before the cutoff and returns the
// number of rows removed.
func (s *Store) Prune(olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM resolutions WHERE updated < ?", olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune resolutions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune row count: %w", err)
	}
	return n, nil
}

// Len returns the number of stored classifications.
func (s *Store) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM resolutions").Scan(&n); err != nil {
		return 0, fmt.Errorf("count resolutions: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// escapeLike escapes LIKE wildcards so prefixes containing % or _ match literally.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
