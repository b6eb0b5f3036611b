// Package sqlitestore keeps documents in a single SQLite table and detects
// writes made by other connections by polling PRAGMA data_version.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"etherlink/application/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	version    INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

const upsert = `INSERT INTO kv (key, value, version, updated_at) VALUES (?, ?, 1, ?)
ON CONFLICT(key) DO UPDATE SET
	value = excluded.value,
	version = kv.version + 1,
	updated_at = excluded.updated_at
RETURNING version`

// Store is a SQLite-backed Backend
type Store struct {
	db       *sql.DB
	interval time.Duration
	logger   *zap.Logger

	mu   sync.Mutex
	seen map[string]int64 // last version this process wrote or reported per key
}

// Open opens (creating if needed) the database at path. Every statement runs
// on one connection so data_version only moves for other connections' writes.
func Open(path string, interval time.Duration, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlitestore: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range append(pragmas, schema) {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlitestore: %s: %w", p, err)
		}
	}

	return &Store{
		db:       db,
		interval: interval,
		logger:   logger,
		seen:     make(map[string]int64),
	}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the document stored under key
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: get %s: %w", key, err)
	}
	return []byte(value), nil
}

// Set upserts the document under key and bumps its version
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var version int64
	err := s.db.QueryRowContext(ctx, upsert, key, string(value), time.Now().UnixMilli()).Scan(&version)
	if err != nil {
		return fmt.Errorf("sqlitestore: set %s: %w", key, err)
	}
	s.seen[key] = version
	return nil
}

// Watch polls for writes committed by other connections and reports each
// changed key. It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, onChange func(key string)) error {
	last, err := s.dataVersion(ctx)
	if err != nil {
		return err
	}
	// seed versions; anything already stored is not a change
	if _, err := s.changedKeys(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			current, err := s.dataVersion(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.logger.Warn("Version check failed", zap.Error(err))
				continue
			}
			if current == last {
				continue
			}
			last = current

			keys, err := s.changedKeys(ctx)
			if err != nil {
				s.logger.Warn("Change scan failed", zap.Error(err))
				continue
			}
			for _, key := range keys {
				onChange(key)
			}
		}
	}
}

func (s *Store) dataVersion(ctx context.Context) (int64, error) {
	var v int64
	if err := s.db.QueryRowContext(ctx, `PRAGMA data_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("sqlitestore: data_version: %w", err)
	}
	return v, nil
}

// changedKeys diffs stored versions against the last seen ones, records the
// new versions and returns the keys that moved
func (s *Store) changedKeys(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT key, version FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: scan versions: %w", err)
	}
	defer rows.Close()

	var changed []string
	present := make(map[string]bool)
	for rows.Next() {
		var key string
		var version int64
		if err := rows.Scan(&key, &version); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan versions: %w", err)
		}
		present[key] = true
		if prev, ok := s.seen[key]; !ok || prev != version {
			changed = append(changed, key)
		}
		s.seen[key] = version
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlitestore: scan versions: %w", err)
	}

	for key := range s.seen {
		if !present[key] {
			delete(s.seen, key)
			changed = append(changed, key)
		}
	}
	return changed, nil
}
