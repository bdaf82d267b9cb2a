// Package store archives generated layouts in SQLite so a repeated request
// for the same seed, tree and tuning is served without regenerating.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"level-layout/internal/export"
	"level-layout/internal/generate"
)

// Key identifies a layout by everything that determines its content.
type Key struct {
	Seed       string
	TreeDigest string
	TuningHash string
}

// Store is a layout archive backed by one SQLite file.
type Store struct {
	db *sql.DB
}

// Open creates or opens the archive at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS layouts (
			seed TEXT NOT NULL,
			tree_digest TEXT NOT NULL,
			tuning_hash TEXT NOT NULL,
			rooms INTEGER NOT NULL,
			hallways INTEGER NOT NULL,
			unrouted INTEGER NOT NULL,
			body BLOB NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (seed, tree_digest, tuning_hash)
		);`,
		`CREATE INDEX IF NOT EXISTS layouts_seed ON layouts(seed);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Put stores layout under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key Key, layout *generate.Layout) error {
	var body bytes.Buffer
	if err := export.Encode(&body, layout); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO layouts
			(seed, tree_digest, tuning_hash, rooms, hallways, unrouted, body, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		key.Seed, key.TreeDigest, key.TuningHash,
		len(layout.Rooms), len(layout.Hallways), len(layout.Unrouted),
		body.Bytes(), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store: put: %w", err)
	}
	return nil
}

// Get returns the layout stored under key. found is false when there is none.
func (s *Store) Get(ctx context.Context, key Key) (layout *generate.Layout, found bool, err error) {
	var body []byte
	err = s.db.QueryRowContext(ctx,
		`SELECT body FROM layouts WHERE seed = ? AND tree_digest = ? AND tuning_hash = ?`,
		key.Seed, key.TreeDigest, key.TuningHash,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: get: %w", err)
	}
	layout, _, err = export.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("store: %w", err)
	}
	return layout, true, nil
}

// Count returns the number of archived layouts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM layouts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
