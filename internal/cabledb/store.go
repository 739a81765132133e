// Package cabledb persists the facility cable database in SQLite:
// cable specifications, installed connections, and the label scheme
// derived from them.
package cabledb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// Store is the SQLite-backed cable database.
type Store struct {
	db *sql.DB
	mu sync.Mutex // Serialize migrations
}

// Open opens (or creates) the database at path and applies the pragmas
// the pure-Go driver needs set via SQL rather than DSN params. Use
// ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// SQLite performs best with a single write connection; WAL keeps readers unblocked.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Tx executes fn within a transaction, committing on nil and rolling
// back otherwise.
func (s *Store) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}
	return tx.Commit()
}

// migration is one schema step. Steps run in ascending Version order
// and are recorded in _migrations so reopening a database is cheap.
type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "cable specs and connections",
		SQL: `
CREATE TABLE IF NOT EXISTS cable_specs (
	id            TEXT PRIMARY KEY,
	cable_type    TEXT NOT NULL,
	manufacturer  TEXT NOT NULL DEFAULT '',
	model         TEXT NOT NULL DEFAULT '',
	impedance     REAL,
	awg           TEXT,
	shield_type   TEXT,
	jacket_color  TEXT,
	max_length    REAL,
	notes         TEXT
);
CREATE TABLE IF NOT EXISTS connections (
	cable_id         TEXT PRIMARY KEY,
	source_room      TEXT NOT NULL,
	source_rack      TEXT NOT NULL,
	source_device    TEXT NOT NULL,
	source_connector TEXT NOT NULL DEFAULT '',
	dest_room        TEXT NOT NULL,
	dest_rack        TEXT NOT NULL,
	dest_device      TEXT NOT NULL,
	dest_connector   TEXT NOT NULL DEFAULT '',
	cable_type       TEXT NOT NULL,
	spec_id          TEXT REFERENCES cable_specs(id),
	length           REAL NOT NULL DEFAULT 0,
	label_scheme     TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'Active'
);
CREATE INDEX IF NOT EXISTS idx_connections_source_device ON connections(source_device);
CREATE INDEX IF NOT EXISTS idx_connections_dest_device   ON connections(dest_device);
CREATE INDEX IF NOT EXISTS idx_connections_source_rack   ON connections(source_room, source_rack);
CREATE INDEX IF NOT EXISTS idx_connections_dest_rack     ON connections(dest_room, dest_rack);
`,
	},
}

// Migrate applies any pending schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS _migrations (
	version     INTEGER PRIMARY KEY,
	description TEXT NOT NULL,
	applied_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`)
	if err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	for _, m := range migrations {
		var applied int
		err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM _migrations WHERE version = ?", m.Version,
		).Scan(&applied)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if applied > 0 {
			continue
		}
		err = s.Tx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO _migrations (version, description) VALUES (?, ?)",
				m.Version, m.Description)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}
	}
	return nil
}
