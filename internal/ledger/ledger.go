// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records every post a migrate run emits, or fails to emit,
// in a local SQLite database and exports that record as YAML or JSON.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/wp-jekyll/pkg/types"
)

const dbFile = "ledger.db"

// Ledger manages the migration ledger database.
type Ledger struct {
	db  *sql.DB
	dir string
}

// Open opens or creates cfg.Dir/ledger.db and ensures the schema exists.
func Open(cfg types.LedgerConfig) (*Ledger, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db, dir: cfg.Dir}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Dir returns the directory holding the ledger database and exports.
func (l *Ledger) Dir() string {
	return l.dir
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			row_num INTEGER NOT NULL,
			filename TEXT,
			slug TEXT,
			title TEXT,
			date TEXT,
			category TEXT,
			status TEXT NOT NULL,
			error TEXT,
			migrated_at TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_migrations_filename ON migrations(filename)`,
		`CREATE INDEX IF NOT EXISTS idx_migrations_status ON migrations(status)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores e. Migrated entries replace any earlier entry for the same
// filename; failed entries are appended.
func (l *Ledger) Record(ctx context.Context, e types.LedgerEntry) error {
	if e.MigratedAt.IsZero() {
		e.MigratedAt = time.Now()
	}
	ts := e.MigratedAt.UTC().Format(time.RFC3339Nano)

	// Failed rows have no filename; SQLite treats NULLs as distinct in a
	// unique index, so they never conflict.
	var filename any
	if e.Filename != "" {
		filename = e.Filename
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO migrations (row_num, filename, slug, title, date, category, status, error, migrated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(filename) DO UPDATE SET
			row_num=excluded.row_num, slug=excluded.slug, title=excluded.title,
			date=excluded.date, category=excluded.category, status=excluded.status,
			error=excluded.error, migrated_at=excluded.migrated_at`,
		e.Row, filename, e.Slug, e.Title, e.Date, e.Category, string(e.Status), e.Error, ts,
	)
	if err != nil {
		return fmt.Errorf("recording row %d: %w", e.Row, err)
	}
	return nil
}

// ListOptions filters List results.
type ListOptions struct {
	// Status keeps only entries with this status when non-empty.
	Status types.MigrationStatus
}

// List returns ledger entries ordered by insertion.
func (l *Ledger) List(ctx context.Context, opts ListOptions) ([]types.LedgerEntry, error) {
	query := `SELECT row_num, COALESCE(filename, ''), COALESCE(slug, ''), COALESCE(title, ''),
		COALESCE(date, ''), COALESCE(category, ''), status, COALESCE(error, ''), migrated_at
		FROM migrations`
	var args []any
	if opts.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(opts.Status))
	}
	query += ` ORDER BY id`

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []types.LedgerEntry
	for rows.Next() {
		var e types.LedgerEntry
		var status, ts string
		if err := rows.Scan(&e.Row, &e.Filename, &e.Slug, &e.Title, &e.Date,
			&e.Category, &status, &e.Error, &ts); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		e.Status = types.MigrationStatus(status)
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.MigratedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Reset removes every entry. A migrate run that clears its output
// directory resets the ledger with it.
func (l *Ledger) Reset(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, `DELETE FROM migrations`); err != nil {
		return fmt.Errorf("resetting ledger: %w", err)
	}
	return nil
}
