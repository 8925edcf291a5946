// Package sqlite provides SQLite-based storage implementations for eol services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection, recovers tables left behind by an
// interrupted replace and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	// This also keeps every statement of an in-memory database on the same
	// connection, hence on the same database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait 5 seconds before failing on lock contention with another process.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL lets a search read while a refresh from another process writes.
	// Not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(context.Background()); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// TableExists reports whether a table with the given name exists.
func (db *DB) TableExists(ctx context.Context, name string) (bool, error) {
	return tableExists(ctx, db.db, name)
}

// createSchema creates the metadata table and, for every lifecycle table,
// settles interrupted replaces before making sure the table and its search
// index exist.
func (db *DB) createSchema(ctx context.Context) error {
	if _, err := db.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		return err
	}

	for _, t := range tables {
		if err := db.recover(ctx, t); err != nil {
			return fmt.Errorf("recover %s: %w", t.name, err)
		}
		if err := db.ensure(ctx, t); err != nil {
			return fmt.Errorf("create %s: %w", t.name, err)
		}
	}
	return nil
}

// recover restores a backup whose table is gone and drops a backup whose
// table survived, so that exactly one of them exists afterwards.
func (db *DB) recover(ctx context.Context, t *table) error {
	hasBackup, err := tableExists(ctx, db.db, t.backup)
	if err != nil || !hasBackup {
		return err
	}

	hasTable, err := tableExists(ctx, db.db, t.name)
	if err != nil {
		return err
	}

	if hasTable {
		_, err = db.db.ExecContext(ctx, t.dropBackup)
		return err
	}
	_, err = db.db.ExecContext(ctx, t.restore)
	return err
}

// ensure creates the table and its search index when missing.
func (db *DB) ensure(ctx context.Context, t *table) error {
	hasTable, err := tableExists(ctx, db.db, t.name)
	if err != nil {
		return err
	}
	if !hasTable {
		if _, err := db.db.ExecContext(ctx, t.create); err != nil {
			return err
		}
	}

	hasIndex, err := tableExists(ctx, db.db, t.index)
	if err != nil || hasIndex {
		return err
	}
	if _, err := db.db.ExecContext(ctx, t.createIndex); err != nil {
		return err
	}
	_, err = db.db.ExecContext(ctx, t.rebuildIndex)
	return err
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func tableExists(ctx context.Context, q queryer, name string) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx,
		"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&n)
	return n > 0, err
}
