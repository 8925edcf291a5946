package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eolchecker/eol"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ eol.Replacer = (*Replacer)(nil)

// Replacer implements eol.Replacer using SQLite.
//
// A replace backs the current table up under its _bak name, creates a fresh
// table, drops the backup, inserts the records and rebuilds the search
// index, all inside one transaction. Any failure rolls the transaction
// back, which leaves the previous table and index exactly as they were.
type Replacer struct {
	db *DB
}

// NewReplacer creates a new Replacer.
func NewReplacer(db *DB) *Replacer {
	return &Replacer{db: db}
}

// ReplaceSoftware replaces the software table with records.
// IDs are assigned to the records once the replace commits.
func (r *Replacer) ReplaceSoftware(ctx context.Context, records []*eol.SoftwareLifecycle) error {
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return err
		}
	}

	ids := newIDs(len(records))
	err := r.replace(ctx, softwareTable, func(stmt *sql.Stmt) error {
		for i, rec := range records {
			if _, err := stmt.ExecContext(ctx, softwareArgs(ids[i], rec)...); err != nil {
				return fmt.Errorf("insert %q: %w", rec.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i, rec := range records {
		rec.ID = ids[i]
	}
	return nil
}

// ReplaceHardware replaces the hardware table with records.
// IDs are assigned to the records once the replace commits.
func (r *Replacer) ReplaceHardware(ctx context.Context, records []*eol.HardwareLifecycle) error {
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return err
		}
	}

	ids := newIDs(len(records))
	err := r.replace(ctx, hardwareTable, func(stmt *sql.Stmt) error {
		for i, rec := range records {
			if _, err := stmt.ExecContext(ctx, hardwareArgs(ids[i], rec)...); err != nil {
				return fmt.Errorf("insert %q: %w", rec.Model, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i, rec := range records {
		rec.ID = ids[i]
	}
	return nil
}

// replaceState tracks how far a replace got, for error reporting.
type replaceState int

const (
	stateOriginal replaceState = iota
	stateBackedUp
	stateRebuilt
	stateCommitted
)

func (s replaceState) String() string {
	switch s {
	case stateOriginal:
		return "original"
	case stateBackedUp:
		return "backed up"
	case stateRebuilt:
		return "rebuilt"
	case stateCommitted:
		return "committed"
	}
	return "unknown"
}

func (r *Replacer) replace(ctx context.Context, t *table, insert func(*sql.Stmt) error) (err error) {
	state := stateOriginal

	tx, err := r.db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace %s: %w", t.name, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			err = fmt.Errorf("replace %s (%s): %w", t.name, state, err)
		}
	}()

	exists, err := tableExists(ctx, tx, t.name)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, t.dropIndex); err != nil {
		return err
	}

	if exists {
		if _, err = tx.ExecContext(ctx, t.rename); err != nil {
			return err
		}
		state = stateBackedUp
	}

	if _, err = tx.ExecContext(ctx, t.create); err != nil {
		return err
	}
	if exists {
		if _, err = tx.ExecContext(ctx, t.dropBackup); err != nil {
			return err
		}
	}
	state = stateRebuilt

	stmt, err := tx.PrepareContext(ctx, t.insert)
	if err != nil {
		return err
	}
	err = insert(stmt)
	if cerr := stmt.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, t.createIndex); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, t.rebuildIndex); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	state = stateCommitted
	return nil
}

func newIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = uuid.New().String()
	}
	return ids
}
