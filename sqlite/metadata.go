package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/eolchecker/eol"
)

// Compile-time interface verification.
var _ eol.MetadataService = (*MetadataService)(nil)

// MetadataService implements eol.MetadataService using the metadata
// key/value table.
type MetadataService struct {
	db *DB
}

// NewMetadataService creates a new MetadataService.
func NewMetadataService(db *DB) *MetadataService {
	return &MetadataService{db: db}
}

// LastRefresh returns when the category was last refreshed.
func (s *MetadataService) LastRefresh(ctx context.Context, c eol.Category) (time.Time, error) {
	value, err := s.get(ctx, "last_update_"+string(c))
	if err != nil {
		return time.Time{}, err
	}
	sec, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse last_update_%s: %w", c, err)
	}
	return time.Unix(sec, 0).UTC(), nil
}

// SetLastRefresh records a refresh time for the category.
func (s *MetadataService) SetLastRefresh(ctx context.Context, c eol.Category, t time.Time) error {
	return s.set(ctx, "last_update_"+string(c), strconv.FormatInt(t.Unix(), 10))
}

// Checksum returns the content checksum stored by the last refresh.
func (s *MetadataService) Checksum(ctx context.Context, c eol.Category) (string, error) {
	return s.get(ctx, "checksum_"+string(c))
}

// SetChecksum stores the content checksum of the category.
func (s *MetadataService) SetChecksum(ctx context.Context, c eol.Category, sum string) error {
	return s.set(ctx, "checksum_"+string(c), sum)
}

func (s *MetadataService) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", eol.Errorf(eol.ENOTFOUND, "%s not recorded", key)
	}
	return value, err
}

func (s *MetadataService) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
