package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/eolchecker/eol"
	"github.com/eolchecker/eol/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataService(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND before the first refresh", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMetadataService(setupTestDB(t))
		ctx := context.Background()

		_, err := svc.LastRefresh(ctx, eol.CategorySoftware)
		assert.Equal(t, eol.ENOTFOUND, eol.ErrorCode(err))

		_, err = svc.Checksum(ctx, eol.CategoryHardware)
		assert.Equal(t, eol.ENOTFOUND, eol.ErrorCode(err))
	})

	t.Run("round-trips refresh times at second precision", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMetadataService(setupTestDB(t))
		ctx := context.Background()
		at := time.Date(2026, 3, 1, 12, 30, 45, 999, time.UTC)

		require.NoError(t, svc.SetLastRefresh(ctx, eol.CategoryHardware, at))

		got, err := svc.LastRefresh(ctx, eol.CategoryHardware)
		require.NoError(t, err)
		assert.Equal(t, at.Truncate(time.Second), got)

		_, err = svc.LastRefresh(ctx, eol.CategorySoftware)
		assert.Equal(t, eol.ENOTFOUND, eol.ErrorCode(err))
	})

	t.Run("overwrites previous values", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMetadataService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.SetChecksum(ctx, eol.CategorySoftware, "aaaa"))
		require.NoError(t, svc.SetChecksum(ctx, eol.CategorySoftware, "bbbb"))

		got, err := svc.Checksum(ctx, eol.CategorySoftware)
		require.NoError(t, err)
		assert.Equal(t, "bbbb", got)
	})

	t.Run("stores refresh times as unix seconds", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewMetadataService(db)
		ctx := context.Background()

		require.NoError(t, svc.SetLastRefresh(ctx, eol.CategorySoftware, time.Unix(1700000000, 0)))

		var value string
		err := db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = 'last_update_software'").Scan(&value)
		require.NoError(t, err)
		assert.Equal(t, "1700000000", value)
	})
}
