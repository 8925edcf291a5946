package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/eolchecker/eol"
	main "github.com/eolchecker/eol/cmd/eol"
	"github.com/eolchecker/eol/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("refreshes both tables by default", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		calls := &replaceCalls{}
		deps := testDeps(stdout, stderr)
		deps.Metadata = testMetadata(nil)
		deps.Refresher = testRefresher(fakeSources(), calls.mock(), deps.Metadata)

		err := (&main.UpdateCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 1, calls.software)
		assert.Equal(t, 1, calls.hardware)
		assert.Contains(t, stdout.String(), "Refreshing software from 1 sources")
		assert.Contains(t, stdout.String(), "Saved 1 software records")
		assert.Contains(t, stdout.String(), "Saved 1 hardware records")
		assert.Empty(t, stderr.String())
	})

	t.Run("refreshes only the selected table", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		calls := &replaceCalls{}
		deps := testDeps(stdout, stderr)
		deps.Metadata = testMetadata(nil)
		deps.Refresher = testRefresher(fakeSources(), calls.mock(), deps.Metadata)

		err := (&main.UpdateCmd{Hardware: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 0, calls.software)
		assert.Equal(t, 1, calls.hardware)
	})

	t.Run("reports unchanged content", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Metadata = testMetadata(nil)
		deps.Refresher = testRefresher(fakeSources(), (&replaceCalls{}).mock(), deps.Metadata)

		require.NoError(t, (&main.UpdateCmd{Software: true}).Run(deps))
		stdout.Reset()
		require.NoError(t, (&main.UpdateCmd{Software: true}).Run(deps))

		assert.Contains(t, stdout.String(), "unchanged since last refresh")
	})

	t.Run("reports skipped sources", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		inner := fakeSources()
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				if url == "https://endoflife.date/api/all.json" {
					return []byte(`["python", "cobol"]`), nil
				}
				return inner.Fetch(ctx, url)
			},
		}
		deps := testDeps(stdout, stderr)
		deps.Metadata = testMetadata(nil)
		deps.Refresher = testRefresher(fetcher, (&replaceCalls{}).mock(), deps.Metadata)

		err := (&main.UpdateCmd{Software: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "skip https://endoflife.date/api/cobol.json")
		assert.Contains(t, stdout.String(), "(1 of 2 sources failed)")
	})

	t.Run("keeps going and fails when a table cannot be refreshed", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		calls := &replaceCalls{}
		inner := fakeSources()
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				if url == "https://endoflife.date/api/all.json" {
					return nil, errors.New("connection reset")
				}
				return inner.Fetch(ctx, url)
			},
		}
		deps := testDeps(stdout, stderr)
		deps.Metadata = testMetadata(nil)
		deps.Refresher = testRefresher(fetcher, calls.mock(), deps.Metadata)

		err := (&main.UpdateCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "software")
		assert.Contains(t, stderr.String(), "error: software:")
		assert.Equal(t, 0, calls.software)
		assert.Equal(t, 1, calls.hardware)

		_, err = deps.Metadata.LastRefresh(context.Background(), eol.CategorySoftware)
		assert.Equal(t, eol.ENOTFOUND, eol.ErrorCode(err))
	})
}
