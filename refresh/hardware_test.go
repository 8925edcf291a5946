package refresh_test

import (
	"context"
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/eolchecker/eol"
	"github.com/eolchecker/eol/mock"
	"github.com/eolchecker/eol/refresh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresher_loadVendor(t *testing.T) {
	t.Parallel()

	header := []string{"model", "end-of-service-life"}
	pages := map[string]eol.Table{
		"https://example.com/en/ibm/": {
			Shape: eol.WithHeader{Columns: header},
			Rows: slices.Values([]eol.RawRow{
				{Keys: header, Cells: []string{"x3650 M4", "2022-12-31"}},
				{Keys: header, Cells: []string{"x3550 M5", "unbekannt"}},
			}),
		},
		"https://example.com/en/sun/": {
			Shape: eol.Positional{},
			Rows: slices.Values([]eol.RawRow{
				{Cells: []string{"Fire V240", "2012-01-01"}},
			}),
		},
	}

	r := &refresh.Refresher{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) ([]byte, error) {
				return []byte(url), nil
			},
		},
		Menu: &mock.MenuExtractor{
			ExtractVendorsFn: func([]byte) iter.Seq[eol.Vendor] {
				return slices.Values([]eol.Vendor{
					{Slug: "ibm-lenovo", URL: "ibm/"},
					{Slug: "sun-oracle", URL: "/en/sun/"},
				})
			},
		},
		Extractor: &mock.TableExtractor{
			ExtractFn: func(html []byte) eol.Table {
				return pages[string(html)]
			},
		},
		Normalizer:  eol.DefaultNormalizer,
		HardwareURL: "https://example.com/en/",
		RetryDelays: []time.Duration{0},
		Now:         time.Now,
	}

	var records []*eol.HardwareLifecycle
	r.Tables = &mock.Replacer{
		ReplaceHardwareFn: func(_ context.Context, got []*eol.HardwareLifecycle) error {
			records = got
			return nil
		},
	}

	result, err := r.RefreshHardware(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Sources)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, records, 2)
	assert.Equal(t, "ibm-lenovo", records[0].Manufacturer)
	assert.Equal(t, "x3650 M4", records[0].Model)
	assert.Equal(t, "2022-12-31", records[0].EOL)
	assert.Equal(t, eol.Unknown, records[1].EOL)
}
