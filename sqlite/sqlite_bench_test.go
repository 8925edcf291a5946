package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/eolchecker/eol"
	"github.com/eolchecker/eol/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkReplaceHardware replaces a table sized like a full vendor scrape.
func BenchmarkReplaceHardware(b *testing.B) {
	for _, n := range []int{100, 5000} {
		b.Run(fmt.Sprintf("records_%d", n), func(b *testing.B) {
			benchmarkReplaceHardware(b, n)
		})
	}
}

func benchmarkReplaceHardware(b *testing.B, n int) {
	b.Helper()

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	records := make([]*eol.HardwareLifecycle, n)
	for i := range records {
		records[i] = &eol.HardwareLifecycle{
			Manufacturer: "hp",
			Model:        fmt.Sprintf("ProLiant DL%d Gen%d", i, i%11),
			EOL:          "2025-06-30",
		}
	}

	replacer := sqlite.NewReplacer(db)
	ctx := context.Background()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := replacer.ReplaceHardware(ctx, records); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSearch compares indexed and fallback lookups.
func BenchmarkSearch(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	records := make([]*eol.SoftwareLifecycle, 5000)
	for i := range records {
		records[i] = &eol.SoftwareLifecycle{
			Name:  fmt.Sprintf("product-%d", i),
			Cycle: fmt.Sprint(i % 20),
			EOL:   "false",
		}
	}
	ctx := context.Background()
	require.NoError(b, sqlite.NewReplacer(db).ReplaceSoftware(ctx, records))

	svc := sqlite.NewSearchService(db)

	for _, query := range []string{"product-42", "42"} {
		b.Run(query, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := svc.Search(ctx, query, eol.ScopeSoftware); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
