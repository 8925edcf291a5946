package main_test

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/eolchecker/eol"
	main "github.com/eolchecker/eol/cmd/eol"
	"github.com/eolchecker/eol/goquery"
	"github.com/eolchecker/eol/mock"
	"github.com/eolchecker/eol/refresh"
)

var testNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

// testMetadata is an in-memory eol.MetadataService.
func testMetadata(refreshed map[eol.Category]time.Time) *mock.MetadataService {
	var mu sync.Mutex
	if refreshed == nil {
		refreshed = map[eol.Category]time.Time{}
	}
	sums := map[eol.Category]string{}
	return &mock.MetadataService{
		LastRefreshFn: func(_ context.Context, c eol.Category) (time.Time, error) {
			mu.Lock()
			defer mu.Unlock()
			at, ok := refreshed[c]
			if !ok {
				return time.Time{}, eol.Errorf(eol.ENOTFOUND, "not refreshed")
			}
			return at, nil
		},
		SetLastRefreshFn: func(_ context.Context, c eol.Category, at time.Time) error {
			mu.Lock()
			defer mu.Unlock()
			refreshed[c] = at
			return nil
		},
		ChecksumFn: func(_ context.Context, c eol.Category) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			sum, ok := sums[c]
			if !ok {
				return "", eol.Errorf(eol.ENOTFOUND, "no checksum")
			}
			return sum, nil
		},
		SetChecksumFn: func(_ context.Context, c eol.Category, sum string) error {
			mu.Lock()
			defer mu.Unlock()
			sums[c] = sum
			return nil
		},
	}
}

// fakeSources serves a tiny software index and hardware site from memory.
func fakeSources() *mock.Fetcher {
	pages := map[string]string{
		"https://endoflife.date/api/all.json":    `["python"]`,
		"https://endoflife.date/api/python.json": `[{"cycle": "3.12", "eol": "2028-10-31", "latest": "3.12.7"}]`,
		"https://www.hardwarewartung.com/en/":    `<ul><li><span>End of Life</span><ul><li><a href="/en/hp-eol/">HP End of Life</a></li></ul></li></ul>`,
		"https://www.hardwarewartung.com/en/hp-eol/": `<table><thead><tr><th>Model</th><th>End of manufacturer support (some dates may be estimated)</th></tr></thead>` +
			`<tbody><tr><td>ProLiant DL380 G7</td><td>2020-06-30</td></tr></tbody></table>`,
	}
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) ([]byte, error) {
			body, ok := pages[url]
			if !ok {
				return nil, eol.Errorf(eol.ENOTFOUND, "no page at %s", url)
			}
			return []byte(body), nil
		},
	}
}

// replaceCalls counts table replaces per category.
type replaceCalls struct {
	mu       sync.Mutex
	software int
	hardware int
}

func (c *replaceCalls) mock() *mock.Replacer {
	return &mock.Replacer{
		ReplaceSoftwareFn: func(_ context.Context, _ []*eol.SoftwareLifecycle) error {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.software++
			return nil
		},
		ReplaceHardwareFn: func(_ context.Context, _ []*eol.HardwareLifecycle) error {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.hardware++
			return nil
		},
	}
}

func testRefresher(fetcher eol.Fetcher, tables eol.Replacer, metadata eol.MetadataService) *refresh.Refresher {
	return &refresh.Refresher{
		Fetcher:     fetcher,
		Tables:      tables,
		Metadata:    metadata,
		Extractor:   goquery.NewTableExtractor(),
		Menu:        goquery.NewMenuExtractor(),
		Normalizer:  eol.DefaultNormalizer,
		SoftwareURL: refresh.DefaultSoftwareURL,
		HardwareURL: refresh.DefaultHardwareURL,
		RetryDelays: []time.Duration{0},
		Now:         func() time.Time { return testNow },
	}
}

func testDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		MaxAge: 7 * 24 * time.Hour,
		Now:    func() time.Time { return testNow },
	}
}
