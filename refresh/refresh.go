// Package refresh rebuilds the lifecycle tables from their upstream sources.
// It fetches source documents concurrently, normalizes them into records
// and hands the complete result to an eol.Replacer.
package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/eolchecker/eol"
	"golang.org/x/sync/errgroup"
)

// Default upstream sources.
const (
	DefaultSoftwareURL = "https://endoflife.date/api"
	DefaultHardwareURL = "https://www.hardwarewartung.com/en/"
)

// DefaultConcurrency is the number of sources fetched in parallel.
const DefaultConcurrency = 4

// DefaultExcludeVendors lists vendors whose pages do not hold a usable table.
var DefaultExcludeVendors = []string{"brocade"}

// Refresher orchestrates the refresh of the lifecycle tables.
type Refresher struct {
	Fetcher     eol.Fetcher
	Tables      eol.Replacer
	Metadata    eol.MetadataService
	Extractor   eol.TableExtractor
	Menu        eol.MenuExtractor
	Normalizer  eol.Normalizer
	RateLimiter eol.DomainLimiter

	SoftwareURL    string
	HardwareURL    string
	ExcludeVendors []string
	Concurrency    int
	RetryDelays    []time.Duration

	// Now returns the refresh time. Defaults to time.Now.
	Now func() time.Time
}

// Result holds the outcome of a table refresh.
type Result struct {
	Category eol.Category
	Sources  int
	Failed   int
	Records  int
	// Changed is true when the content differs from the previous refresh.
	Changed bool
}

// ProgressEvent reports progress during a refresh.
type ProgressEvent struct {
	Type      ProgressType
	Category  eol.Category
	Completed int
	Total     int
	URL       string
	Records   int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting refresh progress.
type ProgressFunc func(event ProgressEvent)

// source is one upstream document feeding a table.
type source struct {
	name string
	url  string
}

// sourceResult holds the outcome of loading a single source.
type sourceResult[T any] struct {
	position int
	records  []T
	err      error
}

// fetch retrieves url honoring the rate limit and retry policy.
func (r *Refresher) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if r.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, eol.Errorf(eol.EINVALID, "invalid source URL %q", rawURL)
		}
		if err := r.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, rawURL, r.Fetcher.Fetch, nil, delays)
}

// collect loads every source in a bounded worker pool. Records are returned
// in source order. A failed source is reported and skipped.
func collect[T any](
	ctx context.Context,
	r *Refresher,
	category eol.Category,
	sources []source,
	load func(ctx context.Context, src source) ([]T, error),
	progress ProgressFunc,
) ([]T, int) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan sourceResult[T], len(sources))

	var completed atomic.Int64
	total := len(sources)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Category: category, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, src := range sources {
			g.Go(func() error {
				records, err := load(gctx, src)
				resultCh <- sourceResult[T]{position: i, records: records, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]sourceResult[T], len(sources))
	var failed int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress == nil {
			if result.err != nil {
				failed++
			}
			continue
		}

		event := ProgressEvent{
			Type:      ProgressCompleted,
			Category:  category,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       sources[result.position].url,
			Records:   len(result.records),
		}
		if result.err != nil {
			failed++
			event.Type = ProgressFailed
			event.Error = result.err
		}
		progress(event)
	}

	var records []T
	for _, result := range results {
		if result.err == nil {
			records = append(records, result.records...)
		}
	}
	return records, failed
}

// finish stores the bookkeeping of a committed refresh.
func (r *Refresher) finish(ctx context.Context, result *Result, sum string, progress ProgressFunc) error {
	if r.Metadata != nil {
		prev, err := r.Metadata.Checksum(ctx, result.Category)
		switch {
		case eol.ErrorCode(err) == eol.ENOTFOUND:
			result.Changed = true
		case err != nil:
			return err
		default:
			result.Changed = prev != sum
		}

		if err := r.Metadata.SetChecksum(ctx, result.Category, sum); err != nil {
			return err
		}
		if err := r.Metadata.SetLastRefresh(ctx, result.Category, r.now()); err != nil {
			return err
		}
	} else {
		result.Changed = true
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Category:  result.Category,
			Completed: result.Sources,
			Total:     result.Sources,
			Records:   result.Records,
		})
	}
	return nil
}

func (r *Refresher) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// checksum hashes every field of the records in order.
func checksum[T any](records []T) string {
	h := xxhash.New()
	enc := json.NewEncoder(h)
	for _, rec := range records {
		_ = enc.Encode(rec)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
