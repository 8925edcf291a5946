package refresh

import (
	"context"
	"fmt"
	"net/url"

	"github.com/eolchecker/eol"
	"github.com/eolchecker/eol/bloom"
	"github.com/samber/lo"
)

// Vendor deduplication sizing.
const (
	// vendorExpectedURLs is the expected number of vendor pages for Bloom filter sizing.
	vendorExpectedURLs = 1000
	// vendorFalsePositiveRate is the acceptable false positive rate for deduplication.
	vendorFalsePositiveRate = 0.0001
)

// RefreshHardware rebuilds the hardware table from the vendor pages linked
// by the menu at HardwareURL. Vendor pages that cannot be fetched are
// reported through progress and skipped.
func (r *Refresher) RefreshHardware(ctx context.Context, progress ProgressFunc) (*Result, error) {
	index := r.HardwareURL
	if index == "" {
		index = DefaultHardwareURL
	}
	base, err := url.Parse(index)
	if err != nil {
		return nil, eol.Errorf(eol.EINVALID, "invalid hardware URL %q", index)
	}

	body, err := r.fetch(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("hardware index: %w", err)
	}

	sources := r.vendorSources(base, body)
	if len(sources) == 0 {
		return nil, eol.Errorf(eol.ENOTFOUND, "no vendor pages found at %s", index)
	}

	records, failed := collect(ctx, r, eol.CategoryHardware, sources, r.loadVendor, progress)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, eol.Errorf(eol.EINTERNAL, "no hardware records collected (%d of %d sources failed)", failed, len(sources))
	}

	sum := checksum(records)
	if err := r.Tables.ReplaceHardware(ctx, records); err != nil {
		return nil, err
	}

	result := &Result{
		Category: eol.CategoryHardware,
		Sources:  len(sources),
		Failed:   failed,
		Records:  len(records),
	}
	if err := r.finish(ctx, result, sum, progress); err != nil {
		return nil, err
	}
	return result, nil
}

// vendorSources resolves the vendor links of the menu against base and
// drops excluded vendors and repeated pages.
func (r *Refresher) vendorSources(base *url.URL, body []byte) []source {
	seen := bloom.NewFilter(vendorExpectedURLs, vendorFalsePositiveRate)

	var sources []source
	for vendor := range r.Menu.ExtractVendors(body) {
		if lo.Contains(r.ExcludeVendors, vendor.Slug) {
			continue
		}

		ref, err := url.Parse(vendor.URL)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref).String()
		if seen.Seen(resolved) {
			continue
		}

		sources = append(sources, source{name: vendor.Slug, url: resolved})
	}
	return sources
}

// loadVendor extracts the lifecycle rows of one vendor page. A page
// without a table header contributes no records.
func (r *Refresher) loadVendor(ctx context.Context, src source) ([]*eol.HardwareLifecycle, error) {
	body, err := r.fetch(ctx, src.url)
	if err != nil {
		return nil, err
	}

	table := r.Extractor.Extract(body)
	if _, ok := table.Shape.(eol.WithHeader); !ok {
		return nil, nil
	}

	var records []*eol.HardwareLifecycle
	for row := range table.Rows {
		records = append(records, r.Normalizer.Hardware(src.name, row))
	}
	return records, nil
}
