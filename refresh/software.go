package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/eolchecker/eol"
)

// RefreshSoftware rebuilds the software table from the product index at
// SoftwareURL. Products that cannot be fetched or decoded are reported
// through progress and skipped.
func (r *Refresher) RefreshSoftware(ctx context.Context, progress ProgressFunc) (*Result, error) {
	base := strings.TrimRight(r.SoftwareURL, "/")
	if base == "" {
		base = DefaultSoftwareURL
	}

	body, err := r.fetch(ctx, base+"/all.json")
	if err != nil {
		return nil, fmt.Errorf("software index: %w", err)
	}

	var products []string
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, eol.Errorf(eol.EINVALID, "software index is not a list of product names: %s", err)
	}

	sources := make([]source, 0, len(products))
	for _, product := range products {
		product = strings.TrimSpace(product)
		if product == "" {
			continue
		}
		sources = append(sources, source{
			name: product,
			url:  base + "/" + url.PathEscape(product) + ".json",
		})
	}

	records, failed := collect(ctx, r, eol.CategorySoftware, sources, r.loadProduct, progress)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, eol.Errorf(eol.EINTERNAL, "no software records collected (%d of %d sources failed)", failed, len(sources))
	}

	sum := checksum(records)
	if err := r.Tables.ReplaceSoftware(ctx, records); err != nil {
		return nil, err
	}

	result := &Result{
		Category: eol.CategorySoftware,
		Sources:  len(sources),
		Failed:   failed,
		Records:  len(records),
	}
	if err := r.finish(ctx, result, sum, progress); err != nil {
		return nil, err
	}
	return result, nil
}

// loadProduct fetches the release cycles of one product.
func (r *Refresher) loadProduct(ctx context.Context, src source) ([]*eol.SoftwareLifecycle, error) {
	body, err := r.fetch(ctx, src.url)
	if err != nil {
		return nil, err
	}

	var cycles []map[string]any
	if err := json.Unmarshal(body, &cycles); err != nil {
		return nil, fmt.Errorf("decode %s: %w", src.name, err)
	}

	records := make([]*eol.SoftwareLifecycle, 0, len(cycles))
	for _, cycle := range cycles {
		records = append(records, r.Normalizer.Software(src.name, cycle))
	}
	return records, nil
}
