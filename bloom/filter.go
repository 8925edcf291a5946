// Package bloom provides URL deduplication using Bloom filters.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers URLs already scheduled for fetching.
// It is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen reports whether the URL was added before and adds it.
// Fragments and trailing slashes are ignored, so "/hp-eol/" and
// "/hp-eol#top" are the same URL.
func (f *Filter) Seen(url string) bool {
	return f.f.TestAndAddString(key(url))
}

func key(url string) string {
	if i := strings.IndexByte(url, '#'); i >= 0 {
		url = url[:i]
	}
	return strings.TrimRight(url, "/")
}
