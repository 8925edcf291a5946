package eol

import (
	"context"
	"time"
)

// Replacer atomically swaps the content of a whole table.
// On failure the previous content is kept unchanged.
type Replacer interface {
	// ReplaceSoftware replaces the software table with records.
	ReplaceSoftware(ctx context.Context, records []*SoftwareLifecycle) error

	// ReplaceHardware replaces the hardware table with records.
	ReplaceHardware(ctx context.Context, records []*HardwareLifecycle) error
}

// MetadataService records refresh bookkeeping per category.
type MetadataService interface {
	// LastRefresh returns when the category was last refreshed.
	// Returns ENOTFOUND if it never was.
	LastRefresh(ctx context.Context, c Category) (time.Time, error)

	// SetLastRefresh records a refresh time for the category.
	SetLastRefresh(ctx context.Context, c Category, t time.Time) error

	// Checksum returns the content checksum stored by the last refresh.
	// Returns ENOTFOUND if none is stored.
	Checksum(ctx context.Context, c Category) (string, error)

	// SetChecksum stores the content checksum of the category.
	SetChecksum(ctx context.Context, c Category, sum string) error
}

// Fetcher retrieves raw documents from upstream sources.
type Fetcher interface {
	// Fetch returns the UTF-8 body of url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
