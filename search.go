package eol

import "context"

// DefaultSearchLimit caps the number of results per category.
const DefaultSearchLimit = 20

// Scope selects the categories a search covers. The zero value searches both.
type Scope uint8

// Scope flags.
const (
	ScopeSoftware Scope = 1 << iota
	ScopeHardware

	ScopeBoth = ScopeSoftware | ScopeHardware
)

// Has reports whether the scope includes the category.
// The zero scope includes every category.
func (s Scope) Has(c Category) bool {
	if s == 0 {
		s = ScopeBoth
	}
	switch c {
	case CategorySoftware:
		return s&ScopeSoftware != 0
	case CategoryHardware:
		return s&ScopeHardware != 0
	}
	return false
}

// ScopeOf builds a scope from category selector flags.
// No selector means both categories.
func ScopeOf(software, hardware bool) Scope {
	var s Scope
	if software {
		s |= ScopeSoftware
	}
	if hardware {
		s |= ScopeHardware
	}
	if s == 0 {
		return ScopeBoth
	}
	return s
}

// SearchResult holds ranked matches per category.
// Categories outside Scope are nil; searched categories without a match
// hold an empty slice.
type SearchResult struct {
	Scope    Scope
	Software []*SoftwareLifecycle
	Hardware []*HardwareLifecycle
}

// Searched reports whether the category was part of the search.
func (r *SearchResult) Searched(c Category) bool {
	return r.Scope.Has(c)
}

// Len returns the number of matches in the category.
func (r *SearchResult) Len(c Category) int {
	switch c {
	case CategorySoftware:
		return len(r.Software)
	case CategoryHardware:
		return len(r.Hardware)
	}
	return 0
}

// SearchService answers keyword lookups over the persisted tables.
type SearchService interface {
	// Search matches software by name and hardware by manufacturer or model.
	// No match is not an error.
	Search(ctx context.Context, query string, scope Scope) (*SearchResult, error)
}
