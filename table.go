package eol

import "iter"

// TableShape describes how the cells of an extracted table are keyed.
// It is either WithHeader or Positional.
type TableShape interface {
	isTableShape()
}

// WithHeader is the shape of a table whose header row names its columns.
// Columns holds the lower-cased, trimmed labels in header order; blank
// labels are replaced by their positional index.
type WithHeader struct {
	Columns []string
}

// Positional is the shape of a table without a header row.
type Positional struct{}

func (WithHeader) isTableShape() {}
func (Positional) isTableShape() {}

// RawRow is one extracted table row before normalization.
// Keys is nil for positional rows.
type RawRow struct {
	Keys  []string
	Cells []string
}

// Positional reports whether the row has no header keys.
func (r RawRow) Positional() bool {
	return r.Keys == nil
}

// Get returns the cell stored under key. The first matching column wins
// when a header label is repeated.
func (r RawRow) Get(key string) (string, bool) {
	for i, k := range r.Keys {
		if k == key && i < len(r.Cells) {
			return r.Cells[i], true
		}
	}
	return "", false
}

// Map returns the row as a header label to cell text mapping.
// Positional rows return nil.
func (r RawRow) Map() map[string]string {
	if r.Positional() {
		return nil
	}
	m := make(map[string]string, len(r.Keys))
	for i, k := range r.Keys {
		if _, ok := m[k]; ok || i >= len(r.Cells) {
			continue
		}
		m[k] = r.Cells[i]
	}
	return m
}

// Table is the lazily evaluated result of a table extraction.
type Table struct {
	Shape TableShape
	Rows  iter.Seq[RawRow]
}

// TableExtractor turns raw HTML into table rows.
type TableExtractor interface {
	// Extract parses every tr element of the document in order.
	// It never fails: malformed or empty input yields no rows.
	Extract(html []byte) Table
}

// MenuExtractor discovers vendor pages from a site's navigation menu.
type MenuExtractor interface {
	// ExtractVendors yields a Vendor per link of the "End of Life" submenu.
	// A missing menu yields nothing.
	ExtractVendors(html []byte) iter.Seq[Vendor]
}
