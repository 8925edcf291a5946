package mock

import (
	"iter"

	"github.com/eolchecker/eol"
)

var _ eol.TableExtractor = (*TableExtractor)(nil)

// TableExtractor is a mock implementation of eol.TableExtractor.
type TableExtractor struct {
	ExtractFn func(html []byte) eol.Table
}

func (e *TableExtractor) Extract(html []byte) eol.Table {
	return e.ExtractFn(html)
}

var _ eol.MenuExtractor = (*MenuExtractor)(nil)

// MenuExtractor is a mock implementation of eol.MenuExtractor.
type MenuExtractor struct {
	ExtractVendorsFn func(html []byte) iter.Seq[eol.Vendor]
}

func (e *MenuExtractor) ExtractVendors(html []byte) iter.Seq[eol.Vendor] {
	return e.ExtractVendorsFn(html)
}
