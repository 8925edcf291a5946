package goquery

import (
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/eolchecker/eol"
)

// DefaultMenuLabel is the menu item label that leads to vendor EOL pages.
const DefaultMenuLabel = "End of Life"

// Ensure MenuExtractor implements eol.MenuExtractor at compile time.
var _ eol.MenuExtractor = (*MenuExtractor)(nil)

// MenuExtractor discovers vendor pages from a navigation menu.
type MenuExtractor struct {
	label string
}

// MenuOption configures a MenuExtractor.
type MenuOption func(*MenuExtractor)

// WithMenuLabel sets the label the menu item must contain.
// Defaults to DefaultMenuLabel.
func WithMenuLabel(label string) MenuOption {
	return func(e *MenuExtractor) {
		e.label = label
	}
}

// NewMenuExtractor creates a new MenuExtractor.
func NewMenuExtractor(opts ...MenuOption) *MenuExtractor {
	e := &MenuExtractor{label: DefaultMenuLabel}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractVendors finds the first li whose own label contains the menu label
// and yields one vendor per link of its submenu. Hrefs are returned as
// written in the page.
func (e *MenuExtractor) ExtractVendors(content []byte) iter.Seq[eol.Vendor] {
	doc := parse(content)
	if doc == nil {
		return noVendors
	}

	item := doc.Find("li").FilterFunction(func(_ int, li *goquery.Selection) bool {
		if li.ChildrenFiltered("ul").Length() == 0 {
			return false
		}
		label := text(li.ChildrenFiltered("a, span").First())
		return strings.Contains(label, e.label)
	}).First()

	submenu := item.ChildrenFiltered("ul").First()
	if submenu.Length() == 0 {
		return noVendors
	}

	links := submenu.Find("a[href]")
	return func(yield func(eol.Vendor) bool) {
		for _, a := range links.EachIter() {
			href, _ := a.Attr("href")
			href = strings.TrimSpace(href)
			if href == "" {
				continue
			}
			if !yield(eol.Vendor{Slug: VendorSlug(text(a)), URL: href}) {
				return
			}
		}
	}
}

func noVendors(func(eol.Vendor) bool) {}

// VendorSlug turns a menu link label such as "HP End of Life" or
// "End of Life for IBM/Lenovo" into a vendor slug ("hp", "ibm-lenovo").
func VendorSlug(label string) string {
	s := strings.TrimSpace(label)
	s = strings.ReplaceAll(s, " End of Life", "")
	s = strings.ReplaceAll(s, "End of Life for ", "")
	s = strings.ReplaceAll(s, "/", "-")
	return strings.ToLower(strings.TrimSpace(s))
}
