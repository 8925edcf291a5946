// Package eol provides a local, CLI-based cache of end-of-life dates for
// software products and hardware models. It scrapes vendor HTML tables and
// JSON APIs, normalizes them into uniform records, atomically replaces the
// local tables and answers keyword lookups.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package eol

// Category identifies one logical table of the store.
type Category string

// Category constants.
const (
	CategorySoftware Category = "software"
	CategoryHardware Category = "hardware"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategorySoftware, CategoryHardware}
}
