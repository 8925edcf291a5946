package goquery

import (
	"iter"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/eolchecker/eol"
)

// Ensure TableExtractor implements eol.TableExtractor at compile time.
var _ eol.TableExtractor = (*TableExtractor)(nil)

// TableExtractor turns HTML tables into raw rows.
type TableExtractor struct{}

// NewTableExtractor creates a new TableExtractor.
func NewTableExtractor() *TableExtractor {
	return &TableExtractor{}
}

// Extract walks every tr element in document order.
//
// The header is the th row of the first thead or, without a thead, the
// first row made only of th cells. With a header, each data row is keyed
// by the header labels; rows with a different cell count or without any
// populated cell are skipped. Without a header, rows are returned as
// positional cell sequences.
func (e *TableExtractor) Extract(content []byte) eol.Table {
	doc := parse(content)
	if doc == nil {
		return eol.Table{Shape: eol.Positional{}, Rows: noRows}
	}

	rows := doc.Find("tr")
	columns := header(doc, rows)
	if columns == nil {
		return eol.Table{Shape: eol.Positional{}, Rows: positionalRows(rows)}
	}
	return eol.Table{Shape: eol.WithHeader{Columns: columns}, Rows: headerRows(rows, columns)}
}

func noRows(func(eol.RawRow) bool) {}

// header returns the column labels, or nil when the table has no header.
func header(doc *goquery.Document, rows *goquery.Selection) []string {
	var cells *goquery.Selection
	if thead := doc.Find("thead").First(); thead.Length() > 0 {
		cells = thead.Find("tr").First().ChildrenFiltered("th, td")
	} else {
		rows.EachWithBreak(func(_ int, tr *goquery.Selection) bool {
			if isHeaderRow(tr) {
				cells = tr.ChildrenFiltered("th")
				return false
			}
			return true
		})
	}
	if cells == nil || cells.Length() == 0 {
		return nil
	}

	columns := make([]string, 0, cells.Length())
	cells.Each(func(i int, th *goquery.Selection) {
		label := strings.ToLower(text(th))
		if label == "" {
			label = strconv.Itoa(i)
		}
		columns = append(columns, label)
	})
	return columns
}

// isHeaderRow reports whether every cell of the row is a th.
func isHeaderRow(tr *goquery.Selection) bool {
	cells := tr.ChildrenFiltered("td, th")
	return cells.Length() > 0 && cells.Length() == cells.Filter("th").Length()
}

func headerRows(rows *goquery.Selection, columns []string) iter.Seq[eol.RawRow] {
	return func(yield func(eol.RawRow) bool) {
		for _, tr := range rows.EachIter() {
			if tr.Closest("thead").Length() > 0 || isHeaderRow(tr) {
				continue
			}

			cells := cellTexts(tr)
			if len(cells) != len(columns) || !populated(cells) {
				continue
			}

			if !yield(eol.RawRow{Keys: columns, Cells: cells}) {
				return
			}
		}
	}
}

func positionalRows(rows *goquery.Selection) iter.Seq[eol.RawRow] {
	return func(yield func(eol.RawRow) bool) {
		for _, tr := range rows.EachIter() {
			cells := cellTexts(tr)
			if len(cells) == 0 {
				continue
			}
			if !yield(eol.RawRow{Cells: cells}) {
				return
			}
		}
	}
}

// cellTexts ignores cells of nested tables.
func cellTexts(tr *goquery.Selection) []string {
	cells := tr.ChildrenFiltered("td, th")
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, text(cell))
	})
	return texts
}

func populated(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return true
		}
	}
	return false
}
