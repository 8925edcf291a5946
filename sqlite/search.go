package sqlite

import (
	"context"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"
	"github.com/eolchecker/eol"
)

// Compile-time interface verification.
var _ eol.SearchService = (*SearchService)(nil)

// minMatchLen is the shortest query the trigram index can answer.
// Shorter queries fall back to a LIKE scan.
const minMatchLen = 3

var softwareColumns = []string{
	"software.id", "software.name", "software.cycle", "software.release_label",
	"software.release_date", "software.eol", "software.latest",
	"software.latest_release_date", "software.lts", "software.support",
	"software.extended_support", "software.link",
}

var hardwareColumns = []string{
	"hardware.id", "hardware.manufacturer", "hardware.model", "hardware.eol",
}

// SearchService implements eol.SearchService using SQLite FTS5.
//
// Matches are case-insensitive substring matches ranked by bm25, ties
// broken by insertion order, capped at Limit per category.
type SearchService struct {
	db *DB

	// Limit caps the matches returned per category.
	Limit int
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB) *SearchService {
	return &SearchService{db: db, Limit: eol.DefaultSearchLimit}
}

// Search matches software by name and hardware by manufacturer or model.
func (s *SearchService) Search(ctx context.Context, query string, scope eol.Scope) (*eol.SearchResult, error) {
	if scope == 0 {
		scope = eol.ScopeBoth
	}
	result := &eol.SearchResult{Scope: scope}

	if scope.Has(eol.CategorySoftware) {
		records, err := s.searchSoftware(ctx, query)
		if err != nil {
			return nil, err
		}
		result.Software = records
	}

	if scope.Has(eol.CategoryHardware) {
		records, err := s.searchHardware(ctx, query)
		if err != nil {
			return nil, err
		}
		result.Hardware = records
	}

	return result, nil
}

func (s *SearchService) searchSoftware(ctx context.Context, query string) ([]*eol.SoftwareLifecycle, error) {
	b := sq.Select(softwareColumns...).From("software")
	if utf8.RuneCountInString(query) < minMatchLen {
		b = b.Where(`software.name LIKE ? ESCAPE '\'`, likePattern(query)).
			OrderBy("software.seq")
	} else {
		b = b.Join("software_fts ON software_fts.rowid = software.seq").
			Where("software_fts MATCH ?", matchPhrase(query)).
			OrderBy("bm25(software_fts)", "software.seq")
	}

	q, args, err := b.Limit(uint64(s.Limit)).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*eol.SoftwareLifecycle{}
	for rows.Next() {
		values, dest := nullStrings(len(softwareColumns))
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		records = append(records, &eol.SoftwareLifecycle{
			ID:                values[0].String,
			Name:              values[1].String,
			Cycle:             values[2].String,
			ReleaseLabel:      values[3].String,
			ReleaseDate:       values[4].String,
			EOL:               values[5].String,
			Latest:            values[6].String,
			LatestReleaseDate: values[7].String,
			LTS:               values[8].String,
			Support:           values[9].String,
			ExtendedSupport:   values[10].String,
			Link:              values[11].String,
		})
	}
	return records, rows.Err()
}

func (s *SearchService) searchHardware(ctx context.Context, query string) ([]*eol.HardwareLifecycle, error) {
	b := sq.Select(hardwareColumns...).From("hardware")
	if utf8.RuneCountInString(query) < minMatchLen {
		pattern := likePattern(query)
		b = b.Where(sq.Or{
			sq.Expr(`hardware.manufacturer LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`hardware.model LIKE ? ESCAPE '\'`, pattern),
		}).OrderBy("hardware.seq")
	} else {
		b = b.Join("hardware_fts ON hardware_fts.rowid = hardware.seq").
			Where("hardware_fts MATCH ?", matchPhrase(query)).
			OrderBy("bm25(hardware_fts)", "hardware.seq")
	}

	q, args, err := b.Limit(uint64(s.Limit)).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*eol.HardwareLifecycle{}
	for rows.Next() {
		values, dest := nullStrings(len(hardwareColumns))
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		records = append(records, &eol.HardwareLifecycle{
			ID:           values[0].String,
			Manufacturer: values[1].String,
			Model:        values[2].String,
			EOL:          values[3].String,
		})
	}
	return records, rows.Err()
}
