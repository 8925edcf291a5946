package sqlite

import "github.com/eolchecker/eol"

// table describes one lifecycle table. Every statement is a fixed literal:
// no identifier is ever built from caller input.
type table struct {
	name   string
	backup string
	index  string

	create       string
	rename       string
	restore      string
	dropBackup   string
	createIndex  string
	dropIndex    string
	rebuildIndex string
	insert       string
}

var softwareTable = &table{
	name:   "software",
	backup: "software_bak",
	index:  "software_fts",

	create: `
		CREATE TABLE software (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			cycle TEXT,
			release_label TEXT,
			release_date TEXT,
			eol TEXT NOT NULL,
			latest TEXT,
			latest_release_date TEXT,
			lts TEXT,
			support TEXT,
			extended_support TEXT,
			link TEXT
		)`,
	rename:     "ALTER TABLE software RENAME TO software_bak",
	restore:    "ALTER TABLE software_bak RENAME TO software",
	dropBackup: "DROP TABLE software_bak",
	createIndex: `
		CREATE VIRTUAL TABLE software_fts USING fts5(
			name,
			content = 'software',
			content_rowid = 'seq',
			tokenize = 'trigram'
		)`,
	dropIndex:    "DROP TABLE IF EXISTS software_fts",
	rebuildIndex: "INSERT INTO software_fts(software_fts) VALUES ('rebuild')",
	insert: `
		INSERT INTO software (
			id, name, cycle, release_label, release_date, eol, latest,
			latest_release_date, lts, support, extended_support, link
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
}

var hardwareTable = &table{
	name:   "hardware",
	backup: "hardware_bak",
	index:  "hardware_fts",

	create: `
		CREATE TABLE hardware (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			manufacturer TEXT,
			model TEXT,
			eol TEXT NOT NULL
		)`,
	rename:     "ALTER TABLE hardware RENAME TO hardware_bak",
	restore:    "ALTER TABLE hardware_bak RENAME TO hardware",
	dropBackup: "DROP TABLE hardware_bak",
	createIndex: `
		CREATE VIRTUAL TABLE hardware_fts USING fts5(
			manufacturer,
			model,
			content = 'hardware',
			content_rowid = 'seq',
			tokenize = 'trigram'
		)`,
	dropIndex:    "DROP TABLE IF EXISTS hardware_fts",
	rebuildIndex: "INSERT INTO hardware_fts(hardware_fts) VALUES ('rebuild')",
	insert:       "INSERT INTO hardware (id, manufacturer, model, eol) VALUES (?, ?, ?, ?)",
}

// tables is the closed set of lifecycle tables.
var tables = []*table{softwareTable, hardwareTable}

func softwareArgs(id string, s *eol.SoftwareLifecycle) []any {
	return []any{
		id, s.Name, nullable(s.Cycle), nullable(s.ReleaseLabel), nullable(s.ReleaseDate),
		s.EOL, nullable(s.Latest), nullable(s.LatestReleaseDate), nullable(s.LTS),
		nullable(s.Support), nullable(s.ExtendedSupport), nullable(s.Link),
	}
}

func hardwareArgs(id string, h *eol.HardwareLifecycle) []any {
	return []any{id, nullable(h.Manufacturer), nullable(h.Model), h.EOL}
}
