package sqlite

import (
	"database/sql"
	"strings"
)

// nullable stores empty optional fields as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// likePattern builds a substring LIKE pattern that matches query literally.
func likePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(query) + "%"
}

// matchPhrase quotes query as a single FTS5 phrase so that operators in it
// are matched as text.
func matchPhrase(query string) string {
	return `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
}

// nullStrings returns scan targets for n nullable text columns.
func nullStrings(n int) ([]sql.NullString, []any) {
	values := make([]sql.NullString, n)
	dest := make([]any, n)
	for i := range values {
		dest[i] = &values[i]
	}
	return values, dest
}
