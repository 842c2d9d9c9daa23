package dbconnect

import "regexp"

// Dialect selects the SQL flavour the repositories speak. Queries are written
// with postgres "$N" placeholders and rebound for other drivers.
type Dialect string

const (
	Postgres Dialect = "postgres"
	Sqlite   Dialect = "sqlite"
)

var rePlaceholder = regexp.MustCompile(`\$(\d+)`)

// Rebind converts "$N" placeholders into the form the dialect's driver expects.
func (d Dialect) Rebind(query string) string {
	if d == Sqlite {
		return rePlaceholder.ReplaceAllString(query, "?$1")
	}
	return query
}
