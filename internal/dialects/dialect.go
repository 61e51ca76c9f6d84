// Package dialects provides database-specific SQL dialect implementations for
// generic ANSI SQL, PostgreSQL, MySQL, and SQLite, handling identifier quoting,
// placeholder styles, and UPSERT conflict clauses.
package dialects

import "strings"

// Dialect defines database-specific rendering behaviors.
type Dialect interface {
	QuoteIdentifier(string) string
	Placeholder(int) string
	UpsertSQL(string, []string, []string) string
}

var dialects = make(map[string]Dialect)

// RegisterDialect registers a database dialect by name.
func RegisterDialect(name string, d Dialect) {
	dialects[name] = d
}

// GetDialect retrieves a registered dialect by name, panics if not found.
func GetDialect(name string) Dialect {
	if d, ok := dialects[name]; ok {
		return d
	}
	panic("unsupported dialect: " + name)
}

// FindDialect retrieves a registered dialect by name.
// Unlike GetDialect it reports absence instead of panicking, for use on
// configuration paths where the name comes from caller input.
func FindDialect(name string) (Dialect, bool) {
	d, ok := dialects[name]
	return d, ok
}

// quoteAll quotes each column with the dialect's quoting and joins them.
func quoteAll(d Dialect, cols []string) string {
	quoted := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = d.QuoteIdentifier(col)
	}
	return strings.Join(quoted, ", ")
}

// onConflictSuffix renders the ON CONFLICT clause shared by the dialects that
// support it. A nil update list means DO NOTHING. excluded names the
// pseudo-row DO UPDATE assignments read from: EXCLUDED for PostgreSQL,
// lowercase excluded for SQLite.
func onConflictSuffix(d Dialect, conflictCols, updateCols []string, excluded string) string {
	if updateCols == nil {
		if len(conflictCols) == 0 {
			return " ON CONFLICT DO NOTHING"
		}
		return " ON CONFLICT (" + quoteAll(d, conflictCols) + ") DO NOTHING"
	}

	assigns := make([]string, len(updateCols))
	for i, col := range updateCols {
		q := d.QuoteIdentifier(col)
		assigns[i] = q + " = " + excluded + "." + q
	}
	return " ON CONFLICT (" + quoteAll(d, conflictCols) + ") DO UPDATE SET " +
		strings.Join(assigns, ", ")
}
