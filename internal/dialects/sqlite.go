package dialects

import "strings"

// SQLiteDialect renders SQLite-flavored SQL.
type SQLiteDialect struct{}

func init() {
	// sqlite3 matches the historical driver name.
	RegisterDialect("sqlite", &SQLiteDialect{})
	RegisterDialect("sqlite3", &SQLiteDialect{})
}

// QuoteIdentifier quotes an identifier with double quotes, doubling any
// embedded quote characters.
func (d *SQLiteDialect) QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Placeholder returns "?"; SQLite takes positional markers as-is.
func (d *SQLiteDialect) Placeholder(_ int) string {
	return "?"
}

// UpsertSQL renders the ON CONFLICT clause. SQLite shares PostgreSQL's
// upsert grammar but spells the pseudo-row keyword lowercase.
func (d *SQLiteDialect) UpsertSQL(_ string, conflictColumns, updateCols []string) string {
	return onConflictSuffix(d, conflictColumns, updateCols, "excluded")
}
