package dialects

import "strings"

// GenericDialect implements a portable ANSI SQL dialect.
// It is the default when no database-specific dialect is selected.
type GenericDialect struct{}

func init() {
	RegisterDialect("generic", &GenericDialect{})
}

// QuoteIdentifier quotes an identifier using ANSI double quotes.
func (d *GenericDialect) QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Placeholder returns the ANSI placeholder format (always "?").
func (d *GenericDialect) Placeholder(_ int) string {
	return "?"
}

// UpsertSQL renders standard ON CONFLICT syntax.
// Databases without ON CONFLICT support need a specific dialect instead.
func (d *GenericDialect) UpsertSQL(_ string, conflictColumns, updateCols []string) string {
	return onConflictSuffix(d, conflictColumns, updateCols, "EXCLUDED")
}
