package dialects

import (
	"fmt"

	"github.com/lib/pq"
)

// PostgresDialect implements PostgreSQL-specific SQL dialect.
type PostgresDialect struct{}

func init() {
	RegisterDialect("postgres", &PostgresDialect{})
	RegisterDialect("postgresql", &PostgresDialect{})
}

// QuoteIdentifier quotes a PostgreSQL identifier using double quotes.
// Delegates to lib/pq so quoting matches what the driver itself considers safe.
func (d *PostgresDialect) QuoteIdentifier(s string) string {
	return pq.QuoteIdentifier(s)
}

// Placeholder returns PostgreSQL placeholder format ($1, $2, etc.).
func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

// UpsertSQL renders PostgreSQL's ON CONFLICT clause; DO UPDATE assignments
// read from the EXCLUDED pseudo-row.
func (d *PostgresDialect) UpsertSQL(_ string, conflictColumns, updateCols []string) string {
	return onConflictSuffix(d, conflictColumns, updateCols, "EXCLUDED")
}
