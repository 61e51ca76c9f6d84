// Package core provides the statement construction engine for SQLForge:
// identifiers, literals, expression trees, clause builders, and the compiler
// that renders them into parameterized SQL.
package core

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/coregx/sqlforge/internal/dialects"
)

// identPattern matches a bare or dotted identifier (column, table.column,
// schema.table). Each dot-separated part must be non-empty.
var identPattern = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)*$`)

// Identifier is an immutable wrapper around a validated dotted name.
// Two identifiers are equal when their wrapped strings are equal.
type Identifier struct {
	name string
}

// NewIdent validates and wraps an identifier string.
// Empty strings and strings containing characters outside [A-Za-z0-9_.]
// fail with ErrInvalidIdentifier.
func NewIdent(name string) (Identifier, error) {
	if !identPattern.MatchString(name) {
		return Identifier{}, WrapError(ErrInvalidIdentifier, "identifier "+strconv.Quote(name))
	}
	return Identifier{name: name}, nil
}

// String returns the unquoted identifier text.
func (id Identifier) String() string {
	return id.name
}

// Quote renders the identifier with dialect-specific quoting.
// Dotted identifiers like "schema.table" have each part quoted separately.
func (id Identifier) Quote(d dialects.Dialect) string {
	return quoteIdentifier(d, id.name)
}

// quoteIdentifier quotes an identifier using dialect-specific quoting,
// handling schema-prefixed names and the trailing ".*" projection form.
//
// Example:
//
//	PostgreSQL: users → "users", public.users → "public"."users", u.* → "u".*
//	MySQL:      users → `users`, mydb.users → `mydb`.`users`
func quoteIdentifier(d dialects.Dialect, identifier string) string {
	if !strings.Contains(identifier, ".") {
		return d.QuoteIdentifier(strings.TrimSpace(identifier))
	}

	parts := strings.Split(identifier, ".")
	quoted := make([]string, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "*" {
			quoted[i] = "*"
			continue
		}
		quoted[i] = d.QuoteIdentifier(part)
	}
	return strings.Join(quoted, ".")
}

// validIdent reports whether name would pass NewIdent, allowing the
// projection wildcard forms "*" and "table.*".
func validIdent(name string) bool {
	if name == "*" {
		return true
	}
	if base, ok := strings.CutSuffix(name, ".*"); ok {
		return identPattern.MatchString(base)
	}
	return identPattern.MatchString(name)
}
