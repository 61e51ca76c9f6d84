package core

import (
	"regexp"

	"github.com/coregx/sqlforge/internal/dialects"
)

// Params represents named parameter values for query template binding.
// Named parameters are specified in SQL using {:name} syntax.
//
// Example:
//
//	sqlforge.NewQuery("SELECT * FROM {{users}} WHERE [[id]]={:id}").
//	    Bind(sqlforge.Params{"id": 1}).
//	    Build(dialect)
type Params map[string]interface{}

var (
	// namedPlaceholderRegex matches named parameter placeholders {:name}.
	namedPlaceholderRegex = regexp.MustCompile(`\{:(\w+)\}`)

	// quoteRegex matches table and column quoting syntax.
	// {{table_name}} - quotes table name (double curly braces)
	// [[column_name]] - quotes column name (double square brackets)
	// Pattern matches word characters, hyphens, dots, and spaces to support
	// schema.table format.
	quoteRegex = regexp.MustCompile(`(\{\{[\w\-. ]+\}\}|\[\[[\w\-. ]+\]\])`)
)

// processSQL replaces named parameter placeholders {:name} with
// dialect-specific positional placeholders ($1, $2 for PostgreSQL; ?, ? for
// MySQL/SQLite). It also quotes table names {{table}} and column names
// [[column]] using the dialect-specific quoting.
//
// Returns the rewritten SQL and the parameter names in order of appearance.
// A name appearing multiple times is listed multiple times.
//
// Example:
//
//	sql := "SELECT [[name]] FROM {{users}} WHERE [[id]]={:id}"
//	// PostgreSQL: `SELECT "name" FROM "users" WHERE "id"=$1`, ["id"]
//	// MySQL:      "SELECT `name` FROM `users` WHERE `id`=?", ["id"]
func processSQL(sql string, dialect dialects.Dialect) (string, []string) {
	var paramNames []string
	count := 0

	result := namedPlaceholderRegex.ReplaceAllStringFunc(sql, func(match string) string {
		count++
		// Strip {: and } to get the parameter name
		paramName := match[2 : len(match)-1]
		paramNames = append(paramNames, paramName)
		return dialect.Placeholder(count)
	})

	result = quoteRegex.ReplaceAllStringFunc(result, func(match string) string {
		// Strip {{ }} or [[ ]] to get the identifier
		identifier := match[2 : len(match)-2]
		return quoteIdentifier(dialect, identifier)
	})

	return result, paramNames
}

// bindParams converts named parameters to positional values based on the
// parameter order. Fails with ErrMissingParam when a required name is absent.
func bindParams(params Params, paramNames []string) ([]interface{}, error) {
	values := make([]interface{}, len(paramNames))

	for i, name := range paramNames {
		value, ok := params[name]
		if !ok {
			return nil, WrapError(ErrMissingParam, name)
		}
		values[i] = value
	}

	return values, nil
}

// RawQuery is a named-parameter SQL template: the structured face of the raw
// fragment escape hatch. The SQL text is emitted verbatim apart from {:name}
// placeholder substitution and {{table}} / [[column]] identifier quoting.
type RawQuery struct {
	sql    string
	params Params
}

// NewQuery creates a raw query template from a SQL string.
func NewQuery(sql string) *RawQuery {
	return &RawQuery{sql: sql, params: Params{}}
}

// Bind merges named parameter values into the template.
// Later bindings of the same name overwrite earlier ones.
func (q *RawQuery) Bind(params Params) *RawQuery {
	for name, value := range params {
		q.params[name] = value
	}
	return q
}

// Build renders the template for a dialect, resolving named placeholders to
// positional ones in appearance order.
func (q *RawQuery) Build(dialect dialects.Dialect) (*CompiledQuery, error) {
	sql, paramNames := processSQL(q.sql, dialect)

	values, err := bindParams(q.params, paramNames)
	if err != nil {
		return nil, err
	}

	values, err = checkParams(values)
	if err != nil {
		return nil, err
	}

	return &CompiledQuery{SQL: sql, Params: values}, nil
}
