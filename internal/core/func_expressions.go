// Copyright (c) 2025 COREGX. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package core

import (
	"fmt"
	"strings"

	"github.com/coregx/sqlforge/internal/dialects"
)

// =============================================================================
// CASE Expression
// =============================================================================

// CaseExp represents a SQL CASE expression.
// Supports both simple CASE (with column) and searched CASE (conditions only).
type CaseExp struct {
	column    string       // For simple CASE: CASE column WHEN ...
	whens     []whenClause // WHEN conditions
	elseValue interface{}  // ELSE value (optional)
	alias     string       // AS alias
}

// whenClause represents a single WHEN clause in a CASE expression.
type whenClause struct {
	condition interface{} // For simple CASE: value to match; for searched: condition string
	result    interface{} // THEN result
}

// Case creates a simple CASE expression.
//
// Example:
//
//	sqlforge.Case("status").
//	    When("active", 1).
//	    When("inactive", 0).
//	    Else(-1).
//	    As("status_code")
func Case(column string) *CaseExp {
	return &CaseExp{column: column}
}

// CaseWhen creates a searched CASE expression (without column).
//
// Example:
//
//	sqlforge.CaseWhen().
//	    When("age < 18", "minor").
//	    Else("adult").
//	    As("age_group")
func CaseWhen() *CaseExp {
	return &CaseExp{}
}

// When adds a WHEN clause to the CASE expression.
func (c *CaseExp) When(condition, result interface{}) *CaseExp {
	c.whens = append(c.whens, whenClause{condition: condition, result: result})
	return c
}

// Else sets the ELSE value for the CASE expression.
func (c *CaseExp) Else(value interface{}) *CaseExp {
	c.elseValue = value
	return c
}

// As sets an alias for the CASE expression.
func (c *CaseExp) As(alias string) *CaseExp {
	c.alias = alias
	return c
}

// Build implements the Expression interface.
func (c *CaseExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	if len(c.whens) == 0 {
		return "", nil, nil
	}

	var sql strings.Builder
	args := make([]interface{}, 0, len(c.whens)*2+1)

	if c.column != "" {
		sql.WriteString("CASE ")
		sql.WriteString(quoteIdentifier(dialect, c.column))
	} else {
		sql.WriteString("CASE")
	}

	for _, when := range c.whens {
		sql.WriteString(" WHEN ")

		if c.column != "" {
			// Simple CASE: WHEN value
			sql.WriteString("?")
			args = append(args, when.condition)
		} else {
			// Searched CASE: WHEN condition (raw SQL)
			sql.WriteString(fmt.Sprint(when.condition))
		}

		sql.WriteString(" THEN ?")
		args = append(args, when.result)
	}

	if c.elseValue != nil {
		sql.WriteString(" ELSE ?")
		args = append(args, c.elseValue)
	}

	sql.WriteString(" END")

	if c.alias != "" {
		sql.WriteString(" AS ")
		sql.WriteString(quoteIdentifier(dialect, c.alias))
	}

	return sql.String(), args, nil
}

// buildExprValue builds a single value for use in SQL functions.
// Strings are treated as column names unless quoted; Expressions nest;
// everything else binds as a parameter.
func buildExprValue(val interface{}, dialect dialects.Dialect) (string, []interface{}, error) {
	switch v := val.(type) {
	case string:
		if strings.HasPrefix(v, "'") || strings.HasPrefix(v, "\"") {
			return v, nil, nil
		}
		return quoteIdentifier(dialect, v), nil, nil
	case Expression:
		return v.Build(dialect)
	default:
		return "?", []interface{}{v}, nil
	}
}

// =============================================================================
// COALESCE Expression
// =============================================================================

// CoalesceExp represents a SQL COALESCE expression.
// Returns the first non-NULL value from the list.
type CoalesceExp struct {
	values []interface{}
	alias  string
}

// Coalesce creates a COALESCE expression.
//
// Example:
//
//	sqlforge.Coalesce("nickname", "first_name", "'Anonymous'").As("display_name")
func Coalesce(values ...interface{}) *CoalesceExp {
	return &CoalesceExp{values: values}
}

// As sets an alias for the COALESCE expression.
func (c *CoalesceExp) As(alias string) *CoalesceExp {
	c.alias = alias
	return c
}

// Build implements the Expression interface.
func (c *CoalesceExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	if len(c.values) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(c.values))
	var args []interface{}

	for _, val := range c.values {
		sql, subArgs, err := buildExprValue(val, dialect)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		args = append(args, subArgs...)
	}

	sql := "COALESCE(" + strings.Join(parts, ", ") + ")"

	if c.alias != "" {
		sql += " AS " + quoteIdentifier(dialect, c.alias)
	}

	return sql, args, nil
}

// =============================================================================
// NULLIF Expression
// =============================================================================

// NullIfExp represents a SQL NULLIF expression.
// Returns NULL if the two expressions are equal, otherwise returns the first.
type NullIfExp struct {
	expr1 interface{}
	expr2 interface{}
	alias string
}

// NullIf creates a NULLIF expression.
//
// Example:
//
//	sqlforge.NullIf("email", "''").As("valid_email")
func NullIf(expr1, expr2 interface{}) *NullIfExp {
	return &NullIfExp{expr1: expr1, expr2: expr2}
}

// As sets an alias for the NULLIF expression.
func (n *NullIfExp) As(alias string) *NullIfExp {
	n.alias = alias
	return n
}

// Build implements the Expression interface.
func (n *NullIfExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	var args []interface{}

	sql1, args1, err := buildExprValue(n.expr1, dialect)
	if err != nil {
		return "", nil, err
	}
	args = append(args, args1...)

	sql2, args2, err := buildExprValue(n.expr2, dialect)
	if err != nil {
		return "", nil, err
	}
	args = append(args, args2...)

	sql := "NULLIF(" + sql1 + ", " + sql2 + ")"

	if n.alias != "" {
		sql += " AS " + quoteIdentifier(dialect, n.alias)
	}

	return sql, args, nil
}

// =============================================================================
// GREATEST / LEAST Expressions
// =============================================================================

// GreatestLeastExp represents a SQL GREATEST or LEAST expression.
type GreatestLeastExp struct {
	values  []interface{}
	funcSQL string // "GREATEST" or "LEAST"
	alias   string
}

// Greatest creates a GREATEST expression.
// Returns the largest value from the list.
//
// Note: SQLite has no GREATEST/LEAST; the SQLite dialect renders MAX/MIN.
func Greatest(values ...interface{}) *GreatestLeastExp {
	return &GreatestLeastExp{values: values, funcSQL: "GREATEST"}
}

// Least creates a LEAST expression.
// Returns the smallest value from the list.
func Least(values ...interface{}) *GreatestLeastExp {
	return &GreatestLeastExp{values: values, funcSQL: "LEAST"}
}

// As sets an alias for the expression.
func (g *GreatestLeastExp) As(alias string) *GreatestLeastExp {
	g.alias = alias
	return g
}

// Build implements the Expression interface.
func (g *GreatestLeastExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	if len(g.values) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(g.values))
	args := make([]interface{}, 0, len(g.values))

	for _, val := range g.values {
		sql, subArgs, err := buildExprValue(val, dialect)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		args = append(args, subArgs...)
	}

	var sql string
	switch dialect.(type) {
	case *dialects.SQLiteDialect:
		if g.funcSQL == "GREATEST" {
			sql = "MAX(" + strings.Join(parts, ", ") + ")"
		} else {
			sql = "MIN(" + strings.Join(parts, ", ") + ")"
		}
	default:
		sql = g.funcSQL + "(" + strings.Join(parts, ", ") + ")"
	}

	if g.alias != "" {
		sql += " AS " + quoteIdentifier(dialect, g.alias)
	}

	return sql, args, nil
}

// =============================================================================
// CONCAT Expression
// =============================================================================

// ConcatExp represents a SQL string concatenation.
// Uses database-specific syntax:
//   - PostgreSQL/SQLite/generic: value1 || value2 || value3
//   - MySQL: CONCAT(value1, value2, value3)
type ConcatExp struct {
	values []interface{}
	alias  string
}

// Concat creates a string concatenation expression.
//
// Example:
//
//	sqlforge.Concat("first_name", "' '", "last_name").As("full_name")
func Concat(values ...interface{}) *ConcatExp {
	return &ConcatExp{values: values}
}

// As sets an alias for the CONCAT expression.
func (c *ConcatExp) As(alias string) *ConcatExp {
	c.alias = alias
	return c
}

// Build implements the Expression interface.
func (c *ConcatExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	if len(c.values) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(c.values))
	args := make([]interface{}, 0, len(c.values))

	for _, val := range c.values {
		sql, subArgs, err := buildExprValue(val, dialect)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		args = append(args, subArgs...)
	}

	var sql string
	switch dialect.(type) {
	case *dialects.MySQLDialect:
		sql = "CONCAT(" + strings.Join(parts, ", ") + ")"
	default:
		sql = strings.Join(parts, " || ")
	}

	if c.alias != "" {
		sql += " AS " + quoteIdentifier(dialect, c.alias)
	}

	return sql, args, nil
}
