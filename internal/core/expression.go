// Copyright (c) 2025 COREGX. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/sqlforge/internal/dialects"
)

// Expression represents a SQL predicate or value fragment that can be embedded
// in a statement. Expressions are immutable: combining two expressions with
// And, Or, or Not produces a new node and never mutates the operands, so
// sub-expressions are safe to reuse across statements.
//
// Example:
//
//	sqlforge.Select("id").From("users").
//	    Where(sqlforge.And(
//	        sqlforge.Eq("status", 1),
//	        sqlforge.GreaterThan("age", 18),
//	    ))
type Expression interface {
	// Build converts the expression into a SQL fragment and returns parameter
	// values. The dialect is used for identifier quoting. The SQL uses "?"
	// placeholders; renumbering to dialect-specific markers happens at
	// statement build time. Misuse detected at construction (for example an
	// empty IN list) is reported here.
	Build(dialect dialects.Dialect) (sql string, args []interface{}, err error)
}

// faulty is implemented by expression nodes that can carry a construction
// error. Statement attach methods use it to fail fast at the call site.
type faulty interface {
	fault() error
}

// exprFault returns the first construction error found in an expression tree.
func exprFault(e Expression) error {
	if e == nil {
		return nil
	}
	if f, ok := e.(faulty); ok {
		return f.fault()
	}
	return nil
}

// RawExp represents a raw SQL fragment with optional parameter bindings.
// The fragment is emitted verbatim with zero escaping; the caller assumes
// responsibility for its content. This is an intentional escape hatch and is
// never used internally.
//
// Example:
//
//	sqlforge.NewExp("age > ? AND status = ?", 18, "active")
type RawExp struct {
	SQL  string
	Args []interface{}
}

// NewExp creates a new raw SQL expression with optional parameter bindings.
// The SQL string can contain ? placeholders which will be replaced with
// dialect-specific placeholders at statement build time.
func NewExp(sql string, args ...interface{}) Expression {
	return &RawExp{
		SQL:  sql,
		Args: args,
	}
}

// Build returns the raw fragment as-is with its args passed through unchanged.
func (e *RawExp) Build(_ dialects.Dialect) (string, []interface{}, error) {
	return e.SQL, e.Args, nil
}

// CompareExp represents a binary comparison (=, <>, >, <, >=, <=, LIKE).
type CompareExp struct {
	Col      string
	Operator string
	Value    interface{}
	err      error
}

func compare(col, op string, value interface{}) *CompareExp {
	e := &CompareExp{Col: col, Operator: op, Value: value}
	if _, err := NewIdent(col); err != nil {
		e.err = err
	}
	return e
}

// Eq generates an equality expression (column = value).
// If value is nil, generates "column IS NULL" instead.
func Eq(col string, value interface{}) Expression {
	return compare(col, "=", value)
}

// NotEq generates an inequality expression (column <> value).
// If value is nil, generates "column IS NOT NULL" instead.
func NotEq(col string, value interface{}) Expression {
	return compare(col, "<>", value)
}

// GreaterThan generates a greater-than expression (column > value).
func GreaterThan(col string, value interface{}) Expression {
	return compare(col, ">", value)
}

// LessThan generates a less-than expression (column < value).
func LessThan(col string, value interface{}) Expression {
	return compare(col, "<", value)
}

// GreaterOrEqual generates a greater-than-or-equal expression (column >= value).
func GreaterOrEqual(col string, value interface{}) Expression {
	return compare(col, ">=", value)
}

// LessOrEqual generates a less-than-or-equal expression (column <= value).
func LessOrEqual(col string, value interface{}) Expression {
	return compare(col, "<=", value)
}

func (e *CompareExp) fault() error { return e.err }

// Build converts a comparison expression into a SQL fragment.
func (e *CompareExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	if e.err != nil {
		return "", nil, e.err
	}

	col := quoteIdentifier(dialect, e.Col)

	// NULL comparison
	if e.Value == nil {
		if e.Operator == "=" {
			return col + " IS NULL", nil, nil
		}
		if e.Operator == "<>" {
			return col + " IS NOT NULL", nil, nil
		}
	}

	// Expression values render as a parenthesized sub-fragment
	if expr, ok := e.Value.(Expression); ok {
		sql, args, err := expr.Build(dialect)
		if err != nil {
			return "", nil, err
		}
		return col + " " + e.Operator + " (" + sql + ")", args, nil
	}

	return col + " " + e.Operator + " ?", []interface{}{e.Value}, nil
}

// NullExp represents an IS NULL or IS NOT NULL predicate.
type NullExp struct {
	Col string
	Not bool
	err error
}

// IsNull generates an IS NULL predicate (column IS NULL).
func IsNull(col string) Expression {
	e := &NullExp{Col: col}
	if _, err := NewIdent(col); err != nil {
		e.err = err
	}
	return e
}

// IsNotNull generates an IS NOT NULL predicate (column IS NOT NULL).
func IsNotNull(col string) Expression {
	e := &NullExp{Col: col, Not: true}
	if _, err := NewIdent(col); err != nil {
		e.err = err
	}
	return e
}

func (e *NullExp) fault() error { return e.err }

// Build converts a NULL predicate into a SQL fragment.
func (e *NullExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	if e.err != nil {
		return "", nil, e.err
	}
	col := quoteIdentifier(dialect, e.Col)
	if e.Not {
		return col + " IS NOT NULL", nil, nil
	}
	return col + " IS NULL", nil, nil
}

// InExp represents an IN or NOT IN expression.
type InExp struct {
	Col    string
	Values []interface{}
	Not    bool
	err    error
}

// In generates an IN expression (column IN (?, ?, ...)).
// An empty value set fails with ErrEmptyInClause: an empty IN list is
// semantically always-false and must be flagged explicitly rather than
// silently emitting invalid SQL.
func In(col string, values ...interface{}) Expression {
	return inExp(col, values, false)
}

// NotIn generates a NOT IN expression (column NOT IN (?, ?, ...)).
// An empty value set fails with ErrEmptyInClause, same as In.
func NotIn(col string, values ...interface{}) Expression {
	return inExp(col, values, true)
}

func inExp(col string, values []interface{}, not bool) *InExp {
	e := &InExp{Col: col, Values: values, Not: not}
	if _, err := NewIdent(col); err != nil {
		e.err = err
	} else if len(values) == 0 {
		e.err = WrapError(ErrEmptyInClause, "column "+col)
	}
	return e
}

func (e *InExp) fault() error { return e.err }

// Build converts an IN expression into a SQL fragment.
func (e *InExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	if e.err != nil {
		return "", nil, e.err
	}

	col := quoteIdentifier(dialect, e.Col)

	placeholders := make([]string, len(e.Values))
	args := make([]interface{}, len(e.Values))
	for i, val := range e.Values {
		placeholders[i] = "?"
		args[i] = val
	}

	op := "IN"
	if e.Not {
		op = "NOT IN"
	}

	sql := fmt.Sprintf("%s %s (%s)", col, op, strings.Join(placeholders, ", "))
	return sql, args, nil
}

// BetweenExp represents a BETWEEN or NOT BETWEEN expression.
type BetweenExp struct {
	Col      string
	From, To interface{}
	Not      bool
	err      error
}

// Between generates a BETWEEN expression (column BETWEEN from AND to).
func Between(col string, from, to interface{}) Expression {
	return betweenExp(col, from, to, false)
}

// NotBetween generates a NOT BETWEEN expression (column NOT BETWEEN from AND to).
func NotBetween(col string, from, to interface{}) Expression {
	return betweenExp(col, from, to, true)
}

func betweenExp(col string, from, to interface{}, not bool) *BetweenExp {
	e := &BetweenExp{Col: col, From: from, To: to, Not: not}
	if _, err := NewIdent(col); err != nil {
		e.err = err
	}
	return e
}

func (e *BetweenExp) fault() error { return e.err }

// Build converts a BETWEEN expression into a SQL fragment.
func (e *BetweenExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	if e.err != nil {
		return "", nil, e.err
	}

	col := quoteIdentifier(dialect, e.Col)

	op := "BETWEEN"
	if e.Not {
		op = "NOT BETWEEN"
	}

	sql := fmt.Sprintf("%s %s ? AND ?", col, op)
	return sql, []interface{}{e.From, e.To}, nil
}

// LikeExp represents a LIKE or NOT LIKE expression with automatic escaping.
type LikeExp struct {
	Col         string
	Values      []string
	Like        string   // "LIKE" or "NOT LIKE"
	Or          bool     // true = OR, false = AND
	Left, Right bool     // Wildcard matching on left/right
	Escape      []string // Escape character pairs
	err         error
}

// DefaultLikeEscape specifies the default special character escaping for LIKE
// expressions. The strings at 2i positions are the special characters to be
// escaped while those at 2i+1 positions are the corresponding escaped versions.
var DefaultLikeEscape = []string{"\\", "\\\\", "%", "\\%", "_", "\\_"}

// Like generates a LIKE expression with automatic wildcard and escaping.
// By default, values are wrapped with % on both sides for partial matching.
//
// Example:
//
//	sqlforge.Like("name", "john")           // name LIKE '%john%'
//	sqlforge.Like("name", "key", "word")    // name LIKE '%key%' AND name LIKE '%word%'
func Like(col string, values ...string) *LikeExp {
	e := &LikeExp{
		Col:    col,
		Values: values,
		Like:   "LIKE",
		Left:   true,
		Right:  true,
		Escape: DefaultLikeEscape,
	}
	if _, err := NewIdent(col); err != nil {
		e.err = err
	}
	return e
}

// NotLike generates a NOT LIKE expression.
// For example: NotLike("name", "john") → name NOT LIKE '%john%'
func NotLike(col string, values ...string) *LikeExp {
	exp := Like(col, values...)
	exp.Like = "NOT LIKE"
	return exp
}

// OrLike generates a LIKE expression where the column should match ANY of the
// values (OR logic). For example: OrLike("name", "key", "word") →
// name LIKE '%key%' OR name LIKE '%word%'
func OrLike(col string, values ...string) *LikeExp {
	exp := Like(col, values...)
	exp.Or = true
	return exp
}

// OrNotLike generates a NOT LIKE expression with OR logic.
func OrNotLike(col string, values ...string) *LikeExp {
	exp := NotLike(col, values...)
	exp.Or = true
	return exp
}

// Match sets wildcard matching on the left and/or right of the values.
// By default, both are true (e.g., "%value%").
// Call Match(false, true) to generate "value%" (prefix matching only).
func (e *LikeExp) Match(left, right bool) *LikeExp {
	e.Left, e.Right = left, right
	return e
}

// EscapeChars sets custom escape characters for LIKE expressions.
// Must be an even number of strings: [special1, escaped1, special2, escaped2, ...].
func (e *LikeExp) EscapeChars(chars ...string) *LikeExp {
	if len(chars)%2 != 0 {
		panic("LikeExp.EscapeChars requires even number of strings")
	}
	e.Escape = chars
	return e
}

func (e *LikeExp) fault() error { return e.err }

// Build converts a LIKE expression into a SQL fragment.
func (e *LikeExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	if e.err != nil {
		return "", nil, e.err
	}
	if len(e.Values) == 0 {
		return "", nil, nil
	}

	col := quoteIdentifier(dialect, e.Col)
	parts := make([]string, 0, len(e.Values))
	args := make([]interface{}, 0, len(e.Values))

	for _, val := range e.Values {
		// Escape special characters
		for j := 0; j < len(e.Escape); j += 2 {
			val = strings.ReplaceAll(val, e.Escape[j], e.Escape[j+1])
		}

		// Add wildcards
		if e.Left {
			val = "%" + val
		}
		if e.Right {
			val += "%"
		}

		parts = append(parts, fmt.Sprintf("%s %s ?", col, e.Like))
		args = append(args, val)
	}

	join := " AND "
	if e.Or {
		join = " OR "
	}

	return strings.Join(parts, join), args, nil
}

// AndOrExp represents an AND or OR combination of multiple expressions.
type AndOrExp struct {
	Exps []Expression
	Op   string // "AND" or "OR"
}

// And generates an AND expression which concatenates multiple expressions
// with AND. Nil expressions are filtered out. The operands are not mutated.
//
// Example:
//
//	sqlforge.And(
//	    sqlforge.Eq("status", 1),
//	    sqlforge.GreaterThan("age", 18),
//	)
//
// Generates: (status = ?) AND (age > ?)
func And(exps ...Expression) Expression {
	return &AndOrExp{Exps: exps, Op: "AND"}
}

// Or generates an OR expression which concatenates multiple expressions with OR.
// Nil expressions are filtered out.
func Or(exps ...Expression) Expression {
	return &AndOrExp{Exps: exps, Op: "OR"}
}

func (e *AndOrExp) fault() error {
	for _, exp := range e.Exps {
		if err := exprFault(exp); err != nil {
			return err
		}
	}
	return nil
}

// Build converts an AND/OR expression into a SQL fragment.
// Every operand renders fully parenthesized so no precedence ambiguity can
// arise regardless of nesting.
func (e *AndOrExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	if len(e.Exps) == 0 {
		return "", nil, nil
	}

	var parts []string
	var args []interface{}

	for _, exp := range e.Exps {
		if exp == nil {
			continue
		}

		sql, subArgs, err := exp.Build(dialect)
		if err != nil {
			return "", nil, err
		}
		if sql != "" {
			parts = append(parts, sql)
			args = append(args, subArgs...)
		}
	}

	if len(parts) == 0 {
		return "", nil, nil
	}
	if len(parts) == 1 {
		return parts[0], args, nil
	}

	return "(" + strings.Join(parts, ") "+e.Op+" (") + ")", args, nil
}

// NotExp represents a NOT expression which prefixes NOT to an expression.
type NotExp struct {
	Exp Expression
}

// Not generates a NOT expression which prefixes "NOT" to the specified
// expression. The operand is not mutated.
//
// Example:
//
//	sqlforge.Not(sqlforge.In("status", 1, 2, 3))
//
// Generates: NOT (status IN (?, ?, ?))
func Not(exp Expression) Expression {
	return &NotExp{Exp: exp}
}

func (e *NotExp) fault() error { return exprFault(e.Exp) }

// Build converts a NOT expression into a SQL fragment.
func (e *NotExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	if e.Exp == nil {
		return "", nil, nil
	}

	sql, args, err := e.Exp.Build(dialect)
	if err != nil {
		return "", nil, err
	}
	if sql == "" {
		return "", nil, nil
	}

	return "NOT (" + sql + ")", args, nil
}

// HashExp represents a hash-based expression using a map of column-value pairs.
// It provides convenient syntax for common WHERE conditions with automatic
// handling of special cases.
//
// Special value handling:
//   - nil value → "column IS NULL"
//   - []interface{} → "column IN (...)"
//   - Expression → recursively builds nested expression
//
// Example:
//
//	sqlforge.HashExp{
//	    "status": 1,                           // status = ?
//	    "age": []interface{}{18, 19, 20},      // age IN (?, ?, ?)
//	    "deleted_at": nil,                     // deleted_at IS NULL
//	}
type HashExp map[string]interface{}

// buildHashExpValue processes a single key-value pair from HashExp.
func buildHashExpValue(key string, value interface{}, dialect dialects.Dialect) (string, []interface{}, error) {
	if _, err := NewIdent(key); err != nil {
		return "", nil, err
	}
	col := quoteIdentifier(dialect, key)

	switch v := value.(type) {
	case nil:
		return col + " IS NULL", nil, nil

	case Expression:
		sql, args, err := v.Build(dialect)
		if err != nil {
			return "", nil, err
		}
		if sql != "" {
			return "(" + sql + ")", args, nil
		}
		return "", nil, nil

	case []interface{}:
		return In(key, v...).Build(dialect)

	default:
		return col + " = ?", []interface{}{value}, nil
	}
}

func (e HashExp) fault() error {
	for key, value := range e {
		if _, err := NewIdent(key); err != nil {
			return err
		}
		if vs, ok := value.([]interface{}); ok && len(vs) == 0 {
			return WrapError(ErrEmptyInClause, "column "+key)
		}
		if sub, ok := value.(Expression); ok {
			if err := exprFault(sub); err != nil {
				return err
			}
		}
	}
	return nil
}

// Build converts a HashExp into a SQL fragment.
// Map keys are sorted to ensure deterministic SQL generation.
// Multiple conditions are combined with AND.
func (e HashExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	if len(e) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	var args []interface{}

	for _, key := range keys {
		sql, subArgs, err := buildHashExpValue(key, e[key], dialect)
		if err != nil {
			return "", nil, err
		}
		if sql != "" {
			parts = append(parts, sql)
			args = append(args, subArgs...)
		}
	}

	if len(parts) == 0 {
		return "", nil, nil
	}
	if len(parts) == 1 {
		return parts[0], args, nil
	}

	return "(" + strings.Join(parts, ") AND (") + ")", args, nil
}

// ExistsExp represents an EXISTS or NOT EXISTS predicate over a subselect.
type ExistsExp struct {
	Sub *Statement
	Not bool
}

// Exists generates an EXISTS predicate over a SELECT statement.
//
// Example:
//
//	sqlforge.Exists(sqlforge.Select("id").From("orders").
//	    Where(sqlforge.NewExp("orders.user_id = users.id")))
func Exists(sub *Statement) Expression {
	return &ExistsExp{Sub: sub}
}

// NotExists generates a NOT EXISTS predicate over a SELECT statement.
func NotExists(sub *Statement) Expression {
	return &ExistsExp{Sub: sub, Not: true}
}

func (e *ExistsExp) fault() error {
	if e.Sub == nil {
		return WrapError(ErrEmptyStatement, "EXISTS requires a subselect")
	}
	return e.Sub.Err()
}

// Build converts an EXISTS expression into a SQL fragment.
// The subselect renders with "?" placeholders; renumbering happens once for
// the whole statement at build time.
func (e *ExistsExp) Build(dialect dialects.Dialect) (string, []interface{}, error) {
	if err := e.fault(); err != nil {
		return "", nil, err
	}

	sql, args, err := e.Sub.render(dialect)
	if err != nil {
		return "", nil, err
	}

	op := "EXISTS"
	if e.Not {
		op = "NOT EXISTS"
	}

	return op + " (" + sql + ")", args, nil
}
