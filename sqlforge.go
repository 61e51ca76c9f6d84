// Package sqlforge is a programmatic SQL statement construction library for
// Go. It builds well-formed, parameterized SELECT, INSERT, UPDATE, and DELETE
// statements through composable expression objects instead of string
// concatenation, and compiles them into an SQL string plus an ordered list of
// bind parameters for hand-off to any database/sql driver.
//
// sqlforge never opens a database connection: its job ends at
// CompiledQuery{SQL, Params}.
//
// Example:
//
//	q, err := sqlforge.Select("name", "age").
//	    From("users").
//	    Where(sqlforge.Eq("age", 30)).
//	    Build(sqlforge.GetDialect("generic"))
//	// q.SQL:    SELECT "name", "age" FROM "users" WHERE "age" = ?
//	// q.Params: [30]
package sqlforge

import (
	"github.com/coregx/sqlforge/internal/core"
	"github.com/coregx/sqlforge/internal/dialects"
)

type (
	// Dialect defines database-specific rendering behaviors: identifier
	// quoting, placeholder style, and upsert syntax.
	Dialect = dialects.Dialect
	// Statement is a fluent builder for one SQL statement, pinned to a kind
	// (SELECT, INSERT, UPDATE, DELETE) by its constructor.
	Statement = core.Statement
	// Kind identifies the statement kind a builder is pinned to.
	Kind = core.Kind
	// CompiledQuery is the compilation output: SQL text plus ordered bind
	// parameters.
	CompiledQuery = core.CompiledQuery
	// Compiler is a configured compile front-end (dialect, logging, tracing,
	// raw-fragment auditing).
	Compiler = core.Compiler
	// Option is a functional option for configuring a Compiler.
	Option = core.Option
	// Identifier is an immutable, validated dotted name.
	Identifier = core.Identifier
	// Literal is a kind-tagged scalar value.
	Literal = core.Literal
	// LiteralKind identifies the scalar category of a bound value.
	LiteralKind = core.LiteralKind
	// Params holds named parameter values for query templates.
	Params = core.Params
	// RawQuery is a named-parameter SQL template.
	RawQuery = core.RawQuery

	// Expression represents a composable SQL predicate or value fragment.
	Expression = core.Expression
	// HashExp represents a hash-based expression using column-value pairs.
	HashExp = core.HashExp
	// LikeExp represents a LIKE expression with automatic escaping.
	LikeExp = core.LikeExp
)

// Statement kinds.
const (
	KindSelect = core.KindSelect
	KindInsert = core.KindInsert
	KindUpdate = core.KindUpdate
	KindDelete = core.KindDelete
)

// Literal kinds.
const (
	KindNull        = core.KindNull
	KindBool        = core.KindBool
	KindInt         = core.KindInt
	KindUint        = core.KindUint
	KindFloat       = core.KindFloat
	KindString      = core.KindString
	KindBytes       = core.KindBytes
	KindTime        = core.KindTime
	KindValuer      = core.KindValuer
	KindUnsupported = core.KindUnsupported
)

// Re-export core functions.
var (
	// Statement constructors
	Select     = core.Select
	InsertInto = core.InsertInto
	Update     = core.Update
	DeleteFrom = core.DeleteFrom

	// Compiler
	NewCompiler         = core.NewCompiler
	WithLogger          = core.WithLogger
	WithTracer          = core.WithTracer
	WithValidator       = core.WithValidator
	WithSensitiveFields = core.WithSensitiveFields

	// Wrappers and templates
	NewIdent   = core.NewIdent
	NewLiteral = core.NewLiteral
	NewQuery   = core.NewQuery

	// Expression builders
	NewExp         = core.NewExp
	Eq             = core.Eq
	NotEq          = core.NotEq
	GreaterThan    = core.GreaterThan
	LessThan       = core.LessThan
	GreaterOrEqual = core.GreaterOrEqual
	LessOrEqual    = core.LessOrEqual
	In             = core.In
	NotIn          = core.NotIn
	Between        = core.Between
	NotBetween     = core.NotBetween
	IsNull         = core.IsNull
	IsNotNull      = core.IsNotNull
	Like           = core.Like
	NotLike        = core.NotLike
	OrLike         = core.OrLike
	OrNotLike      = core.OrNotLike
	And            = core.And
	Or             = core.Or
	Not            = core.Not
	Exists         = core.Exists
	NotExists      = core.NotExists

	// Function expressions
	Case     = core.Case
	CaseWhen = core.CaseWhen
	Coalesce = core.Coalesce
	NullIf   = core.NullIf
	Greatest = core.Greatest
	Least    = core.Least
	Concat   = core.Concat
)

// Errors.
var (
	ErrInvalidIdentifier    = core.ErrInvalidIdentifier
	ErrEmptyInClause        = core.ErrEmptyInClause
	ErrMissingJoinCondition = core.ErrMissingJoinCondition
	ErrInvalidLimit         = core.ErrInvalidLimit
	ErrIllegalClause        = core.ErrIllegalClause
	ErrDuplicateColumn      = core.ErrDuplicateColumn
	ErrEmptyStatement       = core.ErrEmptyStatement
	ErrUnsupportedLiteral   = core.ErrUnsupportedLiteral
	ErrUnsupportedDialect   = core.ErrUnsupportedDialect
	ErrMissingParam         = core.ErrMissingParam
	ErrUnsafeFragment       = core.ErrUnsafeFragment
)

// GetDialect returns a registered dialect by name: generic, postgres, mysql,
// or sqlite (plus the driver aliases postgresql and sqlite3). Panics on
// unknown names; use NewCompiler for an error-returning lookup.
func GetDialect(name string) Dialect {
	return dialects.GetDialect(name)
}

// RegisterDialect registers a custom dialect under the given name, making it
// available to GetDialect and NewCompiler.
func RegisterDialect(name string, d Dialect) {
	dialects.RegisterDialect(name, d)
}
