package core

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the statement kind a builder is pinned to.
type Kind uint8

// Statement kinds.
const (
	KindSelect Kind = iota + 1
	KindInsert
	KindUpdate
	KindDelete
)

// String returns the SQL verb for the kind.
func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "SELECT"
	case KindInsert:
		return "INSERT"
	case KindUpdate:
		return "UPDATE"
	case KindDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// selectItem is one projection entry: a column name (possibly the "*"
// wildcard sentinel) or an arbitrary expression.
type selectItem struct {
	col  string
	expr Expression
}

// joinClause holds one JOIN entry.
type joinClause struct {
	kind  string // "INNER JOIN", "LEFT JOIN", "RIGHT JOIN", "FULL OUTER JOIN"
	table string
	on    Expression
}

// orderEntry holds one ORDER BY entry with its direction.
type orderEntry struct {
	col  string
	desc bool
}

// assignment is one column-value pair for INSERT/UPDATE, insertion-ordered.
type assignment struct {
	col   string
	value interface{}
}

// Statement is a mutable fluent builder for one SQL statement, pinned to a
// kind by its constructor. Every clause method returns the same builder, not
// a copy, so assembly is single-owner and sequential; builders are not
// internally synchronized. Attaching a clause that is illegal for the pinned
// kind records the misuse immediately (visible via Err) and poisons the build.
type Statement struct {
	kind     Kind
	distinct bool
	selects  []selectItem
	table    string
	joins    []joinClause
	where    []Expression
	groupBy  []string
	having   []Expression
	orderBy  []orderEntry
	limit    *int
	offset   *int
	assigns  []assignment

	// upsert clause (INSERT only)
	upsert       bool
	conflictCols []string
	updateCols   []string
	doNothing    bool

	err error // first misuse, sticky
}

// Select starts a SELECT statement with the given projection columns.
// The "*" wildcard (and "table.*") is accepted as a distinguished sentinel.
// Duplicate projections are preserved in order.
func Select(cols ...string) *Statement {
	s := &Statement{kind: KindSelect}
	return s.AddSelect(cols...)
}

// InsertInto starts an INSERT statement targeting the given table.
func InsertInto(table string) *Statement {
	s := &Statement{kind: KindInsert}
	s.setTable(table)
	return s
}

// Update starts an UPDATE statement targeting the given table.
func Update(table string) *Statement {
	s := &Statement{kind: KindUpdate}
	s.setTable(table)
	return s
}

// DeleteFrom starts a DELETE statement targeting the given table.
func DeleteFrom(table string) *Statement {
	s := &Statement{kind: KindDelete}
	s.setTable(table)
	return s
}

// Kind returns the statement kind the builder is pinned to.
func (s *Statement) Kind() Kind {
	return s.kind
}

// Err returns the first misuse recorded on the builder, if any.
// Once set, Build returns the same error.
func (s *Statement) Err() error {
	return s.err
}

// fail records the first misuse; later errors are dropped so the error seen
// by the caller points at the call that caused it.
func (s *Statement) fail(err error) *Statement {
	if s.err == nil {
		s.err = err
	}
	return s
}

// requireKind records ErrIllegalClause when the builder kind is not one of
// the allowed kinds for the clause being attached.
func (s *Statement) requireKind(clause string, allowed ...Kind) bool {
	for _, k := range allowed {
		if s.kind == k {
			return true
		}
	}
	s.fail(WrapError(ErrIllegalClause, fmt.Sprintf("%s on %s statement", clause, s.kind)))
	return false
}

func (s *Statement) setTable(table string) {
	if _, err := NewIdent(table); err != nil {
		s.fail(err)
		return
	}
	s.table = table
}

// From specifies the table to select from.
func (s *Statement) From(table string) *Statement {
	if !s.requireKind("FROM", KindSelect) {
		return s
	}
	s.setTable(table)
	return s
}

// AddSelect appends projection columns.
// Column names are validated; "*" and "table.*" pass as wildcard sentinels.
func (s *Statement) AddSelect(cols ...string) *Statement {
	if !s.requireKind("projection", KindSelect) {
		return s
	}
	for _, col := range cols {
		if !validIdent(col) {
			return s.fail(WrapError(ErrInvalidIdentifier, "projection "+col))
		}
		s.selects = append(s.selects, selectItem{col: col})
	}
	return s
}

// SelectExpr appends expression projections (functions, CASE, raw fragments).
func (s *Statement) SelectExpr(exprs ...Expression) *Statement {
	if !s.requireKind("projection", KindSelect) {
		return s
	}
	for _, expr := range exprs {
		if err := exprFault(expr); err != nil {
			return s.fail(err)
		}
		s.selects = append(s.selects, selectItem{expr: expr})
	}
	return s
}

// Distinct adds the DISTINCT modifier to a SELECT statement.
func (s *Statement) Distinct() *Statement {
	if !s.requireKind("DISTINCT", KindSelect) {
		return s
	}
	s.distinct = true
	return s
}

// Where adds a predicate to the WHERE clause.
// Multiple Where calls combine with AND, rendering exactly as a single
// And(...) of the same predicates. An empty WHERE list emits no WHERE clause.
func (s *Statement) Where(cond Expression) *Statement {
	if !s.requireKind("WHERE", KindSelect, KindUpdate, KindDelete) {
		return s
	}
	if cond == nil {
		return s
	}
	if err := exprFault(cond); err != nil {
		return s.fail(err)
	}
	s.where = append(s.where, cond)
	return s
}

// AndWhere adds a predicate combined with AND. It is an alias of Where, kept
// for symmetry with OrWhere.
func (s *Statement) AndWhere(cond Expression) *Statement {
	return s.Where(cond)
}

// OrWhere combines the accumulated WHERE predicates with the given one using
// OR: (existing AND ...) OR cond.
func (s *Statement) OrWhere(cond Expression) *Statement {
	if !s.requireKind("WHERE", KindSelect, KindUpdate, KindDelete) {
		return s
	}
	if cond == nil {
		return s
	}
	if err := exprFault(cond); err != nil {
		return s.fail(err)
	}
	if len(s.where) == 0 {
		s.where = append(s.where, cond)
		return s
	}
	combined := Or(And(s.where...), cond)
	s.where = []Expression{combined}
	return s
}

// join appends a JOIN entry after validating the target and the ON predicate.
func (s *Statement) join(kind, table string, on Expression) *Statement {
	if !s.requireKind(kind, KindSelect) {
		return s
	}
	if _, err := NewIdent(table); err != nil {
		return s.fail(err)
	}
	if on == nil {
		return s.fail(WrapError(ErrMissingJoinCondition, kind+" "+table))
	}
	if err := exprFault(on); err != nil {
		return s.fail(err)
	}
	s.joins = append(s.joins, joinClause{kind: kind, table: table, on: on})
	return s
}

// InnerJoin adds an INNER JOIN with the given ON predicate.
//
// Example:
//
//	Select("m.id", "u.name").From("messages").
//	    InnerJoin("users", NewExp("messages.user_id = users.id"))
func (s *Statement) InnerJoin(table string, on Expression) *Statement {
	return s.join("INNER JOIN", table, on)
}

// LeftJoin adds a LEFT JOIN with the given ON predicate.
func (s *Statement) LeftJoin(table string, on Expression) *Statement {
	return s.join("LEFT JOIN", table, on)
}

// RightJoin adds a RIGHT JOIN with the given ON predicate.
func (s *Statement) RightJoin(table string, on Expression) *Statement {
	return s.join("RIGHT JOIN", table, on)
}

// FullJoin adds a FULL OUTER JOIN with the given ON predicate.
func (s *Statement) FullJoin(table string, on Expression) *Statement {
	return s.join("FULL OUTER JOIN", table, on)
}

// GroupBy appends GROUP BY columns.
// Grouping is never inferred from the projection; callers specify it explicitly.
func (s *Statement) GroupBy(cols ...string) *Statement {
	if !s.requireKind("GROUP BY", KindSelect) {
		return s
	}
	for _, col := range cols {
		if _, err := NewIdent(col); err != nil {
			return s.fail(err)
		}
		s.groupBy = append(s.groupBy, col)
	}
	return s
}

// Having adds a predicate to the HAVING clause.
// Multiple Having calls combine with AND, same as Where.
func (s *Statement) Having(cond Expression) *Statement {
	if !s.requireKind("HAVING", KindSelect) {
		return s
	}
	if cond == nil {
		return s
	}
	if err := exprFault(cond); err != nil {
		return s.fail(err)
	}
	s.having = append(s.having, cond)
	return s
}

// OrderBy appends ORDER BY entries. Each entry is a column name optionally
// followed by ASC or DESC; the default direction is ascending.
//
// Example:
//
//	OrderBy("status ASC", "created_at DESC", "id")
func (s *Statement) OrderBy(specs ...string) *Statement {
	if !s.requireKind("ORDER BY", KindSelect) {
		return s
	}
	for _, spec := range specs {
		col := strings.TrimSpace(spec)
		desc := false
		if c, ok := strings.CutSuffix(col, " DESC"); ok {
			col, desc = strings.TrimSpace(c), true
		} else if c, ok := strings.CutSuffix(col, " ASC"); ok {
			col = strings.TrimSpace(c)
		}
		if _, err := NewIdent(col); err != nil {
			return s.fail(err)
		}
		s.orderBy = append(s.orderBy, orderEntry{col: col, desc: desc})
	}
	return s
}

// Limit sets the LIMIT row count. Negative values fail with ErrInvalidLimit.
func (s *Statement) Limit(n int) *Statement {
	if !s.requireKind("LIMIT", KindSelect) {
		return s
	}
	if n < 0 {
		return s.fail(WrapError(ErrInvalidLimit, fmt.Sprintf("limit %d", n)))
	}
	s.limit = &n
	return s
}

// Offset sets the OFFSET row count. Negative values fail with ErrInvalidLimit.
func (s *Statement) Offset(n int) *Statement {
	if !s.requireKind("OFFSET", KindSelect) {
		return s
	}
	if n < 0 {
		return s.fail(WrapError(ErrInvalidLimit, fmt.Sprintf("offset %d", n)))
	}
	s.offset = &n
	return s
}

// Set assigns a value to a column for INSERT or UPDATE.
// Assignment order is preserved in the rendered SQL; assigning the same
// column twice fails with ErrDuplicateColumn at the second call.
func (s *Statement) Set(col string, value interface{}) *Statement {
	if !s.requireKind("SET", KindInsert, KindUpdate) {
		return s
	}
	if _, err := NewIdent(col); err != nil {
		return s.fail(err)
	}
	for _, a := range s.assigns {
		if a.col == col {
			return s.fail(WrapError(ErrDuplicateColumn, "column "+col))
		}
	}
	s.assigns = append(s.assigns, assignment{col: col, value: value})
	return s
}

// Values assigns columns from a map for INSERT.
// Map iteration order is not deterministic in Go, so keys are sorted before
// assignment; use Set for explicit ordering.
func (s *Statement) Values(values map[string]interface{}) *Statement {
	if !s.requireKind("VALUES", KindInsert) {
		return s
	}
	for _, col := range getKeys(values) {
		s.Set(col, values[col])
	}
	return s
}

// OnConflict specifies the columns that determine an INSERT conflict.
// For PostgreSQL/SQLite: columns in a UNIQUE constraint or PRIMARY KEY.
// For MySQL this is optional (ON DUPLICATE KEY uses the table's keys).
func (s *Statement) OnConflict(cols ...string) *Statement {
	if !s.requireKind("ON CONFLICT", KindInsert) {
		return s
	}
	for _, col := range cols {
		if _, err := NewIdent(col); err != nil {
			return s.fail(err)
		}
	}
	s.upsert = true
	s.conflictCols = cols
	return s
}

// DoUpdate specifies which columns to update on conflict.
// If no columns are given, all assigned columns except the conflict columns
// are updated.
func (s *Statement) DoUpdate(cols ...string) *Statement {
	if !s.requireKind("DO UPDATE", KindInsert) {
		return s
	}
	s.upsert = true
	s.updateCols = cols
	s.doNothing = false
	return s
}

// DoNothing specifies to ignore conflicts (do not update).
func (s *Statement) DoNothing() *Statement {
	if !s.requireKind("DO NOTHING", KindInsert) {
		return s
	}
	s.upsert = true
	s.doNothing = true
	s.updateCols = nil
	return s
}

// getKeys returns sorted map keys for deterministic SQL generation.
func getKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
