package core

import (
	"strconv"
	"strings"

	"github.com/coregx/sqlforge/internal/dialects"
)

// CompiledQuery is the output of compiling a Statement: the rendered SQL text
// and the bound parameter values, ordered to match placeholder occurrence
// left to right. The placeholder count always equals len(Params).
type CompiledQuery struct {
	SQL    string
	Params []interface{}
}

// Build compiles the statement for the given dialect.
// Compilation is a pure, read-only traversal: it never mutates the statement,
// repeated calls yield identical results, and it is safe to invoke
// concurrently on a statement that is no longer being mutated.
//
// Underspecified statements (no projection, no table, or no assignments,
// depending on kind) fail with ErrEmptyStatement. Any misuse recorded during
// assembly is returned here as well.
func (s *Statement) Build(dialect dialects.Dialect) (*CompiledQuery, error) {
	sql, params, err := s.render(dialect)
	if err != nil {
		return nil, err
	}

	params, err = checkParams(params)
	if err != nil {
		return nil, err
	}

	sql = renumberPlaceholders(sql, dialect)

	return &CompiledQuery{SQL: sql, Params: params}, nil
}

// render produces the "?"-placeholder form of the statement.
// Dialect-specific placeholder renumbering happens once, in Build, so
// subselects can be inlined without double renumbering.
func (s *Statement) render(dialect dialects.Dialect) (string, []interface{}, error) {
	if s.err != nil {
		return "", nil, s.err
	}

	switch s.kind {
	case KindSelect:
		return s.renderSelect(dialect)
	case KindInsert:
		return s.renderInsert(dialect)
	case KindUpdate:
		return s.renderUpdate(dialect)
	case KindDelete:
		return s.renderDelete(dialect)
	default:
		return "", nil, WrapError(ErrEmptyStatement, "statement has no kind")
	}
}

// buildPredicates renders an accumulated predicate list as a single AND
// conjunction. The output text is identical to building And(exprs...), so
// Where(a).Where(b) and Where(And(a, b)) compile to the same clause.
func buildPredicates(exprs []Expression, dialect dialects.Dialect) (string, []interface{}, error) {
	if len(exprs) == 0 {
		return "", nil, nil
	}
	if len(exprs) == 1 {
		return exprs[0].Build(dialect)
	}
	return And(exprs...).Build(dialect)
}

func (s *Statement) renderSelect(dialect dialects.Dialect) (string, []interface{}, error) {
	if len(s.selects) == 0 {
		return "", nil, WrapError(ErrEmptyStatement, "SELECT requires a projection")
	}

	var sql strings.Builder
	var params []interface{}

	sql.WriteString("SELECT ")
	if s.distinct {
		sql.WriteString("DISTINCT ")
	}

	cols := make([]string, 0, len(s.selects))
	for _, item := range s.selects {
		if item.expr != nil {
			part, args, err := item.expr.Build(dialect)
			if err != nil {
				return "", nil, err
			}
			cols = append(cols, part)
			params = append(params, args...)
			continue
		}
		if item.col == "*" {
			cols = append(cols, "*")
			continue
		}
		cols = append(cols, quoteIdentifier(dialect, item.col))
	}
	sql.WriteString(strings.Join(cols, ", "))

	if s.table != "" {
		sql.WriteString(" FROM ")
		sql.WriteString(quoteIdentifier(dialect, s.table))
	} else if len(s.joins) > 0 {
		return "", nil, WrapError(ErrEmptyStatement, "JOIN requires a FROM table")
	}

	for _, j := range s.joins {
		onSQL, onArgs, err := j.on.Build(dialect)
		if err != nil {
			return "", nil, err
		}
		sql.WriteString(" ")
		sql.WriteString(j.kind)
		sql.WriteString(" ")
		sql.WriteString(quoteIdentifier(dialect, j.table))
		sql.WriteString(" ON ")
		sql.WriteString(onSQL)
		params = append(params, onArgs...)
	}

	whereSQL, whereArgs, err := buildPredicates(s.where, dialect)
	if err != nil {
		return "", nil, err
	}
	if whereSQL != "" {
		sql.WriteString(" WHERE ")
		sql.WriteString(whereSQL)
		params = append(params, whereArgs...)
	}

	if len(s.groupBy) > 0 {
		groups := make([]string, len(s.groupBy))
		for i, col := range s.groupBy {
			groups[i] = quoteIdentifier(dialect, col)
		}
		sql.WriteString(" GROUP BY ")
		sql.WriteString(strings.Join(groups, ", "))
	}

	havingSQL, havingArgs, err := buildPredicates(s.having, dialect)
	if err != nil {
		return "", nil, err
	}
	if havingSQL != "" {
		sql.WriteString(" HAVING ")
		sql.WriteString(havingSQL)
		params = append(params, havingArgs...)
	}

	if len(s.orderBy) > 0 {
		orders := make([]string, len(s.orderBy))
		for i, entry := range s.orderBy {
			orders[i] = quoteIdentifier(dialect, entry.col)
			if entry.desc {
				orders[i] += " DESC"
			}
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(orders, ", "))
	}

	if s.limit != nil {
		sql.WriteString(" LIMIT ")
		sql.WriteString(strconv.Itoa(*s.limit))
	}
	if s.offset != nil {
		sql.WriteString(" OFFSET ")
		sql.WriteString(strconv.Itoa(*s.offset))
	}

	return sql.String(), params, nil
}

func (s *Statement) renderInsert(dialect dialects.Dialect) (string, []interface{}, error) {
	if s.table == "" {
		return "", nil, WrapError(ErrEmptyStatement, "INSERT requires a table")
	}
	if len(s.assigns) == 0 {
		return "", nil, WrapError(ErrEmptyStatement, "INSERT requires values")
	}

	cols := make([]string, len(s.assigns))
	placeholders := make([]string, len(s.assigns))
	params := make([]interface{}, len(s.assigns))
	for i, a := range s.assigns {
		cols[i] = quoteIdentifier(dialect, a.col)
		placeholders[i] = "?"
		params[i] = a.value
	}

	sql := "INSERT INTO " + quoteIdentifier(dialect, s.table) +
		" (" + strings.Join(cols, ", ") + ")" +
		" VALUES (" + strings.Join(placeholders, ", ") + ")"

	if s.upsert {
		var updateCols []string
		if !s.doNothing {
			updateCols = s.updateCols
			if len(updateCols) == 0 {
				updateCols = filterKeys(s.assignColumns(), s.conflictCols)
			}
			if len(updateCols) == 0 {
				// Every assigned column is a conflict column; an empty SET
				// list is not valid SQL, so degrade to DO NOTHING.
				updateCols = nil
			}
		}
		sql += dialect.UpsertSQL(s.table, s.conflictCols, updateCols)
	}

	return sql, params, nil
}

func (s *Statement) renderUpdate(dialect dialects.Dialect) (string, []interface{}, error) {
	if s.table == "" {
		return "", nil, WrapError(ErrEmptyStatement, "UPDATE requires a table")
	}
	if len(s.assigns) == 0 {
		return "", nil, WrapError(ErrEmptyStatement, "UPDATE requires assignments")
	}

	setClauses := make([]string, len(s.assigns))
	params := make([]interface{}, 0, len(s.assigns))
	for i, a := range s.assigns {
		setClauses[i] = quoteIdentifier(dialect, a.col) + " = ?"
		params = append(params, a.value)
	}

	sql := "UPDATE " + quoteIdentifier(dialect, s.table) +
		" SET " + strings.Join(setClauses, ", ")

	whereSQL, whereArgs, err := buildPredicates(s.where, dialect)
	if err != nil {
		return "", nil, err
	}
	if whereSQL != "" {
		sql += " WHERE " + whereSQL
		params = append(params, whereArgs...)
	}

	return sql, params, nil
}

func (s *Statement) renderDelete(dialect dialects.Dialect) (string, []interface{}, error) {
	if s.table == "" {
		return "", nil, WrapError(ErrEmptyStatement, "DELETE requires a table")
	}

	sql := "DELETE FROM " + quoteIdentifier(dialect, s.table)

	whereSQL, whereArgs, err := buildPredicates(s.where, dialect)
	if err != nil {
		return "", nil, err
	}
	if whereSQL != "" {
		sql += " WHERE " + whereSQL
	}

	return sql, whereArgs, nil
}

// assignColumns returns the assigned column names in insertion order.
func (s *Statement) assignColumns() []string {
	cols := make([]string, len(s.assigns))
	for i, a := range s.assigns {
		cols[i] = a.col
	}
	return cols
}

// filterKeys returns keys that are not in the exclude list.
func filterKeys(keys, exclude []string) []string {
	excludeMap := make(map[string]bool)
	for _, e := range exclude {
		excludeMap[e] = true
	}

	filtered := make([]string, 0, len(keys))
	for _, k := range keys {
		if !excludeMap[k] {
			filtered = append(filtered, k)
		}
	}
	return filtered
}

// renumberPlaceholders rewrites "?" markers to the dialect's positional form
// ($1, $2, ... for PostgreSQL). Dialects that use "?" pass through untouched.
func renumberPlaceholders(sql string, dialect dialects.Dialect) string {
	if dialect.Placeholder(1) == "?" {
		return sql
	}

	var out strings.Builder
	out.Grow(len(sql) + 8)
	index := 1
	for _, r := range sql {
		if r == '?' {
			out.WriteString(dialect.Placeholder(index))
			index++
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
