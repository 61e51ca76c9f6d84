package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStatement_KindPinning tests that constructors pin the statement kind
func TestStatement_KindPinning(t *testing.T) {
	assert.Equal(t, KindSelect, Select("id").Kind())
	assert.Equal(t, KindInsert, InsertInto("users").Kind())
	assert.Equal(t, KindUpdate, Update("users").Kind())
	assert.Equal(t, KindDelete, DeleteFrom("users").Kind())
}

// TestKind_String tests the SQL verbs used in errors and traces
func TestKind_String(t *testing.T) {
	assert.Equal(t, "SELECT", KindSelect.String())
	assert.Equal(t, "INSERT", KindInsert.String())
	assert.Equal(t, "UPDATE", KindUpdate.String())
	assert.Equal(t, "DELETE", KindDelete.String())
	assert.Equal(t, "UNKNOWN", Kind(0).String())
}

// TestStatement_IllegalClause tests fail-fast rejection of clauses that do
// not belong to the pinned kind
func TestStatement_IllegalClause(t *testing.T) {
	tests := []struct {
		name string
		s    *Statement
	}{
		{"join on insert", InsertInto("users").InnerJoin("orders", NewExp("a = b"))},
		{"where on insert", InsertInto("users").Where(Eq("id", 1))},
		{"group by on update", Update("users").Set("name", "x").GroupBy("id")},
		{"order by on delete", DeleteFrom("users").OrderBy("id")},
		{"limit on update", Update("users").Set("name", "x").Limit(10)},
		{"distinct on delete", DeleteFrom("users").Distinct()},
		{"from on insert", InsertInto("users").From("orders")},
		{"set on select", Select("id").Set("name", "x")},
		{"values on update", Update("users").Values(map[string]interface{}{"a": 1})},
		{"on conflict on update", Update("users").Set("a", 1).OnConflict("id")},
		{"having on delete", DeleteFrom("users").Having(Eq("n", 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.s.Err())
			assert.ErrorIs(t, tt.s.Err(), ErrIllegalClause)

			_, err := tt.s.Build(getDialects()["generic"])
			assert.ErrorIs(t, err, ErrIllegalClause)
		})
	}
}

// TestStatement_IllegalClause_Message tests the error names clause and kind
func TestStatement_IllegalClause_Message(t *testing.T) {
	err := InsertInto("users").InnerJoin("orders", NewExp("a = b")).Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INNER JOIN")
	assert.Contains(t, err.Error(), "INSERT")
}

// TestStatement_StickyError tests that the first misuse wins and poisons Build
func TestStatement_StickyError(t *testing.T) {
	s := Select("id").From("users").
		Limit(-1).          // first misuse
		InnerJoin("t", nil) // second misuse, dropped

	require.Error(t, s.Err())
	assert.ErrorIs(t, s.Err(), ErrInvalidLimit)
	assert.NotErrorIs(t, s.Err(), ErrMissingJoinCondition)

	_, err := s.Build(getDialects()["generic"])
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

// TestStatement_MissingJoinCondition tests that JOINs demand an ON predicate
func TestStatement_MissingJoinCondition(t *testing.T) {
	s := Select("id").From("users").LeftJoin("orders", nil)
	require.Error(t, s.Err())
	assert.ErrorIs(t, s.Err(), ErrMissingJoinCondition)
}

// TestStatement_InvalidLimit tests negative LIMIT and OFFSET rejection
func TestStatement_InvalidLimit(t *testing.T) {
	assert.ErrorIs(t, Select("id").From("users").Limit(-1).Err(), ErrInvalidLimit)
	assert.ErrorIs(t, Select("id").From("users").Offset(-5).Err(), ErrInvalidLimit)
	assert.NoError(t, Select("id").From("users").Limit(0).Offset(0).Err())
}

// TestStatement_DuplicateColumn tests rejection of double assignment
func TestStatement_DuplicateColumn(t *testing.T) {
	s := InsertInto("users").
		Set("name", "Alice").
		Set("name", "Bob")

	require.Error(t, s.Err())
	assert.ErrorIs(t, s.Err(), ErrDuplicateColumn)
	assert.Contains(t, s.Err().Error(), "name")
}

// TestStatement_InvalidIdentifiers tests identifier validation on clause attach
func TestStatement_InvalidIdentifiers(t *testing.T) {
	assert.ErrorIs(t, Select("id; DROP").Err(), ErrInvalidIdentifier)
	assert.ErrorIs(t, Select("id").From("users; DROP").Err(), ErrInvalidIdentifier)
	assert.ErrorIs(t, InsertInto("bad table").Err(), ErrInvalidIdentifier)
	assert.ErrorIs(t, Select("id").From("u").GroupBy("bad col").Err(), ErrInvalidIdentifier)
	assert.ErrorIs(t, Select("id").From("u").OrderBy("bad col DESC").Err(), ErrInvalidIdentifier)
	assert.ErrorIs(t, Update("users").Set("bad col", 1).Err(), ErrInvalidIdentifier)
}

// TestStatement_FaultyExpressionAttach tests that broken expressions are
// rejected at the attaching call, not at build time
func TestStatement_FaultyExpressionAttach(t *testing.T) {
	s := Select("id").From("users").Where(In("status"))
	require.Error(t, s.Err())
	assert.ErrorIs(t, s.Err(), ErrEmptyInClause)

	s = Select("id").From("users").InnerJoin("orders", Eq("bad col", 1))
	assert.ErrorIs(t, s.Err(), ErrInvalidIdentifier)

	s = Select("id").From("users").Having(Eq("bad col", 1))
	assert.ErrorIs(t, s.Err(), ErrInvalidIdentifier)
}

// TestStatement_NilWhereIgnored tests that nil predicates are no-ops
func TestStatement_NilWhereIgnored(t *testing.T) {
	s := Select("id").From("users").Where(nil).OrWhere(nil)
	require.NoError(t, s.Err())

	q, err := s.Build(getDialects()["generic"])
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id" FROM "users"`, q.SQL)
}

// TestStatement_Wildcard tests the * and table.* projection sentinels
func TestStatement_Wildcard(t *testing.T) {
	assert.NoError(t, Select("*").From("users").Err())
	assert.NoError(t, Select("u.*").From("users").Err())
	assert.ErrorIs(t, Select("us ers.*").Err(), ErrInvalidIdentifier)
}

// TestStatement_ValuesSortsKeys tests deterministic map assignment ordering
func TestStatement_ValuesSortsKeys(t *testing.T) {
	s := InsertInto("users").Values(map[string]interface{}{
		"name": "Alice",
		"age":  30,
	})
	require.NoError(t, s.Err())

	q, err := s.Build(getDialects()["generic"])
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("age", "name") VALUES (?, ?)`, q.SQL)
	assert.Equal(t, []interface{}{30, "Alice"}, q.Params)
}

// TestStatement_SetPreservesOrder tests explicit assignment ordering
func TestStatement_SetPreservesOrder(t *testing.T) {
	q, err := InsertInto("users").
		Set("name", "Alice").
		Set("age", 30).
		Build(getDialects()["generic"])
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "users" ("name", "age") VALUES (?, ?)`, q.SQL)
	assert.Equal(t, []interface{}{"Alice", 30}, q.Params)
}

// TestStatement_ValuesDuplicateWithSet tests the duplicate check spans both forms
func TestStatement_ValuesDuplicateWithSet(t *testing.T) {
	s := InsertInto("users").
		Set("age", 30).
		Values(map[string]interface{}{"age": 31})
	assert.ErrorIs(t, s.Err(), ErrDuplicateColumn)
}

// TestStatement_OrWhere tests OR grouping of accumulated predicates
func TestStatement_OrWhere(t *testing.T) {
	d := getDialects()["generic"]

	// OrWhere on an empty list behaves like Where
	q, err := Select("id").From("users").OrWhere(Eq("a", 1)).Build(d)
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id" FROM "users" WHERE "a" = ?`, q.SQL)

	// (a AND b) OR c
	q, err = Select("id").From("users").
		Where(Eq("a", 1)).
		AndWhere(Eq("b", 2)).
		OrWhere(Eq("c", 3)).
		Build(d)
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id" FROM "users" WHERE (("a" = ?) AND ("b" = ?)) OR ("c" = ?)`, q.SQL)
	assert.Equal(t, []interface{}{1, 2, 3}, q.Params)
}

// TestStatement_OrderByDirections tests ASC/DESC suffix parsing
func TestStatement_OrderByDirections(t *testing.T) {
	q, err := Select("id").From("users").
		OrderBy("status ASC", "created_at DESC", "id").
		Build(getDialects()["generic"])
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id" FROM "users" ORDER BY "status", "created_at" DESC, "id"`, q.SQL)
}
