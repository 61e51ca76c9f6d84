package core

import (
	"database/sql"
	"testing"

	"github.com/coregx/sqlforge/internal/dialects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database with a users table.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			age INTEGER NOT NULL,
			email TEXT
		)
	`)
	require.NoError(t, err)

	return db
}

// TestIntegration_SQLite_RoundTrip executes compiled statements against a
// real SQLite database (pure Go driver, no Docker)
func TestIntegration_SQLite_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	d := dialects.GetDialect("sqlite")

	// INSERT
	ins, err := InsertInto("users").
		Set("id", 1).
		Set("name", "Alice").
		Set("age", 30).
		Build(d)
	require.NoError(t, err)

	_, err = db.Exec(ins.SQL, ins.Params...)
	require.NoError(t, err)

	// SELECT
	sel, err := Select("name", "age").From("users").Where(Eq("id", 1)).Build(d)
	require.NoError(t, err)

	var name string
	var age int
	err = db.QueryRow(sel.SQL, sel.Params...).Scan(&name, &age)
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
	assert.Equal(t, 30, age)

	// UPDATE
	upd, err := Update("users").Set("age", 31).Where(Eq("name", "Alice")).Build(d)
	require.NoError(t, err)

	res, err := db.Exec(upd.SQL, upd.Params...)
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// DELETE
	del, err := DeleteFrom("users").Where(Eq("id", 1)).Build(d)
	require.NoError(t, err)

	_, err = db.Exec(del.SQL, del.Params...)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Zero(t, count)
}

// TestIntegration_SQLite_Upsert executes a compiled ON CONFLICT statement
func TestIntegration_SQLite_Upsert(t *testing.T) {
	db := openTestDB(t)
	d := dialects.GetDialect("sqlite")

	ins, err := InsertInto("users").
		Set("id", 1).
		Set("name", "Alice").
		Set("age", 30).
		Build(d)
	require.NoError(t, err)
	_, err = db.Exec(ins.SQL, ins.Params...)
	require.NoError(t, err)

	// Same primary key, conflicting insert resolves to an update
	ups, err := InsertInto("users").
		Set("id", 1).
		Set("name", "Alice Updated").
		Set("age", 31).
		OnConflict("id").
		DoUpdate().
		Build(d)
	require.NoError(t, err)
	_, err = db.Exec(ups.SQL, ups.Params...)
	require.NoError(t, err)

	var name string
	var age int
	require.NoError(t, db.QueryRow("SELECT name, age FROM users WHERE id = 1").Scan(&name, &age))
	assert.Equal(t, "Alice Updated", name)
	assert.Equal(t, 31, age)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)
}

// TestIntegration_SQLite_ComplexSelect executes a query with IN, LIKE, ORDER
// BY, and LIMIT against real data
func TestIntegration_SQLite_ComplexSelect(t *testing.T) {
	db := openTestDB(t)
	d := dialects.GetDialect("sqlite")

	seed := []struct {
		id   int
		name string
		age  int
	}{
		{1, "alice", 30},
		{2, "bob", 25},
		{3, "alina", 35},
		{4, "carol", 40},
	}
	for _, u := range seed {
		ins, err := InsertInto("users").
			Set("id", u.id).
			Set("name", u.name).
			Set("age", u.age).
			Build(d)
		require.NoError(t, err)
		_, err = db.Exec(ins.SQL, ins.Params...)
		require.NoError(t, err)
	}

	sel, err := Select("name").From("users").
		Where(And(
			Like("name", "ali").Match(true, true),
			In("age", 30, 35, 40),
		)).
		OrderBy("age DESC").
		Limit(2).
		Build(d)
	require.NoError(t, err)

	rows, err := db.Query(sel.SQL, sel.Params...)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"alina", "alice"}, names)
}

// TestIntegration_SQLite_RawQuery executes a compiled named-parameter template
func TestIntegration_SQLite_RawQuery(t *testing.T) {
	db := openTestDB(t)
	d := dialects.GetDialect("sqlite")

	ins, err := InsertInto("users").Set("id", 1).Set("name", "Alice").Set("age", 30).Build(d)
	require.NoError(t, err)
	_, err = db.Exec(ins.SQL, ins.Params...)
	require.NoError(t, err)

	q, err := NewQuery("SELECT [[name]] FROM {{users}} WHERE [[id]]={:id}").
		Bind(Params{"id": 1}).
		Build(d)
	require.NoError(t, err)

	var name string
	require.NoError(t, db.QueryRow(q.SQL, q.Params...).Scan(&name))
	assert.Equal(t, "Alice", name)
}
