//go:build integration
// +build integration

package test

import (
	"context"
	"testing"

	"github.com/coregx/sqlforge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMySQLIntegration executes compiled statements against a real MySQL
// server, verifying backtick quoting and ON DUPLICATE KEY UPDATE
func TestMySQLIntegration(t *testing.T) {
	setup := SetupMySQLTestDB(t)
	defer setup.Close()

	ctx := context.Background()
	db := setup.DB
	d := sqlforge.GetDialect("mysql")

	_, err := db.ExecContext(ctx, `
        CREATE TABLE users (
            id INT PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            age INT NOT NULL
        )
    `)
	require.NoError(t, err)

	ins, err := sqlforge.InsertInto("users").
		Set("id", 1).
		Set("name", "Bob").
		Set("age", 25).
		Build(d)
	require.NoError(t, err)
	assert.Contains(t, ins.SQL, "`users`")

	_, err = db.ExecContext(ctx, ins.SQL, ins.Params...)
	require.NoError(t, err)

	// UPSERT via ON DUPLICATE KEY UPDATE
	ups, err := sqlforge.InsertInto("users").
		Set("id", 1).
		Set("name", "Bob Updated").
		Set("age", 26).
		OnConflict("id").
		DoUpdate("name", "age").
		Build(d)
	require.NoError(t, err)
	assert.Contains(t, ups.SQL, "ON DUPLICATE KEY UPDATE")

	_, err = db.ExecContext(ctx, ups.SQL, ups.Params...)
	require.NoError(t, err)

	sel, err := sqlforge.Select("name", "age").
		From("users").
		Where(sqlforge.Eq("id", 1)).
		Build(d)
	require.NoError(t, err)

	var name string
	var age int
	err = db.QueryRowContext(ctx, sel.SQL, sel.Params...).Scan(&name, &age)
	require.NoError(t, err)
	assert.Equal(t, "Bob Updated", name)
	assert.Equal(t, 26, age)

	// ORDER BY / LIMIT round out the clause coverage
	for id, u := range map[int]struct {
		name string
		age  int
	}{2: {"Carol", 35}, 3: {"Dave", 45}} {
		ins, err := sqlforge.InsertInto("users").
			Set("id", id).
			Set("name", u.name).
			Set("age", u.age).
			Build(d)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, ins.SQL, ins.Params...)
		require.NoError(t, err)
	}

	top, err := sqlforge.Select("name").
		From("users").
		OrderBy("age DESC").
		Limit(1).
		Build(d)
	require.NoError(t, err)

	err = db.QueryRowContext(ctx, top.SQL, top.Params...).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "Dave", name)
}
