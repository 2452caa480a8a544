package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	assert.Equal(t, "SELECT 1", Rebind("SELECT 1"))
	assert.Equal(t,
		"INSERT INTO t (a, b, c) VALUES ($1, $2, $3)",
		Rebind("INSERT INTO t (a, b, c) VALUES (?, ?, ?)"))
	assert.Equal(t,
		"SELECT * FROM t WHERE a = $1 AND b = 'what?' AND c = $2",
		Rebind("SELECT * FROM t WHERE a = ? AND b = 'what?' AND c = ?"))
}

func TestBind(t *testing.T) {
	db := openTestDB(t)

	assert.Equal(t, DBTX(db), Bind(DialectSQLite, db))

	pg := Bind(DialectPostgres, db)
	_, ok := pg.(rebinder)
	assert.True(t, ok)
	assert.Equal(t, pg, Bind(DialectPostgres, pg), "binding twice does not double wrap")
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{
		"": DialectSQLite, "sqlite": DialectSQLite, "sqlite3": DialectSQLite,
		"postgres": DialectPostgres, "postgresql": DialectPostgres, "pgx": DialectPostgres,
	} {
		got, err := ParseDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDialect("mysql")
	assert.Error(t, err)
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	db := openTestDB(t)
	ins := `INSERT INTO plans (id, name, start_date, end_date, created_at, updated_at) VALUES (?, ?, '2025-03-03', '2025-05-25', 'now', 'now')`

	_, err := db.Exec(ins, "p1", "Plan")
	require.NoError(t, err)

	_, err = db.Exec(ins, "p2", "Plan")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err), "duplicate name")
	assert.True(t, IsUniqueViolation(fmt.Errorf("inserting plan: %w", err)), "wrapped")

	_, err = db.Exec(ins, "p1", "Other")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err), "duplicate primary key")
}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	err := fmt.Errorf("inserting week: %w", &pgconn.PgError{Code: "23505", Message: "duplicate key value"})
	assert.True(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}), "foreign key violation")
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23514"}), "check violation")
}

func TestIsUniqueViolation_Other(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: plans.name")),
		"message text alone is not classified")
	assert.False(t, IsUniqueViolation(context.Canceled))
}

func TestStore_OpenSQLite(t *testing.T) {
	s, err := Open(context.Background(), DialectSQLite, ":memory:", "")
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, DialectSQLite, s.Dialect)
	assert.NotNil(t, s.UnitOfWork())

	var n int
	require.NoError(t, s.Conn().QueryRowContext(context.Background(), `SELECT COUNT(*) FROM plans`).Scan(&n))
	assert.Zero(t, n)
}

func TestOpenPostgres_RequiresDSN(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dsn")
}
