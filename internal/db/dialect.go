package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// Bind adapts x to the dialect. Queries are written with "?" placeholders;
// for PostgreSQL they are rewritten to "$1", "$2", ...
func Bind(d Dialect, x DBTX) DBTX {
	if d != DialectPostgres {
		return x
	}
	if _, ok := x.(rebinder); ok {
		return x
	}
	return rebinder{DBTX: x}
}

type rebinder struct {
	DBTX
}

func (r rebinder) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.DBTX.ExecContext(ctx, Rebind(query), args...)
}

func (r rebinder) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.DBTX.QueryContext(ctx, Rebind(query), args...)
}

func (r rebinder) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.DBTX.QueryRowContext(ctx, Rebind(query), args...)
}

// Rebind rewrites "?" placeholders to PostgreSQL's numbered form. Question
// marks inside single-quoted literals are left alone.
func Rebind(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	quoted := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			quoted = !quoted
			b.WriteByte(c)
		case c == '?' && !quoted:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
