package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/trainplan/internal/db"
	"github.com/alexanderramin/trainplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *sql.DB
	compiler CompileService
	schedule ScheduleService
	path     string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return setupWithUoW(t, database, testutil.NewTestUoW(database))
}

func setupWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *fixture {
	t.Helper()
	return &fixture{
		db:       database,
		compiler: NewCompileService(database, uow, nil),
		schedule: NewScheduleService(database, nil),
		path:     testutil.WriteDocument(t, testutil.SampleDocument),
	}
}

func (f *fixture) compile(t *testing.T) *CompileReport {
	t.Helper()
	report, err := f.compiler.Compile(context.Background(), f.path, testutil.SampleSettings())
	require.NoError(t, err)
	return report
}

// cancelAfterUoW cancels the compile's context once n transactions have
// committed.
type cancelAfterUoW struct {
	inner  db.UnitOfWork
	n      int
	cancel context.CancelFunc
	done   int
}

func (u *cancelAfterUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	err := u.inner.WithinTx(ctx, fn)
	u.done++
	if u.done == u.n {
		u.cancel()
	}
	return err
}
