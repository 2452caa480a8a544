package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/trainplan/internal/db"
)

// FailOnMatchingExecUoW is a test UoW that injects Err into every ExecContext
// call whose query contains Match and, when Arg is set, one of whose
// arguments equals Arg. Reads and savepoint statements pass through, which
// allows partial-failure tests to target one record of a batch. Failures
// counts the injected errors across all transactions.
type FailOnMatchingExecUoW struct {
	DB       *sql.DB
	Match    string
	Arg      any
	Err      error
	Failures atomic.Int32
}

func (u *FailOnMatchingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnMatchingExec{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnMatchingExec struct {
	db.DBTX
	uow *FailOnMatchingExecUoW
}

func (f *failOnMatchingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.uow.Match) && (f.uow.Arg == nil || slices.Contains(args, f.uow.Arg)) {
		f.uow.Failures.Add(1)
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
