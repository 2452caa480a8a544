package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/trainplan/internal/db"
	"github.com/alexanderramin/trainplan/internal/domain"
)

// SQLCompileRunRepo implements CompileRunRepo over any DBTX.
type SQLCompileRunRepo struct {
	db db.DBTX
}

// NewSQLCompileRunRepo creates a new SQLCompileRunRepo.
func NewSQLCompileRunRepo(conn db.DBTX) *SQLCompileRunRepo {
	return &SQLCompileRunRepo{db: conn}
}

const compileRunColumns = `id, source, plan_id, status, weeks_processed, weeks_failed,
	days_inserted, days_failed, started_at, finished_at`

func (r *SQLCompileRunRepo) Create(ctx context.Context, run *domain.CompileRun) error {
	query := `INSERT INTO compile_runs (` + compileRunColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Source,
		nullableStringToValue(run.PlanID),
		string(run.Status),
		run.WeeksProcessed,
		run.WeeksFailed,
		run.DaysInserted,
		run.DaysFailed,
		formatTimestamp(run.StartedAt),
		nullableTimeToString(utcPtr(run.FinishedAt), time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting compile run: %w", err)
	}
	return nil
}

// Finish writes the run's final counters and status.
func (r *SQLCompileRunRepo) Finish(ctx context.Context, run *domain.CompileRun) error {
	query := `UPDATE compile_runs SET plan_id = ?, status = ?, weeks_processed = ?, weeks_failed = ?,
		days_inserted = ?, days_failed = ?, finished_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableStringToValue(run.PlanID),
		string(run.Status),
		run.WeeksProcessed,
		run.WeeksFailed,
		run.DaysInserted,
		run.DaysFailed,
		nullableTimeToString(utcPtr(run.FinishedAt), time.RFC3339),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("finishing compile run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("compile run %s: %w", run.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLCompileRunRepo) GetByID(ctx context.Context, id string) (*domain.CompileRun, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+compileRunColumns+` FROM compile_runs WHERE id = ?`, id)
	return scanCompileRun(row)
}

// ListRecent returns up to limit runs, newest first.
func (r *SQLCompileRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.CompileRun, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+compileRunColumns+` FROM compile_runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing compile runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.CompileRun
	for rows.Next() {
		run, err := scanCompileRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating compile runs: %w", err)
	}
	return runs, nil
}

func (r *SQLCompileRunRepo) AddError(ctx context.Context, e *domain.CompileError) error {
	query := `INSERT INTO compile_errors (id, run_id, week_number, day_name, workout_date, raw_line, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.RunID,
		e.WeekNumber,
		e.DayName,
		nullableTimeToString(e.WorkoutDate, domain.DateLayout),
		e.RawLine,
		e.Message,
		formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting compile error: %w", err)
	}
	return nil
}

func (r *SQLCompileRunRepo) ListErrors(ctx context.Context, runID string) ([]*domain.CompileError, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, run_id, week_number, day_name, workout_date, raw_line, message, created_at
		FROM compile_errors WHERE run_id = ? ORDER BY week_number, created_at, id`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing compile errors: %w", err)
	}
	defer rows.Close()

	var out []*domain.CompileError
	for rows.Next() {
		var e domain.CompileError
		var date sql.NullString
		var created string
		if err := rows.Scan(&e.ID, &e.RunID, &e.WeekNumber, &e.DayName, &date, &e.RawLine, &e.Message, &created); err != nil {
			return nil, fmt.Errorf("scanning compile error: %w", err)
		}
		e.WorkoutDate = parseNullableTime(date, domain.DateLayout)
		if e.CreatedAt, err = parseTimestamp("created_at", created); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating compile errors: %w", err)
	}
	return out, nil
}

func scanCompileRun(s scanner) (*domain.CompileRun, error) {
	var run domain.CompileRun
	var planID, finished sql.NullString
	var status, started string
	err := s.Scan(&run.ID, &run.Source, &planID, &status, &run.WeeksProcessed, &run.WeeksFailed,
		&run.DaysInserted, &run.DaysFailed, &started, &finished)
	if err != nil {
		return nil, notFound("compile run", err)
	}

	run.PlanID = stringPtr(planID)
	run.Status = domain.CompileStatus(status)
	run.FinishedAt = parseNullableTime(finished, time.RFC3339)
	if run.StartedAt, err = parseTimestamp("started_at", started); err != nil {
		return nil, err
	}
	return &run, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
