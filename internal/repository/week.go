package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/trainplan/internal/db"
	"github.com/alexanderramin/trainplan/internal/domain"
)

// SQLWeekRepo implements WeekRepo over any DBTX.
type SQLWeekRepo struct {
	db db.DBTX
}

// NewSQLWeekRepo creates a new SQLWeekRepo.
func NewSQLWeekRepo(conn db.DBTX) *SQLWeekRepo {
	return &SQLWeekRepo{db: conn}
}

const weekColumns = `id, plan_id, phase_id, week_number, start_date, end_date, theme,
	target_distance, target_elevation_gain, created_at, updated_at`

func (r *SQLWeekRepo) Create(ctx context.Context, w *domain.Week) error {
	query := `INSERT INTO weeks (` + weekColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.PlanID,
		nullableStringToValue(w.PhaseID),
		w.WeekNumber,
		w.StartDate.Format(domain.DateLayout),
		w.EndDate.Format(domain.DateLayout),
		w.Theme,
		nullableFloatToValue(w.TargetDistance),
		nullableIntToValue(w.TargetElevationGain),
		formatTimestamp(w.CreatedAt),
		formatTimestamp(w.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting week %d: %w", w.WeekNumber, err)
	}
	return nil
}

func (r *SQLWeekRepo) GetByID(ctx context.Context, id string) (*domain.Week, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+weekColumns+` FROM weeks WHERE id = ?`, id)
	return scanWeek(row)
}

func (r *SQLWeekRepo) GetByNumber(ctx context.Context, planID string, number int) (*domain.Week, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+weekColumns+` FROM weeks WHERE plan_id = ? AND week_number = ?`, planID, number)
	return scanWeek(row)
}

func (r *SQLWeekRepo) GetByDate(ctx context.Context, planID string, date time.Time) (*domain.Week, error) {
	d := date.Format(domain.DateLayout)
	row := r.db.QueryRowContext(ctx,
		`SELECT `+weekColumns+` FROM weeks WHERE plan_id = ? AND start_date <= ? AND end_date >= ?
		ORDER BY week_number LIMIT 1`, planID, d, d)
	return scanWeek(row)
}

func (r *SQLWeekRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Week, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+weekColumns+` FROM weeks WHERE plan_id = ? ORDER BY week_number`, planID)
	if err != nil {
		return nil, fmt.Errorf("listing weeks: %w", err)
	}
	defer rows.Close()

	var weeks []*domain.Week
	for rows.Next() {
		w, err := scanWeek(rows)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weeks: %w", err)
	}
	return weeks, nil
}

// Update rewrites a week's derived fields in place. The identity columns
// (id, plan_id, week_number) and created_at are left untouched.
func (r *SQLWeekRepo) Update(ctx context.Context, w *domain.Week) error {
	query := `UPDATE weeks SET phase_id = ?, start_date = ?, end_date = ?, theme = ?,
		target_distance = ?, target_elevation_gain = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableStringToValue(w.PhaseID),
		w.StartDate.Format(domain.DateLayout),
		w.EndDate.Format(domain.DateLayout),
		w.Theme,
		nullableFloatToValue(w.TargetDistance),
		nullableIntToValue(w.TargetElevationGain),
		formatTimestamp(w.UpdatedAt),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating week %d: %w", w.WeekNumber, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("week %s: %w", w.ID, ErrNotFound)
	}
	return nil
}

func scanWeek(s scanner) (*domain.Week, error) {
	var w domain.Week
	var phaseID sql.NullString
	var dist sql.NullFloat64
	var gain sql.NullInt64
	var start, end, created, updated string
	err := s.Scan(&w.ID, &w.PlanID, &phaseID, &w.WeekNumber, &start, &end, &w.Theme,
		&dist, &gain, &created, &updated)
	if err != nil {
		return nil, notFound("week", err)
	}

	w.PhaseID = stringPtr(phaseID)
	w.TargetDistance = floatPtr(dist)
	w.TargetElevationGain = intPtr(gain)
	if w.StartDate, err = parseDate("start_date", start); err != nil {
		return nil, err
	}
	if w.EndDate, err = parseDate("end_date", end); err != nil {
		return nil, err
	}
	if w.CreatedAt, err = parseTimestamp("created_at", created); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = parseTimestamp("updated_at", updated); err != nil {
		return nil, err
	}
	return &w, nil
}
