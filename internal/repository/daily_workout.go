package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/trainplan/internal/db"
	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/notation"
)

// SQLDailyWorkoutRepo implements DailyWorkoutRepo over any DBTX.
type SQLDailyWorkoutRepo struct {
	db db.DBTX
}

// NewSQLDailyWorkoutRepo creates a new SQLDailyWorkoutRepo.
func NewSQLDailyWorkoutRepo(conn db.DBTX) *SQLDailyWorkoutRepo {
	return &SQLDailyWorkoutRepo{db: conn}
}

const dailyWorkoutColumns = `d.id, d.week_id, d.workout_date, d.day_of_week, d.position, d.workout_type,
	d.run_type, d.run_distance, d.run_elevation_gain, d.run_effort, d.run_notes,
	d.rowing_duration_min, d.rowing_stroke_rate, d.strength_session, d.exercises, d.notes, d.created_at`

func (r *SQLDailyWorkoutRepo) Create(ctx context.Context, d *domain.DailyWorkout) error {
	exercises := d.Exercises
	if exercises == nil {
		exercises = []notation.Prescription{}
	}
	payload, err := json.Marshal(exercises)
	if err != nil {
		return fmt.Errorf("encoding exercises: %w", err)
	}

	query := `INSERT INTO daily_workouts (id, week_id, workout_date, day_of_week, position, workout_type,
		run_type, run_distance, run_elevation_gain, run_effort, run_notes,
		rowing_duration_min, rowing_stroke_rate, strength_session, exercises, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		d.ID,
		d.WeekID,
		d.WorkoutDate.Format(domain.DateLayout),
		d.DayOfWeek,
		d.Position,
		string(d.WorkoutType),
		d.RunType,
		nullableFloatToValue(d.RunDistance),
		nullableIntToValue(d.RunElevationGain),
		d.RunEffort,
		d.RunNotes,
		nullableIntToValue(d.RowingDurationMin),
		d.RowingStrokeRate,
		d.StrengthSession,
		string(payload),
		d.Notes,
		formatTimestamp(d.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting daily workout %s: %w", d.WorkoutDate.Format(domain.DateLayout), err)
	}
	return nil
}

func (r *SQLDailyWorkoutRepo) ListByWeek(ctx context.Context, weekID string) ([]*domain.DailyWorkout, error) {
	return r.list(ctx,
		`SELECT `+dailyWorkoutColumns+` FROM daily_workouts d WHERE d.week_id = ? ORDER BY d.position`,
		weekID)
}

// ListByDate returns the plan's workouts on date, in position order.
func (r *SQLDailyWorkoutRepo) ListByDate(ctx context.Context, planID string, date time.Time) ([]*domain.DailyWorkout, error) {
	return r.list(ctx,
		`SELECT `+dailyWorkoutColumns+` FROM daily_workouts d
		JOIN weeks w ON w.id = d.week_id
		WHERE w.plan_id = ? AND d.workout_date = ?
		ORDER BY w.week_number, d.position`,
		planID, date.Format(domain.DateLayout))
}

func (r *SQLDailyWorkoutRepo) DeleteByWeek(ctx context.Context, weekID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM daily_workouts WHERE week_id = ?`, weekID)
	if err != nil {
		return 0, fmt.Errorf("deleting daily workouts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted daily workouts: %w", err)
	}
	return n, nil
}

func (r *SQLDailyWorkoutRepo) CountByPlan(ctx context.Context, planID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM daily_workouts d JOIN weeks w ON w.id = d.week_id WHERE w.plan_id = ?`,
		planID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting daily workouts: %w", err)
	}
	return n, nil
}

func (r *SQLDailyWorkoutRepo) list(ctx context.Context, query string, args ...any) ([]*domain.DailyWorkout, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing daily workouts: %w", err)
	}
	defer rows.Close()

	var out []*domain.DailyWorkout
	for rows.Next() {
		d, err := scanDailyWorkout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily workouts: %w", err)
	}
	return out, nil
}

func scanDailyWorkout(s scanner) (*domain.DailyWorkout, error) {
	var d domain.DailyWorkout
	var workoutType, date, exercises, created string
	var dist sql.NullFloat64
	var gain, rowMin sql.NullInt64
	err := s.Scan(&d.ID, &d.WeekID, &date, &d.DayOfWeek, &d.Position, &workoutType,
		&d.RunType, &dist, &gain, &d.RunEffort, &d.RunNotes,
		&rowMin, &d.RowingStrokeRate, &d.StrengthSession, &exercises, &d.Notes, &created)
	if err != nil {
		return nil, notFound("daily workout", err)
	}

	d.WorkoutType = domain.WorkoutType(workoutType)
	d.RunDistance = floatPtr(dist)
	d.RunElevationGain = intPtr(gain)
	d.RowingDurationMin = intPtr(rowMin)
	if exercises != "" {
		if err := json.Unmarshal([]byte(exercises), &d.Exercises); err != nil {
			return nil, fmt.Errorf("decoding exercises for %s: %w", d.ID, err)
		}
	}
	if d.WorkoutDate, err = parseDate("workout_date", date); err != nil {
		return nil, err
	}
	if d.CreatedAt, err = parseTimestamp("created_at", created); err != nil {
		return nil, err
	}
	return &d, nil
}
