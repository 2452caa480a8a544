package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent and
// portable between SQLite and PostgreSQL, so Migrate can run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate re-applied ADD COLUMN statements.
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate column name") || strings.Contains(msg, "already exists")
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL UNIQUE,
		goal         TEXT NOT NULL DEFAULT '',
		start_date   TEXT NOT NULL,
		end_date     TEXT NOT NULL,
		total_weeks  INTEGER NOT NULL DEFAULT 0,
		current_week INTEGER NOT NULL DEFAULT 1,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS phases (
		id         TEXT PRIMARY KEY,
		plan_id    TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		week_start INTEGER NOT NULL,
		week_end   INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		focus      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE (plan_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS weeks (
		id                    TEXT PRIMARY KEY,
		plan_id               TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		phase_id              TEXT REFERENCES phases(id) ON DELETE SET NULL,
		week_number           INTEGER NOT NULL CHECK (week_number >= 1),
		start_date            TEXT NOT NULL,
		end_date              TEXT NOT NULL,
		theme                 TEXT NOT NULL DEFAULT '',
		target_distance       DOUBLE PRECISION,
		target_elevation_gain INTEGER,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL,
		UNIQUE (plan_id, week_number)
	)`,
	`CREATE TABLE IF NOT EXISTS daily_workouts (
		id                  TEXT PRIMARY KEY,
		week_id             TEXT NOT NULL REFERENCES weeks(id) ON DELETE CASCADE,
		workout_date        TEXT NOT NULL,
		day_of_week         TEXT NOT NULL,
		position            INTEGER NOT NULL DEFAULT 0,
		workout_type        TEXT NOT NULL
		                    CHECK (workout_type IN ('rest','run','rowing','strength','run+strength')),
		run_type            TEXT NOT NULL DEFAULT '',
		run_distance        DOUBLE PRECISION,
		run_elevation_gain  INTEGER,
		run_effort          TEXT NOT NULL DEFAULT '',
		run_notes           TEXT NOT NULL DEFAULT '',
		rowing_duration_min INTEGER,
		rowing_stroke_rate  TEXT NOT NULL DEFAULT '',
		strength_session    TEXT NOT NULL DEFAULT '',
		exercises           TEXT NOT NULL DEFAULT '[]',
		notes               TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL,
		UNIQUE (week_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS compile_runs (
		id              TEXT PRIMARY KEY,
		source          TEXT NOT NULL,
		plan_id         TEXT REFERENCES plans(id) ON DELETE SET NULL,
		status          TEXT NOT NULL
		                CHECK (status IN ('running','completed','partial','failed','cancelled')),
		weeks_processed INTEGER NOT NULL DEFAULT 0,
		weeks_failed    INTEGER NOT NULL DEFAULT 0,
		days_inserted   INTEGER NOT NULL DEFAULT 0,
		days_failed     INTEGER NOT NULL DEFAULT 0,
		started_at      TEXT NOT NULL,
		finished_at     TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS compile_errors (
		id           TEXT PRIMARY KEY,
		run_id       TEXT NOT NULL REFERENCES compile_runs(id) ON DELETE CASCADE,
		week_number  INTEGER NOT NULL DEFAULT 0,
		day_name     TEXT NOT NULL DEFAULT '',
		workout_date TEXT,
		raw_line     TEXT NOT NULL DEFAULT '',
		message      TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_phases_plan ON phases(plan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_weeks_plan ON weeks(plan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_workouts_week ON daily_workouts(week_id)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_workouts_date ON daily_workouts(workout_date)`,
	`CREATE INDEX IF NOT EXISTS idx_compile_errors_run ON compile_errors(run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_compile_runs_started ON compile_runs(started_at)`,
}
