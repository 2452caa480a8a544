package service

import (
	"context"
	"time"

	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/importer"
	"github.com/alexanderramin/trainplan/internal/notation"
)

type CompileService interface {
	// Compile reads the document at path and persists it. A cancelled
	// context stops before the next week; the partial report is returned
	// together with the context error.
	Compile(ctx context.Context, path string, s importer.Settings) (*CompileReport, error)
	// Preview converts the document without writing anything and reports
	// which of its weeks are already stored.
	Preview(ctx context.Context, path string, s importer.Settings) (*CompilePreview, error)
}

type ScheduleService interface {
	ActivePlan(ctx context.Context) (*PlanView, error)
	ListWeeks(ctx context.Context) ([]*domain.Week, error)
	GetWeek(ctx context.Context, number int) (*WeekView, error)
	GetDay(ctx context.Context, date time.Time) ([]*DayView, error)
	Today(ctx context.Context, now time.Time) (*TodayView, error)
	SetCurrentWeek(ctx context.Context, number int) error
	ListRuns(ctx context.Context, limit int) ([]*domain.CompileRun, error)
	GetRun(ctx context.Context, id string) (*RunView, error)
}

// WeekReport is the outcome of one week of a compile.
type WeekReport struct {
	Number int
	// Existing is true when the week was already stored and was updated in place.
	Existing bool
	Replaced int64
	Inserted int
	Failed   int
	Err      error
}

// CompileReport holds the outcome of a compile.
type CompileReport struct {
	Run      *domain.CompileRun
	Plan     *domain.Plan
	Weeks    []WeekReport
	Warnings []importer.Warning
}

// CompilePreview is a dry-run compile.
type CompilePreview struct {
	Generated *importer.GeneratedPlan
	// ExistingWeeks lists week numbers of the document that are already
	// stored for a plan of the same name and would be replaced.
	ExistingWeeks []int
}

// PlanView is the active plan with its phases and stored totals.
type PlanView struct {
	Plan   *domain.Plan
	Phases []*domain.Phase
	Weeks  int
	Days   int
}

// DayView is a stored day with its exercises as the read side sees them.
type DayView struct {
	Workout   *domain.DailyWorkout
	Exercises []notation.Prescription
}

type WeekView struct {
	Week  *domain.Week
	Phase *domain.Phase
	Days  []*DayView
}

// TodayView is the plan's schedule for one date. Week is nil when the date
// falls outside the plan.
type TodayView struct {
	Date time.Time
	Plan *domain.Plan
	Week *domain.Week
	Days []*DayView
}

type RunView struct {
	Run    *domain.CompileRun
	Errors []*domain.CompileError
}
