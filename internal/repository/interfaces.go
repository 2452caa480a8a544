package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/trainplan/internal/domain"
)

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	GetByName(ctx context.Context, name string) (*domain.Plan, error)
	GetActive(ctx context.Context) (*domain.Plan, error)
	SetCurrentWeek(ctx context.Context, id string, week int) error
}

type PhaseRepo interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByName(ctx context.Context, planID, name string) (*domain.Phase, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Phase, error)
}

type WeekRepo interface {
	Create(ctx context.Context, w *domain.Week) error
	GetByID(ctx context.Context, id string) (*domain.Week, error)
	GetByNumber(ctx context.Context, planID string, number int) (*domain.Week, error)
	GetByDate(ctx context.Context, planID string, date time.Time) (*domain.Week, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Week, error)
	Update(ctx context.Context, w *domain.Week) error
}

type DailyWorkoutRepo interface {
	Create(ctx context.Context, d *domain.DailyWorkout) error
	ListByWeek(ctx context.Context, weekID string) ([]*domain.DailyWorkout, error)
	ListByDate(ctx context.Context, planID string, date time.Time) ([]*domain.DailyWorkout, error)
	DeleteByWeek(ctx context.Context, weekID string) (int64, error)
	CountByPlan(ctx context.Context, planID string) (int, error)
}

type CompileRunRepo interface {
	Create(ctx context.Context, r *domain.CompileRun) error
	Finish(ctx context.Context, r *domain.CompileRun) error
	GetByID(ctx context.Context, id string) (*domain.CompileRun, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.CompileRun, error)
	AddError(ctx context.Context, e *domain.CompileError) error
	ListErrors(ctx context.Context, runID string) ([]*domain.CompileError, error)
}
