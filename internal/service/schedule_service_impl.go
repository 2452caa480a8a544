package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/trainplan/internal/db"
	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/notation"
	"github.com/alexanderramin/trainplan/internal/repository"
)

type scheduleService struct {
	plans    repository.PlanRepo
	phases   repository.PhaseRepo
	weeks    repository.WeekRepo
	days     repository.DailyWorkoutRepo
	runs     repository.CompileRunRepo
	dec      *notation.Decoder
	observer UseCaseObserver
}

// NewScheduleService serves the stored schedule of the active plan. Stored
// notes are re-parsed with dec, which should be the decoder the compiler
// used; nil means notation.Default.
func NewScheduleService(conn db.DBTX, dec *notation.Decoder, observers ...UseCaseObserver) ScheduleService {
	if dec == nil {
		dec = notation.Default
	}
	return &scheduleService{
		plans:    repository.NewSQLPlanRepo(conn),
		phases:   repository.NewSQLPhaseRepo(conn),
		weeks:    repository.NewSQLWeekRepo(conn),
		days:     repository.NewSQLDailyWorkoutRepo(conn),
		runs:     repository.NewSQLCompileRunRepo(conn),
		dec:      dec,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) activePlan(ctx context.Context) (*domain.Plan, error) {
	plan, err := s.plans.GetActive(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("no plan compiled yet: %w", err)
	}
	return plan, err
}

func (s *scheduleService) ActivePlan(ctx context.Context) (*PlanView, error) {
	plan, err := s.activePlan(ctx)
	if err != nil {
		return nil, err
	}
	phases, err := s.phases.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	weeks, err := s.weeks.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	days, err := s.days.CountByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	return &PlanView{Plan: plan, Phases: phases, Weeks: len(weeks), Days: days}, nil
}

func (s *scheduleService) ListWeeks(ctx context.Context) ([]*domain.Week, error) {
	plan, err := s.activePlan(ctx)
	if err != nil {
		return nil, err
	}
	return s.weeks.ListByPlan(ctx, plan.ID)
}

func (s *scheduleService) GetWeek(ctx context.Context, number int) (*WeekView, error) {
	plan, err := s.activePlan(ctx)
	if err != nil {
		return nil, err
	}
	if err := plan.ValidateWeek(number); err != nil {
		return nil, err
	}
	week, err := s.weeks.GetByNumber(ctx, plan.ID, number)
	if err != nil {
		return nil, fmt.Errorf("week %d: %w", number, err)
	}
	view := &WeekView{Week: week}

	if week.PhaseID != nil {
		phases, err := s.phases.ListByPlan(ctx, plan.ID)
		if err != nil {
			return nil, err
		}
		for _, ph := range phases {
			if ph.ID == *week.PhaseID {
				view.Phase = ph
				break
			}
		}
	}

	days, err := s.days.ListByWeek(ctx, week.ID)
	if err != nil {
		return nil, err
	}
	view.Days = s.views(days)
	return view, nil
}

// GetDay returns the active plan's workouts on date. Exercises from a PT
// foundation block in the notes are re-parsed; the rest come from the
// stored column.
func (s *scheduleService) GetDay(ctx context.Context, date time.Time) (views []*DayView, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "get_day", started, err, map[string]any{
			"date": date.Format(domain.DateLayout), "workouts": len(views),
		})
	}()

	plan, err := s.activePlan(ctx)
	if err != nil {
		return nil, err
	}
	days, err := s.days.ListByDate(ctx, plan.ID, domain.DateOnly(date))
	if err != nil {
		return nil, err
	}
	return s.views(days), nil
}

func (s *scheduleService) Today(ctx context.Context, now time.Time) (*TodayView, error) {
	plan, err := s.activePlan(ctx)
	if err != nil {
		return nil, err
	}
	date := domain.DateOnly(now)
	view := &TodayView{Date: date, Plan: plan}

	week, err := s.weeks.GetByDate(ctx, plan.ID, date)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return view, nil
	case err != nil:
		return nil, err
	}
	view.Week = week

	days, err := s.days.ListByDate(ctx, plan.ID, date)
	if err != nil {
		return nil, err
	}
	view.Days = s.views(days)
	return view, nil
}

func (s *scheduleService) SetCurrentWeek(ctx context.Context, number int) error {
	plan, err := s.activePlan(ctx)
	if err != nil {
		return err
	}
	if err := plan.ValidateWeek(number); err != nil {
		return err
	}
	return s.plans.SetCurrentWeek(ctx, plan.ID, number)
}

func (s *scheduleService) ListRuns(ctx context.Context, limit int) ([]*domain.CompileRun, error) {
	return s.runs.ListRecent(ctx, limit)
}

func (s *scheduleService) GetRun(ctx context.Context, id string) (*RunView, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	errs, err := s.runs.ListErrors(ctx, id)
	if err != nil {
		return nil, err
	}
	return &RunView{Run: run, Errors: errs}, nil
}

func (s *scheduleService) views(days []*domain.DailyWorkout) []*DayView {
	out := make([]*DayView, 0, len(days))
	for _, d := range days {
		out = append(out, &DayView{Workout: d, Exercises: s.dec.WithFoundation(d.Exercises, d.Notes)})
	}
	return out
}
