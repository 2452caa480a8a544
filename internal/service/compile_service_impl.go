package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/alexanderramin/trainplan/internal/db"
	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/importer"
	"github.com/alexanderramin/trainplan/internal/repository"
	"github.com/google/uuid"
)

type compileService struct {
	conn     db.DBTX
	plans    repository.PlanRepo
	phases   repository.PhaseRepo
	weeks    repository.WeekRepo
	runs     repository.CompileRunRepo
	uow      db.UnitOfWork
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewCompileService persists compiled documents. conn serves the plan, phase
// and run bookkeeping; every week is written inside its own uow transaction.
func NewCompileService(conn db.DBTX, uow db.UnitOfWork, logger *slog.Logger, observers ...UseCaseObserver) CompileService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &compileService{
		conn:     conn,
		plans:    repository.NewSQLPlanRepo(conn),
		phases:   repository.NewSQLPhaseRepo(conn),
		weeks:    repository.NewSQLWeekRepo(conn),
		runs:     repository.NewSQLCompileRunRepo(conn),
		uow:      uow,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *compileService) Preview(ctx context.Context, path string, settings importer.Settings) (*CompilePreview, error) {
	gen, err := load(path, settings)
	if err != nil {
		return nil, err
	}
	preview := &CompilePreview{Generated: gen}

	plan, err := s.plans.GetByName(ctx, settings.PlanName)
	if errors.Is(err, repository.ErrNotFound) {
		return preview, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up plan: %w", err)
	}
	stored, err := s.weeks.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	have := make(map[int]bool, len(stored))
	for _, w := range stored {
		have[w.WeekNumber] = true
	}
	for _, gw := range gen.Weeks {
		if have[gw.Week.WeekNumber] {
			preview.ExistingWeeks = append(preview.ExistingWeeks, gw.Week.WeekNumber)
		}
	}
	sort.Ints(preview.ExistingWeeks)
	return preview, nil
}

func (s *compileService) Compile(ctx context.Context, path string, settings importer.Settings) (report *CompileReport, err error) {
	started := time.Now().UTC()
	defer func() {
		fields := map[string]any{"source": path}
		if report != nil {
			fields["weeks_processed"] = report.Run.WeeksProcessed
			fields["weeks_failed"] = report.Run.WeeksFailed
			fields["days_inserted"] = report.Run.DaysInserted
			fields["days_failed"] = report.Run.DaysFailed
		}
		observe(context.WithoutCancel(ctx), s.observer, "compile_plan", started, err, fields)
	}()

	gen, err := load(path, settings)
	if err != nil {
		return nil, err
	}
	for _, w := range gen.Warnings {
		s.logger.WarnContext(ctx, "plan document warning", "week", w.Week, "day", w.Day, "line", w.Line, "message", w.Message)
	}

	run := &domain.CompileRun{
		ID:        uuid.New().String(),
		Source:    path,
		Status:    domain.CompileRunning,
		StartedAt: started,
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("recording compile run: %w", err)
	}
	report = &CompileReport{Run: run, Warnings: gen.Warnings}

	var failures []*domain.CompileError
	finish := func(cancelled bool) error {
		// Bookkeeping outlives a cancelled compile.
		ctx := context.WithoutCancel(ctx)
		for _, f := range failures {
			if err := s.runs.AddError(ctx, f); err != nil {
				return err
			}
		}
		run.Finish(time.Now().UTC(), cancelled)
		return s.runs.Finish(ctx, run)
	}

	plan, err := s.ensurePlan(ctx, gen)
	if err != nil {
		failures = append(failures, runError(run.ID, 0, "", nil, "", err))
		run.WeeksFailed = len(gen.Weeks)
		return report, errors.Join(err, finish(false))
	}
	report.Plan = plan
	run.PlanID = &plan.ID

	cancelled := false
	for i := range gen.Weeks {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		gw := &gen.Weeks[i]
		wr, dayFailures := s.compileWeek(ctx, run.ID, gw)
		failures = append(failures, dayFailures...)
		report.Weeks = append(report.Weeks, wr)

		if wr.Err != nil {
			run.WeeksFailed++
			run.DaysFailed += len(gw.Days)
			failures = append(failures, runError(run.ID, gw.Week.WeekNumber, "", nil, "", wr.Err))
			s.logger.ErrorContext(ctx, "week failed", "week", gw.Week.WeekNumber, "line", gw.Line, "error", wr.Err)
			continue
		}
		run.WeeksProcessed++
		run.DaysInserted += wr.Inserted
		run.DaysFailed += wr.Failed
		s.logger.InfoContext(ctx, "week compiled",
			"week", wr.Number, "existing", wr.Existing, "replaced", wr.Replaced,
			"inserted", wr.Inserted, "failed", wr.Failed)
	}

	if err := finish(cancelled); err != nil {
		return report, fmt.Errorf("finishing compile run: %w", err)
	}
	if cancelled {
		return report, fmt.Errorf("compile cancelled after %d weeks: %w", len(report.Weeks), ctx.Err())
	}
	return report, nil
}

// ensurePlan inserts the plan and its phases, reusing rows that already
// exist under the same name.
func (s *compileService) ensurePlan(ctx context.Context, gen *importer.GeneratedPlan) (*domain.Plan, error) {
	plan := gen.Plan
	if err := s.plans.Create(ctx, plan); err != nil {
		if !db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("creating plan: %w", err)
		}
		existing, getErr := s.plans.GetByName(ctx, plan.Name)
		if getErr != nil {
			return nil, fmt.Errorf("fetching existing plan %q: %w", plan.Name, getErr)
		}
		if !existing.StartDate.Equal(plan.StartDate) {
			s.logger.WarnContext(ctx, "stored plan has a different start date; week dates follow the settings",
				"plan", existing.Name,
				"stored", existing.StartDate.Format(domain.DateLayout),
				"settings", plan.StartDate.Format(domain.DateLayout))
		}
		gen.BindPlan(existing.ID)
		plan = existing
	}

	for _, ph := range gen.Phases {
		if err := s.phases.Create(ctx, ph); err != nil {
			if !db.IsUniqueViolation(err) {
				return nil, fmt.Errorf("creating phase %q: %w", ph.Name, err)
			}
			existing, getErr := s.phases.GetByName(ctx, plan.ID, ph.Name)
			if getErr != nil {
				return nil, fmt.Errorf("fetching existing phase %q: %w", ph.Name, getErr)
			}
			gen.BindPhase(ph.Name, existing.ID)
		}
	}
	return plan, nil
}

// compileWeek writes one week in a single transaction. A stored week is
// updated in place and its days replaced. Each day is inserted inside its
// own savepoint so a failing day is recorded without losing the others.
func (s *compileService) compileWeek(ctx context.Context, runID string, gw *importer.GeneratedWeek) (WeekReport, []*domain.CompileError) {
	wr := WeekReport{Number: gw.Week.WeekNumber}
	var failures []*domain.CompileError

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		weeks := repository.NewSQLWeekRepo(tx)
		days := repository.NewSQLDailyWorkoutRepo(tx)

		wr.Existing, wr.Replaced, wr.Inserted, wr.Failed = false, 0, 0, 0
		failures = failures[:0]

		insertErr := db.WithSavepoint(ctx, tx, "week_insert", func(ctx context.Context) error {
			return weeks.Create(ctx, gw.Week)
		})
		switch {
		case insertErr == nil:
		case db.IsUniqueViolation(insertErr):
			existing, err := weeks.GetByNumber(ctx, gw.Week.PlanID, gw.Week.WeekNumber)
			if err != nil {
				return fmt.Errorf("fetching existing week %d: %w", gw.Week.WeekNumber, err)
			}
			gw.BindWeek(existing.ID)
			gw.Week.CreatedAt = existing.CreatedAt
			if err := weeks.Update(ctx, gw.Week); err != nil {
				return err
			}
			n, err := days.DeleteByWeek(ctx, existing.ID)
			if err != nil {
				return err
			}
			wr.Existing, wr.Replaced = true, n
		default:
			return insertErr
		}

		for i, gd := range gw.Days {
			err := db.WithSavepoint(ctx, tx, fmt.Sprintf("day_%d", i), func(ctx context.Context) error {
				return days.Create(ctx, gd.Workout)
			})
			if err != nil {
				wr.Failed++
				date := gd.Workout.WorkoutDate
				failures = append(failures, runError(runID, gw.Week.WeekNumber, gd.Workout.DayOfWeek, &date, firstLine(gd.Raw), err))
				s.logger.ErrorContext(ctx, "day failed",
					"week", gw.Week.WeekNumber,
					"day", gd.Workout.DayOfWeek,
					"date", date.Format(domain.DateLayout),
					"line", gd.Line,
					"raw", firstLine(gd.Raw),
					"error", err)
				continue
			}
			wr.Inserted++
		}
		return nil
	})
	if err != nil {
		wr.Err = err
		return wr, nil
	}
	return wr, failures
}

func load(path string, settings importer.Settings) (*importer.GeneratedPlan, error) {
	src, err := importer.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	gen, err := importer.Convert(src, settings)
	if err != nil {
		return nil, fmt.Errorf("converting plan document: %w", err)
	}
	return gen, nil
}

func runError(runID string, week int, day string, date *time.Time, raw string, err error) *domain.CompileError {
	return &domain.CompileError{
		ID:          uuid.New().String(),
		RunID:       runID,
		WeekNumber:  week,
		DayName:     day,
		WorkoutDate: date,
		RawLine:     raw,
		Message:     err.Error(),
		CreatedAt:   time.Now().UTC(),
	}
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
