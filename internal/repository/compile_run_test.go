package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRun(source string, started time.Time) *domain.CompileRun {
	return &domain.CompileRun{
		ID:        uuid.New().String(),
		Source:    source,
		Status:    domain.CompileRunning,
		StartedAt: started,
	}
}

func TestCompileRunRepo_CreateFinishGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Runs")
	require.NoError(t, NewSQLPlanRepo(database).Create(ctx, plan))

	repo := NewSQLCompileRunRepo(database)
	run := newRun("plan.md", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, run))

	fetched, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CompileRunning, fetched.Status)
	assert.Nil(t, fetched.FinishedAt)
	assert.Nil(t, fetched.PlanID)

	run.PlanID = &plan.ID
	run.WeeksProcessed, run.DaysInserted, run.DaysFailed = 2, 9, 1
	run.Finish(time.Now().UTC(), false)
	require.NoError(t, repo.Finish(ctx, run))

	fetched, err = repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CompilePartial, fetched.Status)
	require.NotNil(t, fetched.FinishedAt)
	require.NotNil(t, fetched.PlanID)
	assert.Equal(t, plan.ID, *fetched.PlanID)
	assert.Equal(t, 9, fetched.DaysInserted)
	assert.Equal(t, 1, fetched.DaysFailed)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompileRunRepo_ListRecent(t *testing.T) {
	repo := NewSQLCompileRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Create(ctx, newRun("plan.md", base.Add(time.Duration(i)*time.Hour))))
	}

	runs, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, base.Add(3*time.Hour), runs[0].StartedAt)
	assert.Equal(t, base.Add(time.Hour), runs[2].StartedAt)
}

func TestCompileRunRepo_Errors(t *testing.T) {
	repo := NewSQLCompileRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	run := newRun("plan.md", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, run))

	day := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AddError(ctx, &domain.CompileError{
		ID: uuid.New().String(), RunID: run.ID, WeekNumber: 2, DayName: "Tuesday",
		WorkoutDate: &day, RawLine: "### Tuesday", Message: "boom", CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, repo.AddError(ctx, &domain.CompileError{
		ID: uuid.New().String(), RunID: run.ID, WeekNumber: 1, Message: "week failed", CreatedAt: time.Now().UTC(),
	}))

	errs, err := repo.ListErrors(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, errs, 2)
	assert.Equal(t, 1, errs[0].WeekNumber)
	assert.Nil(t, errs[0].WorkoutDate)
	assert.Equal(t, "Tuesday", errs[1].DayName)
	require.NotNil(t, errs[1].WorkoutDate)
	assert.Equal(t, day, *errs[1].WorkoutDate)
}
