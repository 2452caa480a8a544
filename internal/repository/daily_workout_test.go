package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/trainplan/internal/db"
	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/notation"
	"github.com/alexanderramin/trainplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWeek(t *testing.T, database db.DBTX, number int) (*domain.Plan, *domain.Week) {
	t.Helper()
	ctx := context.Background()
	plan := testutil.NewTestPlan("Days")
	require.NoError(t, NewSQLPlanRepo(database).Create(ctx, plan))
	week := testutil.NewTestWeek(plan.ID, number)
	require.NoError(t, NewSQLWeekRepo(database).Create(ctx, week))
	return plan, week
}

func TestDailyWorkoutRepo_RoundTripsAllFields(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	_, week := seedWeek(t, database, 1)
	repo := NewSQLDailyWorkoutRepo(database)

	dist, gain, mins := 4.5, 300, 20
	d := testutil.NewTestWorkout(week, 1)
	d.WorkoutType = domain.WorkoutRunStrength
	d.RunType = "Easy Run"
	d.RunDistance = &dist
	d.RunElevationGain = &gain
	d.RunEffort = "conversational"
	d.RunNotes = "flat loop"
	d.RowingDurationMin = &mins
	d.RowingStrokeRate = "20-22 spm"
	d.StrengthSession = "PT Foundation"
	d.Exercises = notation.DecodeLine("Clamshells 3x15-20 each side")
	d.Notes = "PT FOUNDATION PROGRAM\n- Clamshells 3x15-20 each side"
	require.NoError(t, repo.Create(ctx, d))

	list, err := repo.ListByWeek(ctx, week.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, d.WorkoutDate, got.WorkoutDate)
	assert.Equal(t, domain.WorkoutRunStrength, got.WorkoutType)
	assert.Equal(t, "Easy Run", got.RunType)
	assert.Equal(t, 4.5, *got.RunDistance)
	assert.Equal(t, 300, *got.RunElevationGain)
	assert.Equal(t, 20, *got.RowingDurationMin)
	assert.Equal(t, "20-22 spm", got.RowingStrokeRate)
	assert.Equal(t, d.Exercises, got.Exercises)
	assert.Equal(t, d.Notes, got.Notes)
}

func TestDailyWorkoutRepo_RestDayHasNoExercises(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	_, week := seedWeek(t, database, 1)
	repo := NewSQLDailyWorkoutRepo(database)

	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkout(week, 0)))
	list, err := repo.ListByWeek(ctx, week.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Exercises)
	assert.Nil(t, list[0].RunDistance)
}

func TestDailyWorkoutRepo_ListByDateAndCount(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	plan, week := seedWeek(t, database, 1)
	repo := NewSQLDailyWorkoutRepo(database)

	for pos := 0; pos < 3; pos++ {
		require.NoError(t, repo.Create(ctx, testutil.NewTestWorkout(week, pos)))
	}

	list, err := repo.ListByDate(ctx, plan.ID, time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Position)

	list, err = repo.ListByDate(ctx, "other-plan", time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, list)

	n, err := repo.CountByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDailyWorkoutRepo_DeleteByWeek(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	_, week := seedWeek(t, database, 1)
	repo := NewSQLDailyWorkoutRepo(database)

	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkout(week, 0)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkout(week, 1)))

	n, err := repo.DeleteByWeek(ctx, week.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	list, err := repo.ListByWeek(ctx, week.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDailyWorkoutRepo_Constraints(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	_, week := seedWeek(t, database, 1)
	repo := NewSQLDailyWorkoutRepo(database)

	d := testutil.NewTestWorkout(week, 0)
	require.NoError(t, repo.Create(ctx, d))

	// Same position under a fresh ID still collides.
	dup := testutil.NewTestWorkout(week, 0)
	dup.ID = "another-id"
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))

	bad := testutil.NewTestWorkout(week, 1)
	bad.WorkoutType = "swim"
	err = repo.Create(ctx, bad)
	require.Error(t, err)
	assert.False(t, db.IsUniqueViolation(err))
}
