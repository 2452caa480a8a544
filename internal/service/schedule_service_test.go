package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/trainplan/internal/notation"
	"github.com/alexanderramin/trainplan/internal/repository"
	"github.com/alexanderramin/trainplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_NoPlan(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.schedule.ListWeeks(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.schedule.Today(ctx, time.Now())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, f.schedule.SetCurrentWeek(ctx, 2), repository.ErrNotFound)
}

func TestGetDay_ReparsesFoundationBlock(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.compile(t)

	tuesday := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	views, err := f.schedule.GetDay(ctx, tuesday)
	require.NoError(t, err)
	require.Len(t, views, 1)
	v := views[0]
	assert.Equal(t, v.Workout.Exercises, v.Exercises, "re-parse must agree with compile-time decoding")
	assert.Equal(t, notation.ParseFoundationBlock(v.Workout.Notes), v.Exercises)
	require.Len(t, v.Exercises, 4)

	// Exercises are served from the notes, not the stored column.
	_, err = f.db.ExecContext(ctx, `UPDATE daily_workouts SET exercises = '[]' WHERE workout_date = ?`, "2025-03-04")
	require.NoError(t, err)
	views, err = f.schedule.GetDay(ctx, tuesday.Add(9*time.Hour))
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Empty(t, views[0].Workout.Exercises)
	assert.Len(t, views[0].Exercises, 4)
}

func TestGetDay_UsesStoredExercisesWithoutBlock(t *testing.T) {
	f := setup(t)
	f.compile(t)

	views, err := f.schedule.GetDay(context.Background(), time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Heavy Day 1", views[0].Workout.StrengthSession)
	require.Len(t, views[0].Exercises, 2)
	assert.Equal(t, "Deadlift", views[0].Exercises[0].Name)
}

func TestToday(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.compile(t)

	view, err := f.schedule.Today(ctx, time.Date(2025, time.March, 8, 7, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, view.Week)
	assert.Equal(t, 1, view.Week.WeekNumber)
	require.Len(t, view.Days, 1)
	assert.Equal(t, "Long Run", view.Days[0].Workout.RunType)

	view, err = f.schedule.Today(ctx, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, view.Week)
	assert.Empty(t, view.Days)
}

func TestSetCurrentWeek(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.compile(t)

	require.NoError(t, f.schedule.SetCurrentWeek(ctx, 3))
	view, err := f.schedule.ActivePlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Plan.CurrentWeek)

	assert.Error(t, f.schedule.SetCurrentWeek(ctx, 0))
	assert.Error(t, f.schedule.SetCurrentWeek(ctx, 13))
}

func TestGetWeek_Errors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.compile(t)

	_, err := f.schedule.GetWeek(ctx, 5)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.schedule.GetWeek(ctx, 40)
	assert.Error(t, err)
}

func TestListRuns_NewestFirst(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	first := f.compile(t)
	second := f.compile(t)

	runs, err := f.schedule.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	ids := []string{runs[0].ID, runs[1].ID}
	assert.ElementsMatch(t, []string{first.Run.ID, second.Run.ID}, ids)
}

const heavyDayWithFoundationDoc = `# Strength Block

## Week 1 - Base

### Wednesday, March 5

**Strength - Heavy Day 1**
- Warm-up: 10 min easy bike
- Main: Deadlift 4x6 (65%)
- Plank 3x45sec

PT FOUNDATION PROGRAM
- Clamshells 3x15-20 each side
- Side plank 3x30sec each side

**Evening**
- Easy Run: 3 miles, easy
`

func TestGetDay_HeavyDayKeepsSessionAlongsideFoundation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.path = testutil.WriteDocument(t, heavyDayWithFoundationDoc)
	f.compile(t)

	views, err := f.schedule.GetDay(ctx, time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, views, 1)
	v := views[0]
	assert.Equal(t, "Heavy Day 1", v.Workout.StrengthSession)
	assert.Equal(t, v.Workout.Exercises, v.Exercises, "read side must agree with compile-time decoding")

	var names []string
	for _, p := range v.Exercises {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Deadlift", "Plank", "Clamshells", "Side plank"}, names)
}
