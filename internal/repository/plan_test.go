package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/trainplan/internal/db"
	"github.com/alexanderramin/trainplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLPlanRepo(database)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Spring 50K")
	require.NoError(t, repo.Create(ctx, plan))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring 50K", fetched.Name)
	assert.Equal(t, testutil.SampleStart, fetched.StartDate)
	assert.Equal(t, plan.EndDate, fetched.EndDate)
	assert.Equal(t, 12, fetched.TotalWeeks)
	assert.Equal(t, 1, fetched.CurrentWeek)

	byName, err := repo.GetByName(ctx, "Spring 50K")
	require.NoError(t, err)
	assert.Equal(t, plan.ID, byName.ID)
}

func TestPlanRepo_NotFound(t *testing.T) {
	repo := NewSQLPlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetActive(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.SetCurrentWeek(ctx, "nonexistent", 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_DuplicateNameIsUniqueViolation(t *testing.T) {
	repo := NewSQLPlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestPlan("Same")))
	err := repo.Create(ctx, testutil.NewTestPlan("Same"))
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))
}

func TestPlanRepo_GetActiveReturnsNewest(t *testing.T) {
	repo := NewSQLPlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	older := testutil.NewTestPlan("Older")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := testutil.NewTestPlan("Newer")
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, active.ID)
}

func TestPlanRepo_SetCurrentWeek(t *testing.T) {
	repo := NewSQLPlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	plan := testutil.NewTestPlan("Cursor")
	require.NoError(t, repo.Create(ctx, plan))
	require.NoError(t, repo.SetCurrentWeek(ctx, plan.ID, 5))

	fetched, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, fetched.CurrentWeek)
}

func TestNotFound_WrapsOtherErrors(t *testing.T) {
	err := notFound("plan", errors.New("disk on fire"))
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "scanning plan")
}
