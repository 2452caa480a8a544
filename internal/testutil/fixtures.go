package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/importer"
	"github.com/google/uuid"
)

// SampleStart is the Monday that week 1 of SampleDocument begins on.
var SampleStart = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

// SampleDocument is a two-week plan covering every workout shape: rest, a
// run with a PT foundation block, rowing without an explicit date, a hill
// workout, a long run and a heavy strength day.
const SampleDocument = `# Spring Trail 50K Plan

Twelve weeks to the start line.

## Week 1 - Base Building (18 miles, 1,200 ft of gain)

Theme: Easy aerobic volume

### Monday, March 3

Rest or easy walk.

### Tuesday, March 4

- Easy Run: 4 miles, conversational
**Strength - PT Foundation**

PT FOUNDATION PROGRAM
- Clamshells 3x15-20 each side
- Side plank 3x30sec each side
- Lateral band walk 3 sets of 18ft (one direction)
- Single-leg RDL 3x8 each leg

### Wednesday

30 min row at 20-22 spm

### Thursday, March 6

Hill Workout: 5 miles with 6 x 60 sec hill repeats, 500 ft of gain, hard

### Friday, March 7

Rest

### Saturday, March 8

Long Run: 8 miles, 700 ft of gain, steady

### Sunday, March 9

**Strength - Heavy Day 1**
- Warm-up: 10 min easy bike, hip circles
- Main: Deadlift 4x6 (65%)
- Plank 3x45sec

## Week 2 - Build

### Monday, March 10

Rest

### Tuesday, March 11

Easy Run: 5 miles, easy

### Saturday, March 15

Long Run: 10 miles, steady
`

// SampleDayCount is the number of day sections in SampleDocument.
const SampleDayCount = 10

// SampleSettings returns settings that compile SampleDocument.
func SampleSettings() importer.Settings {
	return importer.Settings{
		PlanName:   "Spring 50K",
		Goal:       "Finish the Spring Trail 50K",
		StartDate:  SampleStart.Format(domain.DateLayout),
		Year:       2025,
		TotalWeeks: 12,
		Phases:     importer.DefaultPhases(),
	}
}

// WriteDocument writes content to a file in a per-test temp dir and
// returns its path.
func WriteDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing plan document: %v", err)
	}
	return path
}

// PlanOption customizes NewTestPlan.
type PlanOption func(*domain.Plan)

func WithStartDate(d time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.StartDate = d
		p.EndDate = d.AddDate(0, 0, 7*p.TotalWeeks-1)
	}
}

func WithTotalWeeks(n int) PlanOption {
	return func(p *domain.Plan) {
		p.TotalWeeks = n
		p.EndDate = p.StartDate.AddDate(0, 0, 7*n-1)
	}
}

func NewTestPlan(name string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC()
	p := &domain.Plan{
		ID:          uuid.New().String(),
		Name:        name,
		Goal:        "test",
		StartDate:   SampleStart,
		EndDate:     SampleStart.AddDate(0, 0, 7*12-1),
		TotalWeeks:  12,
		CurrentWeek: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestPhase(planID, name string, weekStart, weekEnd int) *domain.Phase {
	return &domain.Phase{
		ID:        uuid.New().String(),
		PlanID:    planID,
		Name:      name,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		StartDate: SampleStart.AddDate(0, 0, 7*(weekStart-1)),
		EndDate:   SampleStart.AddDate(0, 0, 7*weekEnd-1),
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestWeek(planID string, number int) *domain.Week {
	now := time.Now().UTC()
	start := SampleStart.AddDate(0, 0, 7*(number-1))
	return &domain.Week{
		ID:         uuid.New().String(),
		PlanID:     planID,
		WeekNumber: number,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 6),
		Theme:      "test week",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewTestWorkout returns a rest day of week at the given position.
func NewTestWorkout(week *domain.Week, position int) *domain.DailyWorkout {
	date := week.StartDate.AddDate(0, 0, position)
	return &domain.DailyWorkout{
		ID:          domain.DailyWorkoutID(week.ID, date, position),
		WeekID:      week.ID,
		WorkoutDate: date,
		DayOfWeek:   date.Weekday().String(),
		Position:    position,
		WorkoutType: domain.WorkoutRest,
		Notes:       "Rest",
		CreatedAt:   time.Now().UTC(),
	}
}
