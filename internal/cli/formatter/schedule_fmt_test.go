package formatter

import (
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/importer"
	"github.com/alexanderramin/trainplan/internal/notation"
	"github.com/alexanderramin/trainplan/internal/service"
	"github.com/stretchr/testify/assert"
)

func samplePlan() *domain.Plan {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	return &domain.Plan{
		ID: "plan-1", Name: "Spring 50K", Goal: "Finish strong",
		StartDate: start, EndDate: start.AddDate(0, 0, 83),
		TotalWeeks: 12, CurrentWeek: 2,
	}
}

func sampleDay() *service.DayView {
	dist, gain := 4.0, 300
	return &service.DayView{
		Workout: &domain.DailyWorkout{
			WorkoutDate:      time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
			DayOfWeek:        "Tuesday",
			WorkoutType:      domain.WorkoutRunStrength,
			RunType:          "Easy Run",
			RunDistance:      &dist,
			RunElevationGain: &gain,
			RunEffort:        "easy",
			StrengthSession:  "PT Foundation",
		},
		Exercises: []notation.Prescription{
			{Name: "Clamshells", Sets: 3, Value: notation.Value{Kind: notation.KindReps, Count: 15, Text: "15"}},
			{Value: notation.Value{Kind: notation.KindText, Text: "hop drills"}},
		},
	}
}

func TestFormatDayDetail(t *testing.T) {
	out := FormatDayDetail(sampleDay())

	assert.Contains(t, out, "Tue Mar 4")
	assert.Contains(t, out, "RUN+STRENGTH")
	assert.Contains(t, out, "Easy Run")
	assert.Contains(t, out, "4 mi")
	assert.Contains(t, out, "300 ft")
	assert.Contains(t, out, "PT Foundation")
	assert.Contains(t, out, "Clamshells: 3 x 15 reps")
	assert.Contains(t, out, "hop drills")
}

func TestFormatDayDetail_RowingAndRest(t *testing.T) {
	mins := 30
	row := &service.DayView{Workout: &domain.DailyWorkout{
		WorkoutDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), DayOfWeek: "Wednesday",
		WorkoutType: domain.WorkoutRowing, RowingDurationMin: &mins, RowingStrokeRate: "20-22",
	}}
	assert.Contains(t, FormatDayDetail(row), "30 min @ 20-22 spm")

	rest := &service.DayView{Workout: &domain.DailyWorkout{
		WorkoutDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), DayOfWeek: "Monday",
		WorkoutType: domain.WorkoutRest,
	}}
	out := FormatDayDetail(rest)
	assert.Contains(t, out, "REST")
	assert.Contains(t, out, "recovery day")
}

func TestFormatWeeks_MarksCurrentWeek(t *testing.T) {
	plan := samplePlan()
	phaseID := "ph-1"
	phases := []*domain.Phase{{ID: phaseID, Name: "Foundation"}}
	dist := 18.0
	weeks := []*domain.Week{
		{WeekNumber: 1, PhaseID: &phaseID, StartDate: plan.StartDate, EndDate: plan.StartDate.AddDate(0, 0, 6), Theme: "Base", TargetDistance: &dist},
		{WeekNumber: 2, StartDate: plan.StartDate.AddDate(0, 0, 7), EndDate: plan.StartDate.AddDate(0, 0, 13)},
	}

	out := FormatWeeks(plan, phases, weeks)
	assert.Contains(t, out, "SPRING 50K")
	assert.Contains(t, out, "Foundation")
	assert.Contains(t, out, "18 mi")
	assert.Contains(t, out, "▸ 2")
	assert.NotContains(t, out, "▸ 1")
}

func TestFormatWeeks_Empty(t *testing.T) {
	assert.Contains(t, FormatWeeks(samplePlan(), nil, nil), "no weeks stored")
}

func TestFormatPlan(t *testing.T) {
	plan := samplePlan()
	pv := &service.PlanView{
		Plan:   plan,
		Phases: []*domain.Phase{{Name: "Foundation", WeekStart: 1, WeekEnd: 4, StartDate: plan.StartDate, EndDate: plan.StartDate.AddDate(0, 0, 27), Focus: "Base"}},
		Weeks:  2,
		Days:   10,
	}

	out := FormatPlan(pv, plan.StartDate.AddDate(0, 0, 9))
	assert.Contains(t, out, "Spring 50K")
	assert.Contains(t, out, "Finish strong")
	assert.Contains(t, out, "2 stored of 12")
	assert.Contains(t, out, "Calendar week")
	assert.Contains(t, out, "1–4")
}

func TestFormatToday_OutsidePlan(t *testing.T) {
	plan := samplePlan()
	tv := &service.TodayView{Date: plan.StartDate.AddDate(0, 0, -3), Plan: plan}
	assert.Contains(t, FormatToday(tv, tv.Date), "outside Spring 50K")
}

func TestFormatCompileReport(t *testing.T) {
	run := &domain.CompileRun{ID: "0123456789abcdef", Source: "plan.md", Status: domain.CompilePartial, WeeksProcessed: 2, DaysInserted: 9, DaysFailed: 1}
	report := &service.CompileReport{
		Run:  run,
		Plan: samplePlan(),
		Weeks: []service.WeekReport{
			{Number: 1, Inserted: 6, Failed: 1},
			{Number: 2, Existing: true, Replaced: 3, Inserted: 3},
			{Number: 3, Err: errors.New("disk full\nstack")},
		},
		Warnings: []importer.Warning{{Week: 2, Line: 40, Message: "week has no day sections"}},
	}

	out := FormatCompileReport(report)
	assert.Contains(t, out, "Partial")
	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "replaced")
	assert.Contains(t, out, "disk full")
	assert.NotContains(t, out, "stack")
	assert.Contains(t, out, "1 warning(s)")
	assert.Contains(t, out, "week has no day sections")
}

func TestFormatDecoded(t *testing.T) {
	out := FormatDecoded([]DecodedLine{{
		Input: "Deadlift 4x6 @ 65%",
		Exercises: []notation.Prescription{
			{Name: "Deadlift", Sets: 4, Value: notation.Value{Kind: notation.KindReps, Count: 6, Text: "6"}, Load: "65", LoadUnit: "%"},
		},
	}, {Input: "", Exercises: nil}})

	assert.Contains(t, out, "Deadlift 4x6 @ 65%")
	assert.Contains(t, out, "6 reps")
	assert.Contains(t, out, "65%")
	assert.Contains(t, out, "nothing to decode")
}
