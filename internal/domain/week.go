package domain

import "time"

type Week struct {
	ID                  string
	PlanID              string
	PhaseID             *string
	WeekNumber          int
	StartDate           time.Time
	EndDate             time.Time
	Theme               string
	TargetDistance      *float64
	TargetElevationGain *int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Contains reports whether date lies within [StartDate, EndDate].
func (w *Week) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(w.StartDate)) && !d.After(DateOnly(w.EndDate))
}
