package domain

import "time"

// CompileRun records one compilation of a plan document.
type CompileRun struct {
	ID             string
	Source         string
	PlanID         *string
	Status         CompileStatus
	WeeksProcessed int
	WeeksFailed    int
	DaysInserted   int
	DaysFailed     int
	StartedAt      time.Time
	FinishedAt     *time.Time
}

// CompileError is one failed record of a compile run, keyed by the
// identity of the record that failed.
type CompileError struct {
	ID          string
	RunID       string
	WeekNumber  int
	DayName     string
	WorkoutDate *time.Time
	RawLine     string
	Message     string
	CreatedAt   time.Time
}

// Finish stamps the run with its final status derived from the counts.
func (r *CompileRun) Finish(at time.Time, cancelled bool) {
	r.FinishedAt = &at
	switch {
	case cancelled:
		r.Status = CompileCancelled
	case r.WeeksProcessed == 0 && r.WeeksFailed > 0:
		r.Status = CompileFailed
	case r.WeeksFailed > 0 || r.DaysFailed > 0:
		r.Status = CompilePartial
	default:
		r.Status = CompileCompleted
	}
}
