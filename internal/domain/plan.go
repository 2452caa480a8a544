package domain

import (
	"fmt"
	"time"
)

// DateLayout is the storage and display format for calendar dates.
const DateLayout = "2006-01-02"

type Plan struct {
	ID          string
	Name        string
	Goal        string
	StartDate   time.Time
	EndDate     time.Time
	TotalWeeks  int
	CurrentWeek int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WeekOf returns the 1-based week number that contains date, or 0 when the
// date falls before the plan starts.
func (p *Plan) WeekOf(date time.Time) int {
	d := DateOnly(date).Sub(DateOnly(p.StartDate))
	if d < 0 {
		return 0
	}
	return int(d.Hours()/24)/7 + 1
}

// ValidateWeek checks n against the plan's week range.
func (p *Plan) ValidateWeek(n int) error {
	if n < 1 {
		return fmt.Errorf("week number must be positive, got %d", n)
	}
	if p.TotalWeeks > 0 && n > p.TotalWeeks {
		return fmt.Errorf("week %d is beyond the plan's %d weeks", n, p.TotalWeeks)
	}
	return nil
}

type Phase struct {
	ID        string
	PlanID    string
	Name      string
	WeekStart int
	WeekEnd   int
	StartDate time.Time
	EndDate   time.Time
	Focus     string
	CreatedAt time.Time
}

// Contains reports whether week number n belongs to the phase.
func (p *Phase) Contains(n int) bool {
	return n >= p.WeekStart && n <= p.WeekEnd
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
