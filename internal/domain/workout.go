package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/trainplan/internal/notation"
	"github.com/google/uuid"
)

// dayNamespace scopes deterministic daily workout IDs.
var dayNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://trainplan.dev/daily-workout"))

type DailyWorkout struct {
	ID          string
	WeekID      string
	WorkoutDate time.Time
	DayOfWeek   string
	Position    int
	WorkoutType WorkoutType

	RunType          string
	RunDistance      *float64
	RunElevationGain *int
	RunEffort        string
	RunNotes         string

	RowingDurationMin *int
	RowingStrokeRate  string

	StrengthSession string
	Exercises       []notation.Prescription
	Notes           string

	CreatedAt time.Time
}

// DailyWorkoutID derives a stable ID from the owning week, the date and the
// day's position, so recompiling an unchanged week reproduces the same rows.
func DailyWorkoutID(weekID string, date time.Time, position int) string {
	name := fmt.Sprintf("%s/%s/%d", weekID, date.Format(DateLayout), position)
	return uuid.NewSHA1(dayNamespace, []byte(name)).String()
}

// Summary is a short one-line description used by list views.
func (d *DailyWorkout) Summary() string {
	switch d.WorkoutType {
	case WorkoutRun, WorkoutRunStrength:
		s := CoalesceStr(d.RunType, "Run")
		if d.RunDistance != nil {
			s = fmt.Sprintf("%s %.1f mi", s, *d.RunDistance)
		}
		if d.WorkoutType == WorkoutRunStrength {
			s += " + " + CoalesceStr(d.StrengthSession, "Strength")
		}
		return s
	case WorkoutRowing:
		if d.RowingDurationMin != nil {
			return fmt.Sprintf("Row %d min", *d.RowingDurationMin)
		}
		return "Row"
	case WorkoutStrength:
		return CoalesceStr(d.StrengthSession, "Strength")
	default:
		return "Rest"
	}
}
