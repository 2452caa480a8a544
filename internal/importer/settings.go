package importer

import (
	"fmt"
	"os"

	"github.com/alexanderramin/trainplan/internal/notation"
)

// Settings carries the plan-level facts a document does not state itself.
type Settings struct {
	PlanName string
	Goal     string
	// StartDate is the first day of week 1, as YYYY-MM-DD.
	StartDate string
	// Year resolves explicit "<Month> <Day>" mentions. Zero means the year
	// of StartDate.
	Year int
	// TotalWeeks of zero means the highest week number in the document.
	TotalWeeks int
	Phases     []PhaseSetting
	// Decoder of nil means notation.Default.
	Decoder *notation.Decoder
}

// PhaseSetting defines one named phase and its inclusive week range.
type PhaseSetting struct {
	Name      string `mapstructure:"name" yaml:"name" validate:"required"`
	WeekStart int    `mapstructure:"week_start" yaml:"week_start" validate:"gte=1"`
	WeekEnd   int    `mapstructure:"week_end" yaml:"week_end" validate:"gtefield=WeekStart"`
	Focus     string `mapstructure:"focus" yaml:"focus"`
}

// DefaultPhases is the Foundation / Durability / Specificity split of a
// twelve-week plan.
func DefaultPhases() []PhaseSetting {
	return []PhaseSetting{
		{Name: "Foundation", WeekStart: 1, WeekEnd: 4, Focus: "Aerobic base and tissue tolerance"},
		{Name: "Durability", WeekStart: 5, WeekEnd: 8, Focus: "Volume, hills and strength under fatigue"},
		{Name: "Specificity", WeekStart: 9, WeekEnd: 12, Focus: "Race-specific work and taper"},
	}
}

// LoadDocument reads a plan document. A missing file is an error the caller
// cannot recover from; the wrapped error satisfies errors.Is(err, os.ErrNotExist).
func LoadDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan document %s: %w", path, err)
	}
	return data, nil
}
