package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/segment"
)

// Warning is a non-fatal finding about the document. Compilation goes on.
type Warning struct {
	Week    int
	Day     string
	Line    int
	Message string
}

func (w Warning) String() string {
	if w.Week == 0 {
		return w.Message
	}
	loc := fmt.Sprintf("week %d", w.Week)
	if w.Day != "" {
		loc += " " + w.Day
	}
	if w.Line > 0 {
		loc += fmt.Sprintf(" (line %d)", w.Line)
	}
	return loc + ": " + w.Message
}

// ValidateSettings checks the settings before conversion.
// Returns a slice of all validation errors found.
func ValidateSettings(s *Settings) []error {
	var errs []error

	if s.PlanName == "" {
		errs = append(errs, fmt.Errorf("plan.name is required"))
	}
	if s.StartDate == "" {
		errs = append(errs, fmt.Errorf("plan.start_date is required"))
	} else if _, err := time.Parse(domain.DateLayout, s.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("plan.start_date: invalid date format %q (expected YYYY-MM-DD)", s.StartDate))
	}
	if s.Year < 0 {
		errs = append(errs, fmt.Errorf("plan.year: must not be negative, got %d", s.Year))
	}
	if s.TotalWeeks < 0 {
		errs = append(errs, fmt.Errorf("plan.total_weeks: must not be negative, got %d", s.TotalWeeks))
	}
	errs = append(errs, validatePhases(s.Phases)...)

	return errs
}

func validatePhases(phases []PhaseSetting) []error {
	var errs []error
	names := make(map[string]bool)
	for i, p := range phases {
		prefix := fmt.Sprintf("plan.phases[%d]", i)
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if names[p.Name] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate phase %q", prefix, p.Name))
		}
		names[p.Name] = true
		if p.WeekStart < 1 || p.WeekEnd < p.WeekStart {
			errs = append(errs, fmt.Errorf("%s: invalid week range %d-%d", prefix, p.WeekStart, p.WeekEnd))
		}
	}

	sorted := make([]PhaseSetting, len(phases))
	copy(sorted, phases)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].WeekStart < sorted[j].WeekStart })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].WeekStart <= sorted[i-1].WeekEnd {
			errs = append(errs, fmt.Errorf("plan.phases: %q overlaps %q", sorted[i].Name, sorted[i-1].Name))
		}
	}
	return errs
}

// ValidateDocument reports structural problems of a segmented document.
// None of them stop compilation.
func ValidateDocument(doc segment.Document, totalWeeks int) []Warning {
	var warns []Warning
	if len(doc.Weeks) == 0 {
		return []Warning{{Message: "no \"## Week <N>\" sections found"}}
	}

	seen := make(map[int]bool)
	maxWeek := 0
	for _, w := range doc.Weeks {
		if seen[w.Number] {
			warns = append(warns, Warning{Week: w.Number, Line: w.Line, Message: "duplicate week number; later section ignored"})
			continue
		}
		seen[w.Number] = true
		if w.Number > maxWeek {
			maxWeek = w.Number
		}
		if w.Number < 1 {
			warns = append(warns, Warning{Week: w.Number, Line: w.Line, Message: "week numbers start at 1; section ignored"})
		}
		if totalWeeks > 0 && w.Number > totalWeeks {
			warns = append(warns, Warning{Week: w.Number, Line: w.Line, Message: fmt.Sprintf("week is beyond the plan's %d weeks", totalWeeks)})
		}
		if len(w.Days) == 0 {
			warns = append(warns, Warning{Week: w.Number, Line: w.Line, Message: "week has no day sections"})
		}
		days := make(map[string]bool)
		for _, d := range w.Days {
			if days[d.Name] {
				warns = append(warns, Warning{Week: w.Number, Day: d.Name, Line: d.Line, Message: "day appears more than once in the week"})
			}
			days[d.Name] = true
		}
	}

	for n := 1; n <= maxWeek; n++ {
		if !seen[n] {
			warns = append(warns, Warning{Week: n, Message: fmt.Sprintf("week %d is missing; week numbers should be dense", n)})
		}
	}
	return warns
}
