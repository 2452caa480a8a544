package importer

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/trainplan/internal/calendar"
	"github.com/alexanderramin/trainplan/internal/classify"
	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/segment"
	"github.com/google/uuid"
)

// GeneratedPlan is a compiled document ready for persistence.
type GeneratedPlan struct {
	Plan     *domain.Plan
	Phases   []*domain.Phase
	Weeks    []GeneratedWeek
	Warnings []Warning
}

// GeneratedWeek is one week and its days in document order.
type GeneratedWeek struct {
	Week      *domain.Week
	PhaseName string
	Line      int
	Days      []GeneratedDay
}

// GeneratedDay is one compiled day section.
type GeneratedDay struct {
	Workout    *domain.DailyWorkout
	DateSource calendar.Source
	Line       int
	Raw        string
}

// DayCount returns the number of days across all weeks.
func (g *GeneratedPlan) DayCount() int {
	n := 0
	for _, w := range g.Weeks {
		n += len(w.Days)
	}
	return n
}

// Convert compiles a plan document into domain objects without touching
// storage: segment, derive dates, classify and decode. It only fails on
// invalid settings; problems in the document become warnings.
func Convert(src []byte, s Settings) (*GeneratedPlan, error) {
	if errs := ValidateSettings(&s); len(errs) > 0 {
		return nil, fmt.Errorf("invalid plan settings: %w", errors.Join(errs...))
	}
	now := time.Now().UTC()

	start, err := time.Parse(domain.DateLayout, s.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	year := s.Year
	if year == 0 {
		year = start.Year()
	}

	doc := segment.Segment(src)
	totalWeeks := s.TotalWeeks
	if totalWeeks == 0 {
		for _, w := range doc.Weeks {
			totalWeeks = max(totalWeeks, w.Number)
		}
	}

	_, end := calendar.WeekRange(start, max(totalWeeks, 1))
	plan := &domain.Plan{
		ID:          uuid.New().String(),
		Name:        s.PlanName,
		Goal:        domain.CoalesceStr(s.Goal, doc.Title),
		StartDate:   start,
		EndDate:     end,
		TotalWeeks:  totalWeeks,
		CurrentWeek: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	gen := &GeneratedPlan{
		Plan:     plan,
		Warnings: ValidateDocument(doc, s.TotalWeeks),
	}

	for _, ps := range s.Phases {
		ps0, ps1 := calendar.PhaseRange(start, ps.WeekStart, ps.WeekEnd)
		gen.Phases = append(gen.Phases, &domain.Phase{
			ID:        uuid.New().String(),
			PlanID:    plan.ID,
			Name:      ps.Name,
			WeekStart: ps.WeekStart,
			WeekEnd:   ps.WeekEnd,
			StartDate: ps0,
			EndDate:   ps1,
			Focus:     ps.Focus,
			CreatedAt: now,
		})
	}

	classifier := classify.New(s.Decoder)
	seen := make(map[int]bool)
	for _, ws := range doc.Weeks {
		if ws.Number < 1 || seen[ws.Number] {
			continue
		}
		seen[ws.Number] = true
		gen.Weeks = append(gen.Weeks, convertWeek(ws, plan, gen.Phases, classifier, year, now, &gen.Warnings))
	}

	return gen, nil
}

func convertWeek(ws segment.WeekSection, plan *domain.Plan, phases []*domain.Phase, c *classify.Classifier, year int, now time.Time, warns *[]Warning) GeneratedWeek {
	start, end := calendar.WeekRange(plan.StartDate, ws.Number)
	week := &domain.Week{
		ID:                  uuid.New().String(),
		PlanID:              plan.ID,
		WeekNumber:          ws.Number,
		StartDate:           start,
		EndDate:             end,
		Theme:               ws.Meta.Theme,
		TargetDistance:      ws.Meta.TargetDistance,
		TargetElevationGain: ws.Meta.TargetElevationGain,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	gw := GeneratedWeek{Week: week, Line: ws.Line}
	for _, ph := range phases {
		if ph.Contains(ws.Number) {
			id := ph.ID
			week.PhaseID = &id
			gw.PhaseName = ph.Name
			break
		}
	}

	for pos, ds := range ws.Days {
		date, src, ok := calendar.DayDate(ds.Heading, ds.Name, start, year)
		if !ok {
			*warns = append(*warns, Warning{Week: ws.Number, Day: ds.Name, Line: ds.Line, Message: "cannot resolve a date; day skipped"})
			continue
		}
		if !week.Contains(date) {
			wd, _ := calendar.ParseWeekday(ds.Name)
			positional := calendar.PositionalDate(start, wd)
			*warns = append(*warns, Warning{
				Week: ws.Number, Day: ds.Name, Line: ds.Line,
				Message: fmt.Sprintf("explicit date %s is outside the week (%s to %s); using %s",
					date.Format(domain.DateLayout), start.Format(domain.DateLayout),
					end.Format(domain.DateLayout), positional.Format(domain.DateLayout)),
			})
			date, src = positional, calendar.SourcePositional
		} else if wd, _ := calendar.ParseWeekday(ds.Name); src == calendar.SourceExplicit && date.Weekday() != wd {
			*warns = append(*warns, Warning{
				Week: ws.Number, Day: ds.Name, Line: ds.Line,
				Message: fmt.Sprintf("explicit date %s is a %s", date.Format(domain.DateLayout), date.Weekday()),
			})
		}

		dw := &domain.DailyWorkout{
			ID:          domain.DailyWorkoutID(week.ID, date, pos),
			WeekID:      week.ID,
			WorkoutDate: date,
			DayOfWeek:   ds.Name,
			Position:    pos,
			CreatedAt:   now,
		}
		c.Classify(ds.Body).Apply(dw)
		gw.Days = append(gw.Days, GeneratedDay{Workout: dw, DateSource: src, Line: ds.Line, Raw: ds.Text()})
	}
	return gw
}

// BindPlan re-homes the generated plan onto an existing plan ID. Phase and
// week plan references follow.
func (g *GeneratedPlan) BindPlan(planID string) {
	g.Plan.ID = planID
	for _, ph := range g.Phases {
		ph.PlanID = planID
	}
	for _, w := range g.Weeks {
		w.Week.PlanID = planID
	}
}

// BindPhase re-homes the named phase onto an existing phase ID and points
// the weeks that belong to it at the new ID.
func (g *GeneratedPlan) BindPhase(name, phaseID string) {
	for _, ph := range g.Phases {
		if ph.Name == name {
			ph.ID = phaseID
		}
	}
	for _, w := range g.Weeks {
		if w.PhaseName == name {
			id := phaseID
			w.Week.PhaseID = &id
		}
	}
}

// BindWeek re-homes the week onto an existing week ID. Day IDs are derived
// from the week ID, so they are recomputed.
func (gw *GeneratedWeek) BindWeek(weekID string) {
	gw.Week.ID = weekID
	for _, d := range gw.Days {
		d.Workout.WeekID = weekID
		d.Workout.ID = domain.DailyWorkoutID(weekID, d.Workout.WorkoutDate, d.Workout.Position)
	}
}
