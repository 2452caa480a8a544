package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/notation"
	"github.com/alexanderramin/trainplan/internal/service"
)

// FormatPlan renders the active plan card with its phases.
func FormatPlan(pv *service.PlanView, now time.Time) string {
	p := pv.Plan
	var b strings.Builder

	b.WriteString(Bold(p.Name) + "\n")
	if p.Goal != "" {
		b.WriteString(Dim(p.Goal) + "\n")
	}
	b.WriteString("\n")
	writeField(&b, "Dates", DateRange(p.StartDate, p.EndDate))
	writeField(&b, "Weeks", fmt.Sprintf("%d stored of %d", pv.Weeks, p.TotalWeeks))
	writeField(&b, "Workouts", strconv.Itoa(pv.Days))

	current := Dim("not set")
	if p.CurrentWeek > 0 {
		current = strconv.Itoa(p.CurrentWeek)
	}
	writeField(&b, "Current week", current)
	if wk := p.WeekOf(now); wk > 0 && wk <= p.TotalWeeks {
		writeField(&b, "Calendar week", strconv.Itoa(wk))
	}

	if len(pv.Phases) > 0 {
		rows := make([][]string, 0, len(pv.Phases))
		for _, ph := range pv.Phases {
			rows = append(rows, []string{
				Bold(ph.Name),
				fmt.Sprintf("%d–%d", ph.WeekStart, ph.WeekEnd),
				DateRange(ph.StartDate, ph.EndDate),
				OrDash(ph.Focus),
			})
		}
		b.WriteString("\n")
		b.WriteString(RenderTable([]string{"PHASE", "WEEKS", "DATES", "FOCUS"}, rows))
	}

	return RenderBox("Plan", b.String())
}

// FormatWeeks renders the stored weeks of a plan, marking the current one.
func FormatWeeks(plan *domain.Plan, phases []*domain.Phase, weeks []*domain.Week) string {
	names := make(map[string]string, len(phases))
	for _, ph := range phases {
		names[ph.ID] = ph.Name
	}

	rows := make([][]string, 0, len(weeks))
	for _, w := range weeks {
		num := strconv.Itoa(w.WeekNumber)
		if w.WeekNumber == plan.CurrentWeek {
			num = StyleGreen.Render("▸ " + num)
		}
		phase := Dim("--")
		if w.PhaseID != nil {
			phase = StylePurple.Render(names[*w.PhaseID])
		}
		rows = append(rows, []string{
			num,
			DateRange(w.StartDate, w.EndDate),
			phase,
			OrDash(w.Theme),
			Miles(w.TargetDistance),
			Feet(w.TargetElevationGain),
		})
	}

	table := Table{
		Headers: []string{"WEEK", "DATES", "PHASE", "THEME", "DISTANCE", "GAIN"},
		Rows:    rows,
		Right:   map[int]bool{0: true, 4: true, 5: true},
		Empty:   "no weeks stored",
	}
	return RenderBox(plan.Name, table.Render())
}

// FormatWeek renders one week with every day in full.
func FormatWeek(wv *service.WeekView) string {
	w := wv.Week
	var b strings.Builder

	writeField(&b, "Dates", DateRange(w.StartDate, w.EndDate))
	if wv.Phase != nil {
		writeField(&b, "Phase", StylePurple.Render(wv.Phase.Name))
	}
	if w.Theme != "" {
		writeField(&b, "Theme", w.Theme)
	}
	if w.TargetDistance != nil || w.TargetElevationGain != nil {
		writeField(&b, "Target", Miles(w.TargetDistance)+Dim(" · ")+Feet(w.TargetElevationGain))
	}

	for _, d := range wv.Days {
		b.WriteString("\n")
		b.WriteString(FormatDayDetail(d))
	}
	if len(wv.Days) == 0 {
		b.WriteString("\n" + Dim("no workouts stored for this week") + "\n")
	}

	return RenderBox(fmt.Sprintf("Week %d", w.WeekNumber), b.String())
}

// FormatDay renders the workouts stored for one date.
func FormatDay(date time.Time, days []*service.DayView, now time.Time) string {
	title := fmt.Sprintf("%s (%s)", DayLabel(date), RelativeDateFrom(date, now))
	if len(days) == 0 {
		return RenderBox(title, Dim("nothing scheduled"))
	}
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, FormatDayDetail(d))
	}
	return RenderBox(title, strings.Join(parts, "\n"))
}

// FormatToday renders the plan's schedule for the current date.
func FormatToday(tv *service.TodayView, now time.Time) string {
	if tv.Week == nil {
		msg := fmt.Sprintf("%s is outside %s (%s)", DayLabel(tv.Date), tv.Plan.Name,
			DateRange(tv.Plan.StartDate, tv.Plan.EndDate))
		return RenderBox("Today", Dim(msg))
	}
	out := FormatDay(tv.Date, tv.Days, now)
	return Dim(fmt.Sprintf("%s · week %d", tv.Plan.Name, tv.Week.WeekNumber)) + "\n" + out
}

// FormatDayDetail renders one day: a heading with its workout type, then
// run, rowing and strength lines and the decoded exercises.
func FormatDayDetail(d *service.DayView) string {
	w := d.Workout
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s  %s\n", Bold(DayLabel(w.WorkoutDate)), WorkoutBadge(w.WorkoutType), Dim(w.DayOfWeek))

	if w.WorkoutType.HasRun() {
		parts := []string{domain.CoalesceStr(w.RunType, "Run")}
		if w.RunDistance != nil {
			parts = append(parts, Miles(w.RunDistance))
		}
		if w.RunElevationGain != nil {
			parts = append(parts, Feet(w.RunElevationGain))
		}
		if w.RunEffort != "" {
			parts = append(parts, w.RunEffort)
		}
		writeIndented(&b, "Run", strings.Join(parts, Dim(" · ")))
	}
	if w.RowingDurationMin != nil || w.RowingStrokeRate != "" {
		row := "Row"
		if w.RowingDurationMin != nil {
			row = fmt.Sprintf("%d min", *w.RowingDurationMin)
		}
		if w.RowingStrokeRate != "" {
			row += " @ " + w.RowingStrokeRate + " spm"
		}
		writeIndented(&b, "Rowing", row)
	}
	if w.StrengthSession != "" {
		writeIndented(&b, "Strength", w.StrengthSession)
	}
	if len(d.Exercises) > 0 {
		b.WriteString(FormatExercises(d.Exercises, "    "))
	}
	if w.WorkoutType == domain.WorkoutRest && w.Notes == "" {
		writeIndented(&b, "Rest", Dim("recovery day"))
	}
	return b.String()
}

// FormatExercises renders prescriptions as an indented bullet list.
func FormatExercises(ps []notation.Prescription, indent string) string {
	var b strings.Builder
	for _, p := range ps {
		line := p.Display()
		if p.Value.Kind == notation.KindText {
			line = Dim(line)
		}
		fmt.Fprintf(&b, "%s%s %s\n", indent, StyleDim.Render("•"), line)
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", StyleDim.Render(fmt.Sprintf("%-14s", label)), value)
}

func writeIndented(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", StyleDim.Render(fmt.Sprintf("%-9s", label)), value)
}
