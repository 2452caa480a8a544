package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/importer"
	"github.com/alexanderramin/trainplan/internal/notation"
	"github.com/alexanderramin/trainplan/internal/service"
)

// FormatCompileReport renders the per-week outcome and totals of a compile.
func FormatCompileReport(r *service.CompileReport) string {
	var b strings.Builder

	if r.Plan != nil {
		writeField(&b, "Plan", Bold(r.Plan.Name))
	}
	writeField(&b, "Source", r.Run.Source)
	writeField(&b, "Status", StatusPill(r.Run.Status))
	writeField(&b, "Run", TruncID(r.Run.ID))
	b.WriteString("\n")

	rows := make([][]string, 0, len(r.Weeks))
	for _, w := range r.Weeks {
		action := StyleGreen.Render("inserted")
		if w.Existing {
			action = StyleYellow.Render("replaced")
		}
		failed := strconv.Itoa(w.Failed)
		if w.Failed > 0 {
			failed = StyleRed.Render(failed)
		}
		note := ""
		if w.Err != nil {
			action = StyleRed.Render("failed")
			note = StyleRed.Render(firstLine(w.Err.Error()))
		}
		rows = append(rows, []string{
			strconv.Itoa(w.Number),
			action,
			strconv.Itoa(w.Inserted),
			failed,
			strconv.FormatInt(w.Replaced, 10),
			note,
		})
	}
	b.WriteString(Table{
		Headers: []string{"WEEK", "ACTION", "DAYS", "FAILED", "REMOVED", ""},
		Rows:    rows,
		Right:   map[int]bool{0: true, 2: true, 3: true, 4: true},
		Empty:   "no weeks processed",
	}.Render())

	run := r.Run
	fmt.Fprintf(&b, "\n%s weeks, %s days inserted, %s days failed, %s weeks failed\n",
		Bold(strconv.Itoa(run.WeeksProcessed)), Bold(strconv.Itoa(run.DaysInserted)),
		countStyle(run.DaysFailed), countStyle(run.WeeksFailed))

	if len(r.Warnings) > 0 {
		b.WriteString("\n" + FormatWarnings(r.Warnings))
	}
	return RenderBox("Compile", b.String())
}

// FormatPreview renders a dry-run: what would be written and which stored
// weeks would be replaced.
func FormatPreview(p *service.CompilePreview) string {
	g := p.Generated
	existing := make(map[int]bool, len(p.ExistingWeeks))
	for _, n := range p.ExistingWeeks {
		existing[n] = true
	}

	var b strings.Builder
	writeField(&b, "Plan", Bold(g.Plan.Name))
	writeField(&b, "Dates", DateRange(g.Plan.StartDate, g.Plan.EndDate))
	writeField(&b, "Weeks", fmt.Sprintf("%d in document, %d weeks planned", len(g.Weeks), g.Plan.TotalWeeks))
	writeField(&b, "Workouts", strconv.Itoa(g.DayCount()))
	b.WriteString("\n")

	rows := make([][]string, 0, len(g.Weeks))
	for _, gw := range g.Weeks {
		action := StyleGreen.Render("new")
		if existing[gw.Week.WeekNumber] {
			action = StyleYellow.Render("replace")
		}
		types := make([]string, 0, len(gw.Days))
		for _, d := range gw.Days {
			types = append(types, WorkoutStyle(d.Workout.WorkoutType).Render(string(d.Workout.WorkoutType)))
		}
		rows = append(rows, []string{
			strconv.Itoa(gw.Week.WeekNumber),
			action,
			DateRange(gw.Week.StartDate, gw.Week.EndDate),
			OrDash(gw.PhaseName),
			strings.Join(types, " "),
		})
	}
	b.WriteString(Table{
		Headers: []string{"WEEK", "ACTION", "DATES", "PHASE", "DAYS"},
		Rows:    rows,
		Right:   map[int]bool{0: true},
		Empty:   "no weeks found",
	}.Render())

	if len(g.Warnings) > 0 {
		b.WriteString("\n" + FormatWarnings(g.Warnings))
	}
	return RenderBox("Dry run", b.String())
}

// FormatWarnings renders document warnings as a list.
func FormatWarnings(ws []importer.Warning) string {
	var b strings.Builder
	b.WriteString(StyleYellow.Render(fmt.Sprintf("%d warning(s)", len(ws))) + "\n")
	for _, w := range ws {
		fmt.Fprintf(&b, "  %s %s\n", StyleYellow.Render("!"), w.String())
	}
	return b.String()
}

// FormatRuns renders the compile history, newest first.
func FormatRuns(runs []*domain.CompileRun, now time.Time) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			TruncID(r.ID),
			StatusPill(r.Status),
			HumanTimestamp(r.StartedAt, now),
			strconv.Itoa(r.WeeksProcessed),
			strconv.Itoa(r.DaysInserted),
			countStyle(r.DaysFailed + r.WeeksFailed),
			r.Source,
		})
	}
	return RenderBox("Compile runs", Table{
		Headers: []string{"ID", "STATUS", "STARTED", "WEEKS", "DAYS", "FAILED", "SOURCE"},
		Rows:    rows,
		Right:   map[int]bool{3: true, 4: true, 5: true},
		Empty:   "no compiles recorded",
	}.Render())
}

// FormatRun renders one compile run with the records that failed.
func FormatRun(rv *service.RunView, now time.Time) string {
	r := rv.Run
	var b strings.Builder
	writeField(&b, "ID", r.ID)
	writeField(&b, "Source", r.Source)
	writeField(&b, "Status", StatusPill(r.Status))
	writeField(&b, "Started", HumanTimestamp(r.StartedAt, now))
	if r.FinishedAt != nil {
		writeField(&b, "Took", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String())
	}
	writeField(&b, "Weeks", fmt.Sprintf("%d processed, %s failed", r.WeeksProcessed, countStyle(r.WeeksFailed)))
	writeField(&b, "Days", fmt.Sprintf("%d inserted, %s failed", r.DaysInserted, countStyle(r.DaysFailed)))

	if len(rv.Errors) > 0 {
		rows := make([][]string, 0, len(rv.Errors))
		for _, e := range rv.Errors {
			date := Dim("--")
			if e.WorkoutDate != nil {
				date = e.WorkoutDate.Format(domain.DateLayout)
			}
			week := Dim("--")
			if e.WeekNumber > 0 {
				week = strconv.Itoa(e.WeekNumber)
			}
			rows = append(rows, []string{week, OrDash(e.DayName), date, StyleRed.Render(firstLine(e.Message))})
		}
		b.WriteString("\n")
		b.WriteString(Table{
			Headers: []string{"WEEK", "DAY", "DATE", "ERROR"},
			Rows:    rows,
			Right:   map[int]bool{0: true},
		}.Render())
	}
	return RenderBox("Compile run", b.String())
}

// DecodedLine pairs an input line with its decoding.
type DecodedLine struct {
	Input     string
	Exercises []notation.Prescription
}

// FormatDecoded renders decoded notation lines with the value kind of
// each prescription.
func FormatDecoded(lines []DecodedLine) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Bold(l.Input) + "\n")
		rows := make([][]string, 0, len(l.Exercises))
		for _, p := range l.Exercises {
			sets := Dim("--")
			if p.Sets > 0 {
				sets = strconv.Itoa(p.Sets)
			}
			kind := string(p.Value.Kind)
			if p.Value.Kind == notation.KindText {
				kind = StyleYellow.Render(kind)
			}
			load := Dim("--")
			if p.HasLoad() {
				load = p.Load
				if p.LoadUnit == "%" {
					load += "%"
				} else if p.LoadUnit != "" {
					load += " " + p.LoadUnit
				}
			}
			rows = append(rows, []string{OrDash(p.Name), sets, OrDash(p.Value.Display()), kind, load})
		}
		b.WriteString(Table{
			Headers: []string{"EXERCISE", "SETS", "VALUE", "KIND", "LOAD"},
			Rows:    rows,
			Right:   map[int]bool{1: true},
			Empty:   "nothing to decode",
		}.Render())
	}
	return b.String()
}

func countStyle(n int) string {
	if n > 0 {
		return StyleRed.Render(strconv.Itoa(n))
	}
	return strconv.Itoa(n)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
