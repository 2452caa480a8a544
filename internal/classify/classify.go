// Package classify resolves the workout type and fields of a day section
// from its raw text.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/notation"
)

// archetype is a named run header pattern.
type archetype struct {
	name    string
	pattern *regexp.Regexp
}

// runArchetypes are tried in order; the generic run pattern comes last.
var runArchetypes = []archetype{
	{"Group Run", regexp.MustCompile(`(?i)\bgroup\s+run\b`)},
	{"Long Run", regexp.MustCompile(`(?i)\blong\s+run\b`)},
	{"Easy Run", regexp.MustCompile(`(?i)\beasy\s+run\b`)},
	{"Easy Hills", regexp.MustCompile(`(?i)\beasy\s+hills?\b`)},
	{"Hill Workout", regexp.MustCompile(`(?i)\bhill\s+(?:workout|repeats)\b`)},
	{"Tempo Workout", regexp.MustCompile(`(?i)\btempo(?:\s+(?:workout|run))?\b`)},
	{"VO2 Max Workout", regexp.MustCompile(`(?i)\bvo2\s*max(?:\s+workout)?\b`)},
	{"Run", regexp.MustCompile(`(?i)\brun\b`)},
}

var (
	runDistance     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:mi|miles?)\b`)
	elevationGain   = regexp.MustCompile(`(?i)(\d[\d,]*)\s*(?:ft|feet)\s*(?:of\s+)?(?:gain|elevation|vert|climbing)`)
	rowMinutesFirst = regexp.MustCompile(`(?i)(\d+)\s*(?:min|mins|minutes?)\b[^\n]*?\brow(?:ing|er)?\b`)
	rowFirst        = regexp.MustCompile(`(?i)\brow(?:ing|er)?\b[^\n]*?(\d+)\s*(?:min|mins|minutes?)\b`)
	strokeRate      = regexp.MustCompile(`(?i)(\d+(?:\s*-\s*\d+)?)\s*(?:spm|s/m|strokes?\s*(?:per|/)\s*min(?:ute)?)`)
	rowEffort       = regexp.MustCompile(`(?i)\b(easy|steady|moderate|hard|tempo|recovery|light)\b`)
	strengthMarker  = regexp.MustCompile(`(?i)strength\s*[-–—:]\s*(?:(heavy\s+day\s*(\d+))|(pt\s+foundation))`)
	warmupLine      = regexp.MustCompile(`(?i)^[\s\-*+•]*(?:\*\*)?warm[\s-]?ups?\b`)
	labelSeparator  = regexp.MustCompile(`^[\s:\-–—*]+`)
)

// Run holds the run fields of a day.
type Run struct {
	Type          string
	Distance      float64
	ElevationGain *int
	Effort        string
	Notes         string
}

// Rowing holds the rowing fields of a day.
type Rowing struct {
	DurationMin int
	StrokeRate  string
}

// Strength identifies the strength session of a day.
type Strength struct {
	Session  string
	HeavyDay int
}

// Shape is the classified content of a day section.
type Shape struct {
	Type      domain.WorkoutType
	Run       *Run
	Rowing    *Rowing
	Strength  *Strength
	Exercises []notation.Prescription
	Notes     string
}

// Classifier classifies day sections with a notation decoder for the
// strength exercise lines.
type Classifier struct {
	dec *notation.Decoder
}

// New returns a Classifier. A nil decoder uses notation.Default.
func New(dec *notation.Decoder) *Classifier {
	if dec == nil {
		dec = notation.Default
	}
	return &Classifier{dec: dec}
}

// Classify resolves the shape of a day body. Text without any marker is a
// rest day; Classify never fails.
func (c *Classifier) Classify(text string) Shape {
	lines := strings.Split(text, "\n")
	s := Shape{Type: domain.WorkoutRest}

	if run := detectRun(lines); run != nil {
		s.Run = run
		s.Type = domain.WorkoutRun
	}
	if row := detectRowing(lines); row != nil {
		s.Rowing = row
		s.Type = s.Type.WithRowing()
	}

	block := notation.FoundationBlock(text)
	if str, idx := detectStrength(lines); str != nil {
		s.Strength = str
		s.Type = s.Type.WithStrength()
		if str.HeavyDay == 0 && block != "" {
			s.Exercises = c.dec.ParseFoundationBlock(block)
		} else {
			session := c.dec.DecodeBlock(sessionLines(lines[idx+1:]))
			s.Exercises = c.dec.WithFoundation(session, block)
		}
	}

	switch {
	case block != "":
		s.Notes = block
	case s.Run == nil && s.Rowing == nil && s.Strength == nil:
		s.Notes = strings.TrimSpace(text)
	}
	return s
}

// Apply copies the shape onto a daily workout.
func (s Shape) Apply(dw *domain.DailyWorkout) {
	dw.WorkoutType = s.Type
	if s.Run != nil {
		dist := s.Run.Distance
		dw.RunType = s.Run.Type
		dw.RunDistance = &dist
		dw.RunElevationGain = s.Run.ElevationGain
		dw.RunEffort = s.Run.Effort
		dw.RunNotes = s.Run.Notes
	}
	if s.Rowing != nil {
		mins := s.Rowing.DurationMin
		dw.RowingDurationMin = &mins
		dw.RowingStrokeRate = s.Rowing.StrokeRate
	}
	if s.Strength != nil {
		dw.StrengthSession = s.Strength.Session
	}
	dw.Exercises = s.Exercises
	dw.Notes = s.Notes
}

// sessionLines cuts the lines after a strength marker at the end of the
// session, including the first run or rowing line.
func sessionLines(lines []string) []string {
	lines = notation.SessionLines(lines)
	for i, l := range lines {
		if warmupLine.MatchString(l) {
			continue
		}
		if isRunLine(l) || rowMinutesFirst.MatchString(l) || rowFirst.MatchString(l) {
			return lines[:i]
		}
	}
	return lines
}

func isRunLine(line string) bool {
	for _, a := range runArchetypes {
		if loc := a.pattern.FindStringIndex(line); loc != nil && runDistance.MatchString(line[loc[1]:]) {
			return true
		}
	}
	return false
}

func detectRun(lines []string) *Run {
	for _, a := range runArchetypes {
		for _, line := range lines {
			loc := a.pattern.FindStringIndex(line)
			if loc == nil {
				continue
			}
			rest := line[loc[1]:]
			m := runDistance.FindStringSubmatch(rest)
			if m == nil {
				continue
			}
			dist, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			run := &Run{Type: a.name, Distance: dist}
			if g := elevationGain.FindStringSubmatch(rest); g != nil {
				if n, err := strconv.Atoi(strings.ReplaceAll(g[1], ",", "")); err == nil {
					run.ElevationGain = &n
				}
			}
			run.Effort, run.Notes = splitRunText(labelSeparator.ReplaceAllString(rest, ""))
			return run
		}
	}
	return nil
}

// splitRunText takes the last comma segment carrying neither a distance
// nor an elevation gain as the effort. What remains of the other segments,
// with distance and gain removed, becomes the notes.
func splitRunText(rest string) (effort, notes string) {
	segs := strings.Split(rest, ",")
	effortIdx := -1
	for i := len(segs) - 1; i >= 0; i-- {
		seg := segs[i]
		if strings.TrimSpace(seg) != "" && !runDistance.MatchString(seg) && !elevationGain.MatchString(seg) {
			effortIdx = i
			break
		}
	}
	var parts []string
	for i, seg := range segs {
		if i == effortIdx {
			effort = strings.TrimSpace(strings.Trim(seg, "*_ "))
			continue
		}
		seg = runDistance.ReplaceAllString(seg, "")
		seg = elevationGain.ReplaceAllString(seg, "")
		if seg = strings.TrimSpace(strings.Trim(seg, "*_ ")); seg != "" {
			parts = append(parts, seg)
		}
	}
	return effort, strings.Join(parts, "; ")
}

func detectRowing(lines []string) *Rowing {
	for _, line := range lines {
		if warmupLine.MatchString(line) {
			continue
		}
		m := rowMinutesFirst.FindStringSubmatch(line)
		if m == nil {
			m = rowFirst.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}
		mins, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		row := &Rowing{DurationMin: mins}
		if sr := strokeRate.FindString(line); sr != "" {
			row.StrokeRate = sr
		} else if e := rowEffort.FindString(line); e != "" {
			row.StrokeRate = strings.ToLower(e)
		}
		return row
	}
	return nil
}

// detectStrength returns the strength session and the index of the marker line.
func detectStrength(lines []string) (*Strength, int) {
	for i, line := range lines {
		m := strengthMarker.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if m[1] != "" {
			n, _ := strconv.Atoi(m[2])
			return &Strength{Session: "Heavy Day " + m[2], HeavyDay: n}, i
		}
		return &Strength{Session: "PT Foundation"}, i
	}
	return nil, -1
}
