package mcp

import (
	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/alexanderramin/trainplan/internal/notation"
	"github.com/alexanderramin/trainplan/internal/service"
)

type exerciseOutput struct {
	Name       string `json:"name,omitempty"`
	Sets       int    `json:"sets"`
	Kind       string `json:"kind"`
	Count      int    `json:"count,omitempty"`
	Unit       string `json:"unit,omitempty"`
	Text       string `json:"text,omitempty"`
	DisplayCue string `json:"display_cue,omitempty"`
	Load       string `json:"load,omitempty"`
	LoadUnit   string `json:"load_unit,omitempty"`
	Display    string `json:"display"`
}

type dayOutput struct {
	Date          string           `json:"date"`
	Day           string           `json:"day"`
	Type          string           `json:"type"`
	Summary       string           `json:"summary"`
	RunType       string           `json:"run_type,omitempty"`
	Distance      *float64         `json:"distance_mi,omitempty"`
	ElevationGain *int             `json:"elevation_gain_ft,omitempty"`
	Effort        string           `json:"effort,omitempty"`
	RunNotes      string           `json:"run_notes,omitempty"`
	RowingMinutes *int             `json:"rowing_minutes,omitempty"`
	StrokeRate    string           `json:"stroke_rate,omitempty"`
	Strength      string           `json:"strength_session,omitempty"`
	Exercises     []exerciseOutput `json:"exercises,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

type weekOutput struct {
	Number              int      `json:"number"`
	StartDate           string   `json:"start_date"`
	EndDate             string   `json:"end_date"`
	Theme               string   `json:"theme,omitempty"`
	TargetDistance      *float64 `json:"target_distance_mi,omitempty"`
	TargetElevationGain *int     `json:"target_elevation_gain_ft,omitempty"`
}

func toExercises(ps []notation.Prescription) []exerciseOutput {
	out := make([]exerciseOutput, 0, len(ps))
	for _, p := range ps {
		out = append(out, exerciseOutput{
			Name:       p.Name,
			Sets:       p.Sets,
			Kind:       string(p.Value.Kind),
			Count:      p.Value.Count,
			Unit:       p.Value.Unit,
			Text:       p.Value.Text,
			DisplayCue: p.Value.DisplayCue,
			Load:       p.Load,
			LoadUnit:   p.LoadUnit,
			Display:    p.Display(),
		})
	}
	return out
}

func toDays(views []*service.DayView) []dayOutput {
	out := make([]dayOutput, 0, len(views))
	for _, v := range views {
		d := v.Workout
		out = append(out, dayOutput{
			Date:          d.WorkoutDate.Format(domain.DateLayout),
			Day:           d.DayOfWeek,
			Type:          string(d.WorkoutType),
			Summary:       d.Summary(),
			RunType:       d.RunType,
			Distance:      d.RunDistance,
			ElevationGain: d.RunElevationGain,
			Effort:        d.RunEffort,
			RunNotes:      d.RunNotes,
			RowingMinutes: d.RowingDurationMin,
			StrokeRate:    d.RowingStrokeRate,
			Strength:      d.StrengthSession,
			Exercises:     toExercises(v.Exercises),
			Notes:         d.Notes,
		})
	}
	return out
}

func toWeek(w *domain.Week) weekOutput {
	return weekOutput{
		Number:              w.WeekNumber,
		StartDate:           w.StartDate.Format(domain.DateLayout),
		EndDate:             w.EndDate.Format(domain.DateLayout),
		Theme:               w.Theme,
		TargetDistance:      w.TargetDistance,
		TargetElevationGain: w.TargetElevationGain,
	}
}
