package notation

import (
	"fmt"
	"strings"
)

// ValueKind tags what a decoded notation value measures.
type ValueKind string

const (
	KindReps     ValueKind = "reps"
	KindDuration ValueKind = "duration"
	KindDistance ValueKind = "distance"
	KindAMRAP    ValueKind = "amrap"
	// KindText is the opaque fallback: the notation could not be decoded and
	// Text carries it verbatim.
	KindText ValueKind = "text"
)

// Value is the decoded reps-or-duration-or-distance part of a prescription.
type Value struct {
	Kind       ValueKind `json:"kind"`
	Count      int       `json:"count,omitempty"`
	Unit       string    `json:"unit,omitempty"`
	Text       string    `json:"text,omitempty"`
	DisplayCue string    `json:"display_cue,omitempty"`
	IsTimed    bool      `json:"is_timed,omitempty"`
}

// IsZero reports whether the value carries nothing (the decoding of "").
func (v Value) IsZero() bool {
	return v.Count == 0 && v.Text == "" && v.DisplayCue == ""
}

// Display renders the value for humans, e.g. "15-20 reps", "30 sec",
// "18 ft (about the width of a double garage door, one way)".
func (v Value) Display() string {
	switch v.Kind {
	case KindDuration:
		return fmt.Sprintf("%d %s", v.Count, coalesce(v.Unit, "sec"))
	case KindDistance:
		s := fmt.Sprintf("%d %s", v.Count, coalesce(v.Unit, "ft"))
		if v.DisplayCue != "" {
			s += " (" + v.DisplayCue + ")"
		}
		return s
	case KindReps:
		if v.Count == 0 {
			return ""
		}
		if rangeToken.MatchString(v.Text) {
			return rangeToken.FindString(v.Text) + " reps"
		}
		return fmt.Sprintf("%d reps", v.Count)
	default:
		return v.Text
	}
}

// Prescription is one structured exercise entry: name, set count, value and
// optional load. Sets of 0 means the source did not state a set count.
type Prescription struct {
	Name     string `json:"name"`
	Sets     int    `json:"sets"`
	Value    Value  `json:"value"`
	Load     string `json:"load,omitempty"`
	LoadUnit string `json:"load_unit,omitempty"`
	Raw      string `json:"raw,omitempty"`
}

// HasLoad reports whether a load or percentage note was decoded.
func (p Prescription) HasLoad() bool {
	return p.Load != ""
}

// Display renders a one-line summary such as "Deadlift: 4 x 6 reps @ 65%".
func (p Prescription) Display() string {
	var b strings.Builder
	if p.Name != "" {
		b.WriteString(p.Name)
	}
	val := p.Value.Display()
	if p.Sets > 0 || val != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		switch {
		case p.Sets > 0 && val != "":
			fmt.Fprintf(&b, "%d x %s", p.Sets, val)
		case p.Sets > 0:
			fmt.Fprintf(&b, "%d sets", p.Sets)
		default:
			b.WriteString(val)
		}
	}
	if p.Load != "" {
		if p.LoadUnit == "%" {
			fmt.Fprintf(&b, " @ %s%%", p.Load)
		} else {
			fmt.Fprintf(&b, " @ %s", strings.TrimSpace(p.Load+" "+p.LoadUnit))
		}
	}
	return b.String()
}

func coalesce(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
