package notation

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	circuitHeader = regexp.MustCompile(`(?i)^\s*circuit\s*(?:of\s*)?(\d+)\s*(?:[x×]|rounds?)?\s*:\s*(.+)$`)
	circuitItem   = regexp.MustCompile(`(?i)^(\d+)\s*(secs?|seconds?|ft|feet|mins?|minutes?)?\s+(.+?)(?:\s+each)?$`)
	trailingEach  = regexp.MustCompile(`(?i)\s+each$`)
)

// DecodeCircuit decodes "Circuit <N>x: item, item, ..." into one
// prescription per item, all sharing the block's set count.
//
// A parenthetical at the end of the last item is a circuit-wide load. It is
// applied only to items whose name matches the load keyword table, and only
// when it names a weight. The keyword match is a heuristic over a closed
// list; items it misses simply carry no load.
func (d *Decoder) DecodeCircuit(s string) ([]Prescription, bool) {
	m := circuitHeader.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, false
	}
	sets, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false
	}
	items := splitTopLevel(m[2])
	if len(items) == 0 {
		return nil, false
	}

	var shared load
	last := len(items) - 1
	if rest, ld := splitLoad(items[last]); ld.isWeight() {
		items[last] = rest
		shared = ld
	}

	out := make([]Prescription, 0, len(items))
	for _, item := range items {
		text, own := splitLoad(item)
		p := d.decodeCircuitItem(text)
		p.Sets = sets
		p.Raw = strings.TrimSpace(item)
		switch {
		case own.amount != "":
			p.Load, p.LoadUnit = own.amount, own.unit
		case shared.amount != "" && d.tables.TakesLoad(p.Name):
			p.Load, p.LoadUnit = shared.amount, shared.unit
		}
		out = append(out, p)
	}
	return out, true
}

func (d *Decoder) decodeCircuitItem(text string) Prescription {
	m := circuitItem.FindStringSubmatch(text)
	if m == nil {
		// No leading count: reps stay at the unspecified sentinel.
		name := strings.TrimSpace(trailingEach.ReplaceAllString(text, ""))
		return Prescription{Name: name, Value: Value{Kind: KindReps}}
	}
	n, _ := strconv.Atoi(m[1])
	name := strings.TrimSpace(m[3])
	var v Value
	switch unit := strings.ToLower(m[2]); {
	case strings.HasPrefix(unit, "s"):
		v = Value{Kind: KindDuration, Count: n, Unit: "sec", IsTimed: true}
	case strings.HasPrefix(unit, "m"):
		v = Value{Kind: KindDuration, Count: n, Unit: "min", IsTimed: true}
	case strings.HasPrefix(unit, "f"):
		v = Value{Kind: KindDistance, Count: n, Unit: "ft", DisplayCue: d.tables.Landmark(n, directionOf(text))}
	default:
		v = Value{Kind: KindReps, Count: n, Unit: "reps"}
	}
	v.Text = strings.TrimSpace(m[1] + m[2])
	return Prescription{Name: name, Value: v}
}

// splitTopLevel splits on commas that are not inside parentheses.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				if p := strings.TrimSpace(s[start:i]); p != "" {
					parts = append(parts, p)
				}
				start = i + 1
			}
		}
	}
	if p := strings.TrimSpace(s[start:]); p != "" {
		parts = append(parts, p)
	}
	return parts
}
