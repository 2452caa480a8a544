package notation

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	durationToken  = regexp.MustCompile(`(?i)\d\s*(?:sec|secs|second|seconds)\b|\bsecs?\b`)
	distanceToken  = regexp.MustCompile(`(?i)(?:\d|\b)(?:ft|feet)\b`)
	eachDirection  = regexp.MustCompile(`(?i)\beach\s+direction\b|\bboth\s+directions\b|\bthere\s+and\s+back\b`)
	bilateralToken = regexp.MustCompile(`(?i)\s*\beach\s+(?:leg|side|arm|hand)s?\b|\s*\beach\b`)
	amrapToken     = regexp.MustCompile(`(?i)\bamrap\b`)
	leadingRange   = regexp.MustCompile(`^(\d+)(?:\s*-\s*\d+)?`)
	firstInt       = regexp.MustCompile(`\d+`)
	rangeToken     = regexp.MustCompile(`\d+\s*-\s*\d+`)
	multiSpace     = regexp.MustCompile(`\s{2,}`)
)

// rule is one named step of the value grammar. A rule either matches and
// returns a value, or passes a (possibly rewritten) string to the next rule.
type rule struct {
	name  string
	apply func(d *Decoder, s string) (v Value, next string, ok bool)
}

// valueRules is the grammar in priority order. The first matching rule wins.
var valueRules = []rule{
	{name: "duration", apply: durationRule},
	{name: "distance", apply: distanceRule},
	{name: "bilateral", apply: bilateralRule},
	{name: "amrap", apply: amrapRule},
	{name: "reps", apply: repsRule},
	{name: "opaque", apply: opaqueRule},
}

// RuleNames lists the value grammar rules in evaluation order.
func RuleNames() []string {
	names := make([]string, len(valueRules))
	for i, r := range valueRules {
		names[i] = r.name
	}
	return names
}

// DecodeValue decodes a notation string that has already been separated
// from its exercise name and set count. It never fails: input no rule can
// read comes back as an opaque text value.
func (d *Decoder) DecodeValue(s string) Value {
	v, _ := d.DecodeValueRule(s)
	return v
}

// DecodeValueRule is DecodeValue that also reports which rule produced the
// value. The empty string yields an empty reps value and the rule "empty".
func (d *Decoder) DecodeValueRule(s string) (Value, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{Kind: KindReps}, "empty"
	}
	for _, r := range valueRules {
		v, next, ok := r.apply(d, s)
		if ok {
			return v, r.name
		}
		s = next
	}
	return Value{Kind: KindText, Text: s}, "opaque"
}

func durationRule(_ *Decoder, s string) (Value, string, bool) {
	if !durationToken.MatchString(s) {
		return Value{}, s, false
	}
	n, ok := leadingInt(s)
	if !ok {
		return Value{}, s, false
	}
	return Value{Kind: KindDuration, Count: n, Unit: "sec", Text: s, IsTimed: true}, s, true
}

func distanceRule(d *Decoder, s string) (Value, string, bool) {
	if !distanceToken.MatchString(s) {
		return Value{}, s, false
	}
	n, ok := leadingInt(s)
	if !ok {
		return Value{}, s, false
	}
	return Value{
		Kind:       KindDistance,
		Count:      n,
		Unit:       "ft",
		Text:       s,
		DisplayCue: d.tables.Landmark(n, directionOf(s)),
	}, s, true
}

func bilateralRule(_ *Decoder, s string) (Value, string, bool) {
	cleaned := bilateralToken.ReplaceAllString(s, "")
	cleaned = strings.TrimSpace(multiSpace.ReplaceAllString(cleaned, " "))
	return Value{}, cleaned, false
}

func amrapRule(_ *Decoder, s string) (Value, string, bool) {
	if !amrapToken.MatchString(s) {
		return Value{}, s, false
	}
	return Value{Kind: KindAMRAP, Text: s}, s, true
}

func repsRule(_ *Decoder, s string) (Value, string, bool) {
	m := leadingRange.FindStringSubmatch(s)
	if m == nil {
		return Value{}, s, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Value{}, s, false
	}
	return Value{Kind: KindReps, Count: n, Unit: "reps", Text: s}, s, true
}

func opaqueRule(_ *Decoder, s string) (Value, string, bool) {
	return Value{Kind: KindText, Text: s}, s, true
}

func leadingInt(s string) (int, bool) {
	m := firstInt.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// directionOf defaults to one direction when the text names neither.
func directionOf(s string) Direction {
	if eachDirection.MatchString(s) {
		return EachDirection
	}
	return OneDirection
}
