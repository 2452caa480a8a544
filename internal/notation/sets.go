package notation

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	setsXForm     = regexp.MustCompile(`(?i)^\s*(\d+)\s*[x×]\s*(.*)$`)
	setsOfForm    = regexp.MustCompile(`(?i)^\s*(\d+)\s+sets?\s+of\s+(.*)$`)
	trailingParen = regexp.MustCompile(`\s*\(([^()]*)\)\s*$`)
	percentToken  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	weightToken   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(lbs?|pounds?|kgs?|kilos?)\b`)
)

// setsForms are tried in order; the first that matches wins.
var setsForms = []*regexp.Regexp{setsXForm, setsOfForm}

// DecodeSets splits "<N>x<notation>" or "<N> sets of <notation>" into a set
// count and a decoded value. A trailing parenthetical that carries a
// percentage or a weight is taken as the load note. The second result is
// false when s is not a sets token.
func (d *Decoder) DecodeSets(s string) (Prescription, bool) {
	raw := strings.TrimSpace(s)
	for _, form := range setsForms {
		m := form.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		sets, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		rest, ld := splitLoad(m[2])
		return Prescription{
			Sets:     sets,
			Value:    d.DecodeValue(rest),
			Load:     ld.amount,
			LoadUnit: ld.unit,
			Raw:      raw,
		}, true
	}
	return Prescription{}, false
}

type load struct {
	amount string
	unit   string
}

func (l load) isWeight() bool {
	return l.unit == "lb" || l.unit == "kg"
}

// parseLoad reads a load note such as "65%", "60%, 70%" or "66lb each".
// With several percentages the last one is the working target.
func parseLoad(note string) (load, bool) {
	if pcts := percentToken.FindAllStringSubmatch(note, -1); len(pcts) > 0 {
		return load{amount: pcts[len(pcts)-1][1], unit: "%"}, true
	}
	if m := weightToken.FindStringSubmatch(note); m != nil {
		unit := "lb"
		if strings.HasPrefix(strings.ToLower(m[2]), "k") {
			unit = "kg"
		}
		return load{amount: m[1], unit: unit}, true
	}
	return load{}, false
}

// splitLoad removes a trailing load parenthetical from s. Parentheticals
// without a load ("(one direction)") stay in place for the value rules.
func splitLoad(s string) (string, load) {
	loc := trailingParen.FindStringSubmatchIndex(s)
	if loc == nil {
		return strings.TrimSpace(s), load{}
	}
	ld, ok := parseLoad(s[loc[2]:loc[3]])
	if !ok {
		return strings.TrimSpace(s), load{}
	}
	return strings.TrimSpace(s[:loc[0]]), ld
}
