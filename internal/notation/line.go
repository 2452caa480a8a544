package notation

import (
	"regexp"
	"strings"
)

var (
	bulletPrefix    = regexp.MustCompile(`^\s*(?:[-*+•]|\d+[.)])\s+`)
	emphasis        = regexp.MustCompile(`\*\*|__`)
	warmupLabel     = regexp.MustCompile(`(?i)^warm[\s-]?ups?\b\s*[:\-–]?\s*`)
	mainLabel       = regexp.MustCompile(`(?i)^main(?:\s+(?:lift|lifts|set|sets))?\s*[:\-–]\s*`)
	circuitLabel    = regexp.MustCompile(`(?i)^circuit\b`)
	namedSetsToken  = regexp.MustCompile(`(?i)^(.+?)\s+(\d+\s*[x×]\s*\S.*|\d+\s+sets?\s+of\s+.+)$`)
	foundationTitle = regexp.MustCompile(`(?i)pt\s+foundation\s+program`)
	blockEnd        = regexp.MustCompile(`^\s*(?:\*\*|#)`)
)

// DecodeLine decodes one exercise line: "Name: notation", "Name <sets
// token>" or a circuit. A leading list bullet is ignored. A line no form
// matches comes back as a single prescription holding the text verbatim.
func (d *Decoder) DecodeLine(s string) []Prescription {
	line := mainLabel.ReplaceAllString(cleanLine(s), "")
	if line == "" {
		return nil
	}
	if circuitLabel.MatchString(line) {
		if ps, ok := d.DecodeCircuit(line); ok {
			return ps
		}
	}
	if p, ok := d.decodeNamed(line); ok {
		return []Prescription{p}
	}
	if p, ok := d.DecodeSets(line); ok {
		return []Prescription{p}
	}
	return []Prescription{{Value: Value{Kind: KindText, Text: line}, Raw: line}}
}

func (d *Decoder) decodeNamed(line string) (Prescription, bool) {
	if name, notation, ok := strings.Cut(line, ":"); ok && strings.TrimSpace(name) != "" {
		name, notation = strings.TrimSpace(name), strings.TrimSpace(notation)
		if p, ok := d.DecodeSets(notation); ok {
			p.Name, p.Raw = name, line
			return p, true
		}
		if v := d.DecodeValue(notation); v.Kind != KindText {
			return Prescription{Name: name, Value: v, Raw: line}, true
		}
	}
	if m := namedSetsToken.FindStringSubmatch(line); m != nil {
		if p, ok := d.DecodeSets(m[2]); ok {
			p.Name, p.Raw = strings.TrimSpace(strings.TrimRight(m[1], ": ")), line
			return p, true
		}
	}
	return Prescription{}, false
}

// DecodeBlock decodes the exercise lines of a strength session. Warm-up
// lines are dropped. Main lines, circuit lines and bulleted lines are
// decoded. Other prose is ignored.
func (d *Decoder) DecodeBlock(lines []string) []Prescription {
	var (
		out    []Prescription
		warmup bool
	)
	for _, raw := range lines {
		bulleted := bulletPrefix.MatchString(raw)
		line := cleanLine(raw)
		if line == "" {
			continue
		}
		switch {
		case warmupLabel.MatchString(line):
			warmup = true
		case mainLabel.MatchString(line):
			warmup = false
			if rest := mainLabel.ReplaceAllString(line, ""); rest != "" {
				out = append(out, d.DecodeLine(rest)...)
			}
		case circuitLabel.MatchString(line):
			warmup = false
			out = append(out, d.DecodeLine(line)...)
		case bulleted && !warmup:
			out = append(out, d.DecodeLine(line)...)
		}
	}
	return out
}

// FoundationBlock returns the "PT FOUNDATION PROGRAM" block of text,
// heading line included, or "" when there is none. The block runs until the
// next bold or heading line.
func FoundationBlock(text string) string {
	lines := strings.Split(text, "\n")
	start := -1
	for i, l := range lines {
		if foundationTitle.MatchString(l) {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if blockEnd.MatchString(lines[i]) {
			end = i
			break
		}
	}
	return strings.TrimRight(strings.Join(lines[start:end], "\n"), " \t\n")
}

// SessionLines returns the leading lines that belong to a strength session
// whose marker line precedes them. The session ends at a heading, at the
// foundation block title, or at a bold line that is not a warm-up, main or
// circuit label.
func SessionLines(lines []string) []string {
	for i, l := range lines {
		if foundationTitle.MatchString(l) {
			return lines[:i]
		}
		if !blockEnd.MatchString(l) {
			continue
		}
		if c := cleanLine(l); strings.HasPrefix(strings.TrimSpace(l), "#") ||
			!(warmupLabel.MatchString(c) || mainLabel.MatchString(c) || circuitLabel.MatchString(c)) {
			return lines[:i]
		}
	}
	return lines
}

// WithFoundation swaps the exercises decoded from the foundation block in
// notes for a fresh decode of that block, appended after the exercises
// that came from other lines. Notes without the block leave exercises as
// they are.
func (d *Decoder) WithFoundation(exercises []Prescription, notes string) []Prescription {
	block := FoundationBlock(notes)
	if block == "" {
		return exercises
	}
	fromBlock := make(map[string]bool)
	for _, l := range strings.Split(block, "\n")[1:] {
		c := cleanLine(l)
		fromBlock[c] = true
		fromBlock[mainLabel.ReplaceAllString(c, "")] = true
	}
	out := make([]Prescription, 0, len(exercises))
	for _, p := range exercises {
		if !fromBlock[p.Raw] && !fromCircuit(fromBlock, p.Raw) {
			out = append(out, p)
		}
	}
	return append(out, d.ParseFoundationBlock(notes)...)
}

// fromCircuit reports whether raw is an item of a circuit line in lines.
func fromCircuit(lines map[string]bool, raw string) bool {
	for l := range lines {
		if circuitLabel.MatchString(l) && strings.Contains(l, raw) {
			return true
		}
	}
	return false
}

// ParseFoundationBlock decodes the exercises of the PT foundation block
// held in a notes field. Notes without the block yield nil.
func (d *Decoder) ParseFoundationBlock(notes string) []Prescription {
	block := FoundationBlock(notes)
	if block == "" {
		return nil
	}
	lines := strings.Split(block, "\n")
	return d.DecodeBlock(lines[1:])
}

func cleanLine(s string) string {
	s = bulletPrefix.ReplaceAllString(s, "")
	s = emphasis.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
