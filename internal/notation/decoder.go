// Package notation decodes the shorthand exercise notation used in plan
// documents ("3x15-20 each leg", "3 sets of 18ft (one direction)",
// "Circuit 3x: ...", "4x6 (65%)") into typed prescriptions.
//
// The same Decoder serves the compiler that writes the schedule and the
// read side that re-parses stored notes, so both always agree on grammar.
package notation

// Decoder applies the notation grammar using a fixed set of lookup tables.
// A Decoder is immutable and safe for concurrent use.
type Decoder struct {
	tables Tables
}

// New returns a Decoder over the given tables.
func New(t Tables) *Decoder {
	return &Decoder{tables: t}
}

// Tables returns the lookup tables the decoder was built with.
func (d *Decoder) Tables() Tables {
	return d.tables
}

// Default is the decoder over the embedded tables.
var Default = New(DefaultTables())

// DecodeValue decodes with the Default decoder.
func DecodeValue(s string) Value { return Default.DecodeValue(s) }

// DecodeSets decodes with the Default decoder.
func DecodeSets(s string) (Prescription, bool) { return Default.DecodeSets(s) }

// DecodeCircuit decodes with the Default decoder.
func DecodeCircuit(s string) ([]Prescription, bool) { return Default.DecodeCircuit(s) }

// DecodeLine decodes with the Default decoder.
func DecodeLine(s string) []Prescription { return Default.DecodeLine(s) }

// ParseFoundationBlock decodes with the Default decoder.
func ParseFoundationBlock(notes string) []Prescription { return Default.ParseFoundationBlock(notes) }

// DecodeBlock decodes with the Default decoder.
func DecodeBlock(lines []string) []Prescription { return Default.DecodeBlock(lines) }

// WithFoundation merges with the Default decoder.
func WithFoundation(exercises []Prescription, notes string) []Prescription {
	return Default.WithFoundation(exercises, notes)
}
