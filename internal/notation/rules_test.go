package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleNames_Order(t *testing.T) {
	assert.Equal(t,
		[]string{"duration", "distance", "bilateral", "amrap", "reps", "opaque"},
		RuleNames())
}

func TestDurationRule(t *testing.T) {
	v, _, ok := durationRule(Default, "45 seconds")
	require.True(t, ok)
	assert.Equal(t, KindDuration, v.Kind)
	assert.Equal(t, 45, v.Count)
	assert.True(t, v.IsTimed)

	_, next, ok := durationRule(Default, "12")
	assert.False(t, ok)
	assert.Equal(t, "12", next)

	// A unit without a number is not a duration.
	_, _, ok = durationRule(Default, "secs")
	assert.False(t, ok)
}

func TestDistanceRule(t *testing.T) {
	v, _, ok := distanceRule(Default, "18ft (one direction)")
	require.True(t, ok)
	assert.Equal(t, KindDistance, v.Kind)
	assert.Equal(t, 18, v.Count)
	assert.Contains(t, v.DisplayCue, "garage door")

	v, _, ok = distanceRule(Default, "18 feet each direction")
	require.True(t, ok)
	assert.Contains(t, v.DisplayCue, "out and back")

	v, _, ok = distanceRule(Default, "25ft")
	require.True(t, ok)
	assert.Empty(t, v.DisplayCue, "no landmark for an unlisted distance")

	_, _, ok = distanceRule(Default, "left foot forward")
	assert.False(t, ok)
}

func TestBilateralRule_StripsQualifier(t *testing.T) {
	cases := map[string]string{
		"15-20 each leg":  "15-20",
		"10 each side":    "10",
		"8 each arm":      "8",
		"12 each hands":   "12",
		"6 each":          "6",
		"5 slow each leg": "5 slow",
	}
	for in, want := range cases {
		_, next, ok := bilateralRule(Default, in)
		assert.False(t, ok, in)
		assert.Equal(t, want, next, in)
	}
}

func TestAMRAPRule(t *testing.T) {
	v, _, ok := amrapRule(Default, "amrap in 5 min")
	require.True(t, ok)
	assert.Equal(t, KindAMRAP, v.Kind)
	assert.Equal(t, "amrap in 5 min", v.Text)
	assert.Zero(t, v.Count)
}

func TestRepsRule_LowerBound(t *testing.T) {
	v, _, ok := repsRule(Default, "15-20")
	require.True(t, ok)
	assert.Equal(t, 15, v.Count)

	_, _, ok = repsRule(Default, "max effort")
	assert.False(t, ok)
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		in    string
		kind  ValueKind
		count int
		rule  string
	}{
		{"", KindReps, 0, "empty"},
		{"   ", KindReps, 0, "empty"},
		{"30sec", KindDuration, 30, "duration"},
		{"30 sec each side", KindDuration, 30, "duration"},
		{"18ft", KindDistance, 18, "distance"},
		{"15-20 each leg", KindReps, 15, "reps"},
		{"12", KindReps, 12, "reps"},
		{"AMRAP", KindAMRAP, 0, "amrap"},
		{"10 AMRAP", KindAMRAP, 0, "amrap"},
		{"to failure", KindText, 0, "opaque"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, rule := Default.DecodeValueRule(tt.in)
			assert.Equal(t, tt.kind, v.Kind)
			assert.Equal(t, tt.count, v.Count)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestDecodeValue_EmptyIsZero(t *testing.T) {
	v := DecodeValue("")
	assert.True(t, v.IsZero())
	assert.Equal(t, KindReps, v.Kind)
}

func TestDecodeValue_AMRAPPassthrough(t *testing.T) {
	v := DecodeValue("AMRAP 20-30")
	assert.Equal(t, KindAMRAP, v.Kind)
	assert.Equal(t, "AMRAP 20-30", v.Text)
	assert.Zero(t, v.Count)
}

func TestDecodeValue_OpaqueKeepsText(t *testing.T) {
	v := DecodeValue("hold until form breaks")
	assert.Equal(t, KindText, v.Kind)
	assert.Equal(t, "hold until form breaks", v.Text)
}
