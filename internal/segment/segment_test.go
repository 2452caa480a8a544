package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `# Spring Half Marathon Plan

Twelve weeks from base to race.

## Week 1: Foundation — 18 miles, 1,200 ft of gain

**Focus:** Build aerobic base

### Monday, March 3
Rest

### Tuesday
- Easy Run: 4 miles

### Wednesday

### Thursday, March 6
Hill Workout: 5 miles with 6 x 60 sec hill repeats

#### Coach notes
Keep it controlled.

## Week 2
### Monday
Rest

## Week 3

## Appendix
### Sunday
Not part of any week.

## Week 4: Cutback
### Saturday
Long Run: 8 miles
`

func TestSegment_Structure(t *testing.T) {
	d := Segment([]byte(doc))

	assert.Equal(t, "Spring Half Marathon Plan", d.Title)
	assert.Contains(t, d.Preamble, "Twelve weeks")
	assert.NotContains(t, d.Preamble, "Week 1")

	require.Len(t, d.Weeks, 3, "empty week 3 is skipped")
	assert.Equal(t, 1, d.Weeks[0].Number)
	assert.Equal(t, 2, d.Weeks[1].Number)
	assert.Equal(t, 4, d.Weeks[2].Number)

	w1 := d.Weeks[0]
	require.Len(t, w1.Days, 3, "Wednesday has no body")
	assert.Equal(t, "Monday", w1.Days[0].Name)
	assert.Equal(t, "Monday, March 3", w1.Days[0].Heading)
	assert.Equal(t, "Rest", w1.Days[0].Body)
	assert.Equal(t, "Tuesday", w1.Days[1].Name)
	assert.Equal(t, "Thursday", w1.Days[2].Name)
	assert.Contains(t, w1.Days[2].Body, "Keep it controlled.", "deeper headings stay in the day")
	assert.Equal(t, 5, w1.Line)

	assert.Equal(t, "Cutback", d.Weeks[2].Title)
	require.Len(t, d.Weeks[2].Days, 1)
	assert.Equal(t, "Saturday", d.Weeks[2].Days[0].Name)
}

func TestSegment_NonWeekHeadingEndsWeek(t *testing.T) {
	d := Segment([]byte(doc))
	for _, w := range d.Weeks {
		for _, day := range w.Days {
			assert.NotContains(t, day.Body, "Not part of any week")
		}
	}
}

func TestSegment_WeekMeta(t *testing.T) {
	d := Segment([]byte(doc))
	m := d.Weeks[0].Meta
	require.NotNil(t, m.TargetDistance)
	assert.Equal(t, 18.0, *m.TargetDistance)
	require.NotNil(t, m.TargetElevationGain)
	assert.Equal(t, 1200, *m.TargetElevationGain)
	assert.Equal(t, "Build aerobic base", m.Theme)

	m = d.Weeks[1].Meta
	assert.Nil(t, m.TargetDistance)
	assert.Nil(t, m.TargetElevationGain)
	assert.Empty(t, m.Theme)

	assert.Equal(t, "Cutback", d.Weeks[2].Meta.Theme, "title is the theme fallback")
}

func TestSegment_NoWeeks(t *testing.T) {
	d := Segment([]byte("just some text\n\n### Monday\nRest\n"))
	assert.Empty(t, d.Weeks)
	assert.Contains(t, d.Preamble, "just some text")

	d = Segment(nil)
	assert.Empty(t, d.Weeks)
	assert.Empty(t, d.Preamble)
}

func TestDaySection_Text(t *testing.T) {
	d := DaySection{Heading: "Tuesday, March 4", Body: "Rest"}
	assert.Equal(t, "Tuesday, March 4\nRest", d.Text())
}

func TestExtractWeekMeta_Range(t *testing.T) {
	m := ExtractWeekMeta("Durability", "Target: 20-22 miles with 2,000 feet elevation")
	require.NotNil(t, m.TargetDistance)
	assert.Equal(t, 20.0, *m.TargetDistance)
	require.NotNil(t, m.TargetElevationGain)
	assert.Equal(t, 2000, *m.TargetElevationGain)
	assert.Equal(t, "Durability", m.Theme)
}
