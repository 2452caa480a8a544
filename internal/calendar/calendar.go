// Package calendar derives week and day dates for a plan from its start
// date, explicit date mentions and weekday names.
package calendar

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Source says how a day's date was resolved.
type Source string

const (
	SourceExplicit   Source = "explicit"
	SourcePositional Source = "positional"
)

var months = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "jun": time.June, "jul": time.July,
	"aug": time.August, "sep": time.September, "sept": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

var explicitDate = regexp.MustCompile(`(?i),\s*([a-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b`)

// WeekRange returns the first and last day of week n (1-based) of a plan
// starting on planStart.
func WeekRange(planStart time.Time, n int) (start, end time.Time) {
	start = dateOnly(planStart).AddDate(0, 0, 7*(n-1))
	return start, start.AddDate(0, 0, 6)
}

// PhaseRange returns the dates covered by weeks [weekStart, weekEnd].
func PhaseRange(planStart time.Time, weekStart, weekEnd int) (start, end time.Time) {
	start, _ = WeekRange(planStart, weekStart)
	_, end = WeekRange(planStart, weekEnd)
	return start, end
}

// ParseWeekday resolves a full weekday name, case-insensitively.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

// ParseExplicitDate finds a ", <Month> <Day>" mention in text and resolves
// it in the given year. Unknown month names and impossible days do not match.
func ParseExplicitDate(text string, year int) (time.Time, bool) {
	for _, m := range explicitDate.FindAllStringSubmatch(text, -1) {
		month, ok := months[strings.ToLower(m[1])]
		if !ok {
			continue
		}
		day, err := strconv.Atoi(m[2])
		if err != nil || day < 1 {
			continue
		}
		t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if t.Day() != day {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}

// PositionalDate returns the date in the week starting at weekStart that
// falls on the target weekday.
func PositionalDate(weekStart time.Time, target time.Weekday) time.Time {
	offset := (int(target) - int(weekStart.Weekday()) + 7) % 7
	return dateOnly(weekStart).AddDate(0, 0, offset)
}

// DayDate resolves the date of a day section. An explicit date in text wins;
// otherwise the weekday name is placed positionally within the week. The
// second result is false only when neither works (unknown weekday and no
// explicit date).
func DayDate(text, dayName string, weekStart time.Time, year int) (time.Time, Source, bool) {
	if t, ok := ParseExplicitDate(text, year); ok {
		return t, SourceExplicit, true
	}
	wd, ok := ParseWeekday(dayName)
	if !ok {
		return time.Time{}, "", false
	}
	return PositionalDate(weekStart, wd), SourcePositional, true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
