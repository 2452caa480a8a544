package segment

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	weekDistance  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(?:\s*-\s*\d+(?:\.\d+)?)?\s*(?:mi|miles?)\b`)
	weekElevation = regexp.MustCompile(`(?i)(\d[\d,]*)\s*(?:ft|feet)\s*(?:of\s+)?(?:gain|elevation|vert|climbing)`)
	weekTheme     = regexp.MustCompile(`(?im)^[\s*_>-]*(?:theme|focus)[\s*_]*:[\s*_]*(.+?)[\s*_]*$`)
	titleCut      = regexp.MustCompile(`\s+[—–-]\s+|\s*[(|,:]`)
)

// WeekMeta holds the best-effort metadata of a week. Fields stay nil or
// empty when nothing matched.
type WeekMeta struct {
	TargetDistance      *float64
	TargetElevationGain *int
	Theme               string
}

// ExtractWeekMeta reads target distance, elevation gain and theme from a
// week's heading title and intro text.
func ExtractWeekMeta(title, intro string) WeekMeta {
	var meta WeekMeta
	src := title + "\n" + intro

	if m := weekDistance.FindStringSubmatch(src); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			meta.TargetDistance = &f
		}
	}
	if m := weekElevation.FindStringSubmatch(src); m != nil {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			meta.TargetElevationGain = &n
		}
	}
	if m := weekTheme.FindStringSubmatch(intro); m != nil {
		meta.Theme = strings.TrimSpace(m[1])
	} else if title != "" {
		meta.Theme = strings.TrimSpace(titleCut.Split(title, 2)[0])
	}
	return meta
}
