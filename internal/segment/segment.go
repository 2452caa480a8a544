// Package segment splits a plan document into week and day sections using
// the markdown heading structure.
package segment

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

var (
	weekHeading = regexp.MustCompile(`(?i)^week\s+(\d+)\b\s*[:.\-–—]?\s*(.*)$`)
	dayHeading  = regexp.MustCompile(`(?i)^(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b\s*(.*)$`)
)

// Document is a segmented plan document in source order.
type Document struct {
	Title    string
	Preamble string
	Weeks    []WeekSection
}

// WeekSection is one "## Week <N>" section.
type WeekSection struct {
	Number int
	Title  string
	// Intro is the text between the week heading and its first day.
	Intro string
	Meta  WeekMeta
	Days  []DaySection
	Line  int
}

// DaySection is one "### <Weekday>" section inside a week.
type DaySection struct {
	Name    string
	Heading string
	Body    string
	Line    int
}

// Text returns the heading and body, which is what the date and workout
// parsers read.
func (d DaySection) Text() string {
	return d.Heading + "\n" + d.Body
}

type heading struct {
	level     int
	text      string
	start     int
	bodyStart int
}

// Segment splits src into weeks and days. Headings that do not follow the
// "## Week <N>" and "### <Weekday>" grammar are not section boundaries of
// interest and their content is dropped. Sections without body text are
// skipped. Segment never fails.
func Segment(src []byte) Document {
	heads := atxHeadings(src)

	var doc Document
	firstWeek := len(src)
	var cur *WeekSection
	for i, h := range heads {
		end := sectionEnd(heads, i, len(src))
		switch {
		case h.level == 1 && doc.Title == "" && h.start < firstWeek:
			doc.Title = h.text
		case h.level <= 2:
			cur = nil
			m := weekHeading.FindStringSubmatch(h.text)
			if h.level != 2 || m == nil {
				continue
			}
			if h.start < firstWeek {
				firstWeek = h.start
			}
			body := string(src[h.bodyStart:end])
			if strings.TrimSpace(body) == "" {
				continue
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			introEnd := end
			for _, next := range heads[i+1:] {
				if next.start >= end {
					break
				}
				if next.level == 3 {
					introEnd = next.start
					break
				}
			}
			intro := strings.TrimSpace(string(src[h.bodyStart:introEnd]))
			title := strings.TrimSpace(m[2])
			doc.Weeks = append(doc.Weeks, WeekSection{
				Number: n,
				Title:  title,
				Intro:  intro,
				Meta:   ExtractWeekMeta(title, intro),
				Line:   lineOf(src, h.start),
			})
			cur = &doc.Weeks[len(doc.Weeks)-1]
		case h.level == 3 && cur != nil:
			m := dayHeading.FindStringSubmatch(h.text)
			if m == nil {
				continue
			}
			body := strings.TrimSpace(string(src[h.bodyStart:end]))
			if body == "" {
				continue
			}
			cur.Days = append(cur.Days, DaySection{
				Name:    canonicalDay(m[1]),
				Heading: h.text,
				Body:    body,
				Line:    lineOf(src, h.start),
			})
		}
	}
	if firstWeek > len(src) {
		firstWeek = len(src)
	}
	doc.Preamble = strings.TrimSpace(string(src[:firstWeek]))
	return doc
}

// atxHeadings returns the top-level "#"-style headings in document order.
func atxHeadings(src []byte) []heading {
	root := md.Parser().Parse(text.NewReader(src))
	var heads []heading
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}
		seg := h.Lines().At(0)
		start := lineStart(src, seg.Start)
		if !bytes.HasPrefix(bytes.TrimLeft(src[start:seg.Start], " "), []byte("#")) {
			continue
		}
		heads = append(heads, heading{
			level:     h.Level,
			text:      strings.TrimSpace(string(seg.Value(src))),
			start:     start,
			bodyStart: lineEnd(src, seg.Stop),
		})
	}
	return heads
}

// sectionEnd is the start of the next heading at the same or a higher level.
func sectionEnd(heads []heading, i, size int) int {
	for _, next := range heads[i+1:] {
		if next.level <= heads[i].level {
			return next.start
		}
	}
	return size
}

func lineStart(src []byte, off int) int {
	return bytes.LastIndexByte(src[:off], '\n') + 1
}

func lineEnd(src []byte, off int) int {
	if i := bytes.IndexByte(src[off:], '\n'); i >= 0 {
		return off + i + 1
	}
	return len(src)
}

func lineOf(src []byte, off int) int {
	return bytes.Count(src[:off], []byte("\n")) + 1
}

func canonicalDay(s string) string {
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}
