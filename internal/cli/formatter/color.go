package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/trainplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// WorkoutStyle returns the style a workout type is labelled with.
func WorkoutStyle(t domain.WorkoutType) lipgloss.Style {
	switch t {
	case domain.WorkoutRun:
		return StyleGreen
	case domain.WorkoutRunStrength:
		return StyleYellow
	case domain.WorkoutStrength:
		return StylePurple
	case domain.WorkoutRowing:
		return StyleBlue
	default:
		return StyleDim
	}
}

// WorkoutBadge returns a colored workout type label such as "● RUN".
func WorkoutBadge(t domain.WorkoutType) string {
	if t == "" {
		t = domain.WorkoutRest
	}
	marker := "●"
	if t == domain.WorkoutRest {
		marker = "○"
	}
	return WorkoutStyle(t).Render(marker + " " + strings.ToUpper(string(t)))
}

// StatusPill returns a colored indicator for a compile run status.
func StatusPill(status domain.CompileStatus) string {
	switch status {
	case domain.CompileCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.CompilePartial:
		return StyleYellow.Render("◐ Partial")
	case domain.CompileFailed:
		return StyleRed.Render("✖ Failed")
	case domain.CompileCancelled:
		return StyleDim.Render("⊘ Cancelled")
	case domain.CompileRunning:
		return StyleBlue.Render("● Running")
	default:
		return StyleDim.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
