package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jwhittle/daybook/internal/domain"
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

// Predefined lipgloss styles.
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

// PlanStateBadge returns a colored indicator for the plan state.
func PlanStateBadge(state string) string {
	switch domain.PlanState(state) {
	case domain.PlanStatePlanned:
		return StyleGreen.Render("● PLANNED")
	case domain.PlanStateStale:
		return StyleYellow.Render("● STALE")
	case domain.PlanStateForecast:
		return StyleBlue.Render("○ FORECAST")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// TaskStatusPill returns a colored status indicator for task status.
func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskTodo:
		return StyleBlue.Render("○ Todo")
	case domain.TaskInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.TaskDone:
		return StyleDim.Render("✔ Done")
	case domain.TaskCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
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
