package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// RelativeDateStyled returns RelativeDate with urgency coloring applied.
func RelativeDateStyled(t time.Time) string {
	text := RelativeDate(t)
	days := int(math.Round(time.Until(t).Hours() / 24))

	if days >= 0 && days <= 2 {
		return StyleRed.Render(text)
	}
	if days > 2 && days <= 7 {
		return StyleYellow.Render(text)
	}
	if days < 0 {
		return StyleRed.Render(text)
	}
	return StyleFg.Render(text)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// CapacityBar renders a fixed-width usage bar. Usage beyond capacity renders
// the whole bar red.
func CapacityBar(used, capacity, width int) string {
	if width <= 0 {
		width = 20
	}
	if capacity <= 0 {
		if used > 0 {
			return StyleRed.Render(strings.Repeat("█", width))
		}
		return StyleDim.Render(strings.Repeat("░", width))
	}

	ratio := float64(used) / float64(capacity)
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case ratio > 1:
		return StyleRed.Render(bar)
	case ratio > 0.85:
		return StyleYellow.Render(bar)
	default:
		return StyleGreen.Render(bar)
	}
}
