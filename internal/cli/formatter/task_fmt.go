package formatter

import (
	"fmt"
	"strings"

	"github.com/jwhittle/daybook/internal/domain"
)

// FormatTaskList formats tasks into a styled CLI listing.
func FormatTaskList(tasks []*domain.Task) string {
	var b strings.Builder

	b.WriteString(Header("Tasks"))
	b.WriteString("\n")
	if len(tasks) == 0 {
		b.WriteString(Dim("  No tasks.") + "\n")
		return RenderBox("", b.String())
	}

	for _, t := range tasks {
		line := fmt.Sprintf("  %s %s  %s",
			TruncID(t.ID),
			StyleFg.Render(t.Title),
			TaskStatusPill(t.Status),
		)
		if t.IsFixedTime {
			line += "  " + StylePurple.Render("meeting")
		} else if t.EstimatedMin > 0 {
			line += "  " + StyleBlue.Render(fmt.Sprintf("(%s)", FormatMinutes(t.EstimatedMin)))
		}
		if t.Progress > 0 && t.Status != domain.TaskDone {
			line += "  " + Dim(fmt.Sprintf("%d%%", t.Progress))
		}
		if t.DueDate != nil {
			line += "  " + Dim("due ") + RelativeDateStyled(*t.DueDate)
		}
		b.WriteString(line + "\n")
	}

	return RenderBox("", b.String())
}
