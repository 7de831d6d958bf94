package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwhittle/daybook/internal/contract"
	"github.com/jwhittle/daybook/internal/domain"
)

// FormatSchedule formats a SchedulePlanResponse into a styled CLI dashboard.
func FormatSchedule(resp *contract.SchedulePlanResponse) string {
	var b strings.Builder

	b.WriteString(PlanStateBadge(resp.PlanState))
	if resp.PlanGeneratedAt != nil {
		b.WriteString("  " + Dim(fmt.Sprintf("generated %s", resp.PlanGeneratedAt.Format("Jan 2 15:04"))))
	}
	b.WriteString("\n\n")

	if len(resp.PendingChanges) > 0 {
		b.WriteString(Header("Pending Changes"))
		b.WriteString("\n")
		for _, c := range resp.PendingChanges {
			b.WriteString(fmt.Sprintf("  %s %s  %s\n",
				StyleYellow.Render(strings.ToUpper(c.Change)),
				StyleFg.Render(c.Title),
				TruncID(c.TaskID),
			))
		}
		b.WriteString(Dim("  Run `daybook plan save` to regenerate.") + "\n")
		b.WriteString("\n")
	}

	b.WriteString(Header("Days"))
	b.WriteString("\n")
	if len(resp.Days) == 0 {
		b.WriteString(Dim("  Nothing scheduled.") + "\n")
	}
	for _, d := range resp.Days {
		dayLabel := d.Date
		if parsed, err := time.Parse(contract.DateLayout, d.Date); err == nil {
			dayLabel = parsed.Format("Mon Jan 2")
		}
		line := fmt.Sprintf("  %-12s %s %s",
			Bold(dayLabel),
			CapacityBar(d.AllocatedMin, d.CapacityMin, 20),
			StyleFg.Render(fmt.Sprintf("%s / %s", FormatMinutes(d.AllocatedMin), FormatMinutes(d.CapacityMin))),
		)
		if d.MeetingMin > 0 {
			line += "  " + StylePurple.Render(fmt.Sprintf("meetings %s", FormatMinutes(d.MeetingMin)))
		}
		if d.OverflowMin > 0 {
			line += "  " + StyleRed.Render(fmt.Sprintf("over by %s", FormatMinutes(d.OverflowMin)))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	b.WriteString(Header("Tasks"))
	b.WriteString("\n")
	if len(resp.Tasks) == 0 {
		b.WriteString(Dim("  No allocatable tasks.") + "\n")
	}
	for _, t := range resp.Tasks {
		line := fmt.Sprintf("  %s  %s",
			StyleFg.Render(t.Title),
			StyleBlue.Render(fmt.Sprintf("(%s of %s)", FormatMinutes(t.AllocatedMin), FormatMinutes(t.TotalMin))),
		)
		if t.Pinned {
			line += "  " + StylePurple.Render("⚲ pinned")
		}
		if t.DueDate != nil {
			if parsed, err := time.Parse(contract.DateLayout, *t.DueDate); err == nil {
				line += "  " + Dim("due ") + RelativeDateStyled(parsed)
			}
		}
		b.WriteString(line + "\n")
	}

	if len(resp.Unscheduled) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Does Not Fit"))
		b.WriteString("\n")
		for _, u := range resp.Unscheduled {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				StyleRed.Render("✖"),
				TruncID(u.TaskID),
				Dim(fmt.Sprintf("%s left (%s)", FormatMinutes(u.RemainingMin), reasonLabel(u.Reason))),
			))
		}
	}

	if len(resp.Excluded) > 0 {
		b.WriteString("\n")
		for _, e := range resp.Excluded {
			b.WriteString(Dim(fmt.Sprintf("  skipped %s: %s", e.TaskID, reasonLabel(e.Reason))) + "\n")
		}
	}

	if len(resp.PinnedOverflowTaskIDs) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render(
			fmt.Sprintf("  WARNING: %d pinned task(s) push their day over capacity", len(resp.PinnedOverflowTaskIDs))) + "\n")
	}

	return RenderBox("Schedule", b.String())
}

func reasonLabel(reason string) string {
	switch reason {
	case domain.ReasonHorizonExceeded:
		return "does not fit inside the planning horizon"
	case domain.ReasonNoEstimate:
		return "no estimate"
	case domain.ReasonDueDatePassed:
		return "due date already passed"
	case domain.ReasonAlreadyDone:
		return "nothing left to do"
	default:
		return reason
	}
}
