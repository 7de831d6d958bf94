package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwhittle/daybook/internal/contract"
)

// FormatToday formats a TodayTasksResponse into a styled CLI view.
func FormatToday(resp *contract.TodayTasksResponse) string {
	var b strings.Builder

	dayLabel := resp.Date
	if parsed, err := time.Parse(contract.DateLayout, resp.Date); err == nil {
		dayLabel = parsed.Format("Monday, Jan 2")
	}
	b.WriteString(Header(dayLabel))
	b.WriteString("\n")

	if len(resp.Tasks) == 0 {
		b.WriteString(Dim("Nothing planned for today.") + "\n")
		return RenderBox("Today", b.String())
	}

	top3 := make(map[string]int, len(resp.Top3IDs))
	for i, id := range resp.Top3IDs {
		top3[id] = i + 1
	}

	for _, t := range resp.Tasks {
		marker := Dim("  ")
		if rank, ok := top3[t.TaskID]; ok {
			marker = StyleHeader.Render(fmt.Sprintf("%d.", rank))
		}
		line := fmt.Sprintf("%s %s  %s",
			marker,
			StyleFg.Render(t.Title),
			StyleBlue.Render(fmt.Sprintf("(%s)", FormatMinutes(t.AllocatedMin))),
		)
		if t.Ratio > 0 && t.Ratio < 1 {
			line += "  " + Dim(fmt.Sprintf("%.0f%% of task", t.Ratio*100))
		}
		b.WriteString(line + "\n")
	}

	if resp.Overflow {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render("  WARNING: today is over capacity") + "\n")
	}

	return RenderBox("Today", b.String())
}
