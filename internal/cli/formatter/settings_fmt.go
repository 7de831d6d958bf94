package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwhittle/daybook/internal/domain"
)

// FormatSettings formats schedule settings into a styled CLI view.
func FormatSettings(s *domain.ScheduleSettings) string {
	var b strings.Builder

	b.WriteString(Header("Working Hours"))
	b.WriteString("\n")
	for wd := time.Weekday(0); wd < 7; wd++ {
		day := s.Days[wd]
		if !day.Enabled {
			b.WriteString(fmt.Sprintf("  %-10s %s\n", wd.String(), Dim("off")))
			continue
		}
		line := fmt.Sprintf("  %-10s %s", wd.String(),
			StyleFg.Render(fmt.Sprintf("%s – %s", domain.FormatClock(day.StartMin), domain.FormatClock(day.EndMin))))
		for _, br := range day.Breaks {
			line += "  " + Dim(fmt.Sprintf("break %s–%s", domain.FormatClock(br.StartMin), domain.FormatClock(br.EndMin)))
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", Dim("Daily buffer:"), StyleFg.Render(fmt.Sprintf("%.1fh", s.BufferHours))))
	b.WriteString(fmt.Sprintf("  %s %s\n", Dim("Break after task:"), StyleFg.Render(FormatMinutes(s.BreakAfterTaskMin))))

	return RenderBox("Settings", b.String())
}
