package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/jwhittle/daybook/internal/domain"
)

type interval struct {
	startMin int
	endMin   int
}

// layoutDayBlocks turns one day's allocations into concrete time blocks.
// Meetings come out as immovable kind=meeting blocks; task work fills the
// free gaps between breaks and meetings in allocation order, splitting
// across gaps when needed, with the configured rest inserted after each
// task. Work that exceeds the day window (pinned overflow) is appended
// after the window end so overflow stays visible.
func layoutDayBlocks(
	capacity DayCapacity,
	allocations []domain.TaskAllocation,
	breakAfterTaskMin int,
	pinnedDates map[string]time.Time,
) []domain.ScheduleTimeBlock {
	var blocks []domain.ScheduleTimeBlock

	meetings := append([]MeetingBlock(nil), capacity.Meetings...)
	sort.Slice(meetings, func(i, j int) bool {
		if meetings[i].StartMin != meetings[j].StartMin {
			return meetings[i].StartMin < meetings[j].StartMin
		}
		return meetings[i].TaskID < meetings[j].TaskID
	})
	for _, m := range meetings {
		blocks = append(blocks, newBlock(m.TaskID, capacity.Date, m.StartMin, m.EndMin, domain.BlockMeeting, nil))
	}

	if len(allocations) == 0 {
		return blocks
	}

	gaps := freeGaps(capacity, meetings)
	gapIdx := 0
	cursor := 0
	if len(gaps) > 0 {
		cursor = gaps[0].startMin
	}
	tail := capacity.Hours.EndMin // used once the window is exhausted

	for _, alloc := range allocations {
		remaining := alloc.Minutes
		var pinnedDate *time.Time
		if pd, ok := pinnedDates[alloc.TaskID]; ok {
			d := pd
			pinnedDate = &d
		}

		for remaining > 0 && gapIdx < len(gaps) {
			g := gaps[gapIdx]
			if cursor < g.startMin {
				cursor = g.startMin
			}
			room := g.endMin - cursor
			if room <= 0 {
				gapIdx++
				if gapIdx < len(gaps) {
					cursor = gaps[gapIdx].startMin
				}
				continue
			}
			take := remaining
			if take > room {
				take = room
			}
			blocks = append(blocks, newBlock(alloc.TaskID, capacity.Date, cursor, cursor+take, domain.BlockAuto, pinnedDate))
			cursor += take
			remaining -= take
		}

		// Window exhausted: spill past the day end.
		if remaining > 0 {
			blocks = append(blocks, newBlock(alloc.TaskID, capacity.Date, tail, tail+remaining, domain.BlockAuto, pinnedDate))
			tail += remaining + breakAfterTaskMin
		}

		// Rest after each task block; a scheduling hint, not a capacity
		// consumer, so it only moves the cursor.
		cursor += breakAfterTaskMin
	}

	return blocks
}

// freeGaps computes the open intervals of the working window after removing
// breaks and meetings. Disabled days have no window at all.
func freeGaps(capacity DayCapacity, meetings []MeetingBlock) []interval {
	if !capacity.Hours.Enabled {
		return nil
	}

	busy := make([]interval, 0, len(capacity.Hours.Breaks)+len(meetings))
	for _, b := range capacity.Hours.Breaks {
		busy = append(busy, interval{b.StartMin, b.EndMin})
	}
	for _, m := range meetings {
		busy = append(busy, interval{m.StartMin, m.EndMin})
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].startMin < busy[j].startMin })

	var gaps []interval
	cursor := capacity.Hours.StartMin
	for _, b := range busy {
		if b.endMin <= cursor {
			continue
		}
		if b.startMin > cursor {
			end := b.startMin
			if end > capacity.Hours.EndMin {
				end = capacity.Hours.EndMin
			}
			if end > cursor {
				gaps = append(gaps, interval{cursor, end})
			}
		}
		if b.endMin > cursor {
			cursor = b.endMin
		}
	}
	if cursor < capacity.Hours.EndMin {
		gaps = append(gaps, interval{cursor, capacity.Hours.EndMin})
	}
	return gaps
}

// newBlock builds a block with a deterministic id so repeated runs over
// identical input produce byte-identical plans.
func newBlock(taskID string, date time.Time, startMin, endMin int, kind domain.BlockKind, pinnedDate *time.Time) domain.ScheduleTimeBlock {
	return domain.ScheduleTimeBlock{
		ID:         fmt.Sprintf("%s-%s-%04d", date.Format("20060102"), taskID, startMin),
		TaskID:     taskID,
		Date:       date,
		StartMin:   startMin,
		EndMin:     endMin,
		Kind:       kind,
		PinnedDate: pinnedDate,
	}
}
