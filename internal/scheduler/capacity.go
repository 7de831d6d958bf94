package scheduler

import (
	"time"

	"github.com/jwhittle/daybook/internal/domain"
)

// MeetingBlock is a fixed-time commitment occupying part of a day before
// any task allocation happens.
type MeetingBlock struct {
	TaskID   string
	Date     time.Time
	StartMin int
	EndMin   int
}

// DayCapacity is the computed working capacity of one calendar date.
// CapacityMin = workday minus breaks minus buffer minus meetings, never
// negative.
type DayCapacity struct {
	Date        time.Time
	Hours       domain.WorkdayHours
	MeetingMin  int
	CapacityMin int
	Meetings    []MeetingBlock
}

// MeetingBlocks derives immovable meeting intervals from fixed-time tasks
// whose start falls inside [start, start+days).
func MeetingBlocks(tasks []*domain.Task, start time.Time, days int) []MeetingBlock {
	from := domain.DateOf(start)
	until := from.AddDate(0, 0, days)

	var blocks []MeetingBlock
	for _, t := range tasks {
		if !t.IsFixedTime || t.StartTime == nil || t.EndTime == nil {
			continue
		}
		date := domain.DateOf(*t.StartTime)
		if date.Before(from) || !date.Before(until) {
			continue
		}
		blocks = append(blocks, MeetingBlock{
			TaskID:   t.ID,
			Date:     date,
			StartMin: t.StartTime.Hour()*60 + t.StartTime.Minute(),
			EndMin:   t.EndTime.Hour()*60 + t.EndTime.Minute(),
		})
	}
	return blocks
}

// ComputeCapacities expands the weekly settings into per-date capacities for
// [start, start+days). A buffer larger than the raw workday yields zero
// capacity, not a negative one.
func ComputeCapacities(
	settings *domain.ScheduleSettings,
	meetings []MeetingBlock,
	start time.Time,
	days int,
) []DayCapacity {
	from := domain.DateOf(start)
	bufferMin := int(settings.BufferHours * 60)

	meetingsByDate := make(map[time.Time][]MeetingBlock, len(meetings))
	for _, m := range meetings {
		meetingsByDate[domain.DateOf(m.Date)] = append(meetingsByDate[domain.DateOf(m.Date)], m)
	}

	capacities := make([]DayCapacity, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		day := settings.Workday(date)

		dc := DayCapacity{Date: date, Hours: day, Meetings: meetingsByDate[date]}
		for _, m := range dc.Meetings {
			if d := m.EndMin - m.StartMin; d > 0 {
				dc.MeetingMin += d
			}
		}

		if day.Enabled {
			raw := day.EndMin - day.StartMin - day.BreakMin() - bufferMin
			if raw < 0 {
				raw = 0
			}
			dc.CapacityMin = raw - dc.MeetingMin
			if dc.CapacityMin < 0 {
				dc.CapacityMin = 0
			}
		}

		capacities = append(capacities, dc)
	}
	return capacities
}
