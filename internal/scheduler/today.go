package scheduler

import (
	"sort"
	"time"

	"github.com/jwhittle/daybook/internal/domain"
)

// TodayTask is one task's share of today's plan.
type TodayTask struct {
	TaskID       string
	Title        string
	AllocatedMin int
	TotalMin     int
	Ratio        float64 // allocated/total, 0 when total is 0, capped to [0,1]
}

// TodayView answers "what should I work on today".
type TodayView struct {
	Date     time.Time
	Tasks    []TodayTask
	Top3IDs  []string
	Overflow bool
}

// ProjectToday derives the today view from one ScheduleDay and the plan's
// task infos. Infos must be in canonical priority order; top-3 selection
// is by allocated minutes with priority order breaking ties.
func ProjectToday(day domain.ScheduleDay, infos []domain.TaskScheduleInfo) TodayView {
	view := TodayView{Date: day.Date}

	allocated := make(map[string]int, len(day.Allocations))
	for _, a := range day.Allocations {
		allocated[a.TaskID] += a.Minutes
	}

	totalToday := 0
	for _, info := range infos {
		min := allocated[info.TaskID]
		if min <= 0 {
			continue
		}
		totalToday += min
		view.Tasks = append(view.Tasks, TodayTask{
			TaskID:       info.TaskID,
			Title:        info.Title,
			AllocatedMin: min,
			TotalMin:     info.TotalMin,
			Ratio:        ratioOf(min, info.TotalMin),
		})
	}

	// Top 3 by allocated minutes; the slice is already in priority order,
	// so a stable selection keeps ties deterministic.
	top := append([]TodayTask(nil), view.Tasks...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].AllocatedMin > top[j].AllocatedMin })
	for i := 0; i < len(top) && i < 3; i++ {
		view.Top3IDs = append(view.Top3IDs, top[i].TaskID)
	}

	view.Overflow = totalToday > day.CapacityMin
	return view
}

func ratioOf(allocated, total int) float64 {
	if total <= 0 {
		return 0
	}
	r := float64(allocated) / float64(total)
	if r > 1 {
		return 1
	}
	return r
}
