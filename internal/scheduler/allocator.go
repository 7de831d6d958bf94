package scheduler

import (
	"time"

	"github.com/jwhittle/daybook/internal/domain"
)

// DefaultHorizonDays bounds how far ahead the allocator will look before
// reporting leftover demand as unscheduled.
const DefaultHorizonDays = 28

// AllocateInput carries everything the allocator needs. Candidates must
// already be in canonical order; Capacities must cover the full horizon
// starting at Today.
type AllocateInput struct {
	Candidates        []Candidate
	Excluded          []domain.ExcludedTask
	Capacities        []DayCapacity
	BreakAfterTaskMin int
	Today             time.Time
}

// AllocationResult is the complete output of one allocation run.
type AllocationResult struct {
	Days                  []domain.ScheduleDay
	Tasks                 []domain.TaskScheduleInfo
	Unscheduled           []domain.UnscheduledTask
	Excluded              []domain.ExcludedTask
	TimeBlocks            []domain.ScheduleTimeBlock
	PinnedOverflowTaskIDs []string
}

type dayState struct {
	capacity     DayCapacity
	allocatedMin int
	allocations  []domain.TaskAllocation
}

func (d *dayState) freeMin() int {
	free := d.capacity.CapacityMin - d.allocatedMin
	if free < 0 {
		return 0
	}
	return free
}

func (d *dayState) add(taskID string, minutes int) {
	d.allocatedMin += minutes
	d.allocations = append(d.allocations, domain.TaskAllocation{TaskID: taskID, Minutes: minutes})
}

// Allocate runs the greedy bin-packing pass. Pinned tasks land on their
// pinned date first and may overflow it; everything else walks forward from
// today, filling each day's free capacity in canonical order. Demand that
// does not fit inside the horizon is reported as unscheduled, never dropped.
//
// The function is pure and deterministic: identical input produces
// identical output, including block ordering and ids.
func Allocate(input AllocateInput) AllocationResult {
	today := domain.DateOf(input.Today)

	days := make([]dayState, len(input.Capacities))
	dayIdx := make(map[time.Time]int, len(input.Capacities))
	for i, c := range input.Capacities {
		days[i] = dayState{capacity: c}
		dayIdx[c.Date] = i
	}

	result := AllocationResult{Excluded: input.Excluded}

	// Pass 1: pinned tasks, full demand on the pinned date regardless of
	// capacity pressure.
	pinnedByDay := make(map[int][]string)
	for i := range input.Candidates {
		c := &input.Candidates[i]
		if !c.Pinned {
			continue
		}
		date := c.PinnedDate
		if date.Before(today) {
			date = today
		}
		idx, ok := dayIdx[date]
		if !ok {
			// Pinned beyond the horizon: the pin cannot be honored, the
			// task falls back to priority-based placement.
			c.Pinned = false
			continue
		}
		days[idx].add(c.Task.ID, c.RemainingMin)
		c.RemainingMin = 0
		pinnedByDay[idx] = append(pinnedByDay[idx], c.Task.ID)
	}

	// Every pin sitting on an over-capacity day is reported, not just the
	// one whose placement crossed the boundary. Pass 2 never overflows a
	// day, so the check is final here.
	for i := range days {
		if days[i].allocatedMin > days[i].capacity.CapacityMin {
			result.PinnedOverflowTaskIDs = append(result.PinnedOverflowTaskIDs, pinnedByDay[i]...)
		}
	}

	// Pass 2: everything else, greedy day walk. Zero-minute allocations are
	// never emitted.
	for i := range input.Candidates {
		c := &input.Candidates[i]
		if c.Pinned || c.RemainingMin <= 0 {
			continue
		}
		for d := range days {
			free := days[d].freeMin()
			if free <= 0 {
				continue
			}
			take := c.RemainingMin
			if take > free {
				take = free
			}
			days[d].add(c.Task.ID, take)
			c.RemainingMin -= take
			if c.RemainingMin == 0 {
				break
			}
		}
		if c.RemainingMin > 0 {
			result.Unscheduled = append(result.Unscheduled, domain.UnscheduledTask{
				TaskID:       c.Task.ID,
				Reason:       domain.ReasonHorizonExceeded,
				RemainingMin: c.RemainingMin,
			})
		}
	}

	pinnedDates := pinnedDateIndex(input.Candidates)

	// Emit days up to the last one that matters: trailing days with no
	// allocation and no meeting are trimmed, today always stays.
	last := 0
	for i := range days {
		if days[i].allocatedMin > 0 || days[i].capacity.MeetingMin > 0 {
			last = i
		}
	}
	for i := 0; i <= last; i++ {
		day := &days[i]
		sd := domain.ScheduleDay{
			Date:         day.capacity.Date,
			CapacityMin:  day.capacity.CapacityMin,
			MeetingMin:   day.capacity.MeetingMin,
			AllocatedMin: day.allocatedMin,
			Allocations:  day.allocations,
		}
		if over := day.allocatedMin - day.capacity.CapacityMin; over > 0 {
			sd.OverflowMin = over
		}
		if avail := day.capacity.CapacityMin - day.allocatedMin; avail > 0 {
			sd.AvailableMin = avail
		}
		result.Days = append(result.Days, sd)
		result.TimeBlocks = append(result.TimeBlocks,
			layoutDayBlocks(day.capacity, day.allocations, input.BreakAfterTaskMin, pinnedDates)...)
	}

	// Per-task aggregate, in canonical order.
	for i := range input.Candidates {
		c := &input.Candidates[i]
		info := domain.TaskScheduleInfo{
			TaskID:       c.Task.ID,
			Title:        c.Task.Title,
			TotalMin:     c.TotalMin,
			AllocatedMin: c.TotalMin - c.RemainingMin,
			DueDate:      c.Task.DueDate,
			Score:        c.Score,
			Pinned:       c.Pinned,
		}
		result.Tasks = append(result.Tasks, info)
	}

	return result
}

func pinnedDateIndex(candidates []Candidate) map[string]time.Time {
	pinned := make(map[string]time.Time)
	for _, c := range candidates {
		if c.Pinned {
			pinned[c.Task.ID] = c.PinnedDate
		}
	}
	return pinned
}
