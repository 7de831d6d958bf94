package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/daybook/internal/domain"
)

func todayDay(capacityMin int, allocations ...domain.TaskAllocation) domain.ScheduleDay {
	return domain.ScheduleDay{Date: monday, CapacityMin: capacityMin, Allocations: allocations}
}

func info(id string, totalMin int) domain.TaskScheduleInfo {
	return domain.TaskScheduleInfo{TaskID: id, Title: id, TotalMin: totalMin}
}

func TestProjectToday_OnlyAllocatedTasksAppear(t *testing.T) {
	day := todayDay(420,
		domain.TaskAllocation{TaskID: "a", Minutes: 120},
		domain.TaskAllocation{TaskID: "b", Minutes: 60},
	)
	infos := []domain.TaskScheduleInfo{info("a", 240), info("b", 60), info("elsewhere", 90)}

	view := ProjectToday(day, infos)

	require.Len(t, view.Tasks, 2)
	assert.Equal(t, "a", view.Tasks[0].TaskID)
	assert.InDelta(t, 0.5, view.Tasks[0].Ratio, 0.001)
	assert.InDelta(t, 1.0, view.Tasks[1].Ratio, 0.001)
	assert.False(t, view.Overflow)
}

func TestProjectToday_Top3ByAllocatedMinutes(t *testing.T) {
	day := todayDay(420,
		domain.TaskAllocation{TaskID: "small", Minutes: 30},
		domain.TaskAllocation{TaskID: "big", Minutes: 180},
		domain.TaskAllocation{TaskID: "mid", Minutes: 90},
		domain.TaskAllocation{TaskID: "tiny", Minutes: 15},
	)
	infos := []domain.TaskScheduleInfo{info("small", 30), info("big", 180), info("mid", 90), info("tiny", 15)}

	view := ProjectToday(day, infos)

	assert.Equal(t, []string{"big", "mid", "small"}, view.Top3IDs)
}

func TestProjectToday_Top3TieBrokenByPriorityOrder(t *testing.T) {
	day := todayDay(420,
		domain.TaskAllocation{TaskID: "first", Minutes: 60},
		domain.TaskAllocation{TaskID: "second", Minutes: 60},
	)
	// Infos arrive in canonical priority order.
	infos := []domain.TaskScheduleInfo{info("first", 60), info("second", 60)}

	view := ProjectToday(day, infos)

	assert.Equal(t, []string{"first", "second"}, view.Top3IDs)
}

func TestProjectToday_OverflowWhenAllocationExceedsCapacity(t *testing.T) {
	day := todayDay(420, domain.TaskAllocation{TaskID: "pinned", Minutes: 600})
	infos := []domain.TaskScheduleInfo{info("pinned", 600)}

	view := ProjectToday(day, infos)

	assert.True(t, view.Overflow)
}

func TestProjectToday_RatioHandlesZeroTotal(t *testing.T) {
	day := todayDay(420, domain.TaskAllocation{TaskID: "odd", Minutes: 60})
	infos := []domain.TaskScheduleInfo{info("odd", 0)}

	view := ProjectToday(day, infos)

	require.Len(t, view.Tasks, 1)
	assert.Zero(t, view.Tasks[0].Ratio)
}
