package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/daybook/internal/domain"
)

func defaultDayCapacity() DayCapacity {
	return DayCapacity{
		Date: monday,
		Hours: domain.WorkdayHours{
			Enabled:  true,
			StartMin: 540,
			EndMin:   1080,
			Breaks:   []domain.WorkBreak{{StartMin: 720, EndMin: 780}},
		},
		CapacityMin: 420,
	}
}

func TestLayoutDayBlocks_FillsGapsAroundBreaksAndMeetings(t *testing.T) {
	capacity := defaultDayCapacity()
	capacity.Meetings = []MeetingBlock{{TaskID: "m1", Date: monday, StartMin: 600, EndMin: 660}}
	allocations := []domain.TaskAllocation{
		{TaskID: "t1", Minutes: 120},
	}

	blocks := layoutDayBlocks(capacity, allocations, 0, nil)

	require.Len(t, blocks, 3)
	assert.Equal(t, domain.BlockMeeting, blocks[0].Kind)
	assert.Equal(t, "m1", blocks[0].TaskID)

	// 09:00-10:00 before the meeting, then 11:00-12:00 before the break.
	assert.Equal(t, 540, blocks[1].StartMin)
	assert.Equal(t, 600, blocks[1].EndMin)
	assert.Equal(t, 660, blocks[2].StartMin)
	assert.Equal(t, 720, blocks[2].EndMin)
	assert.Equal(t, domain.BlockAuto, blocks[1].Kind)
}

func TestLayoutDayBlocks_BreakAfterTaskAdvancesCursor(t *testing.T) {
	capacity := defaultDayCapacity()
	allocations := []domain.TaskAllocation{
		{TaskID: "t1", Minutes: 60},
		{TaskID: "t2", Minutes: 60},
	}

	blocks := layoutDayBlocks(capacity, allocations, 15, nil)

	require.Len(t, blocks, 2)
	assert.Equal(t, 600, blocks[0].EndMin)
	assert.Equal(t, 615, blocks[1].StartMin, "15m rest separates consecutive tasks")
}

func TestLayoutDayBlocks_OverflowSpillsPastDayEnd(t *testing.T) {
	capacity := defaultDayCapacity()
	allocations := []domain.TaskAllocation{
		{TaskID: "t1", Minutes: 600}, // more than the 480m window can hold
	}

	blocks := layoutDayBlocks(capacity, allocations, 0, nil)

	require.NotEmpty(t, blocks)
	last := blocks[len(blocks)-1]
	assert.Equal(t, 1080, last.StartMin, "spill starts at the window end")
	assert.Equal(t, 1200, last.EndMin)
}

func TestLayoutDayBlocks_DeterministicIDs(t *testing.T) {
	capacity := defaultDayCapacity()
	allocations := []domain.TaskAllocation{{TaskID: "t1", Minutes: 60}}

	first := layoutDayBlocks(capacity, allocations, 0, nil)
	second := layoutDayBlocks(capacity, allocations, 0, nil)

	require.Equal(t, first, second)
	assert.Equal(t, "20260302-t1-0540", first[0].ID)
}

func TestLayoutDayBlocks_PinnedDateCarried(t *testing.T) {
	capacity := defaultDayCapacity()
	allocations := []domain.TaskAllocation{{TaskID: "t1", Minutes: 60}}
	pins := map[string]time.Time{"t1": monday}

	blocks := layoutDayBlocks(capacity, allocations, 0, pins)

	require.Len(t, blocks, 1)
	require.NotNil(t, blocks[0].PinnedDate)
	assert.Equal(t, monday, *blocks[0].PinnedDate)
}
