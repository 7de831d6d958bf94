package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/daybook/internal/domain"
)

// Monday, so every day in a short window is a default working day.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestComputeCapacities_DefaultWorkday(t *testing.T) {
	settings := domain.DefaultSettings("u1")

	caps := ComputeCapacities(settings, nil, monday, 1)

	require.Len(t, caps, 1)
	// 9h workday minus 1h break minus 1h buffer.
	assert.Equal(t, 420, caps[0].CapacityMin)
	assert.Equal(t, 0, caps[0].MeetingMin)
}

func TestComputeCapacities_BufferLargerThanWorkday(t *testing.T) {
	settings := domain.DefaultSettings("u1")
	settings.BufferHours = 12

	caps := ComputeCapacities(settings, nil, monday, 1)

	require.Len(t, caps, 1)
	assert.Equal(t, 0, caps[0].CapacityMin, "capacity clamps to zero, never negative")
}

func TestComputeCapacities_MeetingsReduceCapacity(t *testing.T) {
	settings := domain.DefaultSettings("u1")
	meetings := []MeetingBlock{{TaskID: "m1", Date: monday, StartMin: 600, EndMin: 660}}

	caps := ComputeCapacities(settings, meetings, monday, 1)

	require.Len(t, caps, 1)
	assert.Equal(t, 360, caps[0].CapacityMin)
	assert.Equal(t, 60, caps[0].MeetingMin)
}

func TestComputeCapacities_DisabledDayHasZeroCapacity(t *testing.T) {
	settings := domain.DefaultSettings("u1")
	settings.Days[time.Tuesday].Enabled = false
	tuesday := monday.AddDate(0, 0, 1)
	meetings := []MeetingBlock{{TaskID: "m1", Date: tuesday, StartMin: 600, EndMin: 660}}

	caps := ComputeCapacities(settings, meetings, monday, 2)

	require.Len(t, caps, 2)
	assert.Equal(t, 0, caps[1].CapacityMin)
	assert.Equal(t, 60, caps[1].MeetingMin, "meetings on a day off still count as busy time")
}

func TestMeetingBlocks_OnlyFixedTimeTasksInsideWindow(t *testing.T) {
	start := monday.Add(10 * time.Hour)
	end := monday.Add(11 * time.Hour)
	outside := monday.AddDate(0, 0, 10).Add(10 * time.Hour)
	outsideEnd := outside.Add(time.Hour)

	tasks := []*domain.Task{
		{ID: "m1", IsFixedTime: true, StartTime: &start, EndTime: &end},
		{ID: "m2", IsFixedTime: true, StartTime: &outside, EndTime: &outsideEnd},
		{ID: "t1", EstimatedMin: 60},
	}

	blocks := MeetingBlocks(tasks, monday, 7)

	require.Len(t, blocks, 1)
	assert.Equal(t, "m1", blocks[0].TaskID)
	assert.Equal(t, 600, blocks[0].StartMin)
	assert.Equal(t, 660, blocks[0].EndMin)
}
