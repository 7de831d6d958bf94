package scheduler

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/daybook/internal/domain"
)

func flatCapacities(start time.Time, days, capacityMin int) []DayCapacity {
	hours := domain.WorkdayHours{Enabled: true, StartMin: 540, EndMin: 1080}
	caps := make([]DayCapacity, 0, days)
	for i := 0; i < days; i++ {
		caps = append(caps, DayCapacity{
			Date:        start.AddDate(0, 0, i),
			Hours:       hours,
			CapacityMin: capacityMin,
		})
	}
	return caps
}

func candidate(id string, minutes int, score float64) Candidate {
	return Candidate{
		Task:         plainTask(id, minutes),
		TotalMin:     minutes,
		RemainingMin: minutes,
		Score:        score,
	}
}

func allocatedByDay(result AllocationResult, taskID string) []int {
	out := make([]int, len(result.Days))
	for i, d := range result.Days {
		for _, a := range d.Allocations {
			if a.TaskID == taskID {
				out[i] += a.Minutes
			}
		}
	}
	return out
}

func TestAllocate_SplitsAcrossDays(t *testing.T) {
	input := AllocateInput{
		Candidates: []Candidate{candidate("t1", 500, 70)},
		Capacities: flatCapacities(monday, 3, 420),
		Today:      monday,
	}

	result := Allocate(input)

	require.Len(t, result.Days, 2)
	assert.Equal(t, []int{420, 80}, allocatedByDay(result, "t1"))
	assert.Empty(t, result.Unscheduled)
	assert.Equal(t, 340, result.Days[1].AvailableMin)
}

func TestAllocate_HigherScoreGetsEarlierCapacity(t *testing.T) {
	candidates := []Candidate{
		candidate("high", 400, 90),
		candidate("low", 400, 30),
	}
	CanonicalSort(candidates)
	input := AllocateInput{
		Candidates: candidates,
		Capacities: flatCapacities(monday, 3, 420),
		Today:      monday,
	}

	result := Allocate(input)

	require.Len(t, result.Days, 2)
	assert.Equal(t, []int{400, 0}, allocatedByDay(result, "high"))
	assert.Equal(t, []int{20, 380}, allocatedByDay(result, "low"))
}

func TestAllocate_PinnedTaskOverflowsItsDay(t *testing.T) {
	pinned := candidate("pinned", 600, 50)
	pinned.Pinned = true
	pinned.PinnedDate = monday

	input := AllocateInput{
		Candidates: []Candidate{pinned},
		Capacities: flatCapacities(monday, 3, 420),
		Today:      monday,
	}

	result := Allocate(input)

	require.NotEmpty(t, result.Days)
	assert.Equal(t, 600, result.Days[0].AllocatedMin)
	assert.Equal(t, 180, result.Days[0].OverflowMin)
	assert.Equal(t, []string{"pinned"}, result.PinnedOverflowTaskIDs)
	assert.Empty(t, result.Unscheduled, "pinned demand is never split or dropped")
}

func TestAllocate_AllPinsOnOverflowedDayReported(t *testing.T) {
	a := candidate("a", 200, 90)
	b := candidate("b", 300, 80)
	c := candidate("c", 100, 70)
	for _, cand := range []*Candidate{&a, &b, &c} {
		cand.Pinned = true
		cand.PinnedDate = monday
	}

	input := AllocateInput{
		Candidates: []Candidate{a, b, c},
		Capacities: flatCapacities(monday, 3, 420),
		Today:      monday,
	}

	result := Allocate(input)

	require.NotEmpty(t, result.Days)
	assert.Equal(t, 600, result.Days[0].AllocatedMin)
	assert.Equal(t, 180, result.Days[0].OverflowMin)
	assert.Equal(t, []string{"a", "b", "c"}, result.PinnedOverflowTaskIDs,
		"every pin on the overflowed day, not just the boundary-crossing one")
}

func TestAllocate_PinsWithinCapacityNotReported(t *testing.T) {
	a := candidate("a", 200, 90)
	b := candidate("b", 100, 80)
	for _, cand := range []*Candidate{&a, &b} {
		cand.Pinned = true
		cand.PinnedDate = monday
	}

	input := AllocateInput{
		Candidates: []Candidate{a, b},
		Capacities: flatCapacities(monday, 3, 420),
		Today:      monday,
	}

	result := Allocate(input)

	assert.Empty(t, result.PinnedOverflowTaskIDs)
	assert.Zero(t, result.Days[0].OverflowMin)
}

func TestAllocate_PinnedDateInPastClampsToToday(t *testing.T) {
	pinned := candidate("pinned", 60, 50)
	pinned.Pinned = true
	pinned.PinnedDate = monday.AddDate(0, 0, -3)

	input := AllocateInput{
		Candidates: []Candidate{pinned},
		Capacities: flatCapacities(monday, 3, 420),
		Today:      monday,
	}

	result := Allocate(input)

	assert.Equal(t, 60, result.Days[0].AllocatedMin)
}

func TestAllocate_PinBeyondHorizonFallsBackToGreedy(t *testing.T) {
	pinned := candidate("pinned", 60, 50)
	pinned.Pinned = true
	pinned.PinnedDate = monday.AddDate(0, 0, 100)

	input := AllocateInput{
		Candidates: []Candidate{pinned},
		Capacities: flatCapacities(monday, 3, 420),
		Today:      monday,
	}

	result := Allocate(input)

	assert.Equal(t, 60, result.Days[0].AllocatedMin)
	require.Len(t, result.Tasks, 1)
	assert.False(t, result.Tasks[0].Pinned, "unhonorable pin is dropped from the output")
}

func TestAllocate_LeftoverReportedAsUnscheduled(t *testing.T) {
	input := AllocateInput{
		Candidates: []Candidate{candidate("big", 1000, 50)},
		Capacities: flatCapacities(monday, 2, 420),
		Today:      monday,
	}

	result := Allocate(input)

	require.Len(t, result.Unscheduled, 1)
	assert.Equal(t, "big", result.Unscheduled[0].TaskID)
	assert.Equal(t, domain.ReasonHorizonExceeded, result.Unscheduled[0].Reason)
	assert.Equal(t, 160, result.Unscheduled[0].RemainingMin)

	require.Len(t, result.Tasks, 1)
	assert.Equal(t, 840, result.Tasks[0].AllocatedMin)
	assert.Equal(t, 1000, result.Tasks[0].TotalMin)
}

func TestAllocate_TrimsTrailingEmptyDays(t *testing.T) {
	input := AllocateInput{
		Candidates: []Candidate{candidate("t1", 60, 50)},
		Capacities: flatCapacities(monday, 28, 420),
		Today:      monday,
	}

	result := Allocate(input)

	require.Len(t, result.Days, 1, "days after the last allocation are trimmed")
	assert.Equal(t, monday, result.Days[0].Date)
}

func TestAllocate_TodayAlwaysEmitted(t *testing.T) {
	input := AllocateInput{
		Candidates: nil,
		Capacities: flatCapacities(monday, 28, 420),
		Today:      monday,
	}

	result := Allocate(input)

	require.Len(t, result.Days, 1)
	assert.Equal(t, 0, result.Days[0].AllocatedMin)
}

func TestAllocate_Deterministic(t *testing.T) {
	build := func() AllocateInput {
		candidates := []Candidate{
			candidate("a", 300, 80),
			candidate("b", 300, 80),
			candidate("c", 500, 40),
		}
		pinned := candidate("d", 120, 60)
		pinned.Pinned = true
		pinned.PinnedDate = monday.AddDate(0, 0, 1)
		candidates = append(candidates, pinned)
		CanonicalSort(candidates)
		return AllocateInput{
			Candidates:        candidates,
			Capacities:        flatCapacities(monday, 5, 420),
			BreakAfterTaskMin: 15,
			Today:             monday,
		}
	}

	first := Allocate(build())
	second := Allocate(build())

	assert.Equal(t, first, second, "identical input must yield identical output")
}

func TestAllocate_RandomizedInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		days := 1 + rng.Intn(10)
		caps := flatCapacities(monday, days, 60+rng.Intn(400))

		var candidates []Candidate
		for i := 0; i < 1+rng.Intn(15); i++ {
			c := candidate(fmt.Sprintf("t%d", i), 15+rng.Intn(600), float64(rng.Intn(150)))
			if rng.Intn(5) == 0 {
				c.Pinned = true
				c.PinnedDate = monday.AddDate(0, 0, rng.Intn(days))
			}
			candidates = append(candidates, c)
		}
		CanonicalSort(candidates)

		totals := make(map[string]int, len(candidates))
		pinnedIDs := make(map[string]bool, len(candidates))
		for _, c := range candidates {
			totals[c.Task.ID] = c.TotalMin
			if c.Pinned {
				pinnedIDs[c.Task.ID] = true
			}
		}

		result := Allocate(AllocateInput{Candidates: candidates, Capacities: caps, Today: monday})

		// Conservation: every task's demand is fully accounted for.
		placed := make(map[string]int)
		for _, d := range result.Days {
			for _, a := range d.Allocations {
				placed[a.TaskID] += a.Minutes
			}
		}
		for _, u := range result.Unscheduled {
			placed[u.TaskID] += u.RemainingMin
		}
		for id, total := range totals {
			require.Equal(t, total, placed[id], "run %d: demand of %s must be conserved", run, id)
		}

		// A day only exceeds capacity when a pinned task landed on it.
		for _, d := range result.Days {
			if d.AllocatedMin <= d.CapacityMin {
				continue
			}
			hasPinned := false
			for _, a := range d.Allocations {
				if pinnedIDs[a.TaskID] {
					hasPinned = true
					break
				}
			}
			require.True(t, hasPinned, "run %d: overcommitted day %s without a pinned task", run, d.Date)
		}
	}
}
