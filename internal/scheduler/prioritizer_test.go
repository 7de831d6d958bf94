package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/daybook/internal/domain"
)

func plainTask(id string, estimateMin int) *domain.Task {
	return &domain.Task{
		ID:           id,
		UserID:       "u1",
		Title:        id,
		Status:       domain.TaskTodo,
		EstimatedMin: estimateMin,
		Importance:   domain.PriorityMedium,
		Urgency:      domain.PriorityMedium,
		Energy:       domain.EnergyLow,
		CreatedAt:    monday,
	}
}

func TestScoreTask_DuePressureTiers(t *testing.T) {
	base := plainTask("t1", 60)
	baseScore := ScoreTask(base, 0, monday)

	cases := []struct {
		name     string
		daysOut  int
		pressure float64
	}{
		{"due today", 0, 100},
		{"overdue", -2, 100},
		{"due in 2 days", 2, 40},
		{"due in 5 days", 5, 8},
		{"due in 10 days", 10, 2},
		{"due in 20 days", 20, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			withDue := plainTask("t1", 60)
			due := monday.AddDate(0, 0, tc.daysOut)
			withDue.DueDate = &due
			assert.InDelta(t, baseScore+tc.pressure, ScoreTask(withDue, 0, monday), 0.001)
		})
	}
}

func TestScoreTask_PostponeCountCapped(t *testing.T) {
	task := plainTask("t1", 60)

	atCap := ScoreTask(task, 5, monday)
	beyond := ScoreTask(task, 50, monday)

	assert.Equal(t, atCap, beyond, "postpone boost caps at 5 events")
	assert.Equal(t, ScoreTask(task, 0, monday)+10, atCap)
}

func TestScoreTask_InProgressBoost(t *testing.T) {
	todo := plainTask("t1", 60)
	inProgress := plainTask("t1", 60)
	inProgress.Status = domain.TaskInProgress

	assert.Equal(t, ScoreTask(todo, 0, monday)+5, ScoreTask(inProgress, 0, monday))
}

func TestBuildCandidates_Exclusions(t *testing.T) {
	overdue := monday.AddDate(0, 0, -1)
	tasks := []*domain.Task{
		plainTask("ok", 60),
		plainTask("no-estimate", 0),
		plainTask("finished", 60),
		plainTask("past-due", 60),
	}
	tasks[2].Progress = 100
	tasks[3].DueDate = &overdue

	ix := domain.NewTaskIndex(tasks)
	candidates, excluded := BuildCandidates(ix, tasks, nil, nil, monday)

	require.Len(t, candidates, 1)
	assert.Equal(t, "ok", candidates[0].Task.ID)

	reasons := make(map[string]string, len(excluded))
	for _, e := range excluded {
		reasons[e.TaskID] = e.Reason
	}
	assert.Equal(t, domain.ReasonNoEstimate, reasons["no-estimate"])
	assert.Equal(t, domain.ReasonAlreadyDone, reasons["finished"])
	assert.Equal(t, domain.ReasonDueDatePassed, reasons["past-due"])
}

func TestBuildCandidates_SkipsMeetingsDoneCancelledAndParents(t *testing.T) {
	start := monday.Add(10 * time.Hour)
	end := monday.Add(11 * time.Hour)

	parent := plainTask("parent", 0)
	child := plainTask("child", 90)
	child.ParentID = &parent.ID
	done := plainTask("done", 60)
	done.Status = domain.TaskDone
	cancelled := plainTask("cancelled", 60)
	cancelled.Status = domain.TaskCancelled
	meeting := plainTask("meeting", 60)
	meeting.IsFixedTime = true
	meeting.StartTime = &start
	meeting.EndTime = &end

	tasks := []*domain.Task{parent, child, done, cancelled, meeting}
	ix := domain.NewTaskIndex(tasks)
	candidates, excluded := BuildCandidates(ix, tasks, nil, nil, monday)

	require.Len(t, candidates, 1)
	assert.Equal(t, "child", candidates[0].Task.ID, "only the leaf carries demand")
	assert.Empty(t, excluded, "skipped tasks are not exclusions")
}

func TestBuildCandidates_ProgressReducesDemand(t *testing.T) {
	task := plainTask("t1", 100)
	task.Progress = 40

	ix := domain.NewTaskIndex([]*domain.Task{task})
	candidates, _ := BuildCandidates(ix, []*domain.Task{task}, nil, nil, monday)

	require.Len(t, candidates, 1)
	assert.Equal(t, 60, candidates[0].RemainingMin)
	assert.Equal(t, 60, candidates[0].TotalMin)
}

func TestBuildCandidates_AppliesPins(t *testing.T) {
	task := plainTask("t1", 60)
	pinDate := monday.AddDate(0, 0, 2)

	ix := domain.NewTaskIndex([]*domain.Task{task})
	candidates, _ := BuildCandidates(ix, []*domain.Task{task}, nil, map[string]time.Time{"t1": pinDate}, monday)

	require.Len(t, candidates, 1)
	assert.True(t, candidates[0].Pinned)
	assert.Equal(t, pinDate, candidates[0].PinnedDate)
}
