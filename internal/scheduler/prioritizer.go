package scheduler

import (
	"time"

	"github.com/jwhittle/daybook/internal/domain"
)

// Candidate is a task prepared for allocation: demand resolved through the
// subtask index, postponement history attached, pin applied.
type Candidate struct {
	Task          *domain.Task
	TotalMin      int // effective remaining minutes at build time
	RemainingMin  int // demand still to place (mutated by the allocator)
	PostponeCount int
	Score         float64
	Pinned        bool
	PinnedDate    time.Time
}

// BuildCandidates filters the live task set down to allocatable demand and
// scores it. Meetings are capacity, not demand; done tasks, zero-estimate
// tasks and tasks whose due date already passed become exclusions. Parents
// with subtasks are skipped: their demand is carried by the leaves.
func BuildCandidates(
	ix *domain.TaskIndex,
	tasks []*domain.Task,
	postponeCounts map[string]int,
	pinned map[string]time.Time,
	now time.Time,
) ([]Candidate, []domain.ExcludedTask) {
	today := domain.DateOf(now)

	var candidates []Candidate
	var excluded []domain.ExcludedTask
	for _, t := range tasks {
		if t.IsFixedTime {
			continue
		}
		if t.Status == domain.TaskCancelled {
			continue
		}
		if ix.HasSubtasks(t.ID) {
			continue
		}
		if t.Status == domain.TaskDone {
			continue
		}

		if ix.EffectiveEstimateMin(t) <= 0 {
			excluded = append(excluded, domain.ExcludedTask{TaskID: t.ID, Reason: domain.ReasonNoEstimate})
			continue
		}
		remaining := ix.RemainingMin(t)
		if remaining <= 0 {
			excluded = append(excluded, domain.ExcludedTask{TaskID: t.ID, Reason: domain.ReasonAlreadyDone})
			continue
		}
		if t.DueDate != nil && domain.DateOf(*t.DueDate).Before(today) {
			excluded = append(excluded, domain.ExcludedTask{TaskID: t.ID, Reason: domain.ReasonDueDatePassed})
			continue
		}

		c := Candidate{
			Task:          t,
			TotalMin:      remaining,
			RemainingMin:  remaining,
			PostponeCount: postponeCounts[t.ID],
		}
		if pin, ok := pinned[t.ID]; ok {
			c.Pinned = true
			c.PinnedDate = domain.DateOf(pin)
		}
		c.Score = ScoreTask(t, c.PostponeCount, now)
		candidates = append(candidates, c)
	}
	return candidates, excluded
}

// ScoreTask computes the scalar priority of one task. Importance and urgency
// dominate, due-date proximity escalates as the date approaches, and the
// postponement count nudges frequently-deferred tasks upward so they cannot
// starve. Energy level never contributes to the score; it is a tie-break in
// the canonical sort only.
func ScoreTask(t *domain.Task, postponeCount int, now time.Time) float64 {
	score := float64(t.Importance.Rank())*20 + float64(t.Urgency.Rank())*15
	score += duePressure(t.DueDate, now)

	if postponeCount > 5 {
		postponeCount = 5
	}
	score += float64(postponeCount) * 2

	if t.Status == domain.TaskInProgress {
		score += 5
	}
	return score
}

func duePressure(due *time.Time, now time.Time) float64 {
	if due == nil {
		return 0
	}
	daysUntil := int(domain.DateOf(*due).Sub(domain.DateOf(now)).Hours() / 24)
	switch {
	case daysUntil <= 0:
		return 100.0
	case daysUntil <= 3:
		return 80.0 / float64(daysUntil)
	case daysUntil <= 7:
		return 40.0 / float64(daysUntil)
	case daysUntil <= 14:
		return 20.0 / float64(daysUntil)
	default:
		return 10.0 / float64(daysUntil)
	}
}
