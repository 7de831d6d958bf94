package scheduler

import (
	"sort"

	"github.com/jwhittle/daybook/internal/domain"
)

// PendingChange reports one task's drift between a persisted plan and the
// live task set.
type PendingChange struct {
	TaskID string
	Title  string
	Change domain.ChangeKind
}

// DiffSnapshots compares stored plan snapshots against freshly computed
// ones. An empty diff means the plan is still "planned"; any entry makes it
// "stale". The detector never regenerates the plan itself.
func DiffSnapshots(stored, live []domain.TaskPlanSnapshot) []PendingChange {
	storedByID := make(map[string]domain.TaskPlanSnapshot, len(stored))
	for _, s := range stored {
		storedByID[s.TaskID] = s
	}
	liveByID := make(map[string]domain.TaskPlanSnapshot, len(live))
	for _, l := range live {
		liveByID[l.TaskID] = l
	}

	var changes []PendingChange
	for _, l := range live {
		s, ok := storedByID[l.TaskID]
		switch {
		case !ok:
			changes = append(changes, PendingChange{TaskID: l.TaskID, Title: l.Title, Change: domain.ChangeNew})
		case s.Fingerprint != l.Fingerprint:
			changes = append(changes, PendingChange{TaskID: l.TaskID, Title: l.Title, Change: domain.ChangeUpdated})
		}
	}
	for _, s := range stored {
		if _, ok := liveByID[s.TaskID]; !ok {
			changes = append(changes, PendingChange{TaskID: s.TaskID, Title: s.Title, Change: domain.ChangeRemoved})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].TaskID < changes[j].TaskID })
	return changes
}

// PlanStateFor classifies the staleness outcome.
func PlanStateFor(changes []PendingChange) domain.PlanState {
	if len(changes) == 0 {
		return domain.PlanStatePlanned
	}
	return domain.PlanStateStale
}
