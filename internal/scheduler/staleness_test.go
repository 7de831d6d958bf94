package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/daybook/internal/domain"
)

func snap(id, fp string) domain.TaskPlanSnapshot {
	return domain.TaskPlanSnapshot{TaskID: id, Title: id, Fingerprint: fp}
}

func TestDiffSnapshots_NoChangesMeansPlanned(t *testing.T) {
	stored := []domain.TaskPlanSnapshot{snap("a", "f1"), snap("b", "f2")}
	live := []domain.TaskPlanSnapshot{snap("a", "f1"), snap("b", "f2")}

	changes := DiffSnapshots(stored, live)

	assert.Empty(t, changes)
	assert.Equal(t, domain.PlanStatePlanned, PlanStateFor(changes))
}

func TestDiffSnapshots_DetectsAllChangeKinds(t *testing.T) {
	stored := []domain.TaskPlanSnapshot{snap("kept", "f1"), snap("edited", "f2"), snap("gone", "f3")}
	live := []domain.TaskPlanSnapshot{snap("kept", "f1"), snap("edited", "f2-changed"), snap("added", "f4")}

	changes := DiffSnapshots(stored, live)

	require.Len(t, changes, 3)
	byID := make(map[string]domain.ChangeKind, len(changes))
	for _, c := range changes {
		byID[c.TaskID] = c.Change
	}
	assert.Equal(t, domain.ChangeUpdated, byID["edited"])
	assert.Equal(t, domain.ChangeRemoved, byID["gone"])
	assert.Equal(t, domain.ChangeNew, byID["added"])
	assert.Equal(t, domain.PlanStateStale, PlanStateFor(changes))
}

func TestDiffSnapshots_SortedByTaskID(t *testing.T) {
	stored := []domain.TaskPlanSnapshot{snap("z", "f1")}
	live := []domain.TaskPlanSnapshot{snap("a", "f2"), snap("m", "f3")}

	changes := DiffSnapshots(stored, live)

	require.Len(t, changes, 3)
	assert.Equal(t, "a", changes[0].TaskID)
	assert.Equal(t, "m", changes[1].TaskID)
	assert.Equal(t, "z", changes[2].TaskID)
}
