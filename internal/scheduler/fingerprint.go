package scheduler

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/jwhittle/daybook/internal/domain"
)

// Fingerprint hashes a task's scheduling-relevant fields. Any change to a
// field that could alter allocation output changes the fingerprint, which
// is what makes the planned/stale distinction meaningful.
func Fingerprint(ix *domain.TaskIndex, t *domain.Task) string {
	due := ""
	if t.DueDate != nil {
		due = domain.DateOf(*t.DueDate).Format("2006-01-02")
	}
	parts := []string{
		t.Title,
		fmt.Sprintf("%d", ix.EffectiveEstimateMin(t)),
		string(t.Status),
		due,
		string(t.Importance),
		string(t.Urgency),
		string(t.Energy),
		fmt.Sprintf("%d", t.Progress),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// Snapshot captures the fingerprints of every task in the given list, in
// task-id order, for persistence alongside a plan group.
func Snapshot(ix *domain.TaskIndex, tasks []*domain.Task) []domain.TaskPlanSnapshot {
	snaps := make([]domain.TaskPlanSnapshot, 0, len(tasks))
	for _, t := range tasks {
		snaps = append(snaps, domain.TaskPlanSnapshot{
			TaskID:      t.ID,
			Title:       t.Title,
			Fingerprint: Fingerprint(ix, t),
		})
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].TaskID < snaps[j].TaskID })
	return snaps
}
