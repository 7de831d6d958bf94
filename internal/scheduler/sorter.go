package scheduler

import (
	"sort"

	"github.com/jwhittle/daybook/internal/domain"
)

// CanonicalSort orders candidates by the deterministic canonical rules:
//  1. Score: higher first
//  2. Due date: earliest first (nil last)
//  3. Energy: high before low
//  4. Postpone count: higher first
//  5. Creation time: older first
//  6. Task ID: lexical ascending
//
// Allocation must use this order as its sole tie-break source so identical
// inputs always yield byte-identical plans.
func CanonicalSort(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]

		if a.Score != b.Score {
			return a.Score > b.Score
		}

		dueA, dueB := a.Task.DueDate, b.Task.DueDate
		if (dueA == nil) != (dueB == nil) {
			return dueA != nil // non-nil before nil
		}
		if dueA != nil && dueB != nil && !dueA.Equal(*dueB) {
			return dueA.Before(*dueB)
		}

		if a.Task.Energy != b.Task.Energy {
			return a.Task.Energy == domain.EnergyHigh
		}

		if a.PostponeCount != b.PostponeCount {
			return a.PostponeCount > b.PostponeCount
		}

		if !a.Task.CreatedAt.Equal(b.Task.CreatedAt) {
			return a.Task.CreatedAt.Before(b.Task.CreatedAt)
		}

		return a.Task.ID < b.Task.ID
	})
}
