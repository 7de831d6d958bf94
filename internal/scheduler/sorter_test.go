package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwhittle/daybook/internal/domain"
)

func ids(candidates []Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Task.ID)
	}
	return out
}

func TestCanonicalSort_ScoreDominates(t *testing.T) {
	candidates := []Candidate{
		candidate("low", 60, 10),
		candidate("high", 60, 90),
		candidate("mid", 60, 50),
	}

	CanonicalSort(candidates)

	require.Equal(t, []string{"high", "mid", "low"}, ids(candidates))
}

func TestCanonicalSort_DueDateBreaksScoreTie(t *testing.T) {
	early := monday.AddDate(0, 0, 1)
	late := monday.AddDate(0, 0, 5)

	a := candidate("late", 60, 50)
	a.Task.DueDate = &late
	b := candidate("early", 60, 50)
	b.Task.DueDate = &early
	c := candidate("none", 60, 50)

	candidates := []Candidate{a, b, c}
	CanonicalSort(candidates)

	require.Equal(t, []string{"early", "late", "none"}, ids(candidates), "nil due date sorts last")
}

func TestCanonicalSort_EnergyThenPostponeThenCreatedThenID(t *testing.T) {
	older := monday.AddDate(0, 0, -5)

	a := candidate("b-id", 60, 50)
	b := candidate("a-id", 60, 50)
	c := candidate("older", 60, 50)
	c.Task.CreatedAt = older
	d := candidate("deferred", 60, 50)
	d.PostponeCount = 3
	e := candidate("energetic", 60, 50)
	e.Task.Energy = domain.EnergyHigh

	candidates := []Candidate{a, b, c, d, e}
	CanonicalSort(candidates)

	require.Equal(t, []string{"energetic", "deferred", "older", "a-id", "b-id"}, ids(candidates))
}
