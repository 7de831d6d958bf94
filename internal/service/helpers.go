package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jwhittle/daybook/internal/domain"
	"github.com/jwhittle/daybook/internal/repository"
	"github.com/jwhittle/daybook/internal/scheduler"
)

// planInputs is everything an allocation run reads: the live task set, the
// user's hours, and the postponement history.
type planInputs struct {
	tasks    []*domain.Task
	index    *domain.TaskIndex
	settings *domain.ScheduleSettings
	counts   map[string]int
	pinned   map[string]time.Time
}

// computedPlan is one full allocation run plus the live snapshots needed for
// staleness comparison.
type computedPlan struct {
	result    scheduler.AllocationResult
	snapshots []domain.TaskPlanSnapshot
	params    domain.PlanParams
}

func loadPlanInputs(
	ctx context.Context,
	tasks repository.TaskRepo,
	settings repository.SettingsRepo,
	postpones repository.PostponeRepo,
	userID string,
) (*planInputs, error) {
	in := &planInputs{}

	var err error
	in.tasks, err = tasks.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	in.index = domain.NewTaskIndex(in.tasks)

	in.settings, err = settings.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		in.settings = domain.DefaultSettings(userID)
		if upErr := settings.Upsert(ctx, in.settings); upErr != nil {
			return nil, fmt.Errorf("persisting default settings: %w", upErr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	in.counts, err = postpones.CountByTask(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading postpone counts: %w", err)
	}
	in.pinned, err = postpones.LatestPinned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading pins: %w", err)
	}
	return in, nil
}

// computePlan runs the whole pipeline: meetings, capacities, candidates,
// canonical sort, allocation. Pure given its inputs.
func computePlan(in *planInputs, today time.Time, horizonDays int) *computedPlan {
	day := domain.DateOf(today)

	meetings := scheduler.MeetingBlocks(in.tasks, day, horizonDays)
	capacities := scheduler.ComputeCapacities(in.settings, meetings, day, horizonDays)
	candidates, excluded := scheduler.BuildCandidates(in.index, in.tasks, in.counts, in.pinned, day)
	scheduler.CanonicalSort(candidates)

	result := scheduler.Allocate(scheduler.AllocateInput{
		Candidates:        candidates,
		Excluded:          excluded,
		Capacities:        capacities,
		BreakAfterTaskMin: in.settings.BreakAfterTaskMin,
		Today:             day,
	})

	return &computedPlan{
		result:    result,
		snapshots: liveSnapshots(in, result),
		params:    domain.PlanParams{Today: day, HorizonDays: horizonDays},
	}
}

// liveSnapshots fingerprints every task the allocation run considered, so
// that later edits to any of them mark the plan stale.
func liveSnapshots(in *planInputs, result scheduler.AllocationResult) []domain.TaskPlanSnapshot {
	seen := make(map[string]bool, len(result.Tasks))
	var tracked []*domain.Task
	for _, info := range result.Tasks {
		if t := in.index.Get(info.TaskID); t != nil && !seen[t.ID] {
			seen[t.ID] = true
			tracked = append(tracked, t)
		}
	}
	return scheduler.Snapshot(in.index, tracked)
}
