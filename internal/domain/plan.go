package domain

import "time"

// TaskAllocation is minutes of one task's demand assigned to one date.
type TaskAllocation struct {
	TaskID  string `json:"task_id"`
	Minutes int    `json:"minutes"`
}

// ScheduleDay is the computed view of a single calendar date.
// CapacityMin already accounts for breaks, buffer and fixed meetings.
type ScheduleDay struct {
	Date         time.Time        `json:"date"`
	CapacityMin  int              `json:"capacity_minutes"`
	MeetingMin   int              `json:"meeting_minutes"`
	AllocatedMin int              `json:"allocated_minutes"`
	OverflowMin  int              `json:"overflow_minutes"`
	AvailableMin int              `json:"available_minutes"`
	Allocations  []TaskAllocation `json:"allocations,omitempty"`
}

// TaskScheduleInfo aggregates one task's placement across the whole plan.
type TaskScheduleInfo struct {
	TaskID       string     `json:"task_id"`
	Title        string     `json:"title"`
	TotalMin     int        `json:"total_minutes"`
	AllocatedMin int        `json:"allocated_minutes"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Score        float64    `json:"score"`
	Pinned       bool       `json:"pinned,omitempty"`
}

// UnscheduledTask is demand that did not fit inside the planning horizon.
type UnscheduledTask struct {
	TaskID       string `json:"task_id"`
	Reason       string `json:"reason"`
	RemainingMin int    `json:"remaining_minutes"`
}

// ExcludedTask was never given capacity, with the reason why.
type ExcludedTask struct {
	TaskID string `json:"task_id"`
	Reason string `json:"reason"`
}

// ScheduleTimeBlock is a concrete interval assigned to one task on one day.
// Meeting blocks are immovable inputs; auto blocks are allocator output and
// may be moved by explicit user action.
type ScheduleTimeBlock struct {
	ID         string     `json:"id"`
	TaskID     string     `json:"task_id"`
	Date       time.Time  `json:"date"`
	StartMin   int        `json:"start_min"`
	EndMin     int        `json:"end_min"`
	Kind       BlockKind  `json:"kind"`
	PinnedDate *time.Time `json:"pinned_date,omitempty"`
}

// TaskPlanSnapshot freezes the scheduling-relevant content of a task at
// plan time for later staleness comparison.
type TaskPlanSnapshot struct {
	TaskID      string `json:"task_id"`
	Title       string `json:"title"`
	Fingerprint string `json:"fingerprint"`
}

// PlanParams records the inputs a plan was generated with.
type PlanParams struct {
	Today       time.Time `json:"today"`
	HorizonDays int       `json:"horizon_days"`
}

// DailySchedulePlan is the persisted allocation output for one user and one
// calendar date. All rows produced by a single allocation run share one
// PlanGroupID; snapshots are kept identical across the group.
type DailySchedulePlan struct {
	ID          string
	UserID      string
	Date        time.Time
	PlanGroupID string

	Day                   ScheduleDay
	Tasks                 []TaskScheduleInfo
	Unscheduled           []UnscheduledTask
	Excluded              []ExcludedTask
	TimeBlocks            []ScheduleTimeBlock
	Snapshots             []TaskPlanSnapshot
	PinnedOverflowTaskIDs []string
	Params                PlanParams

	GeneratedAt time.Time
}

// DateOf truncates a timestamp to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two timestamps fall on the same UTC calendar date.
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
