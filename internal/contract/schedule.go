package contract

import (
	"time"

	"github.com/jwhittle/daybook/internal/domain"
	"github.com/jwhittle/daybook/internal/scheduler"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

type TaskAllocation struct {
	TaskID  string `json:"task_id"`
	Minutes int    `json:"minutes"`
}

type ScheduleDay struct {
	Date         string           `json:"date"`
	CapacityMin  int              `json:"capacity_minutes"`
	MeetingMin   int              `json:"meeting_minutes"`
	AllocatedMin int              `json:"allocated_minutes"`
	OverflowMin  int              `json:"overflow_minutes"`
	AvailableMin int              `json:"available_minutes"`
	Allocations  []TaskAllocation `json:"allocations"`
}

type TaskScheduleInfo struct {
	TaskID       string  `json:"task_id"`
	Title        string  `json:"title"`
	TotalMin     int     `json:"total_minutes"`
	AllocatedMin int     `json:"allocated_minutes"`
	DueDate      *string `json:"due_date,omitempty"`
	Score        float64 `json:"score"`
	Pinned       bool    `json:"pinned,omitempty"`
}

type UnscheduledTask struct {
	TaskID       string `json:"task_id"`
	Reason       string `json:"reason"`
	RemainingMin int    `json:"remaining_minutes"`
}

type ExcludedTask struct {
	TaskID string `json:"task_id"`
	Reason string `json:"reason"`
}

type ScheduleTimeBlock struct {
	ID         string  `json:"id"`
	TaskID     string  `json:"task_id"`
	Date       string  `json:"date"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Kind       string  `json:"kind"`
	PinnedDate *string `json:"pinned_date,omitempty"`
}

type PendingChange struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
	Change string `json:"change"`
}

// SchedulePlanResponse is the full schedule view returned to callers.
// Field names are part of the wire contract and must stay stable.
type SchedulePlanResponse struct {
	PlanState             string              `json:"plan_state"`
	PlanGroupID           string              `json:"plan_group_id,omitempty"`
	PlanGeneratedAt       *time.Time          `json:"plan_generated_at,omitempty"`
	Days                  []ScheduleDay       `json:"days"`
	Tasks                 []TaskScheduleInfo  `json:"tasks"`
	Unscheduled           []UnscheduledTask   `json:"unscheduled"`
	Excluded              []ExcludedTask      `json:"excluded"`
	TimeBlocks            []ScheduleTimeBlock `json:"time_blocks"`
	PendingChanges        []PendingChange     `json:"pending_changes"`
	PinnedOverflowTaskIDs []string            `json:"pinned_overflow_task_ids"`
}

// MapScheduleDay converts a domain day to its wire shape.
func MapScheduleDay(d domain.ScheduleDay) ScheduleDay {
	out := ScheduleDay{
		Date:         d.Date.Format(DateLayout),
		CapacityMin:  d.CapacityMin,
		MeetingMin:   d.MeetingMin,
		AllocatedMin: d.AllocatedMin,
		OverflowMin:  d.OverflowMin,
		AvailableMin: d.AvailableMin,
		Allocations:  []TaskAllocation{},
	}
	for _, a := range d.Allocations {
		out.Allocations = append(out.Allocations, TaskAllocation{TaskID: a.TaskID, Minutes: a.Minutes})
	}
	return out
}

// MapTaskScheduleInfo converts a domain task info to its wire shape.
func MapTaskScheduleInfo(info domain.TaskScheduleInfo) TaskScheduleInfo {
	out := TaskScheduleInfo{
		TaskID:       info.TaskID,
		Title:        info.Title,
		TotalMin:     info.TotalMin,
		AllocatedMin: info.AllocatedMin,
		Score:        info.Score,
		Pinned:       info.Pinned,
	}
	if info.DueDate != nil {
		s := info.DueDate.Format(DateLayout)
		out.DueDate = &s
	}
	return out
}

// MapTimeBlock converts a domain time block to its wire shape.
func MapTimeBlock(b domain.ScheduleTimeBlock) ScheduleTimeBlock {
	out := ScheduleTimeBlock{
		ID:     b.ID,
		TaskID: b.TaskID,
		Date:   b.Date.Format(DateLayout),
		Start:  domain.FormatClock(b.StartMin),
		End:    domain.FormatClock(b.EndMin),
		Kind:   string(b.Kind),
	}
	if b.PinnedDate != nil {
		s := b.PinnedDate.Format(DateLayout)
		out.PinnedDate = &s
	}
	return out
}

// MapPendingChanges converts staleness diffs to their wire shape.
func MapPendingChanges(changes []scheduler.PendingChange) []PendingChange {
	out := make([]PendingChange, 0, len(changes))
	for _, c := range changes {
		out = append(out, PendingChange{TaskID: c.TaskID, Title: c.Title, Change: string(c.Change)})
	}
	return out
}

// MapUnscheduled converts unscheduled entries to their wire shape.
func MapUnscheduled(items []domain.UnscheduledTask) []UnscheduledTask {
	out := make([]UnscheduledTask, 0, len(items))
	for _, u := range items {
		out = append(out, UnscheduledTask{TaskID: u.TaskID, Reason: u.Reason, RemainingMin: u.RemainingMin})
	}
	return out
}

// MapExcluded converts excluded entries to their wire shape.
func MapExcluded(items []domain.ExcludedTask) []ExcludedTask {
	out := make([]ExcludedTask, 0, len(items))
	for _, e := range items {
		out = append(out, ExcludedTask{TaskID: e.TaskID, Reason: e.Reason})
	}
	return out
}
