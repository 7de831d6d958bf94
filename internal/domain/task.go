package domain

import "time"

// Task is a unit of schedulable work owned by one user. A task may be a
// subtask of a parent task; the tree is at most two levels deep and the
// scheduler treats only leaves as demand carriers.
type Task struct {
	ID        string
	UserID    string
	ProjectID *string
	PhaseID   *string
	ParentID  *string
	Title     string
	Status    TaskStatus

	EstimatedMin int
	Importance   PriorityLevel
	Urgency      PriorityLevel
	Energy       EnergyLevel
	Progress     int // 0..100
	DueDate      *time.Time

	// Fixed-time meetings occupy capacity instead of consuming it.
	IsFixedTime bool
	StartTime   *time.Time
	EndTime     *time.Time

	// Set when the task was materialized from a recurring definition.
	RecurringID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MeetingDurationMin returns the length of a fixed-time task in minutes,
// or 0 when the task is not a meeting or lacks a time range.
func (t *Task) MeetingDurationMin() int {
	if !t.IsFixedTime || t.StartTime == nil || t.EndTime == nil {
		return 0
	}
	d := int(t.EndTime.Sub(*t.StartTime).Minutes())
	if d < 0 {
		return 0
	}
	return d
}

// TaskIndex is a two-level parent/subtask index built once per scheduling
// run so estimate rollups never rescan the flat task list.
type TaskIndex struct {
	byID     map[string]*Task
	children map[string][]*Task
}

// NewTaskIndex builds the index from a flat task list.
func NewTaskIndex(tasks []*Task) *TaskIndex {
	ix := &TaskIndex{
		byID:     make(map[string]*Task, len(tasks)),
		children: make(map[string][]*Task),
	}
	for _, t := range tasks {
		ix.byID[t.ID] = t
	}
	for _, t := range tasks {
		if t.ParentID != nil && *t.ParentID != "" {
			if _, ok := ix.byID[*t.ParentID]; ok {
				ix.children[*t.ParentID] = append(ix.children[*t.ParentID], t)
			}
		}
	}
	return ix
}

// Get returns the task with the given id, or nil.
func (ix *TaskIndex) Get(id string) *Task {
	return ix.byID[id]
}

// Subtasks returns the direct subtasks of the given task id.
func (ix *TaskIndex) Subtasks(id string) []*Task {
	return ix.children[id]
}

// HasSubtasks reports whether the task has at least one subtask.
func (ix *TaskIndex) HasSubtasks(id string) bool {
	return len(ix.children[id]) > 0
}

// EffectiveEstimateMin returns the task's estimate in minutes. A task with
// subtasks derives its estimate from the sum of subtask estimates and never
// from its own EstimatedMin field.
func (ix *TaskIndex) EffectiveEstimateMin(t *Task) int {
	subs := ix.children[t.ID]
	if len(subs) == 0 {
		return t.EstimatedMin
	}
	total := 0
	for _, s := range subs {
		total += s.EstimatedMin
	}
	return total
}

// RemainingMin returns the task's unfinished demand in minutes:
// estimate scaled by (100 - progress), computed per subtask when subtasks
// exist and summed.
func (ix *TaskIndex) RemainingMin(t *Task) int {
	subs := ix.children[t.ID]
	if len(subs) == 0 {
		return remainingOf(t.EstimatedMin, t.Progress)
	}
	total := 0
	for _, s := range subs {
		total += remainingOf(s.EstimatedMin, s.Progress)
	}
	return total
}

func remainingOf(estimateMin, progress int) int {
	if estimateMin <= 0 {
		return 0
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return estimateMin * (100 - progress) / 100
}
