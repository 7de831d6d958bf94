package domain

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskCancelled  TaskStatus = "cancelled"
)

type PriorityLevel string

const (
	PriorityLow    PriorityLevel = "low"
	PriorityMedium PriorityLevel = "medium"
	PriorityHigh   PriorityLevel = "high"
	PriorityUrgent PriorityLevel = "urgent"
)

// Rank maps a priority level onto an integer ladder (higher = more urgent).
// Unknown values rank as medium.
func (p PriorityLevel) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	default:
		return 2
	}
}

type EnergyLevel string

const (
	EnergyLow  EnergyLevel = "low"
	EnergyHigh EnergyLevel = "high"
)

type PlanState string

const (
	PlanStatePlanned  PlanState = "planned"
	PlanStateStale    PlanState = "stale"
	PlanStateForecast PlanState = "forecast"
)

type BlockKind string

const (
	BlockMeeting BlockKind = "meeting"
	BlockAuto    BlockKind = "auto"
)

type ChangeKind string

const (
	ChangeUpdated ChangeKind = "updated"
	ChangeNew     ChangeKind = "new"
	ChangeRemoved ChangeKind = "removed"
)

// Reason codes for tasks the allocator could not (fully) place.
// "Cannot place" is a modeled outcome, never an error.
const (
	ReasonHorizonExceeded = "horizon_exceeded"
	ReasonNoEstimate      = "no_estimate"
	ReasonDueDatePassed   = "due_date_passed"
	ReasonAlreadyDone     = "already_done"
)
