package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwhittle/daybook/internal/domain"
)

// FixedDate is a stable Monday used as "today" across scheduler tests.
var FixedDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// TaskOption mutates a fixture task.
type TaskOption func(*domain.Task)

// NewTask builds a plain estimated task with sensible defaults.
func NewTask(userID, title string, estimateMin int, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:           uuid.New().String(),
		UserID:       userID,
		Title:        title,
		Status:       domain.TaskTodo,
		EstimatedMin: estimateMin,
		Importance:   domain.PriorityMedium,
		Urgency:      domain.PriorityMedium,
		Energy:       domain.EnergyLow,
		CreatedAt:    FixedDate,
		UpdatedAt:    FixedDate,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewMeeting builds a fixed-time task on the given date.
func NewMeeting(userID, title string, date time.Time, startMin, endMin int) *domain.Task {
	start := domain.DateOf(date).Add(time.Duration(startMin) * time.Minute)
	end := domain.DateOf(date).Add(time.Duration(endMin) * time.Minute)
	t := NewTask(userID, title, endMin-startMin)
	t.IsFixedTime = true
	t.StartTime = &start
	t.EndTime = &end
	return t
}

func WithID(id string) TaskOption {
	return func(t *domain.Task) { t.ID = id }
}

func WithDue(date time.Time) TaskOption {
	return func(t *domain.Task) {
		d := domain.DateOf(date)
		t.DueDate = &d
	}
}

func WithPriority(importance, urgency domain.PriorityLevel) TaskOption {
	return func(t *domain.Task) {
		t.Importance = importance
		t.Urgency = urgency
	}
}

func WithStatus(status domain.TaskStatus) TaskOption {
	return func(t *domain.Task) { t.Status = status }
}

func WithProgress(pct int) TaskOption {
	return func(t *domain.Task) { t.Progress = pct }
}

func WithEnergy(energy domain.EnergyLevel) TaskOption {
	return func(t *domain.Task) { t.Energy = energy }
}

func WithParent(parentID string) TaskOption {
	return func(t *domain.Task) { t.ParentID = &parentID }
}

func WithCreatedAt(ts time.Time) TaskOption {
	return func(t *domain.Task) { t.CreatedAt = ts }
}
