package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwhittle/daybook/internal/domain"
	"github.com/jwhittle/daybook/internal/repository"
)

// ErrInvalidTask marks a task that failed validation.
var ErrInvalidTask = errors.New("invalid task")

type taskService struct {
	tasks    repository.TaskRepo
	observer UseCaseObserver
	now      func() time.Time
}

// NewTaskService creates the task CRUD use-case implementation.
func NewTaskService(tasks repository.TaskRepo, observers ...UseCaseObserver) TaskService {
	return &taskService{
		tasks:    tasks,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) (err error) {
	start := s.now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name: "task.create", Duration: time.Since(start), Success: err == nil, Err: err,
			Fields: map[string]any{"user_id": t.UserID}, StartedAt: start,
		})
	}()

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	applyTaskDefaults(t)
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err = validateTask(t); err != nil {
		return err
	}
	if t.ParentID != nil {
		parent, perr := s.tasks.GetByID(ctx, *t.ParentID)
		if perr != nil {
			return fmt.Errorf("parent task: %w", perr)
		}
		if parent.UserID != t.UserID {
			return fmt.Errorf("parent task %s: %w", *t.ParentID, repository.ErrNotFound)
		}
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListActive(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.tasks.ListActive(ctx, userID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) (err error) {
	start := s.now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name: "task.update", Duration: time.Since(start), Success: err == nil, Err: err,
			Fields: map[string]any{"task_id": t.ID}, StartedAt: start,
		})
	}()

	if err = validateTask(t); err != nil {
		return err
	}
	t.UpdatedAt = s.now()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) MarkDone(ctx context.Context, id string) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	t.Status = domain.TaskDone
	t.Progress = 100
	t.UpdatedAt = s.now()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func applyTaskDefaults(t *domain.Task) {
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
	if t.Importance == "" {
		t.Importance = domain.PriorityMedium
	}
	if t.Urgency == "" {
		t.Urgency = domain.PriorityMedium
	}
	if t.Energy == "" {
		t.Energy = domain.EnergyLow
	}
}

func validateTask(t *domain.Task) error {
	if t.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidTask)
	}
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	if t.EstimatedMin < 0 {
		return fmt.Errorf("%w: estimate cannot be negative", ErrInvalidTask)
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("%w: progress must be within [0,100]", ErrInvalidTask)
	}
	if t.IsFixedTime {
		if t.StartTime == nil || t.EndTime == nil {
			return fmt.Errorf("%w: fixed-time tasks need start and end times", ErrInvalidTask)
		}
		if !t.EndTime.After(*t.StartTime) {
			return fmt.Errorf("%w: end time must be after start time", ErrInvalidTask)
		}
	}
	return nil
}
