package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwhittle/daybook/internal/domain"
	"github.com/jwhittle/daybook/internal/repository"
	"github.com/jwhittle/daybook/internal/scheduler"
)

type postponeService struct {
	tasks     repository.TaskRepo
	plans     repository.PlanRepo
	postpones repository.PostponeRepo
	observer  UseCaseObserver
	now       func() time.Time
}

// NewPostponeService creates the postponement use-case implementation.
func NewPostponeService(
	tasks repository.TaskRepo,
	plans repository.PlanRepo,
	postpones repository.PostponeRepo,
	observers ...UseCaseObserver,
) PostponeService {
	return &postponeService{
		tasks:     tasks,
		plans:     plans,
		postpones: postpones,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

func (s *postponeService) Postpone(ctx context.Context, userID, taskID string, fromDate, toDate time.Time, reason string, pin bool) (event *domain.PostponeEvent, err error) {
	start := s.now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name: "postpone.record", Duration: time.Since(start), Success: err == nil, Err: err,
			Fields: map[string]any{"user_id": userID, "task_id": taskID}, StartedAt: start,
		})
	}()

	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, fmt.Errorf("task %s: %w", taskID, repository.ErrNotFound)
	}

	event = &domain.PostponeEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		TaskID:    taskID,
		FromDate:  domain.DateOf(fromDate),
		ToDate:    domain.DateOf(toDate),
		Reason:    reason,
		Pinned:    pin,
		CreatedAt: s.now(),
	}
	if err = s.postpones.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("recording postpone: %w", err)
	}
	return event, nil
}

func (s *postponeService) DoToday(ctx context.Context, userID, taskID string, now time.Time) (*domain.PostponeEvent, error) {
	today := domain.DateOf(now)
	from := s.plannedDate(ctx, userID, taskID, today)
	return s.Postpone(ctx, userID, taskID, from, today, "do today", true)
}

func (s *postponeService) ListByTask(ctx context.Context, taskID string) ([]*domain.PostponeEvent, error) {
	return s.postpones.ListByTask(ctx, taskID)
}

func (s *postponeService) CountByTask(ctx context.Context, userID string) (map[string]int, error) {
	return s.postpones.CountByTask(ctx, userID)
}

// plannedDate finds the earliest persisted plan day carrying the task; today
// when no plan mentions it.
func (s *postponeService) plannedDate(ctx context.Context, userID, taskID string, today time.Time) time.Time {
	rows, err := s.plans.ListRange(ctx, userID, today, scheduler.DefaultHorizonDays)
	if err != nil {
		return today
	}
	for _, row := range rows {
		for _, a := range row.Day.Allocations {
			if a.TaskID == taskID {
				return domain.DateOf(row.Date)
			}
		}
	}
	return today
}
