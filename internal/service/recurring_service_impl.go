package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwhittle/daybook/internal/db"
	"github.com/jwhittle/daybook/internal/domain"
	"github.com/jwhittle/daybook/internal/recurrence"
	"github.com/jwhittle/daybook/internal/repository"
)

type recurringService struct {
	uow       db.UnitOfWork
	recurring repository.RecurringRepo
	tasks     repository.TaskRepo
	observer  UseCaseObserver
	now       func() time.Time
}

// NewRecurringService creates the recurring-task use-case implementation.
func NewRecurringService(
	uow db.UnitOfWork,
	recurring repository.RecurringRepo,
	tasks repository.TaskRepo,
	observers ...UseCaseObserver,
) RecurringService {
	return &recurringService{
		uow:       uow,
		recurring: recurring,
		tasks:     tasks,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

func (s *recurringService) Create(ctx context.Context, r *domain.RecurringTask) error {
	if r.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidTask)
	}
	if r.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	if err := recurrence.ValidateSpec(r.Spec); err != nil {
		return err
	}
	if r.IsFixedTime && r.EndMin <= r.StartMin {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidTask)
	}
	if !r.IsFixedTime && r.DurationMin <= 0 {
		return fmt.Errorf("%w: duration is required", ErrInvalidTask)
	}

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Importance == "" {
		r.Importance = domain.PriorityMedium
	}
	if r.Urgency == "" {
		r.Urgency = domain.PriorityMedium
	}
	if r.Energy == "" {
		r.Energy = domain.EnergyLow
	}
	now := s.now()
	r.CreatedAt = now
	r.UpdatedAt = now
	return s.recurring.Create(ctx, r)
}

func (s *recurringService) List(ctx context.Context, userID string) ([]*domain.RecurringTask, error) {
	return s.recurring.List(ctx, userID)
}

func (s *recurringService) Delete(ctx context.Context, id string) error {
	return s.recurring.Delete(ctx, id)
}

func (s *recurringService) Sync(ctx context.Context, userID string, from time.Time, days int) (created int, err error) {
	start := s.now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name: "recurring.sync", Duration: time.Since(start), Success: err == nil, Err: err,
			Fields: map[string]any{"user_id": userID, "created": created}, StartedAt: start,
		})
	}()

	defs, err := s.recurring.List(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("listing recurring tasks: %w", err)
	}
	if len(defs) == 0 {
		return 0, nil
	}

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		for _, def := range defs {
			occurrences, expErr := recurrence.Expand(def, from, days)
			if expErr != nil {
				return expErr
			}
			for _, o := range occurrences {
				exists, exErr := txTasks.OccurrenceExists(ctx, def.ID, o.Date)
				if exErr != nil {
					return exErr
				}
				if exists {
					continue
				}
				t := recurrence.Materialize(o, uuid.New().String(), now)
				if crErr := txTasks.Create(ctx, t); crErr != nil {
					return crErr
				}
				created++
			}
		}
		return nil
	})
	if err != nil {
		created = 0
		return 0, fmt.Errorf("materializing occurrences: %w", err)
	}
	return created, nil
}
