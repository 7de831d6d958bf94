package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jwhittle/daybook/internal/domain"
)

// ErrNotFound marks lookups for rows that do not exist. Callers distinguish
// it from infrastructure failures with errors.Is.
var ErrNotFound = errors.New("not found")

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// ListActive returns every task relevant to an allocation run: all
	// non-cancelled tasks of the user, meetings included.
	ListActive(ctx context.Context, userID string) ([]*domain.Task, error)
	ListByParent(ctx context.Context, parentID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	// OccurrenceExists reports whether a recurring definition has already
	// been materialized for the given date.
	OccurrenceExists(ctx context.Context, recurringID string, date time.Time) (bool, error)
}

type SettingsRepo interface {
	Get(ctx context.Context, userID string) (*domain.ScheduleSettings, error)
	Upsert(ctx context.Context, s *domain.ScheduleSettings) error
}

type PlanRepo interface {
	GetByDate(ctx context.Context, userID string, date time.Time) (*domain.DailySchedulePlan, error)
	ListRange(ctx context.Context, userID string, from time.Time, days int) ([]*domain.DailySchedulePlan, error)
	ListByGroup(ctx context.Context, userID, planGroupID string) ([]*domain.DailySchedulePlan, error)
	// UpsertPlans replaces the plan rows for the dates covered; one row per
	// (user, date) is an invariant of the schema.
	UpsertPlans(ctx context.Context, plans []*domain.DailySchedulePlan) error
	Update(ctx context.Context, plan *domain.DailySchedulePlan) error
	DeleteByGroup(ctx context.Context, userID, planGroupID string) error
	// DeleteRange clears plan rows in [from, from+days); a regenerate uses it
	// so superseded rows past the new plan's last day do not linger.
	DeleteRange(ctx context.Context, userID string, from time.Time, days int) error
}

type PostponeRepo interface {
	Create(ctx context.Context, e *domain.PostponeEvent) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.PostponeEvent, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.PostponeEvent, error)
	// CountByTask aggregates historical postpone counts per task id.
	CountByTask(ctx context.Context, userID string) (map[string]int, error)
	// LatestPinned returns, per task, the destination date of the most
	// recent pinned postpone event.
	LatestPinned(ctx context.Context, userID string) (map[string]time.Time, error)
}

type RecurringRepo interface {
	Create(ctx context.Context, r *domain.RecurringTask) error
	GetByID(ctx context.Context, id string) (*domain.RecurringTask, error)
	List(ctx context.Context, userID string) ([]*domain.RecurringTask, error)
	Delete(ctx context.Context, id string) error
}
