package service

import (
	"context"
	"time"

	"github.com/jwhittle/daybook/internal/contract"
	"github.com/jwhittle/daybook/internal/domain"
)

// ScheduleService is the entry point to the scheduling core. All reads are
// pull-based: capacity, overflow and staleness are recomputed on every call
// from the live task set.
type ScheduleService interface {
	// GetSchedule returns the schedule view for [from, from+days). When a
	// persisted plan covers the range it is returned annotated with any
	// pending changes; otherwise a live forecast is computed and not saved.
	GetSchedule(ctx context.Context, userID string, from time.Time, days int) (*contract.SchedulePlanResponse, error)
	// GeneratePlan runs the allocator and persists one plan row per touched
	// date under a fresh plan group.
	GeneratePlan(ctx context.Context, userID string, from time.Time, days int) (*contract.SchedulePlanResponse, error)
	// MoveTimeBlock moves one auto block to a new position, possibly across
	// days, and re-fingerprints the owning task across the whole plan group.
	MoveTimeBlock(ctx context.Context, userID, blockID string, fromDate, toDate time.Time, startMin, endMin int) error
	// TodayView projects "what should I work on today" from the persisted
	// plan, or from a live forecast when none exists.
	TodayView(ctx context.Context, userID string, now time.Time) (*contract.TodayTasksResponse, error)
}

type PostponeService interface {
	Postpone(ctx context.Context, userID, taskID string, fromDate, toDate time.Time, reason string, pin bool) (*domain.PostponeEvent, error)
	// DoToday pins a task onto today, postponing it from its currently
	// planned date.
	DoToday(ctx context.Context, userID, taskID string, now time.Time) (*domain.PostponeEvent, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.PostponeEvent, error)
	CountByTask(ctx context.Context, userID string) (map[string]int, error)
}

// SettingsPatch carries a partial settings update; nil fields keep their
// current value.
type SettingsPatch struct {
	Days              *[7]domain.WorkdayHours
	BufferHours       *float64
	BreakAfterTaskMin *int
}

type SettingsService interface {
	// Get returns the user's settings, creating them with system defaults
	// on first access.
	Get(ctx context.Context, userID string) (*domain.ScheduleSettings, error)
	Update(ctx context.Context, userID string, patch SettingsPatch) (*domain.ScheduleSettings, error)
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListActive(ctx context.Context, userID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	MarkDone(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type RecurringService interface {
	Create(ctx context.Context, r *domain.RecurringTask) error
	List(ctx context.Context, userID string) ([]*domain.RecurringTask, error)
	Delete(ctx context.Context, id string) error
	// Sync materializes occurrences inside [from, from+days) that do not
	// exist yet; returns the number of tasks created.
	Sync(ctx context.Context, userID string, from time.Time, days int) (int, error)
}
