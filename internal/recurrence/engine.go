package recurrence

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jwhittle/daybook/internal/domain"
)

// specParser accepts standard five-field cron expressions plus descriptors
// like "@weekly".
var specParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Occurrence is one dated materialization of a recurring definition.
type Occurrence struct {
	Recurring *domain.RecurringTask
	Date      time.Time
}

// ValidateSpec checks a cron expression without expanding it; used at
// recurring-task write time so bad specs never reach the generator.
func ValidateSpec(spec string) error {
	if _, err := specParser.Parse(spec); err != nil {
		return fmt.Errorf("invalid recurrence spec %q: %w", spec, err)
	}
	return nil
}

// Expand lists the occurrence dates of one recurring task inside
// [from, from+days). At most one occurrence per calendar date is emitted:
// the scheduler treats recurring work as daily demand, not as individual
// cron ticks.
func Expand(rt *domain.RecurringTask, from time.Time, days int) ([]Occurrence, error) {
	sched, err := specParser.Parse(rt.Spec)
	if err != nil {
		return nil, fmt.Errorf("parsing recurrence spec %q: %w", rt.Spec, err)
	}

	start := domain.DateOf(from)
	end := start.AddDate(0, 0, days)

	var occurrences []Occurrence
	var lastDate time.Time
	cursor := start.Add(-time.Minute)
	for {
		next := sched.Next(cursor)
		if next.IsZero() || !next.Before(end) {
			break
		}
		cursor = next
		date := domain.DateOf(next)
		if date.Before(start) || date.Equal(lastDate) {
			continue
		}
		lastDate = date
		occurrences = append(occurrences, Occurrence{Recurring: rt, Date: date})
	}
	return occurrences, nil
}

// Materialize turns an occurrence into a concrete task. Fixed-time
// definitions become meetings with their clock window anchored on the
// occurrence date; everything else becomes a due-dated estimated task.
func Materialize(o Occurrence, taskID string, now time.Time) *domain.Task {
	t := &domain.Task{
		ID:           taskID,
		UserID:       o.Recurring.UserID,
		Title:        o.Recurring.Title,
		Status:       domain.TaskTodo,
		EstimatedMin: o.Recurring.DurationMin,
		Importance:   o.Recurring.Importance,
		Urgency:      o.Recurring.Urgency,
		Energy:       o.Recurring.Energy,
		RecurringID:  &o.Recurring.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if o.Recurring.IsFixedTime {
		start := o.Date.Add(time.Duration(o.Recurring.StartMin) * time.Minute)
		end := o.Date.Add(time.Duration(o.Recurring.EndMin) * time.Minute)
		t.IsFixedTime = true
		t.StartTime = &start
		t.EndTime = &end
		t.EstimatedMin = o.Recurring.EndMin - o.Recurring.StartMin
	} else {
		due := o.Date
		t.DueDate = &due
	}
	return t
}
