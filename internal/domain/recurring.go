package domain

import "time"

// RecurringTask is a template that materializes into dated tasks. Spec is a
// standard cron expression ("0 9 * * MON"); fixed-time definitions become
// meetings occupying StartMin..EndMin on each occurrence date.
type RecurringTask struct {
	ID     string
	UserID string
	Title  string
	Spec   string

	DurationMin int
	Importance  PriorityLevel
	Urgency     PriorityLevel
	Energy      EnergyLevel

	IsFixedTime bool
	StartMin    int
	EndMin      int

	CreatedAt time.Time
	UpdatedAt time.Time
}
