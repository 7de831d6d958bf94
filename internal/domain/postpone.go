package domain

import "time"

// PostponeEvent is an immutable log entry recording that a task moved from
// one planned date to another. Events are only ever created, never updated;
// aggregate counts feed the prioritizer's anti-starvation tie-break and
// pinned events force placement on the destination date.
type PostponeEvent struct {
	ID       string
	UserID   string
	TaskID   string
	FromDate time.Time
	ToDate   time.Time
	Reason   string
	Pinned   bool

	CreatedAt time.Time
}
