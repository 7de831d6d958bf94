package domain

import (
	"fmt"
	"time"
)

// WorkBreak is a rest interval inside a workday, expressed in minutes from
// midnight (local clock).
type WorkBreak struct {
	StartMin int `json:"start_min"`
	EndMin   int `json:"end_min"`
}

// WorkdayHours describes one weekday's working window.
type WorkdayHours struct {
	Enabled  bool        `json:"enabled"`
	StartMin int         `json:"start_min"`
	EndMin   int         `json:"end_min"`
	Breaks   []WorkBreak `json:"breaks,omitempty"`
}

// ScheduleSettings is the per-user weekly working-hours configuration.
// Days is indexed by time.Weekday (0 = Sunday).
type ScheduleSettings struct {
	UserID            string
	Days              [7]WorkdayHours
	BufferHours       float64
	BreakAfterTaskMin int
	UpdatedAt         time.Time
}

// DefaultSettings returns the system defaults applied on first access:
// all seven days enabled 09:00-18:00 with a 12:00-13:00 break and one
// buffer hour per day.
func DefaultSettings(userID string) *ScheduleSettings {
	s := &ScheduleSettings{
		UserID:            userID,
		BufferHours:       1.0,
		BreakAfterTaskMin: 15,
	}
	for i := range s.Days {
		s.Days[i] = WorkdayHours{
			Enabled:  true,
			StartMin: 9 * 60,
			EndMin:   18 * 60,
			Breaks:   []WorkBreak{{StartMin: 12 * 60, EndMin: 13 * 60}},
		}
	}
	return s
}

// Validate rejects malformed settings at write time so the scheduler can
// assume validated input.
func (s *ScheduleSettings) Validate() error {
	if s.BufferHours < 0 {
		return fmt.Errorf("buffer_hours must not be negative, got %v", s.BufferHours)
	}
	if s.BreakAfterTaskMin < 0 {
		return fmt.Errorf("break_after_task_minutes must not be negative, got %d", s.BreakAfterTaskMin)
	}
	for wd, day := range s.Days {
		if !day.Enabled {
			continue
		}
		if day.StartMin < 0 || day.EndMin > 24*60 {
			return fmt.Errorf("%s: work hours outside the day", time.Weekday(wd))
		}
		if day.StartMin >= day.EndMin {
			return fmt.Errorf("%s: work start must be before end", time.Weekday(wd))
		}
		for _, b := range day.Breaks {
			if b.StartMin >= b.EndMin {
				return fmt.Errorf("%s: break start must be before end", time.Weekday(wd))
			}
			if b.StartMin < day.StartMin || b.EndMin > day.EndMin {
				return fmt.Errorf("%s: break interval outside work hours", time.Weekday(wd))
			}
		}
	}
	return nil
}

// Workday returns the configuration for the weekday of the given date.
func (s *ScheduleSettings) Workday(date time.Time) WorkdayHours {
	return s.Days[int(date.Weekday())]
}

// BreakMin returns the total break minutes of a workday.
func (d WorkdayHours) BreakMin() int {
	total := 0
	for _, b := range d.Breaks {
		total += b.EndMin - b.StartMin
	}
	return total
}

// ParseClock converts an "HH:MM" string into minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parsing clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
