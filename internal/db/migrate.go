package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		project_id    TEXT,
		phase_id      TEXT,
		parent_id     TEXT REFERENCES tasks(id) ON DELETE CASCADE,
		title         TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'todo'
		              CHECK(status IN ('todo','in_progress','done','cancelled')),
		estimated_min INTEGER NOT NULL DEFAULT 0,
		importance    TEXT NOT NULL DEFAULT 'medium'
		              CHECK(importance IN ('low','medium','high','urgent')),
		urgency       TEXT NOT NULL DEFAULT 'medium'
		              CHECK(urgency IN ('low','medium','high','urgent')),
		energy        TEXT NOT NULL DEFAULT 'low'
		              CHECK(energy IN ('low','high')),
		progress      INTEGER NOT NULL DEFAULT 0,
		due_date      TEXT,
		is_fixed_time INTEGER NOT NULL DEFAULT 0,
		start_time    TEXT,
		end_time      TEXT,
		recurring_id  TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_recurring ON tasks(recurring_id)`,

	`CREATE TABLE IF NOT EXISTS schedule_settings (
		user_id              TEXT PRIMARY KEY,
		days_json            TEXT NOT NULL,
		buffer_hours         REAL NOT NULL DEFAULT 1.0,
		break_after_task_min INTEGER NOT NULL DEFAULT 15,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS schedule_plans (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		date          TEXT NOT NULL,
		plan_group_id TEXT NOT NULL,
		payload       TEXT NOT NULL,
		generated_at  TEXT NOT NULL,
		UNIQUE(user_id, date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_plans_group ON schedule_plans(plan_group_id)`,

	`CREATE TABLE IF NOT EXISTS postpone_events (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		task_id    TEXT NOT NULL,
		from_date  TEXT NOT NULL,
		to_date    TEXT NOT NULL,
		reason     TEXT NOT NULL DEFAULT '',
		pinned     INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_postpone_events_task ON postpone_events(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_postpone_events_user ON postpone_events(user_id)`,

	`CREATE TABLE IF NOT EXISTS recurring_tasks (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		title         TEXT NOT NULL,
		spec          TEXT NOT NULL,
		duration_min  INTEGER NOT NULL DEFAULT 0,
		importance    TEXT NOT NULL DEFAULT 'medium',
		urgency       TEXT NOT NULL DEFAULT 'medium',
		energy        TEXT NOT NULL DEFAULT 'low',
		is_fixed_time INTEGER NOT NULL DEFAULT 0,
		start_min     INTEGER NOT NULL DEFAULT 0,
		end_min       INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_recurring_tasks_user ON recurring_tasks(user_id)`,
}
