package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jwhittle/daybook/internal/db"
	"github.com/jwhittle/daybook/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo using a SQLite database.
// The seven WorkdayHours entries are stored as one JSON column; they are
// parsed into validated structs at this boundary and nothing downstream
// ever touches the raw payload.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

// NewSQLiteSettingsRepo creates a new SQLiteSettingsRepo.
func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context, userID string) (*domain.ScheduleSettings, error) {
	query := `SELECT user_id, days_json, buffer_hours, break_after_task_min, updated_at
		FROM schedule_settings WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var s domain.ScheduleSettings
	var daysJSON, updatedAtStr string
	err := row.Scan(&s.UserID, &daysJSON, &s.BufferHours, &s.BreakAfterTaskMin, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("schedule settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule settings: %w", err)
	}

	if err := json.Unmarshal([]byte(daysJSON), &s.Days); err != nil {
		return nil, fmt.Errorf("parsing workday hours: %w", err)
	}
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.ScheduleSettings) error {
	daysJSON, err := json.Marshal(s.Days)
	if err != nil {
		return fmt.Errorf("encoding workday hours: %w", err)
	}

	query := `INSERT INTO schedule_settings (user_id, days_json, buffer_hours, break_after_task_min, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			days_json = excluded.days_json,
			buffer_hours = excluded.buffer_hours,
			break_after_task_min = excluded.break_after_task_min,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		s.UserID,
		string(daysJSON),
		s.BufferHours,
		s.BreakAfterTaskMin,
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting schedule settings: %w", err)
	}
	return nil
}
