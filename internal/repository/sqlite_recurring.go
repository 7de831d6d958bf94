package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jwhittle/daybook/internal/db"
	"github.com/jwhittle/daybook/internal/domain"
)

const recurringColumns = `id, user_id, title, spec, duration_min, importance, urgency, energy,
		is_fixed_time, start_min, end_min, created_at, updated_at`

// SQLiteRecurringRepo implements RecurringRepo using a SQLite database.
type SQLiteRecurringRepo struct {
	db db.DBTX
}

// NewSQLiteRecurringRepo creates a new SQLiteRecurringRepo.
func NewSQLiteRecurringRepo(conn db.DBTX) *SQLiteRecurringRepo {
	return &SQLiteRecurringRepo{db: conn}
}

func (r *SQLiteRecurringRepo) Create(ctx context.Context, rt *domain.RecurringTask) error {
	query := `INSERT INTO recurring_tasks (` + recurringColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rt.ID,
		rt.UserID,
		rt.Title,
		rt.Spec,
		rt.DurationMin,
		string(rt.Importance),
		string(rt.Urgency),
		string(rt.Energy),
		boolToInt(rt.IsFixedTime),
		rt.StartMin,
		rt.EndMin,
		rt.CreatedAt.Format(time.RFC3339),
		rt.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting recurring task: %w", err)
	}
	return nil
}

func (r *SQLiteRecurringRepo) GetByID(ctx context.Context, id string) (*domain.RecurringTask, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	rt, err := scanRecurring(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("recurring task: %w", ErrNotFound)
		}
		return nil, err
	}
	return rt, nil
}

func (r *SQLiteRecurringRepo) List(ctx context.Context, userID string) ([]*domain.RecurringTask, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_tasks WHERE user_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing recurring tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.RecurringTask
	for rows.Next() {
		rt, err := scanRecurring(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recurring tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteRecurringRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM recurring_tasks WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting recurring task: %w", err)
	}
	return nil
}

func scanRecurring(scan func(dest ...any) error) (*domain.RecurringTask, error) {
	var rt domain.RecurringTask
	var importanceStr, urgencyStr, energyStr string
	var fixedInt int
	var createdAtStr, updatedAtStr string

	err := scan(
		&rt.ID, &rt.UserID, &rt.Title, &rt.Spec, &rt.DurationMin,
		&importanceStr, &urgencyStr, &energyStr,
		&fixedInt, &rt.StartMin, &rt.EndMin, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning recurring task: %w", err)
	}

	rt.Importance = domain.PriorityLevel(importanceStr)
	rt.Urgency = domain.PriorityLevel(urgencyStr)
	rt.Energy = domain.EnergyLevel(energyStr)
	rt.IsFixedTime = intToBool(fixedInt)

	rt.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	rt.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &rt, nil
}
