package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jwhittle/daybook/internal/db"
	"github.com/jwhittle/daybook/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, user_id, project_id, phase_id, parent_id, title, status,
		estimated_min, importance, urgency, energy, progress, due_date,
		is_fixed_time, start_time, end_time, recurring_id, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		nullableStrToValue(t.ProjectID),
		nullableStrToValue(t.PhaseID),
		nullableStrToValue(t.ParentID),
		t.Title,
		string(t.Status),
		t.EstimatedMin,
		string(t.Importance),
		string(t.Urgency),
		string(t.Energy),
		t.Progress,
		nullableTimeToString(t.DueDate, dateLayout),
		boolToInt(t.IsFixedTime),
		nullableTimeToString(t.StartTime, time.RFC3339),
		nullableTimeToString(t.EndTime, time.RFC3339),
		nullableStrToValue(t.RecurringID),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanTask(row)
}

func (r *SQLiteTaskRepo) ListActive(ctx context.Context, userID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ? AND status != 'cancelled'
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing active tasks: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListByParent(ctx context.Context, parentID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE parent_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by parent: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET project_id = ?, phase_id = ?, parent_id = ?, title = ?, status = ?,
		estimated_min = ?, importance = ?, urgency = ?, energy = ?, progress = ?, due_date = ?,
		is_fixed_time = ?, start_time = ?, end_time = ?, recurring_id = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableStrToValue(t.ProjectID),
		nullableStrToValue(t.PhaseID),
		nullableStrToValue(t.ParentID),
		t.Title,
		string(t.Status),
		t.EstimatedMin,
		string(t.Importance),
		string(t.Urgency),
		string(t.Energy),
		t.Progress,
		nullableTimeToString(t.DueDate, dateLayout),
		boolToInt(t.IsFixedTime),
		nullableTimeToString(t.StartTime, time.RFC3339),
		nullableTimeToString(t.EndTime, time.RFC3339),
		nullableStrToValue(t.RecurringID),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) OccurrenceExists(ctx context.Context, recurringID string, date time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM tasks
		WHERE recurring_id = ? AND date(COALESCE(start_time, due_date, created_at)) = ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, recurringID, domain.DateOf(date).Format(dateLayout)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking recurring occurrence: %w", err)
	}
	return count > 0, nil
}

// scanTask scans a single task from a *sql.Row.
func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var projectID, phaseID, parentID, recurringID sql.NullString
	var statusStr, importanceStr, urgencyStr, energyStr string
	var dueDateStr, startTimeStr, endTimeStr sql.NullString
	var fixedInt int
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID, &t.UserID, &projectID, &phaseID, &parentID, &t.Title, &statusStr,
		&t.EstimatedMin, &importanceStr, &urgencyStr, &energyStr, &t.Progress, &dueDateStr,
		&fixedInt, &startTimeStr, &endTimeStr, &recurringID, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	return r.populateTask(&t, projectID, phaseID, parentID, recurringID,
		statusStr, importanceStr, urgencyStr, energyStr,
		dueDateStr, startTimeStr, endTimeStr, fixedInt, createdAtStr, updatedAtStr)
}

// scanTasks scans multiple tasks from *sql.Rows.
func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var projectID, phaseID, parentID, recurringID sql.NullString
		var statusStr, importanceStr, urgencyStr, energyStr string
		var dueDateStr, startTimeStr, endTimeStr sql.NullString
		var fixedInt int
		var createdAtStr, updatedAtStr string

		err := rows.Scan(
			&t.ID, &t.UserID, &projectID, &phaseID, &parentID, &t.Title, &statusStr,
			&t.EstimatedMin, &importanceStr, &urgencyStr, &energyStr, &t.Progress, &dueDateStr,
			&fixedInt, &startTimeStr, &endTimeStr, &recurringID, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}

		task, err := r.populateTask(&t, projectID, phaseID, parentID, recurringID,
			statusStr, importanceStr, urgencyStr, energyStr,
			dueDateStr, startTimeStr, endTimeStr, fixedInt, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// populateTask fills in parsed fields on a Task after scanning raw values.
func (r *SQLiteTaskRepo) populateTask(
	t *domain.Task,
	projectID, phaseID, parentID, recurringID sql.NullString,
	statusStr, importanceStr, urgencyStr, energyStr string,
	dueDateStr, startTimeStr, endTimeStr sql.NullString,
	fixedInt int,
	createdAtStr, updatedAtStr string,
) (*domain.Task, error) {
	t.ProjectID = nullStringToPtr(projectID)
	t.PhaseID = nullStringToPtr(phaseID)
	t.ParentID = nullStringToPtr(parentID)
	t.RecurringID = nullStringToPtr(recurringID)
	t.Status = domain.TaskStatus(statusStr)
	t.Importance = domain.PriorityLevel(importanceStr)
	t.Urgency = domain.PriorityLevel(urgencyStr)
	t.Energy = domain.EnergyLevel(energyStr)
	t.IsFixedTime = intToBool(fixedInt)
	t.DueDate = parseNullableTime(dueDateStr, dateLayout)
	t.StartTime = parseNullableTime(startTimeStr, time.RFC3339)
	t.EndTime = parseNullableTime(endTimeStr, time.RFC3339)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return t, nil
}
