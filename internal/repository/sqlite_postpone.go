package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jwhittle/daybook/internal/db"
	"github.com/jwhittle/daybook/internal/domain"
)

const postponeColumns = `id, user_id, task_id, from_date, to_date, reason, pinned, created_at`

// SQLitePostponeRepo implements PostponeRepo using a SQLite database.
// The log is append-only: rows are created and aggregated, never mutated.
type SQLitePostponeRepo struct {
	db db.DBTX
}

// NewSQLitePostponeRepo creates a new SQLitePostponeRepo.
func NewSQLitePostponeRepo(conn db.DBTX) *SQLitePostponeRepo {
	return &SQLitePostponeRepo{db: conn}
}

func (r *SQLitePostponeRepo) Create(ctx context.Context, e *domain.PostponeEvent) error {
	query := `INSERT INTO postpone_events (` + postponeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.TaskID,
		domain.DateOf(e.FromDate).Format(dateLayout),
		domain.DateOf(e.ToDate).Format(dateLayout),
		e.Reason,
		boolToInt(e.Pinned),
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting postpone event: %w", err)
	}
	return nil
}

func (r *SQLitePostponeRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.PostponeEvent, error) {
	query := `SELECT ` + postponeColumns + ` FROM postpone_events
		WHERE task_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing postpone events by task: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLitePostponeRepo) ListByUser(ctx context.Context, userID string) ([]*domain.PostponeEvent, error) {
	query := `SELECT ` + postponeColumns + ` FROM postpone_events
		WHERE user_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing postpone events by user: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLitePostponeRepo) CountByTask(ctx context.Context, userID string) (map[string]int, error) {
	query := `SELECT task_id, COUNT(*) FROM postpone_events WHERE user_id = ? GROUP BY task_id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("counting postpone events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var taskID string
		var count int
		if err := rows.Scan(&taskID, &count); err != nil {
			return nil, fmt.Errorf("scanning postpone count: %w", err)
		}
		counts[taskID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating postpone counts: %w", err)
	}
	return counts, nil
}

func (r *SQLitePostponeRepo) LatestPinned(ctx context.Context, userID string) (map[string]time.Time, error) {
	// Latest event per task decides; a newer unpinned postpone clears an
	// older pin. created_at is stored in UTC so the string order matches
	// the time order, with id breaking exact-timestamp ties.
	query := `SELECT e.task_id, e.to_date, e.pinned
		FROM postpone_events e
		WHERE e.user_id = ?
		AND NOT EXISTS (
			SELECT 1 FROM postpone_events newer
			WHERE newer.task_id = e.task_id
			AND (newer.created_at > e.created_at
				OR (newer.created_at = e.created_at AND newer.id > e.id))
		)`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing pinned postpones: %w", err)
	}
	defer rows.Close()

	pinned := make(map[string]time.Time)
	for rows.Next() {
		var taskID, toDateStr string
		var pinnedInt int
		if err := rows.Scan(&taskID, &toDateStr, &pinnedInt); err != nil {
			return nil, fmt.Errorf("scanning pinned postpone: %w", err)
		}
		if !intToBool(pinnedInt) {
			continue
		}
		date, err := time.Parse(dateLayout, toDateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing pinned date: %w", err)
		}
		pinned[taskID] = date
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pinned postpones: %w", err)
	}
	return pinned, nil
}

func (r *SQLitePostponeRepo) scanEvents(rows *sql.Rows) ([]*domain.PostponeEvent, error) {
	var events []*domain.PostponeEvent
	for rows.Next() {
		var e domain.PostponeEvent
		var fromStr, toStr, createdAtStr string
		var pinnedInt int
		if err := rows.Scan(&e.ID, &e.UserID, &e.TaskID, &fromStr, &toStr, &e.Reason, &pinnedInt, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning postpone event: %w", err)
		}
		var err error
		e.FromDate, err = time.Parse(dateLayout, fromStr)
		if err != nil {
			return nil, fmt.Errorf("parsing from_date: %w", err)
		}
		e.ToDate, err = time.Parse(dateLayout, toStr)
		if err != nil {
			return nil, fmt.Errorf("parsing to_date: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		e.Pinned = intToBool(pinnedInt)
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating postpone events: %w", err)
	}
	return events, nil
}
