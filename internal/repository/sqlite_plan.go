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

// SQLitePlanRepo implements PlanRepo using a SQLite database. The computed
// schedule document (day, tasks, blocks, snapshots) is stored as one JSON
// payload per (user, date) row; group and date keys stay as columns so the
// staleness detector can load a whole plan group in one query.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

// planPayload is the JSON document stored per plan row.
type planPayload struct {
	Day                   domain.ScheduleDay         `json:"day"`
	Tasks                 []domain.TaskScheduleInfo  `json:"tasks"`
	Unscheduled           []domain.UnscheduledTask   `json:"unscheduled,omitempty"`
	Excluded              []domain.ExcludedTask      `json:"excluded,omitempty"`
	TimeBlocks            []domain.ScheduleTimeBlock `json:"time_blocks,omitempty"`
	Snapshots             []domain.TaskPlanSnapshot  `json:"snapshots"`
	PinnedOverflowTaskIDs []string                   `json:"pinned_overflow_task_ids,omitempty"`
	Params                domain.PlanParams          `json:"params"`
}

func (r *SQLitePlanRepo) GetByDate(ctx context.Context, userID string, date time.Time) (*domain.DailySchedulePlan, error) {
	query := `SELECT id, user_id, date, plan_group_id, payload, generated_at
		FROM schedule_plans WHERE user_id = ? AND date = ?`
	row := r.db.QueryRowContext(ctx, query, userID, domain.DateOf(date).Format(dateLayout))
	return r.scanPlan(row)
}

func (r *SQLitePlanRepo) ListRange(ctx context.Context, userID string, from time.Time, days int) ([]*domain.DailySchedulePlan, error) {
	start := domain.DateOf(from)
	end := start.AddDate(0, 0, days)
	query := `SELECT id, user_id, date, plan_group_id, payload, generated_at
		FROM schedule_plans
		WHERE user_id = ? AND date >= ? AND date < ?
		ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, userID, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing plans by range: %w", err)
	}
	defer rows.Close()
	return r.scanPlans(rows)
}

func (r *SQLitePlanRepo) ListByGroup(ctx context.Context, userID, planGroupID string) ([]*domain.DailySchedulePlan, error) {
	query := `SELECT id, user_id, date, plan_group_id, payload, generated_at
		FROM schedule_plans
		WHERE user_id = ? AND plan_group_id = ?
		ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, userID, planGroupID)
	if err != nil {
		return nil, fmt.Errorf("listing plans by group: %w", err)
	}
	defer rows.Close()
	return r.scanPlans(rows)
}

func (r *SQLitePlanRepo) UpsertPlans(ctx context.Context, plans []*domain.DailySchedulePlan) error {
	query := `INSERT INTO schedule_plans (id, user_id, date, plan_group_id, payload, generated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			id = excluded.id,
			plan_group_id = excluded.plan_group_id,
			payload = excluded.payload,
			generated_at = excluded.generated_at`
	for _, p := range plans {
		payload, err := encodePlanPayload(p)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, query,
			p.ID,
			p.UserID,
			domain.DateOf(p.Date).Format(dateLayout),
			p.PlanGroupID,
			payload,
			p.GeneratedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("upserting plan for %s: %w", p.Date.Format(dateLayout), err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.DailySchedulePlan) error {
	payload, err := encodePlanPayload(p)
	if err != nil {
		return err
	}
	query := `UPDATE schedule_plans SET plan_group_id = ?, payload = ?, generated_at = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query, p.PlanGroupID, payload, p.GeneratedAt.Format(time.RFC3339), p.ID)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) DeleteByGroup(ctx context.Context, userID, planGroupID string) error {
	query := `DELETE FROM schedule_plans WHERE user_id = ? AND plan_group_id = ?`
	_, err := r.db.ExecContext(ctx, query, userID, planGroupID)
	if err != nil {
		return fmt.Errorf("deleting plan group: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) DeleteRange(ctx context.Context, userID string, from time.Time, days int) error {
	start := domain.DateOf(from)
	end := start.AddDate(0, 0, days)
	query := `DELETE FROM schedule_plans WHERE user_id = ? AND date >= ? AND date < ?`
	_, err := r.db.ExecContext(ctx, query, userID, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("deleting plan range: %w", err)
	}
	return nil
}

func encodePlanPayload(p *domain.DailySchedulePlan) (string, error) {
	payload := planPayload{
		Day:                   p.Day,
		Tasks:                 p.Tasks,
		Unscheduled:           p.Unscheduled,
		Excluded:              p.Excluded,
		TimeBlocks:            p.TimeBlocks,
		Snapshots:             p.Snapshots,
		PinnedOverflowTaskIDs: p.PinnedOverflowTaskIDs,
		Params:                p.Params,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding plan payload: %w", err)
	}
	return string(raw), nil
}

func (r *SQLitePlanRepo) scanPlan(row *sql.Row) (*domain.DailySchedulePlan, error) {
	var p domain.DailySchedulePlan
	var dateStr, payloadStr, generatedAtStr string

	err := row.Scan(&p.ID, &p.UserID, &dateStr, &p.PlanGroupID, &payloadStr, &generatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("schedule plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule plan: %w", err)
	}
	return r.populatePlan(&p, dateStr, payloadStr, generatedAtStr)
}

func (r *SQLitePlanRepo) scanPlans(rows *sql.Rows) ([]*domain.DailySchedulePlan, error) {
	var plans []*domain.DailySchedulePlan
	for rows.Next() {
		var p domain.DailySchedulePlan
		var dateStr, payloadStr, generatedAtStr string
		if err := rows.Scan(&p.ID, &p.UserID, &dateStr, &p.PlanGroupID, &payloadStr, &generatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning schedule plan row: %w", err)
		}
		plan, err := r.populatePlan(&p, dateStr, payloadStr, generatedAtStr)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) populatePlan(p *domain.DailySchedulePlan, dateStr, payloadStr, generatedAtStr string) (*domain.DailySchedulePlan, error) {
	var err error
	p.Date, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing plan date: %w", err)
	}
	p.GeneratedAt, err = time.Parse(time.RFC3339, generatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing generated_at: %w", err)
	}

	var payload planPayload
	if err := json.Unmarshal([]byte(payloadStr), &payload); err != nil {
		return nil, fmt.Errorf("parsing plan payload: %w", err)
	}
	p.Day = payload.Day
	p.Tasks = payload.Tasks
	p.Unscheduled = payload.Unscheduled
	p.Excluded = payload.Excluded
	p.TimeBlocks = payload.TimeBlocks
	p.Snapshots = payload.Snapshots
	p.PinnedOverflowTaskIDs = payload.PinnedOverflowTaskIDs
	p.Params = payload.Params
	return p, nil
}
