package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwhittle/daybook/internal/contract"
	"github.com/jwhittle/daybook/internal/db"
	"github.com/jwhittle/daybook/internal/domain"
	"github.com/jwhittle/daybook/internal/repository"
	"github.com/jwhittle/daybook/internal/scheduler"
)

// ErrImmovableBlock is returned when a caller tries to move a meeting block.
var ErrImmovableBlock = errors.New("meeting blocks cannot be moved")

// DefaultViewDays is the window returned when a caller does not ask for a
// specific range.
const DefaultViewDays = 7

type scheduleService struct {
	uow       db.UnitOfWork
	tasks     repository.TaskRepo
	settings  repository.SettingsRepo
	plans     repository.PlanRepo
	postpones repository.PostponeRepo
	observer  UseCaseObserver
	now       func() time.Time
}

// NewScheduleService creates the scheduling use-case implementation.
func NewScheduleService(
	uow db.UnitOfWork,
	tasks repository.TaskRepo,
	settings repository.SettingsRepo,
	plans repository.PlanRepo,
	postpones repository.PostponeRepo,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		uow:       uow,
		tasks:     tasks,
		settings:  settings,
		plans:     plans,
		postpones: postpones,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

func (s *scheduleService) GetSchedule(ctx context.Context, userID string, from time.Time, days int) (resp *contract.SchedulePlanResponse, err error) {
	start := s.now()
	defer func() {
		s.observe(ctx, "schedule.get", start, err, map[string]any{"user_id": userID})
	}()

	if days <= 0 {
		days = DefaultViewDays
	}
	today := domain.DateOf(from)

	inputs, err := loadPlanInputs(ctx, s.tasks, s.settings, s.postpones, userID)
	if err != nil {
		return nil, err
	}
	cp := computePlan(inputs, today, scheduler.DefaultHorizonDays)

	stored, readErr := s.plans.ListRange(ctx, userID, today, days)
	if readErr != nil && !errors.Is(readErr, repository.ErrNotFound) {
		// A broken plan store must not take the schedule view down with it:
		// serve the live forecast instead.
		return forecastResponse(cp, today, days), nil
	}
	if len(stored) == 0 {
		return forecastResponse(cp, today, days), nil
	}

	changes := scheduler.DiffSnapshots(stored[0].Snapshots, cp.snapshots)
	return storedResponse(stored, changes), nil
}

func (s *scheduleService) GeneratePlan(ctx context.Context, userID string, from time.Time, days int) (resp *contract.SchedulePlanResponse, err error) {
	start := s.now()
	defer func() {
		s.observe(ctx, "schedule.generate", start, err, map[string]any{"user_id": userID})
	}()

	if days <= 0 {
		days = DefaultViewDays
	}
	today := domain.DateOf(from)

	inputs, err := loadPlanInputs(ctx, s.tasks, s.settings, s.postpones, userID)
	if err != nil {
		return nil, err
	}
	cp := computePlan(inputs, today, scheduler.DefaultHorizonDays)

	groupID := uuid.New().String()
	generatedAt := s.now()
	rows := make([]*domain.DailySchedulePlan, 0, len(cp.result.Days))
	for _, day := range cp.result.Days {
		rows = append(rows, &domain.DailySchedulePlan{
			ID:                    uuid.New().String(),
			UserID:                userID,
			Date:                  day.Date,
			PlanGroupID:           groupID,
			Day:                   day,
			Tasks:                 cp.result.Tasks,
			Unscheduled:           cp.result.Unscheduled,
			Excluded:              cp.result.Excluded,
			TimeBlocks:            blocksForDate(cp.result.TimeBlocks, day.Date),
			Snapshots:             cp.snapshots,
			PinnedOverflowTaskIDs: cp.result.PinnedOverflowTaskIDs,
			Params:                cp.params,
			GeneratedAt:           generatedAt,
		})
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		if err := txPlans.DeleteRange(ctx, userID, today, scheduler.DefaultHorizonDays); err != nil {
			return err
		}
		return txPlans.UpsertPlans(ctx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("persisting plan: %w", err)
	}

	resp = forecastResponse(cp, today, days)
	resp.PlanState = string(domain.PlanStatePlanned)
	resp.PlanGroupID = groupID
	resp.PlanGeneratedAt = &generatedAt
	return resp, nil
}

func (s *scheduleService) MoveTimeBlock(ctx context.Context, userID, blockID string, fromDate, toDate time.Time, startMin, endMin int) (err error) {
	start := s.now()
	defer func() {
		s.observe(ctx, "schedule.move_block", start, err, map[string]any{"user_id": userID, "block_id": blockID})
	}()

	if endMin <= startMin {
		return fmt.Errorf("block end %s must be after start %s",
			domain.FormatClock(endMin), domain.FormatClock(startMin))
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		src, err := txPlans.GetByDate(ctx, userID, fromDate)
		if err != nil {
			return err
		}

		group, err := txPlans.ListByGroup(ctx, userID, src.PlanGroupID)
		if err != nil {
			return err
		}
		byDate := make(map[time.Time]*domain.DailySchedulePlan, len(group))
		for _, row := range group {
			byDate[domain.DateOf(row.Date)] = row
		}
		src = byDate[domain.DateOf(fromDate)]
		if src == nil {
			return fmt.Errorf("plan for %s: %w", domain.DateOf(fromDate).Format(contract.DateLayout), repository.ErrNotFound)
		}

		blockIdx := -1
		for i, b := range src.TimeBlocks {
			if b.ID == blockID {
				blockIdx = i
				break
			}
		}
		if blockIdx < 0 {
			return fmt.Errorf("time block %s: %w", blockID, repository.ErrNotFound)
		}
		block := src.TimeBlocks[blockIdx]
		if block.Kind != domain.BlockAuto {
			return ErrImmovableBlock
		}

		oldMin := block.EndMin - block.StartMin
		newMin := endMin - startMin

		dst := src
		if !domain.SameDate(fromDate, toDate) {
			dst = byDate[domain.DateOf(toDate)]
			if dst == nil {
				return fmt.Errorf("plan for %s: %w", domain.DateOf(toDate).Format(contract.DateLayout), repository.ErrNotFound)
			}
			src.TimeBlocks = append(src.TimeBlocks[:blockIdx], src.TimeBlocks[blockIdx+1:]...)
			adjustAllocation(&src.Day, block.TaskID, -oldMin)
			block.Date = domain.DateOf(toDate)
			block.StartMin = startMin
			block.EndMin = endMin
			dst.TimeBlocks = insertBlockSorted(dst.TimeBlocks, block)
			adjustAllocation(&dst.Day, block.TaskID, newMin)
		} else {
			adjustAllocation(&src.Day, block.TaskID, newMin-oldMin)
			src.TimeBlocks[blockIdx].StartMin = startMin
			src.TimeBlocks[blockIdx].EndMin = endMin
		}
		recalcDayTotals(&src.Day)
		recalcDayTotals(&dst.Day)

		// Manual moves change what the plan expects of the task, so bump its
		// fingerprint across the whole group to keep the plan "planned".
		if err := s.refreshSnapshot(ctx, txTasks, group, userID, block.TaskID); err != nil {
			return err
		}

		for _, row := range group {
			if err := txPlans.Update(ctx, row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *scheduleService) TodayView(ctx context.Context, userID string, now time.Time) (resp *contract.TodayTasksResponse, err error) {
	start := s.now()
	defer func() {
		s.observe(ctx, "schedule.today", start, err, map[string]any{"user_id": userID})
	}()

	today := domain.DateOf(now)

	stored, readErr := s.plans.GetByDate(ctx, userID, today)
	if readErr == nil {
		infos := stored.Tasks
		if all, listErr := s.tasks.ListActive(ctx, userID); listErr == nil {
			infos = liveTotals(infos, domain.NewTaskIndex(all))
		}
		view := scheduler.ProjectToday(stored.Day, infos)
		return contract.MapTodayView(view), nil
	}

	// Missing plan and broken plan store both degrade to a live forecast.
	inputs, err := loadPlanInputs(ctx, s.tasks, s.settings, s.postpones, userID)
	if err != nil {
		return nil, err
	}
	cp := computePlan(inputs, today, scheduler.DefaultHorizonDays)

	day := domain.ScheduleDay{Date: today}
	if len(cp.result.Days) > 0 {
		day = cp.result.Days[0]
	}
	view := scheduler.ProjectToday(day, cp.result.Tasks)
	return contract.MapTodayView(view), nil
}

// refreshSnapshot recomputes one task's fingerprint and writes it into every
// row of the plan group. A deleted task is left alone; the staleness diff
// will report it as removed.
func (s *scheduleService) refreshSnapshot(
	ctx context.Context,
	txTasks repository.TaskRepo,
	group []*domain.DailySchedulePlan,
	userID, taskID string,
) error {
	t, err := txTasks.GetByID(ctx, taskID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	all, err := txTasks.ListActive(ctx, userID)
	if err != nil {
		return err
	}
	ix := domain.NewTaskIndex(all)
	fp := scheduler.Fingerprint(ix, t)

	for _, row := range group {
		for i := range row.Snapshots {
			if row.Snapshots[i].TaskID == taskID {
				row.Snapshots[i].Title = t.Title
				row.Snapshots[i].Fingerprint = fp
			}
		}
	}
	return nil
}

func (s *scheduleService) observe(ctx context.Context, name string, start time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(start),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: start,
	})
}

// forecastResponse maps a live computation to the wire shape, limited to the
// requested window. Task-level aggregates always cover the full horizon.
func forecastResponse(cp *computedPlan, from time.Time, days int) *contract.SchedulePlanResponse {
	until := from.AddDate(0, 0, days)

	resp := &contract.SchedulePlanResponse{
		PlanState:             string(domain.PlanStateForecast),
		Days:                  []contract.ScheduleDay{},
		Tasks:                 []contract.TaskScheduleInfo{},
		Unscheduled:           contract.MapUnscheduled(cp.result.Unscheduled),
		Excluded:              contract.MapExcluded(cp.result.Excluded),
		TimeBlocks:            []contract.ScheduleTimeBlock{},
		PendingChanges:        []contract.PendingChange{},
		PinnedOverflowTaskIDs: stringsOrEmpty(cp.result.PinnedOverflowTaskIDs),
	}
	for _, d := range cp.result.Days {
		if d.Date.Before(until) {
			resp.Days = append(resp.Days, contract.MapScheduleDay(d))
		}
	}
	for _, info := range cp.result.Tasks {
		resp.Tasks = append(resp.Tasks, contract.MapTaskScheduleInfo(info))
	}
	for _, b := range cp.result.TimeBlocks {
		if b.Date.Before(until) {
			resp.TimeBlocks = append(resp.TimeBlocks, contract.MapTimeBlock(b))
		}
	}
	return resp
}

// storedResponse maps persisted plan rows, annotated with the staleness diff.
func storedResponse(rows []*domain.DailySchedulePlan, changes []scheduler.PendingChange) *contract.SchedulePlanResponse {
	head := rows[0]
	generatedAt := head.GeneratedAt

	resp := &contract.SchedulePlanResponse{
		PlanState:             string(scheduler.PlanStateFor(changes)),
		PlanGroupID:           head.PlanGroupID,
		PlanGeneratedAt:       &generatedAt,
		Days:                  []contract.ScheduleDay{},
		Tasks:                 []contract.TaskScheduleInfo{},
		Unscheduled:           contract.MapUnscheduled(head.Unscheduled),
		Excluded:              contract.MapExcluded(head.Excluded),
		TimeBlocks:            []contract.ScheduleTimeBlock{},
		PendingChanges:        contract.MapPendingChanges(changes),
		PinnedOverflowTaskIDs: stringsOrEmpty(head.PinnedOverflowTaskIDs),
	}
	for _, row := range rows {
		resp.Days = append(resp.Days, contract.MapScheduleDay(row.Day))
		for _, b := range row.TimeBlocks {
			resp.TimeBlocks = append(resp.TimeBlocks, contract.MapTimeBlock(b))
		}
	}
	for _, info := range head.Tasks {
		resp.Tasks = append(resp.Tasks, contract.MapTaskScheduleInfo(info))
	}
	return resp
}

// liveTotals replaces plan-time totals with each task's current remaining
// demand, so progress made after the plan was saved shows up in the today
// ratios. Tasks missing from the live set keep their stored total.
func liveTotals(infos []domain.TaskScheduleInfo, ix *domain.TaskIndex) []domain.TaskScheduleInfo {
	out := make([]domain.TaskScheduleInfo, len(infos))
	for i, info := range infos {
		if t := ix.Get(info.TaskID); t != nil {
			info.TotalMin = ix.RemainingMin(t)
		}
		out[i] = info
	}
	return out
}

func blocksForDate(blocks []domain.ScheduleTimeBlock, date time.Time) []domain.ScheduleTimeBlock {
	var out []domain.ScheduleTimeBlock
	for _, b := range blocks {
		if domain.SameDate(b.Date, date) {
			out = append(out, b)
		}
	}
	return out
}

func insertBlockSorted(blocks []domain.ScheduleTimeBlock, b domain.ScheduleTimeBlock) []domain.ScheduleTimeBlock {
	at := len(blocks)
	for i := range blocks {
		if blocks[i].StartMin > b.StartMin {
			at = i
			break
		}
	}
	blocks = append(blocks, domain.ScheduleTimeBlock{})
	copy(blocks[at+1:], blocks[at:])
	blocks[at] = b
	return blocks
}

func adjustAllocation(day *domain.ScheduleDay, taskID string, delta int) {
	for i := range day.Allocations {
		if day.Allocations[i].TaskID == taskID {
			day.Allocations[i].Minutes += delta
			if day.Allocations[i].Minutes <= 0 {
				day.Allocations = append(day.Allocations[:i], day.Allocations[i+1:]...)
			}
			return
		}
	}
	if delta > 0 {
		day.Allocations = append(day.Allocations, domain.TaskAllocation{TaskID: taskID, Minutes: delta})
	}
}

func recalcDayTotals(day *domain.ScheduleDay) {
	total := 0
	for _, a := range day.Allocations {
		total += a.Minutes
	}
	day.AllocatedMin = total
	day.OverflowMin = 0
	day.AvailableMin = 0
	if over := total - day.CapacityMin; over > 0 {
		day.OverflowMin = over
	}
	if avail := day.CapacityMin - total; avail > 0 {
		day.AvailableMin = avail
	}
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
