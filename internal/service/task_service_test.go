package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/daybook/internal/domain"
	"github.com/jwhittle/daybook/internal/repository"
	"github.com/jwhittle/daybook/internal/testutil"
)

func TestTaskCreate_AppliesDefaults(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	task := &domain.Task{UserID: "u1", Title: "Write report", EstimatedMin: 90}
	require.NoError(t, h.tasksSv.Create(ctx, task))

	assert.NotEmpty(t, task.ID, "id assigned when absent")
	assert.Equal(t, domain.TaskTodo, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Importance)
	assert.Equal(t, domain.PriorityMedium, task.Urgency)
	assert.Equal(t, domain.EnergyLow, task.Energy)
	assert.False(t, task.CreatedAt.IsZero())

	got, err := h.tasksSv.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", got.Title)
}

func TestTaskCreate_RejectsInvalid(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	err := h.tasksSv.Create(ctx, &domain.Task{UserID: "u1"})
	assert.ErrorIs(t, err, ErrInvalidTask, "title required")

	err = h.tasksSv.Create(ctx, &domain.Task{Title: "No owner"})
	assert.ErrorIs(t, err, ErrInvalidTask, "user required")

	err = h.tasksSv.Create(ctx, &domain.Task{UserID: "u1", Title: "Bad", EstimatedMin: -5})
	assert.ErrorIs(t, err, ErrInvalidTask)
}

func TestTaskCreate_ParentMustExistAndMatchUser(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	ghost := "no-such-task"
	err := h.tasksSv.Create(ctx, &domain.Task{
		UserID: "u1", Title: "Orphan", EstimatedMin: 30, ParentID: &ghost,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	parent := testutil.NewTask("u2", "Not mine", 60)
	require.NoError(t, h.tasks.Create(ctx, parent))
	err = h.tasksSv.Create(ctx, &domain.Task{
		UserID: "u1", Title: "Stolen subtask", EstimatedMin: 30, ParentID: &parent.ID,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskMarkDone(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	task := testutil.NewTask("u1", "Write report", 90, testutil.WithProgress(40))
	require.NoError(t, h.tasks.Create(ctx, task))

	require.NoError(t, h.tasksSv.MarkDone(ctx, task.ID))

	got, err := h.tasksSv.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskDone, got.Status)
	assert.Equal(t, 100, got.Progress)
}

func TestTaskUpdate_Validates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	task := testutil.NewTask("u1", "Write report", 90)
	require.NoError(t, h.tasks.Create(ctx, task))

	task.Progress = 120
	err := h.tasksSv.Update(ctx, task)
	assert.ErrorIs(t, err, ErrInvalidTask)

	task.Progress = 50
	require.NoError(t, h.tasksSv.Update(ctx, task))

	got, err := h.tasksSv.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Progress)
}

func TestTaskDelete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	task := testutil.NewTask("u1", "Write report", 90)
	require.NoError(t, h.tasks.Create(ctx, task))
	require.NoError(t, h.tasksSv.Delete(ctx, task.ID))

	_, err := h.tasksSv.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
