package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/daybook/internal/domain"
	"github.com/jwhittle/daybook/internal/testutil"
)

func weeklyReview() *domain.RecurringTask {
	return &domain.RecurringTask{
		UserID:      "u1",
		Title:       "Weekly review",
		Spec:        "0 9 * * 1",
		DurationMin: 45,
	}
}

func TestRecurringCreate_AppliesDefaults(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	def := weeklyReview()
	require.NoError(t, h.recurrSv.Create(ctx, def))

	assert.NotEmpty(t, def.ID)
	assert.Equal(t, domain.PriorityMedium, def.Importance)
	assert.Equal(t, domain.EnergyLow, def.Energy)
}

func TestRecurringCreate_Rejections(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	bad := weeklyReview()
	bad.Spec = "not a cron"
	assert.Error(t, h.recurrSv.Create(ctx, bad))

	noDuration := weeklyReview()
	noDuration.DurationMin = 0
	assert.ErrorIs(t, h.recurrSv.Create(ctx, noDuration), ErrInvalidTask)

	inverted := weeklyReview()
	inverted.IsFixedTime = true
	inverted.StartMin = 660
	inverted.EndMin = 600
	assert.ErrorIs(t, h.recurrSv.Create(ctx, inverted), ErrInvalidTask)
}

func TestRecurringSync_MaterializesTasks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	def := weeklyReview()
	def.Spec = "0 9 * * 1-5" // weekdays
	require.NoError(t, h.recurrSv.Create(ctx, def))

	created, err := h.recurrSv.Sync(ctx, "u1", testutil.FixedDate, 7)
	require.NoError(t, err)
	assert.Equal(t, 5, created, "monday through friday")

	tasks, err := h.tasks.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 5)
	for _, task := range tasks {
		require.NotNil(t, task.RecurringID)
		assert.Equal(t, def.ID, *task.RecurringID)
		assert.Equal(t, 45, task.EstimatedMin)
	}
}

func TestRecurringSync_Idempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	def := weeklyReview()
	require.NoError(t, h.recurrSv.Create(ctx, def))

	created, err := h.recurrSv.Sync(ctx, "u1", testutil.FixedDate, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = h.recurrSv.Sync(ctx, "u1", testutil.FixedDate, 7)
	require.NoError(t, err)
	assert.Zero(t, created, "existing occurrences are not duplicated")
}

func TestRecurringSync_FixedTimeBecomesMeeting(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	def := weeklyReview()
	def.Title = "Standup"
	def.IsFixedTime = true
	def.StartMin = 600
	def.EndMin = 630
	def.DurationMin = 0
	require.NoError(t, h.recurrSv.Create(ctx, def))

	created, err := h.recurrSv.Sync(ctx, "u1", testutil.FixedDate, 7)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	tasks, err := h.tasks.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	meeting := tasks[0]
	assert.True(t, meeting.IsFixedTime)
	require.NotNil(t, meeting.StartTime)
	assert.Equal(t, testutil.FixedDate.Add(10*time.Hour), *meeting.StartTime)
	assert.Equal(t, 30, meeting.EstimatedMin)
}
