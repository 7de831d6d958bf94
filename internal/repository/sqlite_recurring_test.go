package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/daybook/internal/domain"
	"github.com/jwhittle/daybook/internal/testutil"
)

func recurringFixture(id string) *domain.RecurringTask {
	return &domain.RecurringTask{
		ID:          id,
		UserID:      "u1",
		Title:       "Weekly review",
		Spec:        "0 9 * * 1",
		DurationMin: 45,
		Importance:  domain.PriorityHigh,
		Urgency:     domain.PriorityMedium,
		Energy:      domain.EnergyHigh,
		CreatedAt:   testutil.FixedDate,
		UpdatedAt:   testutil.FixedDate,
	}
}

func TestRecurringRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRecurringRepo(database)
	ctx := context.Background()

	r := recurringFixture("r1")
	require.NoError(t, repo.Create(ctx, r))

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Weekly review", got.Title)
	assert.Equal(t, "0 9 * * 1", got.Spec)
	assert.Equal(t, 45, got.DurationMin)
	assert.Equal(t, domain.PriorityHigh, got.Importance)
}

func TestRecurringRepo_FixedTimeRoundTrips(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRecurringRepo(database)
	ctx := context.Background()

	r := recurringFixture("r1")
	r.IsFixedTime = true
	r.StartMin = 600
	r.EndMin = 630
	require.NoError(t, repo.Create(ctx, r))

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.True(t, got.IsFixedTime)
	assert.Equal(t, 600, got.StartMin)
	assert.Equal(t, 630, got.EndMin)
}

func TestRecurringRepo_ListScopedToUser(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRecurringRepo(database)
	ctx := context.Background()

	mine := recurringFixture("r1")
	other := recurringFixture("r2")
	other.UserID = "u2"
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, other))

	defs, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "r1", defs[0].ID)
}

func TestRecurringRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRecurringRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, recurringFixture("r1")))
	require.NoError(t, repo.Delete(ctx, "r1"))

	_, err := repo.GetByID(ctx, "r1")
	assert.ErrorIs(t, err, ErrNotFound)
}
