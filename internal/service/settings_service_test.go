package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsGet_CreatesDefaultsOnFirstAccess(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	got, err := h.settingsSv.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.BufferHours)

	stored, err := h.settings.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, got.BufferHours, stored.BufferHours, "defaults are persisted, not just returned")
}

func TestSettingsUpdate_PartialPatch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	buffer := 2.5
	updated, err := h.settingsSv.Update(ctx, "u1", SettingsPatch{BufferHours: &buffer})
	require.NoError(t, err)

	assert.Equal(t, 2.5, updated.BufferHours)
	assert.Equal(t, 15, updated.BreakAfterTaskMin, "unpatched fields keep their value")
	assert.True(t, updated.Days[time.Monday].Enabled)
}

func TestSettingsUpdate_DaysReplaced(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	current, err := h.settingsSv.Get(ctx, "u1")
	require.NoError(t, err)

	days := current.Days
	days[time.Saturday].Enabled = false
	days[time.Sunday].Enabled = false

	updated, err := h.settingsSv.Update(ctx, "u1", SettingsPatch{Days: &days})
	require.NoError(t, err)
	assert.False(t, updated.Days[time.Saturday].Enabled)
	assert.True(t, updated.Days[time.Friday].Enabled)
}

func TestSettingsUpdate_RejectsInvalid(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	negative := -1.0
	_, err := h.settingsSv.Update(ctx, "u1", SettingsPatch{BufferHours: &negative})
	assert.Error(t, err)

	// The stored settings are untouched by the failed update.
	stored, err := h.settingsSv.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, stored.BufferHours)
}
