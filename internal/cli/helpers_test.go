package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhittle/daybook/internal/domain"
)

func TestParseDateFlag(t *testing.T) {
	got, err := parseDateFlag("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDateFlag("02.03.2026")
	assert.Error(t, err)

	today, err := parseDateFlag("")
	require.NoError(t, err)
	assert.Equal(t, domain.DateOf(time.Now()), today)
}

func TestParsePriorityFlag(t *testing.T) {
	p, err := parsePriorityFlag("", domain.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, p, "empty keeps the fallback")

	p, err = parsePriorityFlag("urgent", domain.PriorityLow)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityUrgent, p)

	_, err = parsePriorityFlag("critical", domain.PriorityLow)
	assert.Error(t, err)
}

func TestApplyDaySpec(t *testing.T) {
	days := domain.DefaultSettings("u1").Days

	require.NoError(t, applyDaySpec(&days, "mon=08:30-16:00"))
	assert.True(t, days[1].Enabled)
	assert.Equal(t, 510, days[1].StartMin)
	assert.Equal(t, 960, days[1].EndMin)

	require.NoError(t, applyDaySpec(&days, "SUN=off"))
	assert.False(t, days[0].Enabled)

	assert.Error(t, applyDaySpec(&days, "mon"))
	assert.Error(t, applyDaySpec(&days, "noday=09:00-17:00"))
	assert.Error(t, applyDaySpec(&days, "mon=09:00"))
	assert.Error(t, applyDaySpec(&days, "mon=9am-5pm"))
}
