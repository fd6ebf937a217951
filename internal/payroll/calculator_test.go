package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// 2025-06-01 is a Sunday, 2025-06-02 a Monday.
	sunday   = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	monday   = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	allFlags = PremiumFlags{Night: true, Sunday: true, Holiday: true}
)

func TestComputeShiftHours(t *testing.T) {
	noHolidays := NewHolidaySet()

	t.Run("plain day shift", func(t *testing.T) {
		b, err := ComputeShiftHours("08:00", "16:00", monday, noHolidays, allFlags)
		require.NoError(t, err)
		assert.Equal(t, 8.0, b.Total)
		assert.Equal(t, 0.0, b.Night)
		assert.Equal(t, 0.0, b.Sunday)
		assert.Equal(t, 0.0, b.Holiday)
	})

	t.Run("night shift over midnight", func(t *testing.T) {
		b, err := ComputeShiftHours("22:00", "07:00", monday, noHolidays, allFlags)
		require.NoError(t, err)
		assert.Equal(t, 9.0, b.Total)
		assert.Equal(t, 7.0, b.Night)
	})

	t.Run("degenerate times mean 24 hours", func(t *testing.T) {
		b, err := ComputeShiftHours("00:00", "00:00", monday, noHolidays, allFlags)
		require.NoError(t, err)
		assert.Equal(t, 24.0, b.Total)
		assert.Equal(t, 7.0, b.Night)
	})

	t.Run("sunday credits the full shift", func(t *testing.T) {
		b, err := ComputeShiftHours("22:00", "07:00", sunday, noHolidays, allFlags)
		require.NoError(t, err)
		assert.Equal(t, 9.0, b.Total)
		assert.Equal(t, 9.0, b.Sunday, "sunday premium keys off the calendar date, not the overlap")
	})

	t.Run("holiday credits the full shift", func(t *testing.T) {
		holidays := NewHolidaySet(monday)
		b, err := ComputeShiftHours("08:00", "16:00", monday, holidays, allFlags)
		require.NoError(t, err)
		assert.Equal(t, 8.0, b.Holiday)
	})

	t.Run("disabled flags suppress premiums", func(t *testing.T) {
		holidays := NewHolidaySet(sunday)
		b, err := ComputeShiftHours("22:00", "07:00", sunday, holidays, PremiumFlags{})
		require.NoError(t, err)
		assert.Equal(t, 9.0, b.Total)
		assert.Equal(t, 0.0, b.Night)
		assert.Equal(t, 0.0, b.Sunday)
		assert.Equal(t, 0.0, b.Holiday)
	})

	t.Run("invalid time is rejected", func(t *testing.T) {
		_, err := ComputeShiftHours("8:00", "16:00", monday, noHolidays, allFlags)
		require.Error(t, err)
	})
}

func TestHolidaySet(t *testing.T) {
	set := NewHolidaySet(monday)
	assert.True(t, set.Contains(monday))
	assert.False(t, set.Contains(sunday))

	set.Add(sunday)
	assert.True(t, set.Contains(sunday))

	// time of day must not matter for the lookup
	assert.True(t, set.Contains(monday.Add(13*time.Hour)))
}
