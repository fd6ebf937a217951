package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasterSunday(t *testing.T) {
	cases := map[int]time.Time{
		2024: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		2025: time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC),
		2026: time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC),
		2029: time.Date(2029, time.April, 1, 0, 0, 0, 0, time.UTC),
	}

	for year, want := range cases {
		assert.Equal(t, want, easterSunday(year), "easter %d", year)
	}
}

func TestHolidaysNRW(t *testing.T) {
	holidays := HolidaysNRW(2029)
	require.Len(t, holidays, 11)

	byName := make(map[string]time.Time, len(holidays))
	for _, h := range holidays {
		byName[h.Name] = h.Date
	}

	assert.Equal(t, time.Date(2029, time.March, 30, 0, 0, 0, 0, time.UTC), byName["Karfreitag"])
	assert.Equal(t, time.Date(2029, time.April, 2, 0, 0, 0, 0, time.UTC), byName["Ostermontag"])
	assert.Equal(t, time.Date(2029, time.May, 10, 0, 0, 0, 0, time.UTC), byName["Christi Himmelfahrt"])
	assert.Equal(t, time.Date(2029, time.May, 21, 0, 0, 0, 0, time.UTC), byName["Pfingstmontag"])
	assert.Equal(t, time.Date(2029, time.May, 31, 0, 0, 0, 0, time.UTC), byName["Fronleichnam"])
	assert.Equal(t, time.Date(2029, time.October, 3, 0, 0, 0, 0, time.UTC), byName["Tag der Deutschen Einheit"])
}
