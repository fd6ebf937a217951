package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateMonth(t *testing.T) {
	noHolidays := NewHolidaySet()
	flags := map[int64]PremiumFlags{
		1: {Night: true, Sunday: true, Holiday: true},
		2: {Night: true},
	}

	t.Run("planned but unworked shifts count planned hours only", func(t *testing.T) {
		shifts := []Shift{
			{EmployeeID: 1, Date: monday, PlannedStart: "08:00", PlannedEnd: "16:00", Worked: false},
		}

		totals, err := AggregateMonth(shifts, noHolidays, flags)
		require.NoError(t, err)
		require.Contains(t, totals, int64(1))
		assert.Equal(t, 8.0, totals[1].PlannedHours)
		assert.Equal(t, 0.0, totals[1].WorkedHours)
	})

	t.Run("worked shift uses actual times and premium flags", func(t *testing.T) {
		shifts := []Shift{
			{EmployeeID: 1, Date: sunday, PlannedStart: "08:00", PlannedEnd: "16:00", ActualStart: "08:00", ActualEnd: "17:00", Worked: true},
		}

		totals, err := AggregateMonth(shifts, noHolidays, flags)
		require.NoError(t, err)
		assert.Equal(t, 8.0, totals[1].PlannedHours)
		assert.Equal(t, 9.0, totals[1].WorkedHours)
		assert.Equal(t, 9.0, totals[1].SundayHours, "sunday credit covers the full worked shift")
	})

	t.Run("absences increment counters and skip planned hours", func(t *testing.T) {
		shifts := []Shift{
			{EmployeeID: 1, Date: monday, PlannedStart: "08:00", PlannedEnd: "16:00", Absence: AbsenceSick},
			{EmployeeID: 1, Date: monday.AddDate(0, 0, 1), PlannedStart: "08:00", PlannedEnd: "12:00", Absence: AbsenceVacation},
		}

		totals, err := AggregateMonth(shifts, noHolidays, flags)
		require.NoError(t, err)
		assert.Equal(t, 0.0, totals[1].PlannedHours)
		assert.Equal(t, 0.0, totals[1].WorkedHours)
		assert.Equal(t, 1, totals[1].SickDays)
		assert.Equal(t, 8.0, totals[1].SickHours)
		assert.Equal(t, 1, totals[1].VacationDays)
		assert.Equal(t, 4.0, totals[1].VacationHours)
	})

	t.Run("backup earns the hours of an absent colleague", func(t *testing.T) {
		shifts := []Shift{
			{EmployeeID: 1, BackupEmployeeID: 2, Date: monday, PlannedStart: "22:00", PlannedEnd: "07:00", Absence: AbsenceSick},
		}

		totals, err := AggregateMonth(shifts, noHolidays, flags)
		require.NoError(t, err)

		require.Contains(t, totals, int64(2))
		assert.Equal(t, 9.0, totals[2].WorkedHours)
		assert.Equal(t, 9.0, totals[2].BackupHours)
		assert.Equal(t, 7.0, totals[2].NightHours, "backup premiums follow the backup's own flags")
		assert.Equal(t, 0.0, totals[2].SundayHours)

		assert.Equal(t, 1, totals[1].SickDays)
		assert.Equal(t, 0.0, totals[1].WorkedHours)
	})

	t.Run("backup on a worked shift earns nothing", func(t *testing.T) {
		shifts := []Shift{
			{EmployeeID: 1, BackupEmployeeID: 2, Date: monday, PlannedStart: "08:00", PlannedEnd: "16:00", Worked: true},
		}

		totals, err := AggregateMonth(shifts, noHolidays, flags)
		require.NoError(t, err)
		assert.NotContains(t, totals, int64(2))
	})

	t.Run("rounding happens once at the end", func(t *testing.T) {
		// three 20-minute shifts; summing rounded thirds would drift
		shifts := []Shift{
			{EmployeeID: 1, Date: monday, PlannedStart: "10:00", PlannedEnd: "10:20", Worked: true},
			{EmployeeID: 1, Date: monday.AddDate(0, 0, 1), PlannedStart: "10:00", PlannedEnd: "10:20", Worked: true},
			{EmployeeID: 1, Date: monday.AddDate(0, 0, 2), PlannedStart: "10:00", PlannedEnd: "10:20", Worked: true},
		}

		totals, err := AggregateMonth(shifts, noHolidays, flags)
		require.NoError(t, err)
		assert.Equal(t, 1.0, totals[1].WorkedHours)
	})

	t.Run("invalid times surface as an error", func(t *testing.T) {
		shifts := []Shift{
			{EmployeeID: 1, Date: monday, PlannedStart: "8:00", PlannedEnd: "16:00"},
		}

		_, err := AggregateMonth(shifts, noHolidays, flags)
		require.Error(t, err)
	})
}

func TestAggregateMonthHolidayPremium(t *testing.T) {
	holiday := time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC)
	holidays := NewHolidaySet(holiday)
	flags := map[int64]PremiumFlags{1: {Holiday: true}}

	shifts := []Shift{
		{EmployeeID: 1, Date: holiday, PlannedStart: "08:00", PlannedEnd: "16:00", ActualStart: "08:00", ActualEnd: "16:00", Worked: true},
	}

	totals, err := AggregateMonth(shifts, holidays, flags)
	require.NoError(t, err)
	assert.Equal(t, 8.0, totals[1].HolidayHours)
}
