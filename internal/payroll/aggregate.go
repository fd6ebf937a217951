package payroll

import (
	"math"
	"time"
)

type Absence string

const (
	AbsenceNone     Absence = ""
	AbsenceSick     Absence = "SICK"
	AbsenceVacation Absence = "VACATION"
)

// Shift is the calculator's view of one shift record. Handlers map the
// persisted entity onto it; the package itself stays free of storage concerns.
type Shift struct {
	EmployeeID       int64
	BackupEmployeeID int64 // 0 = no backup assigned
	Date             time.Time
	PlannedStart     string
	PlannedEnd       string
	ActualStart      string // empty until the employee confirmed the shift
	ActualEnd        string
	Worked           bool // status CONFIRMED, CHANGED, SUBMITTED or COMPLETED
	Absence          Absence
}

// MonthlyTotals accumulates one employee's hours over a month.
type MonthlyTotals struct {
	PlannedHours  float64 `json:"plannedHours"`
	WorkedHours   float64 `json:"workedHours"`
	NightHours    float64 `json:"nightHours"`
	SundayHours   float64 `json:"sundayHours"`
	HolidayHours  float64 `json:"holidayHours"`
	BackupHours   float64 `json:"backupHours"`
	SickDays      int     `json:"sickDays"`
	SickHours     float64 `json:"sickHours"`
	VacationDays  int     `json:"vacationDays"`
	VacationHours float64 `json:"vacationHours"`
}

// AggregateMonth sums per-shift contributions into per-employee monthly
// totals.
//
//   - Shifts that are not worked yet count toward planned hours only.
//   - Absence shifts (sick/vacation) contribute nothing to worked or premium
//     totals; they increment the respective day and hour counters instead,
//     valued at the planned times.
//   - A backup employee earns the hours of another employee's shift only
//     when that shift carries an absence type, i.e. when genuinely standing
//     in for an absent colleague. Credited hours flow into the backup's own
//     premium buckets under the backup's own flags.
//
// All totals are rounded to 2 decimal places here and nowhere else, so that
// rounding error does not compound across shifts.
func AggregateMonth(shifts []Shift, holidays HolidaySet, flags map[int64]PremiumFlags) (map[int64]*MonthlyTotals, error) {
	totals := make(map[int64]*MonthlyTotals)

	get := func(employeeID int64) *MonthlyTotals {
		t, ok := totals[employeeID]
		if !ok {
			t = &MonthlyTotals{}
			totals[employeeID] = t
		}
		return t
	}

	for _, shift := range shifts {
		planned, err := ComputeShiftHours(shift.PlannedStart, shift.PlannedEnd, shift.Date, holidays, PremiumFlags{})
		if err != nil {
			return nil, err
		}

		if shift.Absence != AbsenceNone {
			t := get(shift.EmployeeID)
			switch shift.Absence {
			case AbsenceSick:
				t.SickDays++
				t.SickHours += planned.Total
			case AbsenceVacation:
				t.VacationDays++
				t.VacationHours += planned.Total
			}

			if shift.BackupEmployeeID != 0 {
				start, end := effectiveTimes(shift)
				b, err := ComputeShiftHours(start, end, shift.Date, holidays, flags[shift.BackupEmployeeID])
				if err != nil {
					return nil, err
				}
				bt := get(shift.BackupEmployeeID)
				bt.WorkedHours += b.Total
				bt.BackupHours += b.Total
				bt.NightHours += b.Night
				bt.SundayHours += b.Sunday
				bt.HolidayHours += b.Holiday
			}
			continue
		}

		t := get(shift.EmployeeID)
		t.PlannedHours += planned.Total

		if !shift.Worked {
			continue
		}

		start, end := effectiveTimes(shift)
		b, err := ComputeShiftHours(start, end, shift.Date, holidays, flags[shift.EmployeeID])
		if err != nil {
			return nil, err
		}
		t.WorkedHours += b.Total
		t.NightHours += b.Night
		t.SundayHours += b.Sunday
		t.HolidayHours += b.Holiday
	}

	for _, t := range totals {
		t.PlannedHours = round2(t.PlannedHours)
		t.WorkedHours = round2(t.WorkedHours)
		t.NightHours = round2(t.NightHours)
		t.SundayHours = round2(t.SundayHours)
		t.HolidayHours = round2(t.HolidayHours)
		t.BackupHours = round2(t.BackupHours)
		t.SickHours = round2(t.SickHours)
		t.VacationHours = round2(t.VacationHours)
	}

	return totals, nil
}

func effectiveTimes(shift Shift) (string, string) {
	if shift.ActualStart != "" && shift.ActualEnd != "" {
		return shift.ActualStart, shift.ActualEnd
	}
	return shift.PlannedStart, shift.PlannedEnd
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
