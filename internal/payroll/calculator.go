package payroll

import (
	"time"
)

const dateKeyLayout = "2006-01-02"

// HolidaySet is an injectable date lookup table. The calculator never
// consults a calendar of its own; callers decide which dates are holidays.
type HolidaySet map[string]bool

func NewHolidaySet(dates ...time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

func (s HolidaySet) Add(date time.Time) {
	s[date.Format(dateKeyLayout)] = true
}

func (s HolidaySet) Contains(date time.Time) bool {
	return s[date.Format(dateKeyLayout)]
}

// PremiumFlags are the per-employee wage premium entitlements.
type PremiumFlags struct {
	Night   bool
	Sunday  bool
	Holiday bool
}

// Breakdown is the result of computing a single shift. Values are in hours
// and unrounded; rounding happens once, at monthly aggregation.
type Breakdown struct {
	Total   float64
	Night   float64
	Sunday  float64
	Holiday float64
}

// ComputeShiftHours computes the total worked hours of one shift and the
// portions falling into the night, Sunday and public-holiday premium windows.
//
// Night hours are the interval overlap with the night window. Sunday and
// holiday premiums deliberately credit the shift's entire total instead of
// the overlapping portion; the pay rule keys off the shift's calendar date.
func ComputeShiftHours(start, end string, date time.Time, holidays HolidaySet, flags PremiumFlags) (Breakdown, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return Breakdown{}, err
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return Breakdown{}, err
	}

	totalMin := shiftMinutes(startMin, endMin)

	b := Breakdown{
		Total: float64(totalMin) / 60,
	}

	if flags.Night {
		b.Night = float64(nightMinutes(startMin, totalMin)) / 60
	}
	if flags.Sunday && date.Weekday() == time.Sunday {
		b.Sunday = b.Total
	}
	if flags.Holiday && holidays.Contains(date) {
		b.Holiday = b.Total
	}

	return b, nil
}
