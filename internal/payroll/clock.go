package payroll

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	minutesPerDay = 24 * 60

	// Night premium window: 23:00 through 06:00 of the following day,
	// expressed as two sub-intervals relative to the shift's start day.
	nightWindowEnd   = 6 * 60
	nightWindowStart = 23 * 60
)

// ParseClock converts a "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 2 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour out of range in %q", s)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("minute out of range in %q", s)
	}

	return hour*60 + minute, nil
}

// shiftMinutes is the worked duration of a shift: (end - start) mod 24h.
// The degenerate pair 00:00/00:00 means a full 24-hour shift, not zero.
func shiftMinutes(start, end int) int {
	if start == 0 && end == 0 {
		return minutesPerDay
	}
	return ((end - start) % minutesPerDay + minutesPerDay) % minutesPerDay
}

// nightMinutes is the overlap of the shift interval [start, start+total)
// with the two night sub-windows [00:00, 06:00) and [23:00, 24:00+06:00).
// The two overlaps are additive; a single shift can accrue at most 7 hours.
func nightMinutes(start, total int) int {
	end := start + total
	return overlap(start, end, 0, nightWindowEnd) +
		overlap(start, end, nightWindowStart, minutesPerDay+nightWindowEnd)
}

func overlap(aStart, aEnd, bStart, bEnd int) int {
	lo := max(aStart, bStart)
	hi := min(aEnd, bEnd)
	if hi < lo {
		return 0
	}
	return hi - lo
}
