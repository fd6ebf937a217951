package payroll

import "time"

// PublicHoliday is one statutory holiday of a calendar year.
type PublicHoliday struct {
	Date time.Time
	Name string
}

// HolidaysNRW computes the statutory public holidays of North Rhine-Westphalia
// for the given year. The moveable feasts derive from Easter Sunday, so the
// table works for any year without a precomputed calendar.
func HolidaysNRW(year int) []PublicHoliday {
	easter := easterSunday(year)

	return []PublicHoliday{
		{Date: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), Name: "Neujahr"},
		{Date: easter.AddDate(0, 0, -2), Name: "Karfreitag"},
		{Date: easter.AddDate(0, 0, 1), Name: "Ostermontag"},
		{Date: time.Date(year, time.May, 1, 0, 0, 0, 0, time.UTC), Name: "Tag der Arbeit"},
		{Date: easter.AddDate(0, 0, 39), Name: "Christi Himmelfahrt"},
		{Date: easter.AddDate(0, 0, 50), Name: "Pfingstmontag"},
		{Date: easter.AddDate(0, 0, 60), Name: "Fronleichnam"},
		{Date: time.Date(year, time.October, 3, 0, 0, 0, 0, time.UTC), Name: "Tag der Deutschen Einheit"},
		{Date: time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC), Name: "Allerheiligen"},
		{Date: time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC), Name: "1. Weihnachtstag"},
		{Date: time.Date(year, time.December, 26, 0, 0, 0, 0, time.UTC), Name: "2. Weihnachtstag"},
	}
}

// easterSunday implements the anonymous Gregorian computus (Meeus/Jones/Butcher).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
