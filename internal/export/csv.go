package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/assistenzplus/backend/internal/payroll"
)

// MonthlyReportRow is one employee's line in the monthly payroll export.
type MonthlyReportRow struct {
	EmployeeName string
	Username     string
	Totals       payroll.MonthlyTotals
}

// MonthlyReportCSV writes the payroll report the way German payroll offices
// expect it: semicolon separated, decimal comma.
func MonthlyReportCSV(w io.Writer, month, year int, rows []MonthlyReportRow) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	p := message.NewPrinter(language.German)
	num := func(v float64) string {
		return p.Sprintf("%.2f", v)
	}

	header := []string{
		"Mitarbeiter", "Benutzername", "Monat",
		"Geplante Stunden", "Gearbeitete Stunden",
		"Nachtstunden", "Sonntagsstunden", "Feiertagsstunden",
		"Vertretungsstunden",
		"Krankheitstage", "Krankheitsstunden",
		"Urlaubstage", "Urlaubsstunden",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	monthLabel := fmt.Sprintf("%02d.%d", month, year)

	for _, row := range rows {
		t := row.Totals
		record := []string{
			row.EmployeeName,
			row.Username,
			monthLabel,
			num(t.PlannedHours),
			num(t.WorkedHours),
			num(t.NightHours),
			num(t.SundayHours),
			num(t.HolidayHours),
			num(t.BackupHours),
			fmt.Sprintf("%d", t.SickDays),
			num(t.SickHours),
			fmt.Sprintf("%d", t.VacationDays),
			num(t.VacationHours),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
