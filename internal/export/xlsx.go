package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// TimesheetShift is one printed line of a client's monthly timesheet.
type TimesheetShift struct {
	Date         time.Time
	EmployeeName string
	PlannedStart string
	PlannedEnd   string
	ActualStart  string
	ActualEnd    string
	Hours        float64
	Status       string
	Absence      string
	Comment      string
}

// TimesheetXLSX renders one client's month as a workbook, one row per shift
// plus a totals row.
func TimesheetXLSX(w io.Writer, clientName string, month, year int, shifts []TimesheetShift) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("%02d-%d", month, year)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", fmt.Sprintf("Stundennachweis %s – %02d/%d", clientName, month, year)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", titleStyle); err != nil {
		return err
	}

	headers := []string{"Datum", "Mitarbeiter", "Geplant von", "Geplant bis", "Gearbeitet von", "Gearbeitet bis", "Stunden", "Status", "Abwesenheit", "Kommentar"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A3", "J3", headerStyle); err != nil {
		return err
	}

	totalHours := 0.0
	for i, shift := range shifts {
		row := i + 4
		totalHours += shift.Hours
		values := []any{
			shift.Date.Format("02.01.2006"),
			shift.EmployeeName,
			shift.PlannedStart,
			shift.PlannedEnd,
			shift.ActualStart,
			shift.ActualEnd,
			shift.Hours,
			shift.Status,
			shift.Absence,
			shift.Comment,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	totalsRow := len(shifts) + 5
	totalLabelCell, err := excelize.CoordinatesToCellName(6, totalsRow)
	if err != nil {
		return err
	}
	totalValueCell, err := excelize.CoordinatesToCellName(7, totalsRow)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, totalLabelCell, "Gesamt"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, totalValueCell, totalHours); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, totalLabelCell, totalValueCell, boldStyle); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "B", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "C", "I", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "J", "J", 30); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
