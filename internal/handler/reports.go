package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/assistenzplus/backend/internal/domain"
	"github.com/assistenzplus/backend/internal/export"
	"github.com/assistenzplus/backend/internal/payroll"
)

func monthYearParams(r *http.Request) (int, int, error) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("month query parameter is required")
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, errors.New("year query parameter is required")
	}
	return month, year, nil
}

// monthlyTotals loads everything the payroll calculator needs for one month
// and aggregates it per employee.
func (h *Handler) monthlyTotals(month, year int) (map[int64]*payroll.MonthlyTotals, map[int64]*domain.User, error) {
	shifts, err := h.repository.GetShiftsForMonth(month, year)
	if err != nil {
		return nil, nil, err
	}

	holidayRows, err := h.repository.GetHolidaysForYear(year)
	if err != nil {
		return nil, nil, err
	}
	holidays := payroll.NewHolidaySet()
	for _, holiday := range holidayRows {
		holidays.Add(holiday.Date)
	}

	users, err := h.repository.GetAllUsers()
	if err != nil {
		return nil, nil, err
	}
	usersByID := make(map[int64]*domain.User, len(users))
	flags := make(map[int64]payroll.PremiumFlags, len(users))
	for _, user := range users {
		usersByID[user.ID] = user
		flags[user.ID] = payroll.PremiumFlags{
			Night:   user.NightPremiumEnabled,
			Sunday:  user.SundayPremiumEnabled,
			Holiday: user.HolidayPremiumEnabled,
		}
	}

	calcShifts := make([]payroll.Shift, 0, len(shifts))
	for _, shift := range shifts {
		calcShifts = append(calcShifts, toPayrollShift(shift))
	}

	totals, err := payroll.AggregateMonth(calcShifts, holidays, flags)
	if err != nil {
		return nil, nil, err
	}

	return totals, usersByID, nil
}

func toPayrollShift(shift *domain.Shift) payroll.Shift {
	ps := payroll.Shift{
		EmployeeID:   shift.EmployeeID,
		Date:         shift.Date,
		PlannedStart: shift.PlannedStart,
		PlannedEnd:   shift.PlannedEnd,
		Worked:       shift.Status != domain.ShiftPlanned,
	}
	if shift.BackupEmployeeID != nil {
		ps.BackupEmployeeID = *shift.BackupEmployeeID
	}
	if shift.ActualStart != nil {
		ps.ActualStart = *shift.ActualStart
	}
	if shift.ActualEnd != nil {
		ps.ActualEnd = *shift.ActualEnd
	}
	if shift.AbsenceType != nil {
		ps.Absence = payroll.Absence(*shift.AbsenceType)
	}
	return ps
}

func (h *Handler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthYearParams(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	totals, users, err := h.monthlyTotals(month, year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	type reportEntry struct {
		EmployeeID   int64                  `json:"employeeID"`
		EmployeeName string                 `json:"employeeName"`
		Totals       *payroll.MonthlyTotals `json:"totals"`
	}

	report := make([]reportEntry, 0, len(totals))
	for employeeID, t := range totals {
		entry := reportEntry{EmployeeID: employeeID, Totals: t}
		if user, ok := users[employeeID]; ok {
			entry.EmployeeName = user.FullName
		}
		report = append(report, entry)
	}
	sort.Slice(report, func(i, j int) bool {
		return report[i].EmployeeID < report[j].EmployeeID
	})

	h.successResponse(w, r, "monthly report", map[string]any{
		"month":   month,
		"year":    year,
		"entries": report,
	})
}

func (h *Handler) ExportMonthlyCSV(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthYearParams(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	totals, users, err := h.monthlyTotals(month, year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employeeIDs := make([]int64, 0, len(totals))
	for employeeID := range totals {
		employeeIDs = append(employeeIDs, employeeID)
	}
	sort.Slice(employeeIDs, func(i, j int) bool { return employeeIDs[i] < employeeIDs[j] })

	rows := make([]export.MonthlyReportRow, 0, len(employeeIDs))
	for _, employeeID := range employeeIDs {
		row := export.MonthlyReportRow{Totals: *totals[employeeID]}
		if user, ok := users[employeeID]; ok {
			row.EmployeeName = user.FullName
			row.Username = user.Username
		}
		rows = append(rows, row)
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="stundenreport_%02d_%d.csv"`, month, year))

	if err := export.MonthlyReportCSV(w, month, year, rows); err != nil {
		// headers are already out, all we can do is log
		h.logInternalServerError(r, err)
	}
}

// timesheetShifts loads one client's month and maps it to export rows.
func (h *Handler) timesheetShifts(client *domain.Client, month, year int) ([]export.TimesheetShift, error) {
	shifts, err := h.repository.GetShiftsBySheetMonth(client.SheetFileName, month, year)
	if err != nil {
		return nil, err
	}

	users, err := h.repository.GetAllUsers()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(users))
	for _, user := range users {
		names[user.ID] = user.FullName
	}

	rows := make([]export.TimesheetShift, 0, len(shifts))
	for _, shift := range shifts {
		row := export.TimesheetShift{
			Date:         shift.Date,
			EmployeeName: names[shift.EmployeeID],
			PlannedStart: shift.PlannedStart,
			PlannedEnd:   shift.PlannedEnd,
			Status:       string(shift.Status),
			Comment:      shift.Comment,
		}
		if shift.ActualStart != nil {
			row.ActualStart = *shift.ActualStart
		}
		if shift.ActualEnd != nil {
			row.ActualEnd = *shift.ActualEnd
		}
		if shift.AbsenceType != nil {
			row.Absence = string(*shift.AbsenceType)
		}

		start, end := shift.PlannedStart, shift.PlannedEnd
		if shift.ActualStart != nil && shift.ActualEnd != nil {
			start, end = *shift.ActualStart, *shift.ActualEnd
		}
		b, err := payroll.ComputeShiftHours(start, end, shift.Date, nil, payroll.PremiumFlags{})
		if err != nil {
			return nil, err
		}
		row.Hours = math.Round(b.Total*100) / 100

		rows = append(rows, row)
	}

	return rows, nil
}

func (h *Handler) timesheetClient(w http.ResponseWriter, r *http.Request) (*domain.Client, bool) {
	clientID, err := strconv.ParseInt(r.URL.Query().Get("clientID"), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("clientID query parameter is required"))
		return nil, false
	}

	client, err := h.repository.GetClientByID(clientID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "client not found")
		default:
			h.internalServerError(w, r, err)
		}
		return nil, false
	}

	return client, true
}

func (h *Handler) ExportTimesheetXLSX(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthYearParams(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	client, ok := h.timesheetClient(w, r)
	if !ok {
		return
	}

	rows, err := h.timesheetShifts(client, month, year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_%02d_%d.xlsx"`, client.SheetFileName, month, year))

	if err := export.TimesheetXLSX(w, client.Name, month, year, rows); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) ExportTimesheetPDF(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthYearParams(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	client, ok := h.timesheetClient(w, r)
	if !ok {
		return
	}

	rows, err := h.timesheetShifts(client, month, year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	doc := export.TimesheetDocument{
		ClientName: client.Name,
		Month:      month,
		Year:       year,
		Shifts:     rows,
	}

	// signatures only exist once the month has been submitted
	submission, err := h.repository.GetSubmissionBySheetMonth(client.SheetFileName, month, year)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.internalServerError(w, r, err)
		return
	}
	if submission != nil {
		signatures, err := h.repository.GetEmployeeSignatures(submission.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		users, err := h.repository.GetAllUsers()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		names := make(map[int64]string, len(users))
		for _, user := range users {
			names[user.ID] = user.FullName
		}

		for _, signature := range signatures {
			if signature.Signature == nil || signature.SignedAt == nil {
				continue
			}
			doc.EmployeeSignatures = append(doc.EmployeeSignatures, export.SignatureLine{
				Name:     names[signature.EmployeeID],
				Image:    template.URL(*signature.Signature),
				SignedAt: signature.SignedAt.Format("02.01.2006"),
			})
		}

		if submission.RecipientSignature != nil && submission.RecipientSignedAt != nil {
			doc.RecipientSignature = template.URL(*submission.RecipientSignature)
			doc.RecipientSignedAt = submission.RecipientSignedAt.Format("02.01.2006")
		}
	}

	html, err := export.TimesheetHTML(doc)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	gotenberg := export.NewGotenbergClient(h.config.Export.GotenbergURL)
	pdf, err := gotenberg.RenderHTML(ctx, html)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_%02d_%d.pdf"`, client.SheetFileName, month, year))
	if _, err := w.Write(pdf); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) GetAuditEntries(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 500 {
		limit = 100
	}

	entries, err := h.repository.GetAuditEntries(limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "audit log", entries)
}
