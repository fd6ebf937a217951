package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/assistenzplus/backend/internal/domain"
	"github.com/assistenzplus/backend/internal/payroll"
	"github.com/assistenzplus/backend/internal/timesheet"
)

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID         int64   `json:"clientID" validate:"required"`
		EmployeeID       int64   `json:"employeeID" validate:"required"`
		Date             string  `json:"date" validate:"required,datetime=2006-01-02"`
		PlannedStart     string  `json:"plannedStart" validate:"required"`
		PlannedEnd       string  `json:"plannedEnd" validate:"required"`
		AbsenceType      *string `json:"absenceType" validate:"omitempty,oneof=SICK VACATION"`
		BackupEmployeeID *int64  `json:"backupEmployeeID"`
		Comment          string  `json:"comment"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := payroll.ParseClock(req.PlannedStart); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if _, err := payroll.ParseClock(req.PlannedEnd); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := &domain.Shift{
		ClientID:         req.ClientID,
		EmployeeID:       req.EmployeeID,
		Date:             date,
		PlannedStart:     req.PlannedStart,
		PlannedEnd:       req.PlannedEnd,
		BackupEmployeeID: req.BackupEmployeeID,
		Comment:          req.Comment,
	}
	if req.AbsenceType != nil {
		absence := domain.AbsenceType(*req.AbsenceType)
		shift.AbsenceType = &absence
	}

	if err := h.repository.CreateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_employee_id_shift_date_key":
			h.conflict(w, r, "the employee already has a shift on this date")
		case errors.As(err, &pgErr) && pgErr.Code == "23503":
			h.badRequest(w, r, errors.New("unknown client or employee"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift created", shift)
}

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	me, err := h.requestUser(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		h.badRequest(w, r, errors.New("month query parameter is required"))
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.badRequest(w, r, errors.New("year query parameter is required"))
		return
	}

	var shifts []*domain.Shift
	switch me.Role {
	case domain.RoleAdmin:
		if employeeIDParam := r.URL.Query().Get("employeeID"); employeeIDParam != "" {
			employeeID, err := strconv.ParseInt(employeeIDParam, 10, 64)
			if err != nil {
				h.badRequest(w, r, errors.New("invalid employee ID"))
				return
			}
			shifts, err = h.repository.GetShiftsByEmployeeMonth(employeeID, month, year)
			if err != nil {
				h.internalServerError(w, r, err)
				return
			}
		} else if sheet := r.URL.Query().Get("sheetFileName"); sheet != "" {
			shifts, err = h.repository.GetShiftsBySheetMonth(sheet, month, year)
			if err != nil {
				h.internalServerError(w, r, err)
				return
			}
		} else {
			shifts, err = h.repository.GetShiftsForMonth(month, year)
			if err != nil {
				h.internalServerError(w, r, err)
				return
			}
		}
	default:
		// employees only see their own schedule
		shifts, err = h.repository.GetShiftsByEmployeeMonth(me.ID, month, year)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "shift list", shifts)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	me, err := h.requestUser(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	isBackup := shift.BackupEmployeeID != nil && *shift.BackupEmployeeID == me.ID
	if me.Role != domain.RoleAdmin && shift.EmployeeID != me.ID && !isBackup {
		h.forbidden(w, r, "not your shift")
		return
	}

	h.successResponse(w, r, "shift info", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID         *int64  `json:"clientID"`
		Date             *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
		PlannedStart     *string `json:"plannedStart"`
		PlannedEnd       *string `json:"plannedEnd"`
		AbsenceType      *string `json:"absenceType" validate:"omitempty,oneof=SICK VACATION NONE"`
		BackupEmployeeID *int64  `json:"backupEmployeeID"`
		Comment          *string `json:"comment"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if req.ClientID != nil {
		shift.ClientID = *req.ClientID
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		shift.Date = date
	}
	if req.PlannedStart != nil {
		if _, err := payroll.ParseClock(*req.PlannedStart); err != nil {
			h.badRequest(w, r, err)
			return
		}
		shift.PlannedStart = *req.PlannedStart
	}
	if req.PlannedEnd != nil {
		if _, err := payroll.ParseClock(*req.PlannedEnd); err != nil {
			h.badRequest(w, r, err)
			return
		}
		shift.PlannedEnd = *req.PlannedEnd
	}
	if req.AbsenceType != nil {
		if *req.AbsenceType == "NONE" {
			shift.AbsenceType = nil
		} else {
			absence := domain.AbsenceType(*req.AbsenceType)
			shift.AbsenceType = &absence
		}
	}
	if req.BackupEmployeeID != nil {
		if *req.BackupEmployeeID == 0 {
			shift.BackupEmployeeID = nil
		} else {
			shift.BackupEmployeeID = req.BackupEmployeeID
		}
	}
	if req.Comment != nil {
		shift.Comment = *req.Comment
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "shift was modified concurrently, please retry")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_employee_id_shift_date_key":
			h.conflict(w, r, "the employee already has a shift on this date")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift updated", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift deleted", nil)
}

// ConfirmShift marks a planned shift as worked exactly as planned: the
// planned times are copied into the actual times verbatim.
func (h *Handler) ConfirmShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	me, err := h.requestUser(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if shift.EmployeeID != me.ID {
		h.forbidden(w, r, "only the assigned employee may confirm a shift")
		return
	}

	next, err := timesheet.Next(shift.Status, timesheet.ActionConfirm, timesheet.ActorEmployee)
	if err != nil {
		h.transitionError(w, r, err)
		return
	}

	actualStart := shift.PlannedStart
	actualEnd := shift.PlannedEnd
	shift.ActualStart = &actualStart
	shift.ActualEnd = &actualEnd
	shift.Status = next

	if err := h.repository.UpdateShiftTimes(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "shift was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift confirmed", shift)
}

func (h *Handler) UnconfirmShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	me, err := h.requestUser(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if shift.EmployeeID != me.ID {
		h.forbidden(w, r, "only the assigned employee may unconfirm a shift")
		return
	}

	next, err := timesheet.Next(shift.Status, timesheet.ActionUnconfirm, timesheet.ActorEmployee)
	if err != nil {
		h.transitionError(w, r, err)
		return
	}

	shift.ActualStart = nil
	shift.ActualEnd = nil
	shift.Status = next

	if err := h.repository.UpdateShiftTimes(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "shift was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift reset to planned", shift)
}

// UpdateShiftTimes records the actually worked times. Matching times keep
// the shift CONFIRMED, deviating times mark it CHANGED.
func (h *Handler) UpdateShiftTimes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActualStart string `json:"actualStart" validate:"required"`
		ActualEnd   string `json:"actualEnd" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := payroll.ParseClock(req.ActualStart); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if _, err := payroll.ParseClock(req.ActualEnd); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	me, err := h.requestUser(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if shift.EmployeeID != me.ID {
		h.forbidden(w, r, "only the assigned employee may edit a shift")
		return
	}

	action := timesheet.ActionForUpdate(shift.PlannedStart, shift.PlannedEnd, req.ActualStart, req.ActualEnd)
	next, err := timesheet.Next(shift.Status, action, timesheet.ActorEmployee)
	if err != nil {
		h.transitionError(w, r, err)
		return
	}

	shift.ActualStart = &req.ActualStart
	shift.ActualEnd = &req.ActualEnd
	shift.Status = next

	if err := h.repository.UpdateShiftTimes(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "shift was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift times updated", shift)
}

// OverrideShiftTimes is the admin-only edit path for submitted shifts. It
// writes an audit entry and, when the shift was already part of a
// submission, resets that submission back to PENDING_EMPLOYEES.
func (h *Handler) OverrideShiftTimes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActualStart string `json:"actualStart" validate:"required"`
		ActualEnd   string `json:"actualEnd" validate:"required"`
		Reason      string `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := payroll.ParseClock(req.ActualStart); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if _, err := payroll.ParseClock(req.ActualEnd); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	me, err := h.requestUser(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	action := timesheet.ActionForUpdate(shift.PlannedStart, shift.PlannedEnd, req.ActualStart, req.ActualEnd)
	next, err := timesheet.Next(shift.Status, action, timesheet.ActorAdmin)
	if err != nil {
		h.transitionError(w, r, err)
		return
	}

	// a submitted or completed shift belongs to a submission that has to
	// fall back to PENDING_EMPLOYEES
	var submissionID int64
	if shift.Status == domain.ShiftSubmitted || shift.Status == domain.ShiftCompleted {
		client, err := h.repository.GetClientByID(shift.ClientID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		submission, err := h.repository.GetSubmissionBySheetMonth(client.SheetFileName, int(shift.Date.Month()), shift.Date.Year())
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			h.internalServerError(w, r, err)
			return
		}
		if submission != nil {
			submissionID = submission.ID
		}
	}

	previousStatus := shift.Status
	shift.ActualStart = &req.ActualStart
	shift.ActualEnd = &req.ActualEnd
	shift.Status = next

	entry := &domain.AuditEntry{
		ActorID:  me.ID,
		Action:   "shift.override",
		Entity:   "shift",
		EntityID: fmt.Sprintf("%d", shift.ID),
		Meta: map[string]any{
			"reason":         req.Reason,
			"previousStatus": previousStatus,
			"newStatus":      next,
			"actualStart":    req.ActualStart,
			"actualEnd":      req.ActualEnd,
		},
	}

	if err := h.repository.OverrideShiftTimes(shift, submissionID, entry); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "shift was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift overridden", shift)
}

func (h *Handler) transitionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, timesheet.ErrForbidden):
		h.forbidden(w, r, err.Error())
	case errors.Is(err, timesheet.ErrShiftLocked):
		h.unprocessable(w, r, err.Error())
	case errors.Is(err, timesheet.ErrInvalidTransition):
		h.unprocessable(w, r, err.Error())
	default:
		h.internalServerError(w, r, err)
	}
}
