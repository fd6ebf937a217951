package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/assistenzplus/backend/internal/domain"
)

const shiftColumns = `
	id, client_id, employee_id, shift_date, planned_start, planned_end,
	actual_start, actual_end, absence_type, backup_employee_id, comment,
	status, created_at, version
`

func scanShift(scan func(dst ...any) error) (*domain.Shift, error) {
	shift := &domain.Shift{}
	dst := []any{
		&shift.ID, &shift.ClientID, &shift.EmployeeID, &shift.Date,
		&shift.PlannedStart, &shift.PlannedEnd, &shift.ActualStart, &shift.ActualEnd,
		&shift.AbsenceType, &shift.BackupEmployeeID, &shift.Comment,
		&shift.Status, &shift.CreatedAt, &shift.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return shift, nil
}

func (r *Repository) CreateShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (
			client_id, employee_id, shift_date, planned_start, planned_end,
			absence_type, backup_employee_id, comment
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		shift.ClientID, shift.EmployeeID, shift.Date, shift.PlannedStart, shift.PlannedEnd,
		shift.AbsenceType, shift.BackupEmployeeID, shift.Comment,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.Status, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return scanShift(row.Scan)
}

func (r *Repository) queryShifts(query string, args ...any) ([]*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift, err := scanShift(rows.Scan)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetShiftsByEmployeeMonth(employeeID int64, month, year int) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE employee_id = $1
			AND EXTRACT(MONTH FROM shift_date) = $2
			AND EXTRACT(YEAR FROM shift_date) = $3
		ORDER BY shift_date
	`
	return r.queryShifts(query, employeeID, month, year)
}

func (r *Repository) GetShiftsBySheetMonth(sheetFileName string, month, year int) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumnsPrefixed("s") + `
		FROM shifts s
		JOIN clients c ON c.id = s.client_id
		WHERE c.sheet_file_name = $1
			AND EXTRACT(MONTH FROM s.shift_date) = $2
			AND EXTRACT(YEAR FROM s.shift_date) = $3
		ORDER BY s.shift_date, s.employee_id
	`
	return r.queryShifts(query, sheetFileName, month, year)
}

func (r *Repository) GetShiftsForMonth(month, year int) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE EXTRACT(MONTH FROM shift_date) = $1
			AND EXTRACT(YEAR FROM shift_date) = $2
		ORDER BY shift_date, employee_id
	`
	return r.queryShifts(query, month, year)
}

// UpdateShift rewrites the planning fields of a shift. Actual times and
// status move through UpdateShiftTimes, never through here.
func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			client_id = $1,
			shift_date = $2,
			planned_start = $3,
			planned_end = $4,
			absence_type = $5,
			backup_employee_id = $6,
			comment = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING status, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		shift.ClientID, shift.Date, shift.PlannedStart, shift.PlannedEnd,
		shift.AbsenceType, shift.BackupEmployeeID, shift.Comment,
		shift.ID, shift.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.Status, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

// UpdateShiftTimes applies a status transition together with its actual
// times, guarded by the optimistic version column.
func (r *Repository) UpdateShiftTimes(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			actual_start = $1,
			actual_end = $2,
			status = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.ActualStart, shift.ActualEnd, shift.Status, shift.ID, shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// OverrideShiftTimes is the admin escape hatch for submitted shifts: it
// rewrites the actual times and status, resets the parent submission back to
// PENDING_EMPLOYEES and records an audit entry, all in one transaction.
func (r *Repository) OverrideShiftTimes(shift *domain.Shift, submissionID int64, entry *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE shifts
		SET
			actual_start = $1,
			actual_end = $2,
			status = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`
	args := []any{shift.ActualStart, shift.ActualEnd, shift.Status, shift.ID, shift.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.Version); err != nil {
		return err
	}

	if submissionID != 0 {
		query = `
			UPDATE submissions
			SET status = $1, version = version + 1
			WHERE id = $2
		`
		if _, err := tx.ExecContext(ctx, query, domain.SubmissionPendingEmployees, submissionID); err != nil {
			return err
		}
	}

	meta, err := json.Marshal(entry.Meta)
	if err != nil {
		return err
	}
	query = `
		INSERT INTO audit_entries (actor_id, action, entity, entity_id, meta)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, query, entry.ActorID, entry.Action, entry.Entity, entry.EntityID, meta); err != nil {
		return err
	}

	return tx.Commit()
}

func shiftColumnsPrefixed(alias string) string {
	return alias + `.id, ` + alias + `.client_id, ` + alias + `.employee_id, ` + alias + `.shift_date,
		` + alias + `.planned_start, ` + alias + `.planned_end, ` + alias + `.actual_start, ` + alias + `.actual_end,
		` + alias + `.absence_type, ` + alias + `.backup_employee_id, ` + alias + `.comment,
		` + alias + `.status, ` + alias + `.created_at, ` + alias + `.version`
}
