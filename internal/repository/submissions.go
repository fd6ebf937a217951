package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/assistenzplus/backend/internal/domain"
)

const submissionColumns = `
	id, client_id, sheet_file_name, month, year, token, token_expires_at,
	status, recipient_signature, recipient_signed_at, created_at, version
`

func scanSubmission(scan func(dst ...any) error) (*domain.Submission, error) {
	submission := &domain.Submission{}
	dst := []any{
		&submission.ID, &submission.ClientID, &submission.SheetFileName,
		&submission.Month, &submission.Year, &submission.Token, &submission.TokenExpiresAt,
		&submission.Status, &submission.RecipientSignature, &submission.RecipientSignedAt,
		&submission.CreatedAt, &submission.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return submission, nil
}

func (r *Repository) GetSubmissionByID(id int64) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return scanSubmission(row.Scan)
}

func (r *Repository) GetSubmissionByToken(token string) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE token = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, token)
	return scanSubmission(row.Scan)
}

func (r *Repository) GetSubmissionBySheetMonth(sheetFileName string, month, year int) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE sheet_file_name = $1 AND month = $2 AND year = $3`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, sheetFileName, month, year)
	return scanSubmission(row.Scan)
}

func (r *Repository) GetSubmissionsForMonth(month, year int) ([]*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE month = $1 AND year = $2 ORDER BY sheet_file_name`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]*domain.Submission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows.Scan)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *Repository) GetEmployeeSignatures(submissionID int64) ([]*domain.EmployeeSignature, error) {
	query := `
		SELECT id, employee_id, signature, signed_at, created_at
		FROM employee_signatures
		WHERE submission_id = $1
		ORDER BY employee_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	signatures := make([]*domain.EmployeeSignature, 0)
	for rows.Next() {
		signature := &domain.EmployeeSignature{
			SubmissionID: submissionID,
		}
		dst := []any{&signature.ID, &signature.EmployeeID, &signature.Signature, &signature.SignedAt, &signature.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		signatures = append(signatures, signature)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return signatures, nil
}

// GetSubmissionEmployeeIDs lists every distinct employee that owns a shift
// in the submission's (sheet, month, year) set. This is the denominator of
// the signature gating rule.
func (r *Repository) GetSubmissionEmployeeIDs(sheetFileName string, month, year int) ([]int64, error) {
	query := `
		SELECT DISTINCT s.employee_id
		FROM shifts s
		JOIN clients c ON c.id = s.client_id
		WHERE c.sheet_file_name = $1
			AND EXTRACT(MONTH FROM s.shift_date) = $2
			AND EXTRACT(YEAR FROM s.shift_date) = $3
		ORDER BY s.employee_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, sheetFileName, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// SubmitMonth moves one employee's confirmed shifts of a month into the
// submission and stores the employee's signature. Shift updates, signature
// insert and submission creation commit or roll back together.
func (r *Repository) SubmitMonth(employeeID int64, client *domain.Client, month, year int, signature, token string, tokenExpiresAt time.Time) (*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE sheet_file_name = $1 AND month = $2 AND year = $3`
	submission, err := scanSubmission(tx.QueryRowContext(ctx, query, client.SheetFileName, month, year).Scan)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		query = `
			INSERT INTO submissions (client_id, sheet_file_name, month, year, token, token_expires_at, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING ` + submissionColumns + `
		`
		args := []any{client.ID, client.SheetFileName, month, year, token, tokenExpiresAt, domain.SubmissionPendingEmployees}
		submission, err = scanSubmission(tx.QueryRowContext(ctx, query, args...).Scan)
		if err != nil {
			return nil, err
		}
	}

	query = `
		UPDATE shifts
		SET status = $1, version = version + 1
		WHERE employee_id = $2
			AND client_id = $3
			AND EXTRACT(MONTH FROM shift_date) = $4
			AND EXTRACT(YEAR FROM shift_date) = $5
			AND status IN ($6, $7)
	`
	args := []any{domain.ShiftSubmitted, employeeID, client.ID, month, year, domain.ShiftConfirmed, domain.ShiftChanged}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNothingToSubmit
	}

	query = `
		INSERT INTO employee_signatures (submission_id, employee_id, signature, signed_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (submission_id, employee_id)
		DO UPDATE SET signature = EXCLUDED.signature, signed_at = EXCLUDED.signed_at
	`
	if _, err := tx.ExecContext(ctx, query, submission.ID, employeeID, signature); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return submission, nil
}

// WithdrawEmployeeSignature is the exact inverse of SubmitMonth: it deletes
// the signature row, reverts the employee's submitted shifts to CONFIRMED
// and resets the submission to PENDING_EMPLOYEES. All three writes share one
// transaction; a failure leaves no partial state behind.
func (r *Repository) WithdrawEmployeeSignature(submission *domain.Submission, employeeID int64) error {
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
		DELETE FROM employee_signatures
		WHERE submission_id = $1 AND employee_id = $2
	`
	result, err := tx.ExecContext(ctx, query, submission.ID, employeeID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSignatureNotFound
	}

	query = `
		UPDATE shifts
		SET status = $1, version = version + 1
		WHERE employee_id = $2
			AND client_id = $3
			AND EXTRACT(MONTH FROM shift_date) = $4
			AND EXTRACT(YEAR FROM shift_date) = $5
			AND status = $6
	`
	args := []any{domain.ShiftConfirmed, employeeID, submission.ClientID, submission.Month, submission.Year, domain.ShiftSubmitted}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	query = `
		UPDATE submissions
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, domain.SubmissionPendingEmployees, submission.ID, submission.Version).Scan(&submission.Version); err != nil {
		return err
	}
	submission.Status = domain.SubmissionPendingEmployees

	return tx.Commit()
}

// RequestRecipientSignature rotates the signature token and marks the
// submission as waiting for the care recipient.
func (r *Repository) RequestRecipientSignature(submission *domain.Submission, token string, tokenExpiresAt time.Time) error {
	query := `
		UPDATE submissions
		SET token = $1, token_expires_at = $2, status = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{token, tokenExpiresAt, domain.SubmissionPendingRecipient, submission.ID, submission.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&submission.Version); err != nil {
		return err
	}

	submission.Token = token
	submission.TokenExpiresAt = tokenExpiresAt
	submission.Status = domain.SubmissionPendingRecipient
	return nil
}

// CompleteSubmission stores the recipient signature and closes the bundle:
// every submitted shift of the month becomes COMPLETED together with the
// submission itself.
func (r *Repository) CompleteSubmission(submission *domain.Submission, signature string) error {
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
		UPDATE submissions
		SET recipient_signature = $1, recipient_signed_at = NOW(), status = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING recipient_signed_at, version
	`
	args := []any{signature, domain.SubmissionCompleted, submission.ID, submission.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&submission.RecipientSignedAt, &submission.Version); err != nil {
		return err
	}
	submission.RecipientSignature = &signature
	submission.Status = domain.SubmissionCompleted

	query = `
		UPDATE shifts
		SET status = $1, version = version + 1
		WHERE client_id = $2
			AND EXTRACT(MONTH FROM shift_date) = $3
			AND EXTRACT(YEAR FROM shift_date) = $4
			AND status = $5
	`
	args = []any{domain.ShiftCompleted, submission.ClientID, submission.Month, submission.Year, domain.ShiftSubmitted}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return tx.Commit()
}

// WithdrawRecipientSignature reverts CompleteSubmission: the recipient
// signature is cleared, completed shifts fall back to SUBMITTED and the
// submission waits for the recipient again.
func (r *Repository) WithdrawRecipientSignature(submission *domain.Submission) error {
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
		UPDATE submissions
		SET recipient_signature = NULL, recipient_signed_at = NULL, status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, domain.SubmissionPendingRecipient, submission.ID, submission.Version).Scan(&submission.Version); err != nil {
		return err
	}
	submission.RecipientSignature = nil
	submission.RecipientSignedAt = nil
	submission.Status = domain.SubmissionPendingRecipient

	query = `
		UPDATE shifts
		SET status = $1, version = version + 1
		WHERE client_id = $2
			AND EXTRACT(MONTH FROM shift_date) = $3
			AND EXTRACT(YEAR FROM shift_date) = $4
			AND status = $5
	`
	args := []any{domain.ShiftSubmitted, submission.ClientID, submission.Month, submission.Year, domain.ShiftCompleted}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return tx.Commit()
}
