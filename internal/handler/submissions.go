package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/assistenzplus/backend/internal/domain"
	"github.com/assistenzplus/backend/internal/repository"
)

// SubmitMonth finalises the calling employee's month for one client: their
// confirmed shifts become SUBMITTED and their signature is recorded on the
// client's submission.
func (h *Handler) SubmitMonth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID  int64  `json:"clientID" validate:"required"`
		Month     int    `json:"month" validate:"required,min=1,max=12"`
		Year      int    `json:"year" validate:"required,min=2000,max=2100"`
		Signature string `json:"signature" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	me, err := h.requestUser(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	client, err := h.repository.GetClientByID(req.ClientID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "client not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	token := uuid.NewString()
	tokenExpiresAt := time.Now().Add(time.Duration(h.config.Signature.TokenTTL) * time.Hour)

	submission, err := h.repository.SubmitMonth(me.ID, client, req.Month, req.Year, req.Signature, token, tokenExpiresAt)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNothingToSubmit):
			h.unprocessable(w, r, "no confirmed shifts to submit for this month")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "month submitted", submission)
}

func (h *Handler) GetSubmissions(w http.ResponseWriter, r *http.Request) {
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

	submissions, err := h.repository.GetSubmissionsForMonth(month, year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "submission list", submissions)
}

func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	submission := r.Context().Value(SubmissionCtx).(*domain.Submission)

	signatures, err := h.repository.GetEmployeeSignatures(submission.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employeeIDs, err := h.repository.GetSubmissionEmployeeIDs(submission.SheetFileName, submission.Month, submission.Year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "submission info", map[string]any{
		"submission":         submission,
		"employeeSignatures": signatures,
		"requiredEmployees":  employeeIDs,
	})
}

// RequestRecipientSignature mails the care recipient a signing link. It is
// only allowed once every employee with shifts in the month has signed.
func (h *Handler) RequestRecipientSignature(w http.ResponseWriter, r *http.Request) {
	submission := r.Context().Value(SubmissionCtx).(*domain.Submission)

	signed, total, err := h.signatureProgress(submission)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if signed < total {
		h.conflict(w, r, fmt.Sprintf("only %d of %d employees have signed", signed, total))
		return
	}

	client, err := h.repository.GetClientByID(submission.ClientID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// rotate the token so earlier links stop working
	token := uuid.NewString()
	tokenExpiresAt := time.Now().Add(time.Duration(h.config.Signature.TokenTTL) * time.Hour)

	if err := h.repository.RequestRecipientSignature(submission, token, tokenExpiresAt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "submission was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	mailMessage := domain.MailMessage{
		Type: "signature_request",
		To:   client.Email,
		Data: domain.SignatureRequestMailData{
			ClientName: client.Name,
			Month:      submission.Month,
			Year:       submission.Year,
			SignURL:    fmt.Sprintf("%s/sign/%s", h.config.Signature.BaseURL, token),
			ExpiresAt:  tokenExpiresAt.Format("02.01.2006"),
		},
	}

	if err := h.enqueueMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "signature request sent", submission)
}

// GetSubmissionForSigning is the public, token-authorised view the care
// recipient sees before signing.
func (h *Handler) GetSubmissionForSigning(w http.ResponseWriter, r *http.Request) {
	submission, err := h.submissionFromToken(w, r)
	if err != nil {
		return
	}

	client, err := h.repository.GetClientByID(submission.ClientID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	shifts, err := h.repository.GetShiftsBySheetMonth(submission.SheetFileName, submission.Month, submission.Year)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "submission for signing", map[string]any{
		"clientName": client.Name,
		"month":      submission.Month,
		"year":       submission.Year,
		"status":     submission.Status,
		"shifts":     shifts,
	})
}

// SignSubmission records the care recipient's signature and completes the
// submission. The gating rule is re-checked because shifts may have been
// added or withdrawn since the link was mailed.
func (h *Handler) SignSubmission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Signature string `json:"signature" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	submission, err := h.submissionFromToken(w, r)
	if err != nil {
		return
	}

	if submission.Status != domain.SubmissionPendingRecipient {
		h.unprocessable(w, r, "submission is not waiting for the recipient signature")
		return
	}

	signed, total, err := h.signatureProgress(submission)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if signed < total {
		h.conflict(w, r, fmt.Sprintf("only %d of %d employees have signed", signed, total))
		return
	}

	if err := h.repository.CompleteSubmission(submission, req.Signature); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "submission was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	client, err := h.repository.GetClientByID(submission.ClientID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "submission_completed",
		To:   client.Email,
		Data: domain.SubmissionCompletedMailData{
			ClientName: client.Name,
			Month:      submission.Month,
			Year:       submission.Year,
		},
	}

	if err := h.enqueueMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "submission completed", submission)
}

func (h *Handler) WithdrawEmployeeSignature(w http.ResponseWriter, r *http.Request) {
	submission := r.Context().Value(SubmissionCtx).(*domain.Submission)

	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("invalid employee ID"))
		return
	}

	if err := h.repository.WithdrawEmployeeSignature(submission, employeeID); err != nil {
		switch {
		case errors.Is(err, repository.ErrSignatureNotFound):
			h.notFound(w, r, "the employee has not signed this submission")
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "submission was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "employee signature withdrawn", submission)
}

func (h *Handler) WithdrawRecipientSignature(w http.ResponseWriter, r *http.Request) {
	submission := r.Context().Value(SubmissionCtx).(*domain.Submission)

	if submission.Status != domain.SubmissionCompleted {
		h.unprocessable(w, r, "submission has no recipient signature to withdraw")
		return
	}

	if err := h.repository.WithdrawRecipientSignature(submission); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "submission was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "recipient signature withdrawn", submission)
}

// signatureProgress counts signed vs required employees for a submission.
func (h *Handler) signatureProgress(submission *domain.Submission) (signed, total int, err error) {
	employeeIDs, err := h.repository.GetSubmissionEmployeeIDs(submission.SheetFileName, submission.Month, submission.Year)
	if err != nil {
		return 0, 0, err
	}

	signatures, err := h.repository.GetEmployeeSignatures(submission.ID)
	if err != nil {
		return 0, 0, err
	}

	signedBy := make(map[int64]bool, len(signatures))
	for _, signature := range signatures {
		if signature.Signature != nil {
			signedBy[signature.EmployeeID] = true
		}
	}

	for _, id := range employeeIDs {
		if signedBy[id] {
			signed++
		}
	}

	return signed, len(employeeIDs), nil
}

// submissionFromToken resolves the {token} path parameter for the public
// signing endpoints. It writes the error response itself.
func (h *Handler) submissionFromToken(w http.ResponseWriter, r *http.Request) (*domain.Submission, error) {
	token := chi.URLParam(r, "token")
	if _, err := uuid.Parse(token); err != nil {
		h.notFound(w, r, "unknown signing link")
		return nil, err
	}

	submission, err := h.repository.GetSubmissionByToken(token)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "unknown signing link")
		default:
			h.internalServerError(w, r, err)
		}
		return nil, err
	}

	if time.Now().After(submission.TokenExpiresAt) {
		h.unprocessable(w, r, "this signing link has expired")
		return nil, errors.New("token expired")
	}

	return submission, nil
}
