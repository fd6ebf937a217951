package domain

import "time"

type SubmissionStatus string

const (
	SubmissionPendingEmployees SubmissionStatus = "PENDING_EMPLOYEES"
	SubmissionPendingRecipient SubmissionStatus = "PENDING_RECIPIENT"
	SubmissionCompleted        SubmissionStatus = "COMPLETED"
)

// Submission bundles one client's shifts for one (month, year) and tracks
// the two-party signature progress. The token authorises the care recipient
// to sign without an account.
type Submission struct {
	ID                 int64            `json:"id"`
	ClientID           int64            `json:"clientID"`
	SheetFileName      string           `json:"sheetFileName"`
	Month              int              `json:"month"`
	Year               int              `json:"year"`
	Token              string           `json:"-"`
	TokenExpiresAt     time.Time        `json:"tokenExpiresAt"`
	Status             SubmissionStatus `json:"status"`
	RecipientSignature *string          `json:"recipientSignature"`
	RecipientSignedAt  *time.Time       `json:"recipientSignedAt"`
	CreatedAt          time.Time        `json:"createdAt"`
	Version            int32            `json:"-"`
}

// EmployeeSignature is one employee's signature on a submission.
// A nil signature means the employee has not signed yet.
type EmployeeSignature struct {
	ID           int64      `json:"id"`
	SubmissionID int64      `json:"submissionID"`
	EmployeeID   int64      `json:"employeeID"`
	Signature    *string    `json:"signature"`
	SignedAt     *time.Time `json:"signedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
}
