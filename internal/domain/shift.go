package domain

import "time"

type ShiftStatus string

const (
	ShiftPlanned   ShiftStatus = "PLANNED"
	ShiftConfirmed ShiftStatus = "CONFIRMED"
	ShiftChanged   ShiftStatus = "CHANGED"
	ShiftSubmitted ShiftStatus = "SUBMITTED"
	ShiftCompleted ShiftStatus = "COMPLETED"
)

type AbsenceType string

const (
	AbsenceSick     AbsenceType = "SICK"
	AbsenceVacation AbsenceType = "VACATION"
)

// Shift is one employee's scheduled or worked period on one date.
// Times are stored as "HH:MM" strings; actual times stay nil until the
// employee confirms the shift. Unique per (employee, date).
type Shift struct {
	ID               int64        `json:"id"`
	ClientID         int64        `json:"clientID"`
	EmployeeID       int64        `json:"employeeID"`
	Date             time.Time    `json:"date"`
	PlannedStart     string       `json:"plannedStart"`
	PlannedEnd       string       `json:"plannedEnd"`
	ActualStart      *string      `json:"actualStart"`
	ActualEnd        *string      `json:"actualEnd"`
	AbsenceType      *AbsenceType `json:"absenceType"`
	BackupEmployeeID *int64       `json:"backupEmployeeID"`
	Comment          string       `json:"comment"`
	Status           ShiftStatus  `json:"status"`
	CreatedAt        time.Time    `json:"createdAt"`
	Version          int32        `json:"-"`
}
