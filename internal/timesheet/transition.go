// Package timesheet holds the shift status machine. Every legal and illegal
// transition is enumerated in one place, away from HTTP concerns, so the
// rules stay unit-testable.
package timesheet

import (
	"errors"

	"github.com/assistenzplus/backend/internal/domain"
)

// Actor is who attempts a transition. Ownership of the shift is checked by
// the handler layer; the machine only cares about the kind of actor.
type Actor string

const (
	ActorEmployee  Actor = "EMPLOYEE"
	ActorAdmin     Actor = "ADMIN"
	ActorRecipient Actor = "RECIPIENT"
)

type Action string

const (
	ActionConfirm        Action = "CONFIRM"
	ActionUpdateMatching Action = "UPDATE_MATCHING" // actual times equal planned times
	ActionUpdateAdjusted Action = "UPDATE_ADJUSTED" // actual times differ from planned
	ActionUnconfirm      Action = "UNCONFIRM"
	ActionSubmit         Action = "SUBMIT"
	ActionWithdraw       Action = "WITHDRAW"
	ActionComplete       Action = "COMPLETE"
)

var (
	// ErrForbidden: the actor kind may never perform this action.
	ErrForbidden = errors.New("actor is not allowed to perform this action")
	// ErrShiftLocked: the shift is part of a submission and only an admin
	// override may touch it.
	ErrShiftLocked = errors.New("shift is submitted and can no longer be edited")
	// ErrInvalidTransition: the action does not apply to the current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ActionForUpdate picks the update action from the relation between planned
// and actual times: matching times confirm the plan, differing times mark
// the shift as changed.
func ActionForUpdate(plannedStart, plannedEnd, actualStart, actualEnd string) Action {
	if plannedStart == actualStart && plannedEnd == actualEnd {
		return ActionUpdateMatching
	}
	return ActionUpdateAdjusted
}

// Next returns the status a shift moves to when actor performs action, or an
// error when the transition is illegal.
func Next(current domain.ShiftStatus, action Action, actor Actor) (domain.ShiftStatus, error) {
	switch action {
	case ActionConfirm:
		if actor != ActorEmployee {
			return "", ErrForbidden
		}
		if current != domain.ShiftPlanned {
			return "", ErrInvalidTransition
		}
		return domain.ShiftConfirmed, nil

	case ActionUpdateMatching, ActionUpdateAdjusted:
		next := domain.ShiftConfirmed
		if action == ActionUpdateAdjusted {
			next = domain.ShiftChanged
		}
		switch actor {
		case ActorEmployee:
			switch current {
			case domain.ShiftPlanned, domain.ShiftConfirmed, domain.ShiftChanged:
				return next, nil
			case domain.ShiftSubmitted, domain.ShiftCompleted:
				return "", ErrShiftLocked
			}
			return "", ErrInvalidTransition
		case ActorAdmin:
			// Admin override: allowed on submitted and completed shifts as
			// well, paired with an audit entry and a submission reset by the
			// caller.
			return next, nil
		}
		return "", ErrForbidden

	case ActionUnconfirm:
		if actor != ActorEmployee {
			return "", ErrForbidden
		}
		switch current {
		case domain.ShiftConfirmed, domain.ShiftChanged:
			return domain.ShiftPlanned, nil
		case domain.ShiftSubmitted, domain.ShiftCompleted:
			return "", ErrShiftLocked
		}
		return "", ErrInvalidTransition

	case ActionSubmit:
		if actor != ActorEmployee {
			return "", ErrForbidden
		}
		switch current {
		case domain.ShiftConfirmed, domain.ShiftChanged:
			return domain.ShiftSubmitted, nil
		}
		return "", ErrInvalidTransition

	case ActionWithdraw:
		if actor != ActorAdmin {
			return "", ErrForbidden
		}
		if current != domain.ShiftSubmitted {
			return "", ErrInvalidTransition
		}
		return domain.ShiftConfirmed, nil

	case ActionComplete:
		if actor != ActorRecipient {
			return "", ErrForbidden
		}
		if current != domain.ShiftSubmitted {
			return "", ErrInvalidTransition
		}
		return domain.ShiftCompleted, nil
	}

	return "", ErrInvalidTransition
}
