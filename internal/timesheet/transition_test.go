package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assistenzplus/backend/internal/domain"
)

func TestActionForUpdate(t *testing.T) {
	assert.Equal(t, ActionUpdateMatching, ActionForUpdate("08:00", "16:00", "08:00", "16:00"))
	assert.Equal(t, ActionUpdateAdjusted, ActionForUpdate("08:00", "16:00", "08:00", "17:00"))
	assert.Equal(t, ActionUpdateAdjusted, ActionForUpdate("08:00", "16:00", "09:00", "16:00"))
}

func TestNext(t *testing.T) {
	cases := []struct {
		name    string
		current domain.ShiftStatus
		action  Action
		actor   Actor
		want    domain.ShiftStatus
		wantErr error
	}{
		{"employee confirms planned", domain.ShiftPlanned, ActionConfirm, ActorEmployee, domain.ShiftConfirmed, nil},
		{"confirm twice", domain.ShiftConfirmed, ActionConfirm, ActorEmployee, "", ErrInvalidTransition},
		{"admin cannot confirm", domain.ShiftPlanned, ActionConfirm, ActorAdmin, "", ErrForbidden},

		{"matching update confirms", domain.ShiftPlanned, ActionUpdateMatching, ActorEmployee, domain.ShiftConfirmed, nil},
		{"adjusted update marks changed", domain.ShiftConfirmed, ActionUpdateAdjusted, ActorEmployee, domain.ShiftChanged, nil},
		{"changed back to matching", domain.ShiftChanged, ActionUpdateMatching, ActorEmployee, domain.ShiftConfirmed, nil},
		{"employee cannot edit submitted", domain.ShiftSubmitted, ActionUpdateAdjusted, ActorEmployee, "", ErrShiftLocked},
		{"employee cannot edit completed", domain.ShiftCompleted, ActionUpdateMatching, ActorEmployee, "", ErrShiftLocked},
		{"admin overrides submitted", domain.ShiftSubmitted, ActionUpdateAdjusted, ActorAdmin, domain.ShiftChanged, nil},
		{"admin overrides completed", domain.ShiftCompleted, ActionUpdateMatching, ActorAdmin, domain.ShiftConfirmed, nil},
		{"recipient cannot edit", domain.ShiftConfirmed, ActionUpdateAdjusted, ActorRecipient, "", ErrForbidden},

		{"unconfirm confirmed", domain.ShiftConfirmed, ActionUnconfirm, ActorEmployee, domain.ShiftPlanned, nil},
		{"unconfirm changed", domain.ShiftChanged, ActionUnconfirm, ActorEmployee, domain.ShiftPlanned, nil},
		{"unconfirm planned", domain.ShiftPlanned, ActionUnconfirm, ActorEmployee, "", ErrInvalidTransition},
		{"unconfirm submitted", domain.ShiftSubmitted, ActionUnconfirm, ActorEmployee, "", ErrShiftLocked},
		{"admin cannot unconfirm", domain.ShiftConfirmed, ActionUnconfirm, ActorAdmin, "", ErrForbidden},

		{"submit confirmed", domain.ShiftConfirmed, ActionSubmit, ActorEmployee, domain.ShiftSubmitted, nil},
		{"submit changed", domain.ShiftChanged, ActionSubmit, ActorEmployee, domain.ShiftSubmitted, nil},
		{"submit planned", domain.ShiftPlanned, ActionSubmit, ActorEmployee, "", ErrInvalidTransition},
		{"submit submitted again", domain.ShiftSubmitted, ActionSubmit, ActorEmployee, "", ErrInvalidTransition},
		{"admin cannot submit for employee", domain.ShiftConfirmed, ActionSubmit, ActorAdmin, "", ErrForbidden},

		{"admin withdraws submitted", domain.ShiftSubmitted, ActionWithdraw, ActorAdmin, domain.ShiftConfirmed, nil},
		{"withdraw completed", domain.ShiftCompleted, ActionWithdraw, ActorAdmin, "", ErrInvalidTransition},
		{"employee cannot withdraw", domain.ShiftSubmitted, ActionWithdraw, ActorEmployee, "", ErrForbidden},

		{"recipient completes submitted", domain.ShiftSubmitted, ActionComplete, ActorRecipient, domain.ShiftCompleted, nil},
		{"complete confirmed", domain.ShiftConfirmed, ActionComplete, ActorRecipient, "", ErrInvalidTransition},
		{"admin cannot complete", domain.ShiftSubmitted, ActionComplete, ActorAdmin, "", ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Next(tc.current, tc.action, tc.actor)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
