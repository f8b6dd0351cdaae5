package withdrawal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amora/backend/internal/models"
)

func TestTransitionGuard(t *testing.T) {
	tests := []struct {
		name    string
		current models.WithdrawalStatus
		next    models.WithdrawalStatus
		want    error
	}{
		{"pending to approved", models.WithdrawalStatusPending, models.WithdrawalStatusApproved, nil},
		{"pending to processed", models.WithdrawalStatusPending, models.WithdrawalStatusProcessed, nil},
		{"pending to rejected", models.WithdrawalStatusPending, models.WithdrawalStatusRejected, nil},
		{"approved to processed", models.WithdrawalStatusApproved, models.WithdrawalStatusProcessed, nil},
		{"approved to rejected", models.WithdrawalStatusApproved, models.WithdrawalStatusRejected, nil},
		{"same status", models.WithdrawalStatusApproved, models.WithdrawalStatusApproved, ErrSameStatus},
		{"processed is terminal", models.WithdrawalStatusProcessed, models.WithdrawalStatusApproved, ErrAlreadyProcessed},
		{"processed to pending", models.WithdrawalStatusProcessed, models.WithdrawalStatusPending, ErrAlreadyProcessed},
		{"processed to rejected", models.WithdrawalStatusProcessed, models.WithdrawalStatusRejected, ErrAlreadyProcessed},
		{"processed to processed", models.WithdrawalStatusProcessed, models.WithdrawalStatusProcessed, ErrSameStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, transitionGuard(tt.current, tt.next), tt.want)
		})
	}
}

// A processed request can never be re-entered: every path back into
// processed first requires leaving it, and that is blocked.
func TestProcessedCannotBeDebitedTwice(t *testing.T) {
	for _, next := range []models.WithdrawalStatus{
		models.WithdrawalStatusPending,
		models.WithdrawalStatusApproved,
		models.WithdrawalStatusRejected,
	} {
		assert.ErrorIs(t, transitionGuard(models.WithdrawalStatusProcessed, next), ErrAlreadyProcessed)
	}
}
