package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amora/backend/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.TransactionStatus
		to      models.TransactionStatus
		allowed bool
	}{
		{"payment to verification", models.TransactionStatusPendingPayment, models.TransactionStatusPendingVerification, true},
		{"payment to error", models.TransactionStatusPendingPayment, models.TransactionStatusError, true},
		{"verification to completed", models.TransactionStatusPendingVerification, models.TransactionStatusCompleted, true},
		{"verification to declined", models.TransactionStatusPendingVerification, models.TransactionStatusDeclined, true},

		{"payment straight to completed", models.TransactionStatusPendingPayment, models.TransactionStatusCompleted, false},
		{"payment straight to declined", models.TransactionStatusPendingPayment, models.TransactionStatusDeclined, false},
		{"verification back to payment", models.TransactionStatusPendingVerification, models.TransactionStatusPendingPayment, false},
		{"completed is terminal", models.TransactionStatusCompleted, models.TransactionStatusDeclined, false},
		{"declined is terminal", models.TransactionStatusDeclined, models.TransactionStatusCompleted, false},
		{"error is terminal", models.TransactionStatusError, models.TransactionStatusPendingPayment, false},
		{"no self loop", models.TransactionStatusPendingVerification, models.TransactionStatusPendingVerification, false},
		{"unknown status", models.TransactionStatus("bogus"), models.TransactionStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	terminals := []models.TransactionStatus{
		models.TransactionStatusCompleted,
		models.TransactionStatusDeclined,
		models.TransactionStatusError,
	}
	for _, status := range terminals {
		assert.Empty(t, transitions[status], "status %s must be terminal", status)
	}
}
