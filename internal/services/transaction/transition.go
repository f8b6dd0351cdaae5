package transaction

import "github.com/amora/backend/internal/models"

// transitions is the validated status transition table. Terminal states have
// no exits; notes on completed/declined transactions may still be edited, but
// the status itself never moves again.
var transitions = map[models.TransactionStatus][]models.TransactionStatus{
	models.TransactionStatusPendingPayment: {
		models.TransactionStatusPendingVerification,
		models.TransactionStatusError,
	},
	models.TransactionStatusPendingVerification: {
		models.TransactionStatusCompleted,
		models.TransactionStatusDeclined,
	},
	models.TransactionStatusCompleted: {},
	models.TransactionStatusDeclined:  {},
	models.TransactionStatusError:     {},
}

// CanTransition reports whether a status move is legal.
func CanTransition(from, to models.TransactionStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
