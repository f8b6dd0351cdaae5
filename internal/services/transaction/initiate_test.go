package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amora/backend/internal/models"
)

// Deposits are the only category where the client supplies the amount, so
// the zero/negative guard applies to them alone.
func TestInitiateRejectsNonPositiveDepositAmounts(t *testing.T) {
	svc := &Service{}

	for _, amount := range []float64{0, -1, -0.004} {
		_, err := svc.Initiate(InitiateInput{
			ItemCategory: models.ItemCategoryDeposit,
			Amount:       amount,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %v", amount)
	}
}
