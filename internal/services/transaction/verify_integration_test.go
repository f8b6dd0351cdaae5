package transaction

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amora/backend/internal/events"
	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/services/balance"
	"github.com/amora/backend/internal/services/gift"
	"github.com/amora/backend/internal/services/registry"
	"github.com/amora/backend/internal/services/subscription"
	"github.com/amora/backend/internal/utils"
)

// openTestDB connects to the database named by TEST_DATABASE_URL and
// migrates the tables this suite touches. The suite is skipped when the
// variable is unset so the package stays runnable without postgres.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Balance{},
		&models.BalanceEntry{},
		&models.Country{},
		&models.PaymentMethodType{},
		&models.CountryPaymentMethod{},
		&models.Transaction{},
	))
	return db
}

func newVerifySuite(t *testing.T) (*gorm.DB, *Service, *balance.Service) {
	t.Helper()

	db := openTestDB(t)
	balanceSvc := balance.NewService(db, events.NoopPublisher{})
	svc := NewService(db, registry.NewService(db),
		balanceSvc, subscription.NewService(db, balanceSvc), gift.NewService(db, balanceSvc))
	return db, svc, balanceSvc
}

func seedVerifyUser(t *testing.T, db *gorm.DB, admin bool) *models.User {
	t.Helper()

	tag := uuid.New().String()[:8]
	user := models.User{
		Email:        tag + "@integration.test",
		Username:     "u_" + tag,
		PasswordHash: "x",
		IsAdmin:      admin,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedPendingDeposit(t *testing.T, db *gorm.DB, userID uuid.UUID, amount float64) *models.Transaction {
	t.Helper()

	country := models.Country{Name: "Kenya", ISOCode: "KE"}
	require.NoError(t, db.Where("iso_code = ?", country.ISOCode).FirstOrCreate(&country).Error)

	method := models.PaymentMethodType{Name: "M-Pesa", Code: models.PaymentMethodMpesa}
	require.NoError(t, db.Where("code = ?", method.Code).FirstOrCreate(&method).Error)

	txn := models.Transaction{
		UserID:          userID,
		CountryID:       country.ID,
		PaymentMethodID: method.ID,
		ItemCategory:    models.ItemCategoryDeposit,
		PayableItemID:   uuid.New(),
		Amount:          amount,
		Currency:        models.CurrencyUSD,
		Status:          models.TransactionStatusPendingVerification,
		Reference:       utils.GenerateReference("TXN"),
		UserProvidedRef: "MPESA-" + uuid.New().String()[:8],
	}
	require.NoError(t, db.Create(&txn).Error)
	return &txn
}

// A deposit approved twice must credit the balance exactly once: the second
// call lands on a non-pending row and returns ErrAlreadyProcessed without
// touching the ledger.
func TestVerifyCreditsDepositExactlyOnce(t *testing.T) {
	db, svc, balanceSvc := newVerifySuite(t)
	ctx := context.Background()

	admin := seedVerifyUser(t, db, true)
	user := seedVerifyUser(t, db, false)
	txn := seedPendingDeposit(t, db, user.ID, 25)

	verified, err := svc.Verify(ctx, admin.ID, txn.ID, models.TransactionStatusCompleted, "")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCompleted, verified.Status)
	require.NotNil(t, verified.ProcessedBy)
	assert.Equal(t, admin.ID, *verified.ProcessedBy)

	_, err = svc.Verify(ctx, admin.ID, txn.ID, models.TransactionStatusCompleted, "")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)

	b, err := balanceSvc.GetOrCreate(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, b.Amount)

	var entries int64
	require.NoError(t, db.Model(&models.BalanceEntry{}).
		Where("user_id = ? AND reference = ?", user.ID, txn.Reference).
		Count(&entries).Error)
	assert.Equal(t, int64(1), entries)
}

// Declining a transaction is just as final: a later approve must not credit.
func TestVerifyDeclinedTransactionStaysDeclined(t *testing.T) {
	db, svc, balanceSvc := newVerifySuite(t)
	ctx := context.Background()

	admin := seedVerifyUser(t, db, true)
	user := seedVerifyUser(t, db, false)
	txn := seedPendingDeposit(t, db, user.ID, 40)

	declined, err := svc.Verify(ctx, admin.ID, txn.ID, models.TransactionStatusDeclined, "reference not found on statement")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusDeclined, declined.Status)

	_, err = svc.Verify(ctx, admin.ID, txn.ID, models.TransactionStatusCompleted, "")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)

	b, err := balanceSvc.GetOrCreate(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.Amount)
}
