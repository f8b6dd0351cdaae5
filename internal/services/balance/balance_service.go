package balance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amora/backend/internal/events"
	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrInsufficientBalance is returned when a debit exceeds the current balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)

// Service is the single-balance ledger. Every mutation runs inside a database
// transaction with the balance row locked, writes a BalanceEntry audit row,
// and publishes a balance.updated event after commit.
type Service struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewService creates a new balance service
func NewService(db *gorm.DB, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{db: db, publisher: publisher}
}

// GetOrCreate returns the user's balance row, creating a zero balance if none exists.
func (s *Service) GetOrCreate(userID uuid.UUID) (*models.Balance, error) {
	var b models.Balance
	err := s.db.Where("user_id = ?", userID).First(&b).Error
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error finding balance: %w", err)
	}

	b = models.Balance{UserID: userID, Amount: 0, Currency: models.CurrencyUSD}
	if err := s.db.Create(&b).Error; err != nil {
		return nil, fmt.Errorf("error creating balance: %w", err)
	}
	return &b, nil
}

// Credit adds funds to a user's balance.
func (s *Service) Credit(ctx context.Context, userID uuid.UUID, amount float64, reason, reference string) (*models.Balance, error) {
	var result *models.Balance
	err := s.db.Transaction(func(tx *gorm.DB) error {
		b, err := s.CreditTx(tx, userID, amount, reason, reference)
		if err != nil {
			return err
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.PublishBalanceUpdated(ctx, events.BalanceUpdated{
		UserID:     userID,
		NewBalance: result.Amount,
		Reason:     reason,
		Reference:  reference,
	})
	return result, nil
}

// Debit removes funds from a user's balance, failing with
// ErrInsufficientBalance when the amount exceeds it.
func (s *Service) Debit(ctx context.Context, userID uuid.UUID, amount float64, reason, reference string) (*models.Balance, error) {
	var result *models.Balance
	err := s.db.Transaction(func(tx *gorm.DB) error {
		b, err := s.DebitTx(tx, userID, amount, reason, reference)
		if err != nil {
			return err
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.PublishBalanceUpdated(ctx, events.BalanceUpdated{
		UserID:     userID,
		NewBalance: result.Amount,
		Reason:     reason,
		Reference:  reference,
	})
	return result, nil
}

// CreditTx credits inside a caller-owned transaction. Used by verification and
// gift redemption so the ledger mutation commits or rolls back with the
// caller's side effects.
func (s *Service) CreditTx(tx *gorm.DB, userID uuid.UUID, amount float64, reason, reference string) (*models.Balance, error) {
	amount = utils.Round2(amount)
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	b, err := lockBalance(tx, userID)
	if err != nil {
		return nil, err
	}

	before := b.Amount
	b.Amount = utils.Round2(b.Amount + amount)
	if err := tx.Model(b).Update("amount", b.Amount).Error; err != nil {
		return nil, fmt.Errorf("error updating balance: %w", err)
	}

	entry := models.BalanceEntry{
		UserID:        userID,
		Amount:        amount,
		Reason:        reason,
		Reference:     reference,
		BalanceBefore: before,
		BalanceAfter:  b.Amount,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("error creating balance entry: %w", err)
	}

	return b, nil
}

// DebitTx debits inside a caller-owned transaction.
func (s *Service) DebitTx(tx *gorm.DB, userID uuid.UUID, amount float64, reason, reference string) (*models.Balance, error) {
	amount = utils.Round2(amount)
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	b, err := lockBalance(tx, userID)
	if err != nil {
		return nil, err
	}

	if b.Amount < amount {
		return nil, ErrInsufficientBalance
	}

	before := b.Amount
	b.Amount = utils.Round2(b.Amount - amount)
	if err := tx.Model(b).Update("amount", b.Amount).Error; err != nil {
		return nil, fmt.Errorf("error updating balance: %w", err)
	}

	entry := models.BalanceEntry{
		UserID:        userID,
		Amount:        -amount,
		Reason:        reason,
		Reference:     reference,
		BalanceBefore: before,
		BalanceAfter:  b.Amount,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("error creating balance entry: %w", err)
	}

	return b, nil
}

// PublishUpdate lets callers that mutate the balance through *Tx variants emit
// the balance.updated event once their own transaction has committed.
func (s *Service) PublishUpdate(ctx context.Context, userID uuid.UUID, newBalance float64, reason, reference string) {
	s.publisher.PublishBalanceUpdated(ctx, events.BalanceUpdated{
		UserID:     userID,
		NewBalance: newBalance,
		Reason:     reason,
		Reference:  reference,
	})
}

// History returns the user's balance entries, newest first, paginated.
func (s *Service) History(userID uuid.UUID, page, pageSize int) ([]models.BalanceEntry, int64, error) {
	var entries []models.BalanceEntry
	var total int64

	if err := s.db.Model(&models.BalanceEntry{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("error counting balance entries: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("error finding balance entries: %w", err)
	}

	return entries, total, nil
}

// RequestWithdrawal validates the amount against the current balance and
// creates a pending withdrawal request. Funds are NOT held: the debit happens
// when an admin marks the request processed.
func (s *Service) RequestWithdrawal(userID uuid.UUID, amount float64, paymentDetails string) (*models.WithdrawalRequest, error) {
	amount = utils.Round2(amount)
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if paymentDetails == "" {
		return nil, errors.New("payment details are required")
	}

	b, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if amount > b.Amount {
		return nil, ErrInsufficientBalance
	}

	req := models.WithdrawalRequest{
		UserID:         userID,
		Amount:         amount,
		PaymentDetails: paymentDetails,
		Status:         models.WithdrawalStatusPending,
		RequestedAt:    time.Now(),
	}
	if err := s.db.Create(&req).Error; err != nil {
		return nil, fmt.Errorf("error creating withdrawal request: %w", err)
	}

	return &req, nil
}

func lockBalance(tx *gorm.DB, userID uuid.UUID) (*models.Balance, error) {
	var b models.Balance
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("user_id = ?", userID).First(&b).Error
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error locking balance: %w", err)
	}

	// First mutation for this user: create the row, then lock it.
	b = models.Balance{UserID: userID, Amount: 0, Currency: models.CurrencyUSD}
	if err := tx.Create(&b).Error; err != nil {
		return nil, fmt.Errorf("error creating balance: %w", err)
	}
	return &b, nil
}
