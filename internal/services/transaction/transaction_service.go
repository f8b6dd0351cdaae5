package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/services/balance"
	"github.com/amora/backend/internal/services/gift"
	"github.com/amora/backend/internal/services/registry"
	"github.com/amora/backend/internal/services/subscription"
	"github.com/amora/backend/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned for unknown transactions.
	ErrNotFound = errors.New("transaction not found")
	// ErrNotOwner is returned when a user touches someone else's transaction.
	ErrNotOwner = errors.New("transaction does not belong to this user")
	// ErrInvalidTransition is returned for moves the transition table forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrAlreadyProcessed is returned when verifying a transaction twice.
	ErrAlreadyProcessed = errors.New("transaction already processed")
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrEmptyReference is returned for blank payment references.
	ErrEmptyReference = errors.New("payment reference is required")
	// ErrReferenceTooLong is returned when the reference exceeds the column size.
	ErrReferenceTooLong = errors.New("payment reference is too long")
	// ErrNotesRequired is returned when declining without admin notes.
	ErrNotesRequired = errors.New("admin notes are required when declining")
)

const maxReferenceLength = 140

// InitiateInput is what a user supplies to start a manual payment.
type InitiateInput struct {
	UserID          uuid.UUID
	CountryID       uuid.UUID
	PaymentMethodID uuid.UUID
	ItemCategory    models.ItemCategory
	PayableItemID   uuid.UUID
	Amount          float64
	Currency        models.Currency
}

// InitiateResult carries the new transaction plus the instructions snapshot
// the client renders on the confirmation page.
type InitiateResult struct {
	Transaction          *models.Transaction `json:"transaction"`
	PaymentInstructions  string              `json:"payment_instructions"`
	PaymentConfiguration models.JSON         `json:"payment_configuration_details"`
}

// Service orchestrates the manual payment flow: initiation, reference
// submission and admin verification with category side effects.
type Service struct {
	db          *gorm.DB
	registrySvc *registry.Service
	balanceSvc  *balance.Service
	subSvc      *subscription.Service
	giftSvc     *gift.Service
}

// NewService creates a new transaction service
func NewService(db *gorm.DB, registrySvc *registry.Service, balanceSvc *balance.Service, subSvc *subscription.Service, giftSvc *gift.Service) *Service {
	return &Service{
		db:          db,
		registrySvc: registrySvc,
		balanceSvc:  balanceSvc,
		subSvc:      subSvc,
		giftSvc:     giftSvc,
	}
}

// Initiate validates the country/method pair and payable item, snapshots the
// payment instructions and creates a pending_payment transaction.
func (s *Service) Initiate(input InitiateInput) (*InitiateResult, error) {
	// Deposits carry the client amount; for subscriptions and gifts the
	// catalog price is authoritative and the field may be omitted.
	if input.ItemCategory == models.ItemCategoryDeposit {
		input.Amount = utils.Round2(input.Amount)
		if input.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
	}

	method, err := s.registrySvc.ResolveActiveMethod(input.CountryID, input.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	amount, err := s.resolvePayable(input)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = models.CurrencyUSD
	}

	tx := models.Transaction{
		UserID:               input.UserID,
		CountryID:            input.CountryID,
		PaymentMethodID:      input.PaymentMethodID,
		ItemCategory:         input.ItemCategory,
		PayableItemID:        input.PayableItemID,
		Amount:               amount,
		Currency:             currency,
		Status:               models.TransactionStatusPendingPayment,
		Reference:            utils.GenerateReference("TXN"),
		PaymentInstructions:  method.UserInstructions,
		PaymentConfiguration: method.Configuration,
	}
	if err := s.db.Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("error creating transaction: %w", err)
	}

	return &InitiateResult{
		Transaction:          &tx,
		PaymentInstructions:  tx.PaymentInstructions,
		PaymentConfiguration: tx.PaymentConfiguration,
	}, nil
}

// resolvePayable checks the payable item exists and returns the authoritative
// amount. For deposits the user-supplied amount stands; for subscriptions and
// gifts the catalog price wins over whatever the client sent.
func (s *Service) resolvePayable(input InitiateInput) (float64, error) {
	switch input.ItemCategory {
	case models.ItemCategoryDeposit:
		return input.Amount, nil
	case models.ItemCategorySubscription:
		pkg, err := s.subSvc.GetPackage(input.PayableItemID)
		if err != nil {
			return 0, err
		}
		return pkg.Price, nil
	case models.ItemCategoryGift:
		var send models.GiftSend
		if err := s.db.First(&send, "id = ?", input.PayableItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, gift.ErrGiftNotFound
			}
			return 0, fmt.Errorf("error finding gift send: %w", err)
		}
		if send.SenderID != input.UserID {
			return 0, ErrNotOwner
		}
		if send.Status != models.GiftStatusPendingPayment {
			return 0, gift.ErrGiftNotFound
		}
		return send.OriginalPrice, nil
	default:
		return 0, fmt.Errorf("unknown item category %q", input.ItemCategory)
	}
}

// SubmitReference attaches the user's payment reference and moves the
// transaction to pending_verification. Resubmission overwrites the reference
// while the transaction is still awaiting verification; terminal transactions
// reject it.
func (s *Service) SubmitReference(userID, txID uuid.UUID, reference string) (*models.Transaction, error) {
	if reference == "" {
		return nil, ErrEmptyReference
	}
	if len(reference) > maxReferenceLength {
		return nil, ErrReferenceTooLong
	}

	var tx models.Transaction
	err := s.db.Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tx, "id = ?", txID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("error finding transaction: %w", err)
		}

		if tx.UserID != userID {
			return ErrNotOwner
		}

		switch tx.Status {
		case models.TransactionStatusPendingPayment:
			tx.Status = models.TransactionStatusPendingVerification
		case models.TransactionStatusPendingVerification:
			// Overwrite, stays pending verification.
		default:
			return ErrAlreadyProcessed
		}

		tx.UserProvidedRef = reference
		return dbtx.Model(&tx).Updates(map[string]interface{}{
			"user_provided_ref": tx.UserProvidedRef,
			"status":            tx.Status,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListMine returns the user's transactions, newest first, paginated.
func (s *Service) ListMine(userID uuid.UUID, page, pageSize int) ([]models.Transaction, int64, error) {
	var txs []models.Transaction
	var total int64

	if err := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("error counting transactions: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&txs).Error; err != nil {
		return nil, 0, fmt.Errorf("error finding transactions: %w", err)
	}

	return txs, total, nil
}

// GetForUser fetches a single transaction and enforces ownership.
func (s *Service) GetForUser(userID, txID uuid.UUID) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.First(&tx, "id = ?", txID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding transaction: %w", err)
	}
	if tx.UserID != userID {
		return nil, ErrNotOwner
	}
	return &tx, nil
}

// ListPendingVerification returns the admin verification queue, newest first.
// search matches the transaction reference, the user-provided reference or the
// paying user's email, case-insensitively.
func (s *Service) ListPendingVerification(limit, offset int, search string) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{}).
		Joins("JOIN users ON users.id = transactions.user_id").
		Where("transactions.status = ?", models.TransactionStatusPendingVerification)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"transactions.reference ILIKE ? OR transactions.user_provided_ref ILIKE ? OR users.email ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("error counting pending transactions: %w", err)
	}

	var txs []models.Transaction
	if err := query.Preload("User").Preload("PaymentMethod").
		Order("transactions.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&txs).Error; err != nil {
		return nil, 0, fmt.Errorf("error finding pending transactions: %w", err)
	}

	return txs, total, nil
}

// Verify is the admin decision on a pending_verification transaction. The
// status move and the category side effect commit in one database transaction
// with the row locked, so a double approve credits exactly once.
func (s *Service) Verify(ctx context.Context, adminID, txID uuid.UUID, newStatus models.TransactionStatus, adminNotes string) (*models.Transaction, error) {
	if newStatus != models.TransactionStatusCompleted && newStatus != models.TransactionStatusDeclined {
		return nil, ErrInvalidTransition
	}
	if newStatus == models.TransactionStatusDeclined && adminNotes == "" {
		return nil, ErrNotesRequired
	}

	var tx models.Transaction
	var creditedBalance *float64

	err := s.db.Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tx, "id = ?", txID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("error finding transaction: %w", err)
		}

		if tx.Status != models.TransactionStatusPendingVerification {
			return ErrAlreadyProcessed
		}
		if !CanTransition(tx.Status, newStatus) {
			return ErrInvalidTransition
		}

		now := time.Now()
		tx.Status = newStatus
		tx.AdminNotes = adminNotes
		tx.ProcessedAt = &now
		tx.ProcessedBy = &adminID

		if err := dbtx.Model(&tx).Updates(map[string]interface{}{
			"status":       tx.Status,
			"admin_notes":  tx.AdminNotes,
			"processed_at": tx.ProcessedAt,
			"processed_by": tx.ProcessedBy,
		}).Error; err != nil {
			return fmt.Errorf("error updating transaction: %w", err)
		}

		if newStatus != models.TransactionStatusCompleted {
			return nil
		}

		// Category side effect, same transaction: a failed side effect rolls
		// back the status move.
		switch tx.ItemCategory {
		case models.ItemCategoryDeposit:
			b, err := s.balanceSvc.CreditTx(dbtx, tx.UserID, tx.Amount, models.BalanceReasonDeposit, tx.Reference)
			if err != nil {
				return err
			}
			creditedBalance = &b.Amount
			return nil
		case models.ItemCategorySubscription:
			_, err := s.subSvc.ActivateTx(dbtx, tx.UserID, tx.PayableItemID)
			return err
		case models.ItemCategoryGift:
			return s.giftSvc.DeliverTx(dbtx, tx.PayableItemID)
		default:
			return fmt.Errorf("unknown item category %q", tx.ItemCategory)
		}
	})
	if err != nil {
		return nil, err
	}

	if creditedBalance != nil {
		s.balanceSvc.PublishUpdate(ctx, tx.UserID, *creditedBalance, models.BalanceReasonDeposit, tx.Reference)
	}
	return &tx, nil
}

// ExpireStale errors out pending_payment transactions older than ttl. Run by
// the maintenance scheduler.
func (s *Service) ExpireStale(ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)
	result := s.db.Model(&models.Transaction{}).
		Where("status = ? AND created_at < ?", models.TransactionStatusPendingPayment, cutoff).
		Update("status", models.TransactionStatusError)
	if result.Error != nil {
		return 0, fmt.Errorf("error expiring transactions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
