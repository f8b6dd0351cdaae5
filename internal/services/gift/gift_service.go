package gift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/services/balance"
	"github.com/amora/backend/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrGiftItemNotFound is returned for unknown or inactive catalog items.
	ErrGiftItemNotFound = errors.New("gift item not found")
	// ErrGiftNotFound is returned for unknown gift sends.
	ErrGiftNotFound = errors.New("gift not found")
	// ErrAlreadyRedeemed is returned when redeeming a gift twice.
	ErrAlreadyRedeemed = errors.New("gift already redeemed")
	// ErrNotDelivered is returned when redeeming a gift that hasn't been paid for.
	ErrNotDelivered = errors.New("gift has not been delivered")
	// ErrSelfGift is returned when a user tries to gift themselves.
	ErrSelfGift = errors.New("cannot send a gift to yourself")
)

// Service manages the gift catalog, sends and redemptions.
type Service struct {
	db         *gorm.DB
	balanceSvc *balance.Service
}

// NewService creates a new gift service
func NewService(db *gorm.DB, balanceSvc *balance.Service) *Service {
	return &Service{db: db, balanceSvc: balanceSvc}
}

// Catalog returns active gift items ordered by price ascending.
func (s *Service) Catalog() ([]models.GiftItem, error) {
	var items []models.GiftItem
	if err := s.db.Where("is_active = ?", true).Order("price ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("error listing gift items: %w", err)
	}
	return items, nil
}

// GetItem returns an active catalog item.
func (s *Service) GetItem(itemID uuid.UUID) (*models.GiftItem, error) {
	var item models.GiftItem
	if err := s.db.First(&item, "id = ? AND is_active = ?", itemID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGiftItemNotFound
		}
		return nil, fmt.Errorf("error finding gift item: %w", err)
	}
	return &item, nil
}

// SendWithBalance debits the sender and delivers the gift in one database
// transaction.
func (s *Service) SendWithBalance(ctx context.Context, senderID, recipientID, itemID uuid.UUID) (*models.GiftSend, float64, error) {
	if senderID == recipientID {
		return nil, 0, ErrSelfGift
	}

	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, 0, err
	}

	var recipient models.User
	if err := s.db.First(&recipient, "id = ?", recipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, errors.New("recipient not found")
		}
		return nil, 0, fmt.Errorf("error finding recipient: %w", err)
	}

	var send *models.GiftSend
	var newBalance float64
	reference := utils.GenerateReference("GIFT")

	err = s.db.Transaction(func(tx *gorm.DB) error {
		b, err := s.balanceSvc.DebitTx(tx, senderID, item.Price, models.BalanceReasonGiftSend, reference)
		if err != nil {
			return err
		}
		newBalance = b.Amount

		send = &models.GiftSend{
			SenderID:      senderID,
			RecipientID:   recipientID,
			GiftItemID:    item.ID,
			OriginalPrice: item.Price,
			Status:        models.GiftStatusDelivered,
		}
		return tx.Create(send).Error
	})
	if err != nil {
		return nil, 0, err
	}

	s.balanceSvc.PublishUpdate(ctx, senderID, newBalance, models.BalanceReasonGiftSend, reference)
	return send, newBalance, nil
}

// CreatePendingSend records a gift send awaiting an out-of-band payment. The
// transaction initiator calls this; DeliverTx finalizes it on verification.
func (s *Service) CreatePendingSend(senderID, recipientID, itemID uuid.UUID) (*models.GiftSend, error) {
	if senderID == recipientID {
		return nil, ErrSelfGift
	}

	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	send := models.GiftSend{
		SenderID:      senderID,
		RecipientID:   recipientID,
		GiftItemID:    item.ID,
		OriginalPrice: item.Price,
		Status:        models.GiftStatusPendingPayment,
	}
	if err := s.db.Create(&send).Error; err != nil {
		return nil, fmt.Errorf("error creating gift send: %w", err)
	}
	return &send, nil
}

// DeliverTx marks a pending gift send delivered inside a caller-owned
// transaction (admin verification of the paying transaction).
func (s *Service) DeliverTx(tx *gorm.DB, sendID uuid.UUID) error {
	result := tx.Model(&models.GiftSend{}).
		Where("id = ? AND status = ?", sendID, models.GiftStatusPendingPayment).
		Update("status", models.GiftStatusDelivered)
	if result.Error != nil {
		return fmt.Errorf("error delivering gift: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrGiftNotFound
	}
	return nil
}

// Redeem converts a delivered, unredeemed gift into balance credit for the
// recipient at the fixed redemption rate. Atomic: the gift row is locked so a
// double redeem credits once.
func (s *Service) Redeem(ctx context.Context, userID, sendID uuid.UUID) (*models.GiftSend, float64, error) {
	var send models.GiftSend
	var newBalance float64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&send, "id = ?", sendID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGiftNotFound
			}
			return fmt.Errorf("error finding gift: %w", err)
		}

		if send.RecipientID != userID {
			return ErrGiftNotFound
		}
		if send.Status != models.GiftStatusDelivered {
			return ErrNotDelivered
		}
		if send.IsRedeemed {
			return ErrAlreadyRedeemed
		}

		value := utils.Round2(send.OriginalPrice * models.GiftRedemptionRate)
		now := time.Now()
		send.IsRedeemed = true
		send.RedeemedValue = value
		send.RedeemedAt = &now
		if err := tx.Save(&send).Error; err != nil {
			return fmt.Errorf("error updating gift: %w", err)
		}

		b, err := s.balanceSvc.CreditTx(tx, userID, value, models.BalanceReasonGiftRedemption, send.ID.String())
		if err != nil {
			return err
		}
		newBalance = b.Amount
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	s.balanceSvc.PublishUpdate(ctx, userID, newBalance, models.BalanceReasonGiftRedemption, send.ID.String())
	return &send, newBalance, nil
}

// ListForUser returns gifts the user sent or received, newest first.
func (s *Service) ListForUser(userID uuid.UUID) ([]models.GiftSend, error) {
	var sends []models.GiftSend
	err := s.db.Preload("GiftItem").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&sends).Error
	if err != nil {
		return nil, fmt.Errorf("error listing gifts: %w", err)
	}
	return sends, nil
}
