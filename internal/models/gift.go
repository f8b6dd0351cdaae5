package models

import (
	"time"

	"github.com/google/uuid"
)

// GiftRedemptionRate converts a gift's purchase price to its cash-out value.
const GiftRedemptionRate = 0.73

// GiftStatus represents delivery state of a sent gift.
type GiftStatus string

const (
	GiftStatusPendingPayment GiftStatus = "pending_payment"
	GiftStatusDelivered      GiftStatus = "delivered"
)

// GiftItem is a catalog entry users can send to each other.
type GiftItem struct {
	Base
	Name     string   `gorm:"type:varchar(100);not null" json:"name"`
	Price    float64  `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency Currency `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	IconURL  string   `gorm:"type:varchar(255)" json:"icon_url"`
	IsActive bool     `gorm:"default:true" json:"is_active"`
}

func (GiftItem) TableName() string { return "gift_items" }

// GiftSend is one user gifting another. Balance-funded sends deliver
// immediately; transaction-funded sends deliver when the admin verifies the
// payment. The recipient may later redeem a delivered gift for
// OriginalPrice * GiftRedemptionRate.
type GiftSend struct {
	Base
	SenderID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"sender_id"`
	Sender        User       `gorm:"foreignKey:SenderID" json:"-"`
	RecipientID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Recipient     User       `gorm:"foreignKey:RecipientID" json:"-"`
	GiftItemID    uuid.UUID  `gorm:"type:uuid;not null" json:"gift_item_id"`
	GiftItem      GiftItem   `gorm:"foreignKey:GiftItemID" json:"-"`
	OriginalPrice float64    `gorm:"type:decimal(12,2);not null" json:"original_purchase_price"`
	Status        GiftStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	IsRedeemed    bool       `gorm:"default:false" json:"is_redeemed"`
	RedeemedValue float64    `gorm:"type:decimal(12,2)" json:"redeemed_value"`
	RedeemedAt    *time.Time `json:"redeemed_at"`
}

func (GiftSend) TableName() string { return "gift_sends" }
