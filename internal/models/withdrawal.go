package models

import (
	"time"

	"github.com/google/uuid"
)

// WithdrawalStatus represents the state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusApproved  WithdrawalStatus = "approved"
	WithdrawalStatusProcessed WithdrawalStatus = "processed"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"
)

// WithdrawalRequest is a user's request to cash out balance. Funds are not
// held at request time; the debit happens when an admin marks the request
// processed. Withdrawals never spawn a Transaction row.
type WithdrawalRequest struct {
	Base
	UserID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	User           User             `gorm:"foreignKey:UserID" json:"-"`
	Amount         float64          `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDetails string           `gorm:"type:text;not null" json:"user_payment_details"`
	Status         WithdrawalStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	AdminNotes     string           `gorm:"type:text" json:"admin_notes"`
	RequestedAt    time.Time        `json:"requested_at"`
	ProcessedAt    *time.Time       `json:"processed_at"`
	ProcessedBy    *uuid.UUID       `gorm:"type:uuid" json:"processed_by"`
}

func (WithdrawalRequest) TableName() string { return "withdrawal_requests" }
