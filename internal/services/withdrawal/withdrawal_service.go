package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/services/balance"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned for unknown withdrawal requests.
	ErrNotFound = errors.New("withdrawal request not found")
	// ErrSameStatus is returned when setting a request to its current status.
	ErrSameStatus = errors.New("withdrawal request already has this status")
	// ErrAlreadyProcessed is returned when moving a processed request, which
	// has already been debited and is terminal.
	ErrAlreadyProcessed = errors.New("withdrawal request has already been processed")
	// ErrNotesRequired is returned when rejecting without admin notes.
	ErrNotesRequired = errors.New("admin notes are required when rejecting")
	// ErrUnknownStatus is returned for statuses outside the allowed set.
	ErrUnknownStatus = errors.New("unknown withdrawal status")
)

// Service is the admin side of the withdrawal queue. Users create requests
// through the balance service; admins move them here.
type Service struct {
	db         *gorm.DB
	balanceSvc *balance.Service
}

// NewService creates a new withdrawal service
func NewService(db *gorm.DB, balanceSvc *balance.Service) *Service {
	return &Service{db: db, balanceSvc: balanceSvc}
}

// ListRequests returns all requests, optionally filtered by exact status,
// newest first.
func (s *Service) ListRequests(status models.WithdrawalStatus) ([]models.WithdrawalRequest, error) {
	query := s.db.Preload("User").Order("requested_at DESC")
	if status != "" {
		if !validStatus(status) {
			return nil, ErrUnknownStatus
		}
		query = query.Where("status = ?", status)
	}

	var requests []models.WithdrawalRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("error listing withdrawal requests: %w", err)
	}
	return requests, nil
}

// ListForUser returns the user's own requests, newest first.
func (s *Service) ListForUser(userID uuid.UUID) ([]models.WithdrawalRequest, error) {
	var requests []models.WithdrawalRequest
	if err := s.db.Where("user_id = ?", userID).Order("requested_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("error listing withdrawal requests: %w", err)
	}
	return requests, nil
}

// UpdateStatus moves a request to newStatus. Setting the current status again
// is rejected, rejecting requires notes, and moving to processed debits the
// user's balance in the same database transaction. That debit is the one
// moment funds leave the ledger, so processed is terminal: a request never
// moves out of it, which keeps it from ever being debited twice.
func (s *Service) UpdateStatus(ctx context.Context, adminID, requestID uuid.UUID, newStatus models.WithdrawalStatus, adminNotes string) (*models.WithdrawalRequest, error) {
	if !validStatus(newStatus) {
		return nil, ErrUnknownStatus
	}
	if newStatus == models.WithdrawalStatusRejected && adminNotes == "" {
		return nil, ErrNotesRequired
	}

	var req models.WithdrawalRequest
	var debitedBalance *float64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("error finding withdrawal request: %w", err)
		}

		if err := transitionGuard(req.Status, newStatus); err != nil {
			return err
		}

		now := time.Now()
		req.Status = newStatus
		req.AdminNotes = adminNotes
		req.ProcessedAt = &now
		req.ProcessedBy = &adminID

		if newStatus == models.WithdrawalStatusProcessed {
			b, err := s.balanceSvc.DebitTx(tx, req.UserID, req.Amount, models.BalanceReasonWithdrawal, req.ID.String())
			if err != nil {
				return err
			}
			debitedBalance = &b.Amount
		}

		return tx.Model(&req).Updates(map[string]interface{}{
			"status":       req.Status,
			"admin_notes":  req.AdminNotes,
			"processed_at": req.ProcessedAt,
			"processed_by": req.ProcessedBy,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	if debitedBalance != nil {
		s.balanceSvc.PublishUpdate(ctx, req.UserID, *debitedBalance, models.BalanceReasonWithdrawal, req.ID.String())
	}
	return &req, nil
}

// transitionGuard rejects no-op moves and any move away from processed.
func transitionGuard(current, next models.WithdrawalStatus) error {
	if current == next {
		return ErrSameStatus
	}
	if current == models.WithdrawalStatusProcessed {
		return ErrAlreadyProcessed
	}
	return nil
}

func validStatus(status models.WithdrawalStatus) bool {
	switch status {
	case models.WithdrawalStatusPending, models.WithdrawalStatusApproved,
		models.WithdrawalStatusProcessed, models.WithdrawalStatusRejected:
		return true
	}
	return false
}
