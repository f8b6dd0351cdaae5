package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/services/balance"
	"github.com/amora/backend/internal/services/withdrawal"
	"github.com/amora/backend/internal/utils"
)

// AdminFinancialHandler serves the back-office withdrawal queue.
type AdminFinancialHandler struct {
	withdrawals *withdrawal.Service
	audit       *utils.AuditLogger
}

func NewAdminFinancialHandler(withdrawalService *withdrawal.Service, audit *utils.AuditLogger) *AdminFinancialHandler {
	return &AdminFinancialHandler{withdrawals: withdrawalService, audit: audit}
}

type UpdateWithdrawalRequest struct {
	Status     string `json:"status" binding:"required,oneof=pending approved processed rejected"`
	AdminNotes string `json:"admin_notes"`
}

// ListWithdrawalRequests lists withdrawal requests, optionally filtered
// by ?status=.
func (h *AdminFinancialHandler) ListWithdrawalRequests(c *gin.Context) {
	status := models.WithdrawalStatus(c.Query("status"))

	requests, err := h.withdrawals.ListRequests(status)
	if err != nil {
		if errors.Is(err, withdrawal.ErrUnknownStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load withdrawal requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal_requests": requests})
}

// UpdateWithdrawalStatus moves a withdrawal request through its workflow.
// Marking a request processed debits the user's balance.
func (h *AdminFinancialHandler) UpdateWithdrawalStatus(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.withdrawals.UpdateStatus(c.Request.Context(), adminID, requestID, models.WithdrawalStatus(req.Status), req.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, withdrawal.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Withdrawal request not found"})
		case errors.Is(err, withdrawal.ErrSameStatus):
			c.JSON(http.StatusConflict, gin.H{"error": "Withdrawal request is already in that status"})
		case errors.Is(err, withdrawal.ErrAlreadyProcessed):
			c.JSON(http.StatusConflict, gin.H{"error": "Withdrawal request has already been processed"})
		case errors.Is(err, withdrawal.ErrNotesRequired), errors.Is(err, withdrawal.ErrUnknownStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, balance.ErrInsufficientBalance):
			c.JSON(http.StatusConflict, gin.H{"error": "User balance can no longer cover this withdrawal"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update withdrawal request"})
		}
		return
	}

	h.audit.Record(adminID, utils.AuditEventWithdrawalUpdated, &request.ID,
		fmt.Sprintf("status=%s amount=%.2f user=%s", request.Status, request.Amount, request.UserID),
		c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"withdrawal_request": request})
}
