package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amora/backend/internal/services/balance"
	"github.com/amora/backend/internal/services/withdrawal"
)

// BalanceHandler exposes the user's site balance and withdrawal requests.
type BalanceHandler struct {
	balances    *balance.Service
	withdrawals *withdrawal.Service
}

func NewBalanceHandler(balanceService *balance.Service, withdrawalService *withdrawal.Service) *BalanceHandler {
	return &BalanceHandler{balances: balanceService, withdrawals: withdrawalService}
}

type WithdrawRequest struct {
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	PaymentDetails string  `json:"payment_details" binding:"required"`
}

// Get returns the user's current balance, creating a zero row if missing.
func (h *BalanceHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bal, err := h.balances.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load balance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": bal})
}

// History returns the user's balance ledger entries, newest first.
func (h *BalanceHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)

	entries, total, err := h.balances.History(userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load balance history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// Withdraw creates a pending withdrawal request. Funds stay in the
// balance until an admin marks the request processed.
func (h *BalanceHandler) Withdraw(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := h.balances.RequestWithdrawal(userID, req.Amount, req.PaymentDetails)
	if err != nil {
		switch {
		case errors.Is(err, balance.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, balance.ErrInsufficientBalance):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create withdrawal request"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"withdrawal_request": request})
}

// MyWithdrawals lists the user's withdrawal requests, newest first.
func (h *BalanceHandler) MyWithdrawals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := h.withdrawals.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load withdrawal requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal_requests": requests})
}
