package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/services/transaction"
	"github.com/amora/backend/internal/utils"
)

// AdminTransactionHandler serves the payment verification queue.
type AdminTransactionHandler struct {
	transactions *transaction.Service
	audit        *utils.AuditLogger
}

func NewAdminTransactionHandler(transactionService *transaction.Service, audit *utils.AuditLogger) *AdminTransactionHandler {
	return &AdminTransactionHandler{transactions: transactionService, audit: audit}
}

type VerifyTransactionRequest struct {
	Status     string `json:"status" binding:"required,oneof=completed declined"`
	AdminNotes string `json:"admin_notes"`
}

// ListPendingVerification returns transactions awaiting manual review.
// Pages with ?limit= and ?offset= (or ?page=) and supports ?search= over
// references and payer email.
func (h *AdminTransactionHandler) ListPendingVerification(c *gin.Context) {
	limit, offset := pageWindow(c)
	search := c.Query("search")

	txns, total, err := h.transactions.ListPendingVerification(limit, offset, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load verification queue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": txns,
		"total":        total,
		"limit":        limit,
		"offset":       offset,
	})
}

// Verify settles a pending_verification transaction as completed or
// declined. Completion applies the category side effect exactly once.
func (h *AdminTransactionHandler) Verify(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	txID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VerifyTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.transactions.Verify(c.Request.Context(), adminID, txID, models.TransactionStatus(req.Status), req.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, transaction.ErrAlreadyProcessed):
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction has already been processed"})
		case errors.Is(err, transaction.ErrNotesRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, transaction.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify transaction"})
		}
		return
	}

	event := utils.AuditEventTransactionVerified
	if txn.Status == models.TransactionStatusDeclined {
		event = utils.AuditEventTransactionDeclined
	}
	h.audit.Record(adminID, event, &txn.ID,
		fmt.Sprintf("reference=%s amount=%.2f category=%s", txn.Reference, txn.Amount, txn.ItemCategory),
		c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}
