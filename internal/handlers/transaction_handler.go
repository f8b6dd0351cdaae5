package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/amora/backend/internal/models"
	"github.com/amora/backend/internal/services/gift"
	"github.com/amora/backend/internal/services/registry"
	"github.com/amora/backend/internal/services/subscription"
	"github.com/amora/backend/internal/services/transaction"
)

// TransactionHandler exposes the user side of the manual payment flow.
type TransactionHandler struct {
	transactions *transaction.Service
}

func NewTransactionHandler(transactionService *transaction.Service) *TransactionHandler {
	return &TransactionHandler{transactions: transactionService}
}

type InitiateTransactionRequest struct {
	CountryID       string  `json:"country_id" binding:"required,uuid"`
	PaymentMethodID string  `json:"payment_method_id" binding:"required,uuid"`
	ItemCategory    string  `json:"item_category" binding:"required,oneof=subscription gift deposit"`
	PayableItemID   string  `json:"payable_item_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

type SubmitReferenceRequest struct {
	Reference string `json:"reference" binding:"required"`
}

// Initiate starts a manual payment and returns the transaction together
// with the payment instructions snapshot.
func (h *TransactionHandler) Initiate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req InitiateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	countryID, ok := parseUUID(c, req.CountryID, "country_id")
	if !ok {
		return
	}
	methodID, ok := parseUUID(c, req.PaymentMethodID, "payment_method_id")
	if !ok {
		return
	}

	payableID := uuid.Nil
	if req.PayableItemID != "" {
		payableID, ok = parseUUID(c, req.PayableItemID, "payable_item_id")
		if !ok {
			return
		}
	}

	currency := models.Currency(req.Currency)
	if currency == "" {
		currency = models.CurrencyUSD
	}

	result, err := h.transactions.Initiate(transaction.InitiateInput{
		UserID:          userID,
		CountryID:       countryID,
		PaymentMethodID: methodID,
		ItemCategory:    models.ItemCategory(req.ItemCategory),
		PayableItemID:   payableID,
		Amount:          req.Amount,
		Currency:        currency,
	})
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrCountryNotFound),
			errors.Is(err, registry.ErrMethodNotFound),
			errors.Is(err, subscription.ErrPackageNotFound),
			errors.Is(err, gift.ErrGiftNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, transaction.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Gift does not belong to you"})
		case errors.Is(err, registry.ErrMethodInactive):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment method is not available"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// SubmitReference attaches the user's payment reference and moves the
// transaction into the admin verification queue.
func (h *TransactionHandler) SubmitReference(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	txID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SubmitReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.transactions.SubmitReference(userID, txID, req.Reference)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, transaction.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Transaction does not belong to you"})
		case errors.Is(err, transaction.ErrAlreadyProcessed):
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction has already been processed"})
		case errors.Is(err, transaction.ErrEmptyReference), errors.Is(err, transaction.ErrReferenceTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit reference"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

// ListMine returns the authenticated user's transactions, newest first.
func (h *TransactionHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)

	txns, total, err := h.transactions.ListMine(userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": txns,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// Get returns a single transaction owned by the authenticated user.
func (h *TransactionHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	txID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := h.transactions.GetForUser(userID, txID)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		case errors.Is(err, transaction.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Transaction does not belong to you"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}
