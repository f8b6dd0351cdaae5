package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amora/backend/internal/services/balance"
	"github.com/amora/backend/internal/services/gift"
)

// GiftHandler exposes the gift catalog, sending and redemption.
type GiftHandler struct {
	gifts *gift.Service
}

func NewGiftHandler(giftService *gift.Service) *GiftHandler {
	return &GiftHandler{gifts: giftService}
}

type SendGiftRequest struct {
	RecipientID string `json:"recipient_id" binding:"required,uuid"`
	GiftItemID  string `json:"gift_item_id" binding:"required,uuid"`
}

// Catalog returns the active gift items.
func (h *GiftHandler) Catalog(c *gin.Context) {
	items, err := h.gifts.Catalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load gift catalog"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gifts": items})
}

// Send buys a gift for another member with the sender's site balance.
func (h *GiftHandler) Send(c *gin.Context) {
	senderID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SendGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipientID, ok := parseUUID(c, req.RecipientID, "recipient_id")
	if !ok {
		return
	}
	itemID, ok := parseUUID(c, req.GiftItemID, "gift_item_id")
	if !ok {
		return
	}

	send, newBalance, err := h.gifts.SendWithBalance(c.Request.Context(), senderID, recipientID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, gift.ErrGiftItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Gift item not found"})
		case errors.Is(err, gift.ErrSelfGift):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot send a gift to yourself"})
		case errors.Is(err, balance.ErrInsufficientBalance):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send gift"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"gift":        send,
		"new_balance": newBalance,
	})
}

// InitiatePending creates a gift send awaiting an out-of-band payment. The
// client follows up by initiating a gift-category transaction pointing at
// the returned send; the gift delivers when an admin verifies that payment.
func (h *GiftHandler) InitiatePending(c *gin.Context) {
	senderID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SendGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipientID, ok := parseUUID(c, req.RecipientID, "recipient_id")
	if !ok {
		return
	}
	itemID, ok := parseUUID(c, req.GiftItemID, "gift_item_id")
	if !ok {
		return
	}

	send, err := h.gifts.CreatePendingSend(senderID, recipientID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, gift.ErrGiftItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Gift item not found"})
		case errors.Is(err, gift.ErrSelfGift):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot send a gift to yourself"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gift"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"gift": send})
}

// Redeem converts a received gift into balance at the redemption rate.
func (h *GiftHandler) Redeem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sendID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	send, newBalance, err := h.gifts.Redeem(c.Request.Context(), userID, sendID)
	if err != nil {
		switch {
		case errors.Is(err, gift.ErrGiftNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Gift not found"})
		case errors.Is(err, gift.ErrAlreadyRedeemed):
			c.JSON(http.StatusConflict, gin.H{"error": "Gift has already been redeemed"})
		case errors.Is(err, gift.ErrNotDelivered):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Gift has not been delivered yet"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem gift"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"gift":        send,
		"new_balance": newBalance,
	})
}

// List returns gifts the user has sent or received.
func (h *GiftHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sends, err := h.gifts.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load gifts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gifts": sends})
}
